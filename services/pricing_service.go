package services

import (
	"gorm.io/gorm"
)

// PricingService computes live price previews. It runs the exact
// calculator the commit transaction runs, over the same request shape, so
// the preview and the authoritative amount can never drift apart.
type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db}
}

type PriceQuote struct {
	Amount   int             `json:"amount"`
	Nights   int             `json:"nights"`
	Strategy PricingStrategy `json:"strategy"`
}

func (s *PricingService) Quote(req BookingRequest) (PriceQuote, error) {
	plan, err := parseBookingRequest(req)
	if err != nil {
		return PriceQuote{}, err
	}
	if err := resolveStays(s.DB, plan); err != nil {
		return PriceQuote{}, err
	}

	cfg, err := loadPriceConfig(s.DB)
	if err != nil {
		return PriceQuote{}, err
	}
	amount, err := cfg.Price(plan.Shape)
	if err != nil {
		return PriceQuote{}, err
	}
	return PriceQuote{
		Amount:   amount,
		Nights:   plan.Nights,
		Strategy: SelectStrategy(plan.Shape),
	}, nil
}
