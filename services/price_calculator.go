package services

import (
	"fmt"

	"chalet-backend/models"
)

// RoomRate is one loaded rate_plans row (or the bulk table).
type RoomRate struct {
	BasePrice      int
	AdultSurcharge int
	ChildSurcharge int
}

// PriceConfig is the full set of price tables the calculator reads.
// Keys are tier/size pairs built by RateKey.
type PriceConfig struct {
	Rates map[string]RoomRate
	Bulk  *RoomRate
}

func RateKey(tier, size string) string {
	return tier + "/" + size
}

func (r RoomRate) nonNegative() bool {
	return r.BasePrice >= 0 && r.AdultSurcharge >= 0 && r.ChildSurcharge >= 0
}

// Validate checks that the tables are usable for authoritative pricing:
// all four tier×size combinations present, the bulk table present, and no
// negative values anywhere. Commit must fail hard on an invalid config;
// display contexts fall back to the stored total instead.
func (c PriceConfig) Validate() error {
	for _, tier := range []string{models.TierResident, models.TierExternal} {
		for _, size := range []string{models.RoomSizeSmall, models.RoomSizeLarge} {
			rate, ok := c.Rates[RateKey(tier, size)]
			if !ok {
				return fmt.Errorf("%w: missing rate for %s/%s", ErrInvalidPriceConfiguration, tier, size)
			}
			if !rate.nonNegative() {
				return fmt.Errorf("%w: negative rate for %s/%s", ErrInvalidPriceConfiguration, tier, size)
			}
		}
	}
	if c.Bulk == nil {
		return fmt.Errorf("%w: missing bulk rate", ErrInvalidPriceConfiguration)
	}
	if !c.Bulk.nonNegative() {
		return fmt.Errorf("%w: negative bulk rate", ErrInvalidPriceConfiguration)
	}
	return nil
}

func (c PriceConfig) roomRate(tier, size string) (RoomRate, error) {
	rate, ok := c.Rates[RateKey(tier, size)]
	if !ok {
		return RoomRate{}, fmt.Errorf("%w: missing rate for %s/%s", ErrInvalidPriceConfiguration, tier, size)
	}
	return rate, nil
}

// GuestCharge is one roster entry as the calculator sees it. RoomID is the
// assigned room for surcharge size lookup; zero means the booking's first
// room.
type GuestCharge struct {
	FullName   string `json:"fullName"`
	PersonType string `json:"personType"`
	PriceTier  string `json:"priceTier"`
	RoomID     uint   `json:"room_id,omitempty"`
}

// RoomStay is one room of the booking shape. Zero Nights means the room
// follows the booking-level night count; a non-zero value marks a
// composite sub-range.
type RoomStay struct {
	RoomID   uint   `json:"room_id"`
	Size     string `json:"size"`
	Tier     string `json:"tier,omitempty"`
	Nights   int    `json:"nights,omitempty"`
	Adults   int    `json:"adults,omitempty"`
	Children int    `json:"children,omitempty"`
	Toddlers int    `json:"toddlers,omitempty"`

	Guests []GuestCharge `json:"guests,omitempty"`
}

// BookingShape is the pricing view of a booking under construction or
// being committed. The same shape feeds the live preview and the
// authoritative commit path, so both compute identical amounts.
type BookingShape struct {
	Bulk bool   `json:"bulk"`
	Tier string `json:"tier"`

	Nights int `json:"nights"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Toddlers int `json:"toddlers"`

	Rooms  []RoomStay    `json:"rooms"`
	Guests []GuestCharge `json:"guests,omitempty"`
}

type PricingStrategy string

const (
	StrategyBulk      PricingStrategy = "bulk"
	StrategyComposite PricingStrategy = "composite"
	StrategyPerGuest  PricingStrategy = "per_guest"
	StrategySimple    PricingStrategy = "simple"
)

// SelectStrategy picks the pricing strategy once, in order of specificity.
// The selected tag drives exactly one calculation function; no helper
// re-detects the shape downstream.
func SelectStrategy(shape BookingShape) PricingStrategy {
	if shape.Bulk {
		return StrategyBulk
	}
	for _, room := range shape.Rooms {
		if (room.Nights != 0 && room.Nights != shape.Nights) || len(room.Guests) > 0 {
			return StrategyComposite
		}
	}
	if len(shape.Guests) > 0 {
		return StrategyPerGuest
	}
	return StrategySimple
}

// ValidateGuestCounts checks the named roster against the declared
// adult/child/toddler counts. Shapes without a roster pass trivially.
func (shape BookingShape) ValidateGuestCounts() error {
	roster := make([]GuestCharge, 0, len(shape.Guests))
	roster = append(roster, shape.Guests...)
	for _, room := range shape.Rooms {
		roster = append(roster, room.Guests...)
	}
	if len(roster) == 0 {
		return nil
	}

	adults, children, toddlers := 0, 0, 0
	for _, g := range roster {
		switch g.PersonType {
		case models.PersonAdult:
			adults++
		case models.PersonChild:
			children++
		case models.PersonToddler:
			toddlers++
		default:
			return fmt.Errorf("%w: unknown person type %q", ErrGuestCountMismatch, g.PersonType)
		}
	}
	if adults != shape.Adults || children != shape.Children || toddlers != shape.Toddlers {
		return fmt.Errorf("%w: roster %d/%d/%d vs declared %d/%d/%d",
			ErrGuestCountMismatch, adults, children, toddlers,
			shape.Adults, shape.Children, shape.Toddlers)
	}
	return nil
}

// Price computes the authoritative amount for the shape. Deterministic and
// side-effect free; the preview endpoint and the commit transaction both
// call exactly this.
func (c PriceConfig) Price(shape BookingShape) (int, error) {
	if shape.Nights <= 0 {
		return 0, fmt.Errorf("%w: non-positive night count", ErrInvalidDateRange)
	}
	switch SelectStrategy(shape) {
	case StrategyBulk:
		return c.priceBulk(shape)
	case StrategyComposite:
		return c.priceComposite(shape)
	case StrategyPerGuest:
		return c.pricePerGuest(shape)
	default:
		return c.priceSimple(shape)
	}
}

// priceBulk charges the whole property as one unit. Counts come from the
// roster when one is present, otherwise from the declared aggregates.
func (c PriceConfig) priceBulk(shape BookingShape) (int, error) {
	if c.Bulk == nil {
		return 0, fmt.Errorf("%w: missing bulk rate", ErrInvalidPriceConfiguration)
	}
	adults, children := shape.Adults, shape.Children
	if len(shape.Guests) > 0 {
		adults, children = 0, 0
		for _, g := range shape.Guests {
			switch g.PersonType {
			case models.PersonAdult:
				adults++
			case models.PersonChild:
				children++
			}
		}
	}
	perNight := c.Bulk.BasePrice + c.Bulk.AdultSurcharge*adults + c.Bulk.ChildSurcharge*children
	return perNight * shape.Nights, nil
}

// priceComposite sums per-room prices, each over that room's own night
// count and assigned guests. Rooms with a named roster are priced
// per-guest; rooms with aggregate counts use the simple formula.
func (c PriceConfig) priceComposite(shape BookingShape) (int, error) {
	total := 0
	for _, room := range shape.Rooms {
		tier := room.Tier
		if tier == "" {
			tier = shape.Tier
		}
		nights := room.Nights
		if nights == 0 {
			nights = shape.Nights
		}
		if nights <= 0 {
			return 0, fmt.Errorf("%w: non-positive night count for room %d", ErrInvalidDateRange, room.RoomID)
		}

		rate, err := c.roomRate(tier, room.Size)
		if err != nil {
			return 0, err
		}

		perNight := rate.BasePrice
		if len(room.Guests) > 0 {
			for _, g := range room.Guests {
				surcharge, err := c.guestSurcharge(g, room.Size)
				if err != nil {
					return 0, err
				}
				perNight += surcharge
			}
		} else {
			perNight += rate.AdultSurcharge*room.Adults + rate.ChildSurcharge*room.Children
		}
		total += perNight * nights
	}
	return total, nil
}

// pricePerGuest handles a named roster, possibly spanning mixed price
// tiers inside one booking: per night, the empty-room rate of every room
// plus each guest's own surcharge.
func (c PriceConfig) pricePerGuest(shape BookingShape) (int, error) {
	perNight := 0
	sizeByRoom := make(map[uint]string, len(shape.Rooms))
	defaultSize := ""
	for _, room := range shape.Rooms {
		tier := room.Tier
		if tier == "" {
			tier = shape.Tier
		}
		rate, err := c.roomRate(tier, room.Size)
		if err != nil {
			return 0, err
		}
		perNight += rate.BasePrice
		sizeByRoom[room.RoomID] = room.Size
		if defaultSize == "" {
			defaultSize = room.Size
		}
	}

	for _, g := range shape.Guests {
		size := sizeByRoom[g.RoomID]
		if size == "" {
			size = defaultSize
		}
		surcharge, err := c.guestSurcharge(g, size)
		if err != nil {
			return 0, err
		}
		perNight += surcharge
	}
	return perNight * shape.Nights, nil
}

// priceSimple is the aggregate-count fallback: one tier for the whole
// booking, empty-room rate per room plus flat surcharges.
func (c PriceConfig) priceSimple(shape BookingShape) (int, error) {
	perNight := 0
	var surchargeRate RoomRate
	for i, room := range shape.Rooms {
		rate, err := c.roomRate(shape.Tier, room.Size)
		if err != nil {
			return 0, err
		}
		perNight += rate.BasePrice
		if i == 0 {
			surchargeRate = rate
		}
	}
	perNight += surchargeRate.AdultSurcharge*shape.Adults + surchargeRate.ChildSurcharge*shape.Children
	return perNight * shape.Nights, nil
}

// guestSurcharge is the additive nightly charge for one named guest under
// their own tier. Toddlers are free under every strategy.
func (c PriceConfig) guestSurcharge(g GuestCharge, size string) (int, error) {
	if g.PersonType == models.PersonToddler {
		return 0, nil
	}
	rate, err := c.roomRate(g.PriceTier, size)
	if err != nil {
		return 0, err
	}
	if g.PersonType == models.PersonChild {
		return rate.ChildSurcharge, nil
	}
	return rate.AdultSurcharge, nil
}
