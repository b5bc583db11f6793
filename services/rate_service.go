package services

import (
	"errors"
	"fmt"

	"chalet-backend/models"

	"gorm.io/gorm"
)

// RateService owns the persisted price tables and their validation.
type RateService struct {
	DB *gorm.DB
}

func NewRateService(db *gorm.DB) *RateService {
	return &RateService{DB: db}
}

// LoadPriceConfig reads the current tables into the calculator's view.
// It does not validate: display paths tolerate a broken config and fall
// back to stored totals, while the commit path calls Validate itself.
func (s *RateService) LoadPriceConfig() (PriceConfig, error) {
	return loadPriceConfig(s.DB)
}

func loadPriceConfig(db *gorm.DB) (PriceConfig, error) {
	var plans []models.RatePlan
	if err := db.Find(&plans).Error; err != nil {
		return PriceConfig{}, fmt.Errorf("failed to load rate plans: %w", err)
	}

	cfg := PriceConfig{Rates: make(map[string]RoomRate, len(plans))}
	for _, p := range plans {
		cfg.Rates[RateKey(p.GuestTier, p.RoomSize)] = RoomRate{
			BasePrice:      p.BasePrice,
			AdultSurcharge: p.AdultSurcharge,
			ChildSurcharge: p.ChildSurcharge,
		}
	}

	var bulk models.BulkRate
	if err := db.First(&bulk).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return PriceConfig{}, fmt.Errorf("failed to load bulk rate: %w", err)
		}
	} else {
		cfg.Bulk = &RoomRate{
			BasePrice:      bulk.BasePrice,
			AdultSurcharge: bulk.AdultSurcharge,
			ChildSurcharge: bulk.ChildSurcharge,
		}
	}
	return cfg, nil
}

func (s *RateService) GetRates() ([]models.RatePlan, models.BulkRate, error) {
	var plans []models.RatePlan
	if err := s.DB.Order("guest_tier, room_size").Find(&plans).Error; err != nil {
		return nil, models.BulkRate{}, fmt.Errorf("failed to load rate plans: %w", err)
	}
	var bulk models.BulkRate
	if err := s.DB.First(&bulk).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.BulkRate{}, fmt.Errorf("failed to load bulk rate: %w", err)
	}
	return plans, bulk, nil
}

// UpdateRates replaces the full table set after validating it as a whole:
// all four tier×size combinations present, no negative values.
func (s *RateService) UpdateRates(plans []models.RatePlan, bulk models.BulkRate) error {
	cfg := PriceConfig{
		Rates: make(map[string]RoomRate, len(plans)),
		Bulk: &RoomRate{
			BasePrice:      bulk.BasePrice,
			AdultSurcharge: bulk.AdultSurcharge,
			ChildSurcharge: bulk.ChildSurcharge,
		},
	}
	for _, p := range plans {
		if !models.IsValidTier(p.GuestTier) {
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidPriceConfiguration, p.GuestTier)
		}
		if !models.IsValidRoomSize(p.RoomSize) {
			return fmt.Errorf("%w: unknown room size %q", ErrInvalidPriceConfiguration, p.RoomSize)
		}
		key := RateKey(p.GuestTier, p.RoomSize)
		if _, dup := cfg.Rates[key]; dup {
			return fmt.Errorf("%w: duplicate rate for %s", ErrInvalidPriceConfiguration, key)
		}
		cfg.Rates[key] = RoomRate{
			BasePrice:      p.BasePrice,
			AdultSurcharge: p.AdultSurcharge,
			ChildSurcharge: p.ChildSurcharge,
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, p := range plans {
			var existing models.RatePlan
			err := tx.Where("guest_tier = ? AND room_size = ?", p.GuestTier, p.RoomSize).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				plan := models.RatePlan{
					GuestTier:      p.GuestTier,
					RoomSize:       p.RoomSize,
					BasePrice:      p.BasePrice,
					AdultSurcharge: p.AdultSurcharge,
					ChildSurcharge: p.ChildSurcharge,
				}
				if err := tx.Create(&plan).Error; err != nil {
					return fmt.Errorf("failed to create rate plan: %w", err)
				}
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"base_price":      p.BasePrice,
				"adult_surcharge": p.AdultSurcharge,
				"child_surcharge": p.ChildSurcharge,
			}).Error; err != nil {
				return fmt.Errorf("failed to update rate plan: %w", err)
			}
		}

		var existingBulk models.BulkRate
		err := tx.First(&existingBulk).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row := models.BulkRate{
				BasePrice:      bulk.BasePrice,
				AdultSurcharge: bulk.AdultSurcharge,
				ChildSurcharge: bulk.ChildSurcharge,
			}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&existingBulk).Updates(map[string]interface{}{
			"base_price":      bulk.BasePrice,
			"adult_surcharge": bulk.AdultSurcharge,
			"child_surcharge": bulk.ChildSurcharge,
		}).Error
	})
}
