package services

import (
	"testing"

	"chalet-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPriceConfig() PriceConfig {
	return PriceConfig{
		Rates: map[string]RoomRate{
			RateKey(models.TierResident, models.RoomSizeSmall): {BasePrice: 250, AdultSurcharge: 50, ChildSurcharge: 25},
			RateKey(models.TierResident, models.RoomSizeLarge): {BasePrice: 400, AdultSurcharge: 50, ChildSurcharge: 25},
			RateKey(models.TierExternal, models.RoomSizeSmall): {BasePrice: 500, AdultSurcharge: 100, ChildSurcharge: 50},
			RateKey(models.TierExternal, models.RoomSizeLarge): {BasePrice: 800, AdultSurcharge: 100, ChildSurcharge: 50},
		},
		Bulk: &RoomRate{BasePrice: 2500, AdultSurcharge: 40, ChildSurcharge: 20},
	}
}

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name  string
		shape BookingShape
		want  PricingStrategy
	}{
		{
			"bulk wins over everything",
			BookingShape{Bulk: true, Nights: 2, Guests: []GuestCharge{{PersonType: models.PersonAdult}}},
			StrategyBulk,
		},
		{
			"per-room night count forces composite",
			BookingShape{Nights: 3, Rooms: []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall, Nights: 2}}},
			StrategyComposite,
		},
		{
			"per-room roster forces composite",
			BookingShape{Nights: 3, Rooms: []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall, Guests: []GuestCharge{{PersonType: models.PersonAdult}}}}},
			StrategyComposite,
		},
		{
			"booking-level roster selects per-guest",
			BookingShape{Nights: 3, Rooms: []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall}}, Guests: []GuestCharge{{PersonType: models.PersonAdult}}},
			StrategyPerGuest,
		},
		{
			"aggregate counts select simple",
			BookingShape{Nights: 3, Adults: 2, Rooms: []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall}}},
			StrategySimple,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectStrategy(tc.shape))
		})
	}
}

func TestPriceSimple(t *testing.T) {
	cfg := testPriceConfig()

	shape := BookingShape{
		Tier:   models.TierResident,
		Nights: 2,
		Adults: 1,
		Rooms:  []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall}},
	}

	total, err := cfg.Price(shape)
	require.NoError(t, err)
	assert.Equal(t, 600, total)
}

func TestPriceSimpleMultiRoom(t *testing.T) {
	cfg := testPriceConfig()

	// Two rooms, external tier: (500 + 800 + 2*100 + 1*50) per night.
	shape := BookingShape{
		Tier:     models.TierExternal,
		Nights:   3,
		Adults:   2,
		Children: 1,
		Rooms: []RoomStay{
			{RoomID: 1, Size: models.RoomSizeSmall},
			{RoomID: 2, Size: models.RoomSizeLarge},
		},
	}

	total, err := cfg.Price(shape)
	require.NoError(t, err)
	assert.Equal(t, 1550*3, total)
}

func TestPricePerGuestMixedTiers(t *testing.T) {
	cfg := testPriceConfig()

	// Two small resident rooms (500/night base) with two external adults
	// (100 surcharge each): 700/night over 3 nights.
	shape := BookingShape{
		Tier:   models.TierResident,
		Nights: 3,
		Adults: 2,
		Rooms: []RoomStay{
			{RoomID: 1, Size: models.RoomSizeSmall},
			{RoomID: 2, Size: models.RoomSizeSmall},
		},
		Guests: []GuestCharge{
			{FullName: "A", PersonType: models.PersonAdult, PriceTier: models.TierExternal, RoomID: 1},
			{FullName: "B", PersonType: models.PersonAdult, PriceTier: models.TierExternal, RoomID: 2},
		},
	}

	require.Equal(t, StrategyPerGuest, SelectStrategy(shape))

	total, err := cfg.Price(shape)
	require.NoError(t, err)
	assert.Equal(t, 2100, total)
}

func TestPriceToddlersAlwaysFree(t *testing.T) {
	cfg := testPriceConfig()

	withToddler := BookingShape{
		Tier:     models.TierResident,
		Nights:   2,
		Adults:   1,
		Toddlers: 1,
		Rooms:    []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall}},
		Guests: []GuestCharge{
			{FullName: "A", PersonType: models.PersonAdult, PriceTier: models.TierResident},
			{FullName: "T", PersonType: models.PersonToddler, PriceTier: models.TierResident},
		},
	}
	without := BookingShape{
		Tier:   models.TierResident,
		Nights: 2,
		Adults: 1,
		Rooms:  []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall}},
		Guests: []GuestCharge{
			{FullName: "A", PersonType: models.PersonAdult, PriceTier: models.TierResident},
		},
	}

	gotWith, err := cfg.Price(withToddler)
	require.NoError(t, err)
	gotWithout, err := cfg.Price(without)
	require.NoError(t, err)
	assert.Equal(t, gotWithout, gotWith)

	// Same under bulk.
	bulkWith := withToddler
	bulkWith.Bulk = true
	bulkWithout := without
	bulkWithout.Bulk = true

	gotWith, err = cfg.Price(bulkWith)
	require.NoError(t, err)
	gotWithout, err = cfg.Price(bulkWithout)
	require.NoError(t, err)
	assert.Equal(t, gotWithout, gotWith)
}

func TestPriceBulk(t *testing.T) {
	cfg := testPriceConfig()

	shape := BookingShape{
		Bulk:     true,
		Tier:     models.TierExternal,
		Nights:   2,
		Adults:   10,
		Children: 5,
		Rooms: []RoomStay{
			{RoomID: 1, Size: models.RoomSizeSmall},
			{RoomID: 2, Size: models.RoomSizeLarge},
		},
	}

	total, err := cfg.Price(shape)
	require.NoError(t, err)
	// (2500 + 10*40 + 5*20) * 2
	assert.Equal(t, 6000, total)
}

func TestPriceComposite(t *testing.T) {
	cfg := testPriceConfig()

	// Room 1 stays 3 nights, room 2 only 2: priced per room.
	shape := BookingShape{
		Tier:   models.TierResident,
		Nights: 3,
		Adults: 2,
		Rooms: []RoomStay{
			{RoomID: 1, Size: models.RoomSizeSmall, Adults: 1},
			{RoomID: 2, Size: models.RoomSizeLarge, Nights: 2, Adults: 1},
		},
	}

	require.Equal(t, StrategyComposite, SelectStrategy(shape))

	total, err := cfg.Price(shape)
	require.NoError(t, err)
	// (250+50)*3 + (400+50)*2
	assert.Equal(t, 1800, total)
}

func TestPriceCompositePerRoomRoster(t *testing.T) {
	cfg := testPriceConfig()

	shape := BookingShape{
		Tier:     models.TierResident,
		Nights:   2,
		Adults:   1,
		Children: 1,
		Rooms: []RoomStay{
			{
				RoomID: 1,
				Size:   models.RoomSizeSmall,
				Guests: []GuestCharge{
					{FullName: "A", PersonType: models.PersonAdult, PriceTier: models.TierResident},
					{FullName: "C", PersonType: models.PersonChild, PriceTier: models.TierExternal},
				},
			},
		},
	}

	total, err := cfg.Price(shape)
	require.NoError(t, err)
	// (250 + 50 + 50) * 2; the external child uses its own tier's surcharge.
	assert.Equal(t, 700, total)
}

func TestPriceRejectsNonPositiveNights(t *testing.T) {
	cfg := testPriceConfig()

	_, err := cfg.Price(BookingShape{
		Tier:  models.TierResident,
		Rooms: []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall}},
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestPriceConfigValidate(t *testing.T) {
	t.Run("complete config passes", func(t *testing.T) {
		assert.NoError(t, testPriceConfig().Validate())
	})

	t.Run("missing combination fails", func(t *testing.T) {
		cfg := testPriceConfig()
		delete(cfg.Rates, RateKey(models.TierExternal, models.RoomSizeLarge))
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPriceConfiguration)
	})

	t.Run("missing bulk table fails", func(t *testing.T) {
		cfg := testPriceConfig()
		cfg.Bulk = nil
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPriceConfiguration)
	})

	t.Run("negative rate fails", func(t *testing.T) {
		cfg := testPriceConfig()
		cfg.Rates[RateKey(models.TierResident, models.RoomSizeSmall)] = RoomRate{BasePrice: -1}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPriceConfiguration)
	})
}

func TestValidateGuestCounts(t *testing.T) {
	base := BookingShape{
		Tier:     models.TierResident,
		Nights:   2,
		Adults:   1,
		Children: 1,
		Rooms:    []RoomStay{{RoomID: 1, Size: models.RoomSizeSmall}},
	}

	t.Run("no roster passes", func(t *testing.T) {
		assert.NoError(t, base.ValidateGuestCounts())
	})

	t.Run("matching roster passes", func(t *testing.T) {
		shape := base
		shape.Guests = []GuestCharge{
			{FullName: "A", PersonType: models.PersonAdult, PriceTier: models.TierResident},
			{FullName: "C", PersonType: models.PersonChild, PriceTier: models.TierResident},
		}
		assert.NoError(t, shape.ValidateGuestCounts())
	})

	t.Run("mismatched roster fails", func(t *testing.T) {
		shape := base
		shape.Guests = []GuestCharge{
			{FullName: "A", PersonType: models.PersonAdult, PriceTier: models.TierResident},
		}
		assert.ErrorIs(t, shape.ValidateGuestCounts(), ErrGuestCountMismatch)
	})

	t.Run("unknown person type fails", func(t *testing.T) {
		shape := base
		shape.Guests = []GuestCharge{
			{FullName: "A", PersonType: "infant", PriceTier: models.TierResident},
		}
		assert.ErrorIs(t, shape.ValidateGuestCounts(), ErrGuestCountMismatch)
	})

	t.Run("per-room roster counts toward totals", func(t *testing.T) {
		shape := base
		shape.Rooms = []RoomStay{{
			RoomID: 1,
			Size:   models.RoomSizeSmall,
			Guests: []GuestCharge{
				{FullName: "A", PersonType: models.PersonAdult, PriceTier: models.TierResident},
				{FullName: "C", PersonType: models.PersonChild, PriceTier: models.TierResident},
			},
		}}
		assert.NoError(t, shape.ValidateGuestCounts())
	})
}
