package services

import (
	"testing"

	"chalet-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() BookingRequest {
	return BookingRequest{
		SessionID: "sess-test",
		GuestTier: models.TierResident,
		CheckIn:   "2025-10-10",
		CheckOut:  "2025-10-12",
		Adults:    1,
		Rooms:     []BookingRoomRequest{{RoomID: 1}},
	}
}

func TestParseBookingRequest(t *testing.T) {
	plan, err := parseBookingRequest(validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Nights)
	assert.Equal(t, models.TierResident, plan.GuestTier)
	require.Len(t, plan.Stays, 1)
	assert.Equal(t, uint(1), plan.Stays[0].RoomID)
	assert.False(t, plan.Stays[0].Override)
	assert.Equal(t, plan.CheckIn, plan.Stays[0].CheckIn)
	assert.Equal(t, plan.CheckOut, plan.Stays[0].CheckOut)
}

func TestParseBookingRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookingRequest)
		wantErr error
	}{
		{
			"unknown tier",
			func(r *BookingRequest) { r.GuestTier = "vip" },
			ErrGuestCountMismatch,
		},
		{
			"malformed check-in",
			func(r *BookingRequest) { r.CheckIn = "10/10/2025" },
			ErrInvalidDateRange,
		},
		{
			"checkout before check-in",
			func(r *BookingRequest) { r.CheckIn, r.CheckOut = "2025-10-12", "2025-10-10" },
			ErrInvalidDateRange,
		},
		{
			"same-day range",
			func(r *BookingRequest) { r.CheckOut = r.CheckIn },
			ErrInvalidDateRange,
		},
		{
			"negative guest count",
			func(r *BookingRequest) { r.Adults = -1 },
			ErrGuestCountMismatch,
		},
		{
			"zero room id",
			func(r *BookingRequest) { r.Rooms = []BookingRoomRequest{{RoomID: 0}} },
			ErrInvalidDateRange,
		},
		{
			"partial per-room override",
			func(r *BookingRequest) {
				r.Rooms = []BookingRoomRequest{{RoomID: 1, CheckIn: "2025-10-10"}}
			},
			ErrInvalidDateRange,
		},
		{
			"empty per-room range",
			func(r *BookingRequest) {
				r.Rooms = []BookingRoomRequest{{RoomID: 1, CheckIn: "2025-10-11", CheckOut: "2025-10-11"}}
			},
			ErrInvalidDateRange,
		},
		{
			"unknown roster person type",
			func(r *BookingRequest) {
				r.Guests = []GuestInput{{FullName: "A", PersonType: "infant"}}
			},
			ErrGuestCountMismatch,
		},
		{
			"unknown roster price tier",
			func(r *BookingRequest) {
				r.Guests = []GuestInput{{FullName: "A", PersonType: models.PersonAdult, PriceTier: "vip"}}
			},
			ErrGuestCountMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := parseBookingRequest(req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseBookingRequestPerRoomOverride(t *testing.T) {
	req := validRequest()
	req.Rooms = []BookingRoomRequest{
		{RoomID: 1},
		{RoomID: 2, CheckIn: "2025-10-10", CheckOut: "2025-10-11", Adults: 1},
	}

	plan, err := parseBookingRequest(req)
	require.NoError(t, err)
	require.Len(t, plan.Stays, 2)

	assert.False(t, plan.Stays[0].Override)
	assert.True(t, plan.Stays[1].Override)
	assert.Equal(t, day("2025-10-11"), plan.Stays[1].CheckOut)

	from, to := plan.windowBounds()
	assert.Equal(t, plan.CheckIn, from)
	assert.Equal(t, plan.CheckOut, to)
}

func TestWindowBoundsExtendedByOverride(t *testing.T) {
	req := validRequest()
	req.Rooms = []BookingRoomRequest{
		{RoomID: 1},
		{RoomID: 2, CheckIn: "2025-10-09", CheckOut: "2025-10-14"},
	}

	plan, err := parseBookingRequest(req)
	require.NoError(t, err)

	from, to := plan.windowBounds()
	assert.Equal(t, day("2025-10-09"), from)
	assert.Equal(t, day("2025-10-14"), to)
}
