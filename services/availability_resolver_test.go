package services

import (
	"testing"
	"time"

	"chalet-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func booking(id uint, roomID uint, checkIn, checkOut string) models.Booking {
	return models.Booking{
		ID:       id,
		CheckIn:  day(checkIn),
		CheckOut: day(checkOut),
		Rooms:    []models.BookingRoom{{BookingID: id, RoomID: roomID}},
	}
}

func hold(id uint, roomID uint, checkIn, checkOut string, expiresAt time.Time) models.ProposedBooking {
	return models.ProposedBooking{
		ID:        id,
		SessionID: "sess-test",
		CheckIn:   day(checkIn),
		CheckOut:  day(checkOut),
		RoomIDs:   datatypes.JSON([]byte(`[` + itoa(roomID) + `]`)),
		ExpiresAt: expiresAt,
	}
}

func itoa(n uint) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func TestResolveEmptySnapshot(t *testing.T) {
	snap := &OccupancySnapshot{Now: day("2025-10-01")}

	got := snap.Resolve(day("2025-10-15"), 1, "")

	assert.Equal(t, StatusAvailable, got.Status)
	assert.False(t, got.NightBeforeOccupied)
	assert.False(t, got.NightAfterOccupied)
	assert.Equal(t, NightNone, got.NightBeforeKind)
	assert.Equal(t, NightNone, got.NightAfterKind)
	assert.False(t, got.IsMixed)
}

func TestResolveConfirmedBookingSpan(t *testing.T) {
	snap := &OccupancySnapshot{
		Now:      day("2025-10-01"),
		Bookings: []models.Booking{booking(1, 1, "2025-10-10", "2025-10-13")},
	}

	tests := []struct {
		name       string
		date       string
		wantStatus DayStatus
		wantBefore NightKind
		wantAfter  NightKind
	}{
		{"day before check-in", "2025-10-09", StatusAvailable, NightNone, NightNone},
		{"check-in day", "2025-10-10", StatusBooked, NightNone, NightConfirmed},
		{"middle of stay", "2025-10-11", StatusBooked, NightConfirmed, NightConfirmed},
		{"checkout day", "2025-10-13", StatusBooked, NightConfirmed, NightNone},
		{"day after checkout", "2025-10-14", StatusAvailable, NightNone, NightNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := snap.Resolve(day(tc.date), 1, "")
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.Equal(t, tc.wantBefore, got.NightBeforeKind)
			assert.Equal(t, tc.wantAfter, got.NightAfterKind)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	snap := &OccupancySnapshot{
		Now:      day("2025-10-01"),
		Bookings: []models.Booking{booking(1, 1, "2025-10-10", "2025-10-13")},
		Holds:    []models.ProposedBooking{hold(7, 1, "2025-10-13", "2025-10-15", day("2025-12-01"))},
	}

	first := snap.Resolve(day("2025-10-13"), 1, "")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, snap.Resolve(day("2025-10-13"), 1, ""))
	}
}

func TestResolveEdgeBetweenHoldAndBooking(t *testing.T) {
	// Hold covers the nights of Oct 25 and 26; a confirmed booking covers
	// the nights of Oct 27 and 28. Oct 27 is a shared turnover day.
	snap := &OccupancySnapshot{
		Now:      day("2025-10-20"),
		Bookings: []models.Booking{booking(1, 1, "2025-10-27", "2025-10-29")},
		Holds:    []models.ProposedBooking{hold(7, 1, "2025-10-25", "2025-10-27", day("2025-12-01"))},
	}

	got := snap.Resolve(day("2025-10-27"), 1, "")

	require.Equal(t, StatusEdge, got.Status)
	assert.Equal(t, NightProposed, got.NightBeforeKind)
	assert.Equal(t, NightConfirmed, got.NightAfterKind)
	assert.True(t, got.NightBeforeOccupied)
	assert.True(t, got.NightAfterOccupied)
	assert.True(t, got.IsMixed)
}

func TestResolveEdgeBetweenTwoBookings(t *testing.T) {
	// Back-to-back confirmed bookings: the turnover day is an edge, but not
	// mixed, since both sides are the same kind.
	snap := &OccupancySnapshot{
		Now: day("2025-10-01"),
		Bookings: []models.Booking{
			booking(1, 1, "2025-10-10", "2025-10-12"),
			booking(2, 1, "2025-10-12", "2025-10-14"),
		},
	}

	got := snap.Resolve(day("2025-10-12"), 1, "")

	require.Equal(t, StatusEdge, got.Status)
	assert.Equal(t, NightConfirmed, got.NightBeforeKind)
	assert.Equal(t, NightConfirmed, got.NightAfterKind)
	assert.False(t, got.IsMixed)
}

func TestResolveExpiredHoldIsAbsent(t *testing.T) {
	now := day("2025-10-20")
	snap := &OccupancySnapshot{
		Now:   now,
		Holds: []models.ProposedBooking{hold(7, 1, "2025-10-25", "2025-10-27", now.Add(-time.Minute))},
	}

	got := snap.Resolve(day("2025-10-26"), 1, "")

	assert.Equal(t, StatusAvailable, got.Status)
	assert.True(t, snap.RangeFree(1, day("2025-10-25"), day("2025-10-27")))
}

func TestResolveLiveHold(t *testing.T) {
	now := day("2025-10-20")
	snap := &OccupancySnapshot{
		Now:   now,
		Holds: []models.ProposedBooking{hold(7, 1, "2025-10-25", "2025-10-27", now.Add(15*time.Minute))},
	}

	got := snap.Resolve(day("2025-10-26"), 1, "")
	assert.Equal(t, StatusProposed, got.Status)

	// Other rooms are unaffected.
	other := snap.Resolve(day("2025-10-26"), 2, "")
	assert.Equal(t, StatusAvailable, other.Status)
}

func TestResolveHoldVisibleToOwnSession(t *testing.T) {
	now := day("2025-10-20")
	snap := &OccupancySnapshot{
		Now:   now,
		Holds: []models.ProposedBooking{hold(7, 1, "2025-10-25", "2025-10-27", now.Add(15*time.Minute))},
	}

	got := snap.Resolve(day("2025-10-26"), 1, "sess-test")
	assert.Equal(t, StatusProposed, got.Status)
}

func TestResolveBlockagePrecedence(t *testing.T) {
	snap := &OccupancySnapshot{
		Now:      day("2025-10-01"),
		Bookings: []models.Booking{booking(1, 1, "2025-10-10", "2025-10-12")},
		Blockages: []models.Blockage{{
			ID:        1,
			StartDate: day("2025-10-11"),
			EndDate:   day("2025-10-13"),
			RoomIDs:   datatypes.JSON([]byte(`[1]`)),
		}},
	}

	got := snap.Resolve(day("2025-10-11"), 1, "")
	assert.Equal(t, StatusBlocked, got.Status)

	// Room 2 is outside the blockage's room set.
	other := snap.Resolve(day("2025-10-11"), 2, "")
	assert.Equal(t, StatusAvailable, other.Status)
}

func TestResolveBlockageAllRooms(t *testing.T) {
	snap := &OccupancySnapshot{
		Now: day("2025-10-01"),
		Blockages: []models.Blockage{{
			ID:        1,
			StartDate: day("2025-10-11"),
			EndDate:   day("2025-10-13"),
		}},
	}

	for _, roomID := range []uint{1, 2, 3} {
		got := snap.Resolve(day("2025-10-12"), roomID, "")
		assert.Equal(t, StatusBlocked, got.Status)
	}
}

func TestResolvePerRoomOverrideRange(t *testing.T) {
	// One booking, two rooms; the second room stays a night longer.
	extended := day("2025-10-13")
	b := models.Booking{
		ID:       1,
		CheckIn:  day("2025-10-10"),
		CheckOut: day("2025-10-12"),
		Rooms: []models.BookingRoom{
			{BookingID: 1, RoomID: 1},
			{BookingID: 1, RoomID: 2, CheckOut: &extended},
		},
	}
	snap := &OccupancySnapshot{Now: day("2025-10-01"), Bookings: []models.Booking{b}}

	assert.Equal(t, StatusAvailable, snap.Resolve(day("2025-10-13"), 1, "").Status)
	assert.Equal(t, StatusBooked, snap.Resolve(day("2025-10-12"), 2, "").Status)
}

func TestRangeFree(t *testing.T) {
	now := day("2025-10-01")
	snap := &OccupancySnapshot{
		Now:      now,
		Bookings: []models.Booking{booking(1, 1, "2025-10-10", "2025-10-12")},
		Holds:    []models.ProposedBooking{hold(7, 2, "2025-10-10", "2025-10-12", now.Add(time.Hour))},
	}

	tests := []struct {
		name     string
		roomID   uint
		checkIn  string
		checkOut string
		want     bool
	}{
		{"overlapping booking", 1, "2025-10-11", "2025-10-14", false},
		{"back-to-back after checkout", 1, "2025-10-12", "2025-10-14", true},
		{"back-to-back before check-in", 1, "2025-10-08", "2025-10-10", true},
		{"overlapping live hold", 2, "2025-10-09", "2025-10-11", false},
		{"untouched room", 3, "2025-10-10", "2025-10-12", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, snap.RangeFree(tc.roomID, day(tc.checkIn), day(tc.checkOut)))
		})
	}
}
