package services

import (
	"fmt"
	"time"

	"chalet-backend/models"
	"chalet-backend/utils"

	"gorm.io/gorm"
)

// AvailabilityService loads occupancy snapshots and resolves calendar
// cells from them. One snapshot covers a whole calendar window, so the UI
// can ask for every (date, room) cell of a render in a single request.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// snapshotFilter excludes rows the caller is about to supersede: the holds
// being converted by a commit, or the booking being edited.
type snapshotFilter struct {
	ExcludeHoldIDs   []uint
	ExcludeBookingID uint
}

// loadOccupancySnapshot reads every blockage, confirmed booking and live
// hold that can touch a night in [nightFrom, nightTo). Bookings are
// matched on their own range or on any per-room override range.
func loadOccupancySnapshot(db *gorm.DB, nightFrom, nightTo time.Time, f snapshotFilter) (*OccupancySnapshot, error) {
	now := time.Now().UTC()
	snap := &OccupancySnapshot{Now: now}

	if err := db.
		Where("start_date < ? AND end_date > ?", nightTo, nightFrom).
		Find(&snap.Blockages).Error; err != nil {
		return nil, fmt.Errorf("failed to load blockages: %w", err)
	}

	overrides := db.Model(&models.BookingRoom{}).
		Select("booking_id").
		Where("check_in IS NOT NULL AND check_in < ? AND check_out > ?", nightTo, nightFrom)
	bookings := db.Preload("Rooms").
		Where("(check_in < ? AND check_out > ?) OR id IN (?)", nightTo, nightFrom, overrides)
	if f.ExcludeBookingID != 0 {
		bookings = bookings.Where("id <> ?", f.ExcludeBookingID)
	}
	if err := bookings.Find(&snap.Bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	holds := db.
		Where("check_in < ? AND check_out > ? AND expires_at > ?", nightTo, nightFrom, now)
	if len(f.ExcludeHoldIDs) > 0 {
		holds = holds.Where("id NOT IN ?", f.ExcludeHoldIDs)
	}
	if err := holds.Find(&snap.Holds).Error; err != nil {
		return nil, fmt.Errorf("failed to load holds: %w", err)
	}

	return snap, nil
}

// ResolveWindow classifies every date in [from, to] (inclusive) for the
// given rooms. roomID zero means all rooms.
func (s *AvailabilityService) ResolveWindow(from, to time.Time, roomID uint, sessionID string) ([]DayAvailability, error) {
	from = utils.Truncate(from)
	to = utils.Truncate(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: window end before start", ErrInvalidDateRange)
	}

	var rooms []models.Room
	q := s.DB.Order("room_number")
	if roomID != 0 {
		q = q.Where("id = ?", roomID)
	}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if roomID != 0 && len(rooms) == 0 {
		return nil, ErrRoomNotFound
	}

	// The first date needs the night ending at it, the last date the
	// night starting at it.
	snap, err := loadOccupancySnapshot(s.DB, from.AddDate(0, 0, -1), to.AddDate(0, 0, 1), snapshotFilter{})
	if err != nil {
		return nil, err
	}

	var out []DayAvailability
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		for _, room := range rooms {
			out = append(out, snap.Resolve(date, room.ID, sessionID))
		}
	}
	return out, nil
}

// Resolve classifies a single (date, room) cell.
func (s *AvailabilityService) Resolve(date time.Time, roomID uint, sessionID string) (DayAvailability, error) {
	cells, err := s.ResolveWindow(date, date, roomID, sessionID)
	if err != nil {
		return DayAvailability{}, err
	}
	if len(cells) == 0 {
		return DayAvailability{}, ErrRoomNotFound
	}
	return cells[0], nil
}
