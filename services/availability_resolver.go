package services

import (
	"fmt"
	"time"

	"chalet-backend/models"
	"chalet-backend/utils"
)

type NightKind string

const (
	NightNone      NightKind = "none"
	NightConfirmed NightKind = "confirmed"
	NightProposed  NightKind = "proposed"
)

type DayStatus string

const (
	StatusAvailable DayStatus = "available"
	StatusBooked    DayStatus = "booked"
	StatusBlocked   DayStatus = "blocked"
	StatusProposed  DayStatus = "proposed"
	StatusEdge      DayStatus = "edge"
)

// DayAvailability is the resolved display status of one (date, room) cell.
// Occupancy is defined on nights, so the status derives from the two
// nights adjacent to the date: the night ending at it (someone's checkout)
// and the night starting at it (someone's check-in).
type DayAvailability struct {
	Date   time.Time `json:"date"`
	RoomID uint      `json:"room_id"`

	Status DayStatus `json:"status"`

	NightBeforeOccupied bool      `json:"night_before_occupied"`
	NightAfterOccupied  bool      `json:"night_after_occupied"`
	NightBeforeKind     NightKind `json:"night_before_kind"`
	NightAfterKind      NightKind `json:"night_after_kind"`
	IsMixed             bool      `json:"is_mixed"`
}

// OccupancySnapshot is an in-memory view of everything that can claim a
// room-night: blockages, confirmed bookings and holds, read as of Now.
// Resolution over a snapshot is pure and idempotent; callers load one
// snapshot per calendar window and resolve every cell from it.
type OccupancySnapshot struct {
	Blockages []models.Blockage
	Bookings  []models.Booking
	Holds     []models.ProposedBooking
	Now       time.Time
}

// nightClaim identifies which reservation, if any, occupies a night.
// Owner disambiguates two adjacent reservations of the same kind.
type nightClaim struct {
	kind  NightKind
	owner string
}

// claimFor scans confirmed bookings first, then live holds, for the night
// starting at night on roomID. Expired holds are absent whether or not the
// cleanup sweep has deleted them. The caller's own holds count like anyone
// else's; sessions get no preferential visibility.
func (s *OccupancySnapshot) claimFor(roomID uint, night time.Time) nightClaim {
	for i := range s.Bookings {
		b := &s.Bookings[i]
		for j := range b.Rooms {
			br := &b.Rooms[j]
			if br.RoomID != roomID {
				continue
			}
			checkIn, checkOut := br.StayRange(b.CheckIn, b.CheckOut)
			if utils.NightCovered(checkIn, checkOut, night) {
				return nightClaim{kind: NightConfirmed, owner: fmt.Sprintf("booking:%d", b.ID)}
			}
		}
	}
	for i := range s.Holds {
		h := &s.Holds[i]
		if !h.Live(s.Now) {
			continue
		}
		if h.CoversRoom(roomID) && utils.NightCovered(h.CheckIn, h.CheckOut, night) {
			return nightClaim{kind: NightProposed, owner: fmt.Sprintf("hold:%d", h.ID)}
		}
	}
	return nightClaim{kind: NightNone}
}

// blockedNight reports whether a blockage covers the night starting at
// night for roomID.
func (s *OccupancySnapshot) blockedNight(roomID uint, night time.Time) bool {
	for i := range s.Blockages {
		bl := &s.Blockages[i]
		if bl.CoversRoom(roomID) && utils.NightCovered(bl.StartDate, bl.EndDate, night) {
			return true
		}
	}
	return false
}

// Resolve classifies one calendar date for one room. sessionID is accepted
// for interface symmetry with the cancel path; it does not affect status.
func (s *OccupancySnapshot) Resolve(date time.Time, roomID uint, sessionID string) DayAvailability {
	_ = sessionID

	date = utils.Truncate(date)
	nightBefore := date.AddDate(0, 0, -1)
	nightAfter := date

	before := s.claimFor(roomID, nightBefore)
	after := s.claimFor(roomID, nightAfter)

	out := DayAvailability{
		Date:                date,
		RoomID:              roomID,
		NightBeforeOccupied: before.kind != NightNone,
		NightAfterOccupied:  after.kind != NightNone,
		NightBeforeKind:     before.kind,
		NightAfterKind:      after.kind,
	}

	// Blockages take precedence over all edge logic.
	if s.blockedNight(roomID, nightAfter) {
		out.Status = StatusBlocked
		return out
	}

	switch {
	case before.kind == NightNone && after.kind == NightNone:
		out.Status = StatusAvailable
	case before.kind == NightNone:
		out.Status = statusForKind(after.kind)
	case after.kind == NightNone:
		out.Status = statusForKind(before.kind)
	case before.kind == after.kind && before.owner == after.owner:
		// Fully inside a single reservation's span, not a boundary.
		out.Status = statusForKind(before.kind)
	default:
		// Checkout of one reservation and check-in of another.
		out.Status = StatusEdge
		out.IsMixed = before.kind != after.kind
	}
	return out
}

func statusForKind(kind NightKind) DayStatus {
	if kind == NightProposed {
		return StatusProposed
	}
	return StatusBooked
}

// RangeFree reports whether every night in [checkIn, checkOut) is free for
// roomID: no blockage, no confirmed booking, no live hold.
func (s *OccupancySnapshot) RangeFree(roomID uint, checkIn, checkOut time.Time) bool {
	for night := utils.Truncate(checkIn); night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		if s.blockedNight(roomID, night) {
			return false
		}
		if s.claimFor(roomID, night).kind != NightNone {
			return false
		}
	}
	return true
}
