package services

import (
	"fmt"
	"time"

	"chalet-backend/models"
	"chalet-backend/utils"

	"gorm.io/gorm"
)

// GuestInput is one named roster entry as submitted by the UI.
type GuestInput struct {
	FullName   string `json:"fullName"`
	PersonType string `json:"personType"`
	PriceTier  string `json:"priceTier"`
	RoomID     *uint  `json:"room_id,omitempty"`
}

// BookingRoomRequest selects one room, optionally with its own sub-range
// and guest-count breakdown (composite bookings).
type BookingRoomRequest struct {
	RoomID   uint   `json:"room_id"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Adults   int    `json:"adults,omitempty"`
	Children int    `json:"children,omitempty"`
	Toddlers int    `json:"toddlers,omitempty"`
}

// BookingRequest is the submission shape shared by the price preview, the
// commit path and the self-service edit path, so all three reason about
// the exact same booking.
type BookingRequest struct {
	SessionID   string `json:"session_id"`
	ProposalIDs []uint `json:"proposal_ids,omitempty"`

	Bulk      bool   `json:"bulk"`
	GuestTier string `json:"guest_tier"`

	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`

	Rooms []BookingRoomRequest `json:"rooms"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Toddlers int `json:"toddlers"`

	Guests []GuestInput `json:"guests,omitempty"`
}

// stayWindow is one resolved (room, range) pair the commit transaction
// must re-validate night by night.
type stayWindow struct {
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Override bool

	Adults   int
	Children int
	Toddlers int
}

// bookingPlan is the parsed and room-resolved form of a BookingRequest.
type bookingPlan struct {
	Bulk      bool
	GuestTier string
	CheckIn   time.Time
	CheckOut  time.Time
	Nights    int

	Adults   int
	Children int
	Toddlers int

	Stays  []stayWindow
	Guests []GuestInput

	Shape BookingShape
}

// windowBounds returns the widest night range any stay touches.
func (p *bookingPlan) windowBounds() (time.Time, time.Time) {
	from, to := p.CheckIn, p.CheckOut
	for _, stay := range p.Stays {
		if stay.CheckIn.Before(from) {
			from = stay.CheckIn
		}
		if stay.CheckOut.After(to) {
			to = stay.CheckOut
		}
	}
	return from, to
}

func (p *bookingPlan) roomIDs() []uint {
	ids := make([]uint, 0, len(p.Stays))
	for _, stay := range p.Stays {
		ids = append(ids, stay.RoomID)
	}
	return ids
}

// parseBookingRequest validates dates, tier and counts without touching
// the database.
func parseBookingRequest(req BookingRequest) (*bookingPlan, error) {
	if !models.IsValidTier(req.GuestTier) {
		return nil, fmt.Errorf("%w: unknown guest tier %q", ErrGuestCountMismatch, req.GuestTier)
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	nights := utils.Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, fmt.Errorf("%w: %s to %s covers no nights", ErrInvalidDateRange, req.CheckIn, req.CheckOut)
	}
	if req.Adults < 0 || req.Children < 0 || req.Toddlers < 0 {
		return nil, fmt.Errorf("%w: negative guest count", ErrGuestCountMismatch)
	}
	for _, g := range req.Guests {
		if !models.IsValidPersonType(g.PersonType) {
			return nil, fmt.Errorf("%w: unknown person type %q", ErrGuestCountMismatch, g.PersonType)
		}
		if g.PriceTier != "" && !models.IsValidTier(g.PriceTier) {
			return nil, fmt.Errorf("%w: unknown price tier %q", ErrGuestCountMismatch, g.PriceTier)
		}
	}

	plan := &bookingPlan{
		Bulk:      req.Bulk,
		GuestTier: req.GuestTier,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Nights:    nights,
		Adults:    req.Adults,
		Children:  req.Children,
		Toddlers:  req.Toddlers,
		Guests:    req.Guests,
	}

	for _, r := range req.Rooms {
		if r.RoomID == 0 {
			return nil, fmt.Errorf("%w: invalid room id 0", ErrInvalidDateRange)
		}
		stay := stayWindow{
			RoomID:   r.RoomID,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Adults:   r.Adults,
			Children: r.Children,
			Toddlers: r.Toddlers,
		}
		if r.CheckIn != "" || r.CheckOut != "" {
			if r.CheckIn == "" || r.CheckOut == "" {
				return nil, fmt.Errorf("%w: partial per-room date override", ErrInvalidDateRange)
			}
			ci, err := utils.ParseDate(r.CheckIn)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
			}
			co, err := utils.ParseDate(r.CheckOut)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
			}
			if utils.Nights(ci, co) <= 0 {
				return nil, fmt.Errorf("%w: per-room range for room %d covers no nights", ErrInvalidDateRange, r.RoomID)
			}
			stay.CheckIn = ci
			stay.CheckOut = co
			stay.Override = true
		}
		plan.Stays = append(plan.Stays, stay)
	}
	return plan, nil
}

// resolveStays loads the selected rooms (all rooms for bulk bookings),
// verifies they exist and builds the pricing shape. db may be a
// transaction handle.
func resolveStays(db *gorm.DB, plan *bookingPlan) error {
	var rooms []models.Room
	if plan.Bulk {
		if err := db.Order("room_number").Find(&rooms).Error; err != nil {
			return fmt.Errorf("failed to load rooms: %w", err)
		}
		if len(rooms) == 0 {
			return ErrRoomNotFound
		}
		// A bulk booking reserves the entire property as one unit.
		plan.Stays = plan.Stays[:0]
		for _, room := range rooms {
			plan.Stays = append(plan.Stays, stayWindow{
				RoomID:   room.ID,
				CheckIn:  plan.CheckIn,
				CheckOut: plan.CheckOut,
			})
		}
	} else {
		if len(plan.Stays) == 0 {
			return fmt.Errorf("%w: no rooms selected", ErrInvalidDateRange)
		}
		if err := db.Where("id IN ?", plan.roomIDs()).Find(&rooms).Error; err != nil {
			return fmt.Errorf("failed to load rooms: %w", err)
		}
	}

	sizeByID := make(map[uint]string, len(rooms))
	for _, room := range rooms {
		sizeByID[room.ID] = room.Size
	}

	shape := BookingShape{
		Bulk:     plan.Bulk,
		Tier:     plan.GuestTier,
		Nights:   plan.Nights,
		Adults:   plan.Adults,
		Children: plan.Children,
		Toddlers: plan.Toddlers,
	}

	hasOverride := false
	for _, stay := range plan.Stays {
		size, ok := sizeByID[stay.RoomID]
		if !ok {
			return fmt.Errorf("%w: room %d", ErrRoomNotFound, stay.RoomID)
		}
		roomStay := RoomStay{
			RoomID:   stay.RoomID,
			Size:     size,
			Adults:   stay.Adults,
			Children: stay.Children,
			Toddlers: stay.Toddlers,
		}
		if stay.Override {
			roomStay.Nights = utils.Nights(stay.CheckIn, stay.CheckOut)
			hasOverride = true
		}
		shape.Rooms = append(shape.Rooms, roomStay)
	}

	charges := make([]GuestCharge, 0, len(plan.Guests))
	for _, g := range plan.Guests {
		charge := GuestCharge{
			FullName:   g.FullName,
			PersonType: g.PersonType,
			PriceTier:  g.PriceTier,
		}
		if charge.PriceTier == "" {
			charge.PriceTier = plan.GuestTier
		}
		if g.RoomID != nil {
			charge.RoomID = *g.RoomID
		}
		charges = append(charges, charge)
	}

	if hasOverride && len(charges) > 0 {
		// Composite with a named roster: assign each guest to their room
		// so the per-room sub-prices see their own guest subsets.
		byRoom := make(map[uint][]GuestCharge)
		for _, charge := range charges {
			roomID := charge.RoomID
			if _, ok := sizeByID[roomID]; !ok {
				roomID = shape.Rooms[0].RoomID
			}
			byRoom[roomID] = append(byRoom[roomID], charge)
		}
		for i := range shape.Rooms {
			shape.Rooms[i].Guests = byRoom[shape.Rooms[i].RoomID]
		}
	} else {
		shape.Guests = charges
	}

	plan.Shape = shape
	return plan.Shape.ValidateGuestCounts()
}
