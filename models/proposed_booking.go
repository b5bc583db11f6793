package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ProposedBooking is a temporary hold created when a user starts the
// booking flow. It occupies room-nights exactly like a confirmed booking
// until ExpiresAt, after which readers must treat it as absent whether or
// not the cleanup sweep has deleted the row yet.
type ProposedBooking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	// SessionID ties the hold to the browser session that created it.
	// Used only for cancel permission, never for availability visibility.
	SessionID string `gorm:"column:session_id;size:128;index" json:"session_id"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`

	// RoomIDs is a JSON array of room ids covered by the hold.
	RoomIDs datatypes.JSON `gorm:"column:room_ids" json:"room_ids"`

	GuestTier string `gorm:"column:guest_tier;size:16" json:"guest_tier"`
	Adults    int    `gorm:"column:adults;default:1" json:"adults"`
	Children  int    `gorm:"column:children;default:0" json:"children"`
	Toddlers  int    `gorm:"column:toddlers;default:0" json:"toddlers"`

	ExpiresAt time.Time `gorm:"column:expires_at;index" json:"expires_at"`
}

// Live reports whether the hold still occupies its room-nights at now.
func (p *ProposedBooking) Live(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}

// RoomIDList decodes the JSON room id set. A garbled column yields an
// empty list, which claims nothing.
func (p *ProposedBooking) RoomIDList() []uint {
	var ids []uint
	if len(p.RoomIDs) == 0 {
		return ids
	}
	_ = json.Unmarshal(p.RoomIDs, &ids)
	return ids
}

// CoversRoom reports whether the hold includes roomID.
func (p *ProposedBooking) CoversRoom(roomID uint) bool {
	for _, id := range p.RoomIDList() {
		if id == roomID {
			return true
		}
	}
	return false
}
