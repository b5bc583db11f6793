package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Blockage is an admin-created exclusion. It occupies room-nights with the
// highest precedence and has no expiry; only admin action removes it.
type Blockage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date" json:"end_date"`

	// RoomIDs is a JSON array of affected room ids; empty means all rooms.
	RoomIDs datatypes.JSON `gorm:"column:room_ids" json:"room_ids"`

	Reason string `gorm:"column:reason;type:text" json:"reason"`
}

func (b *Blockage) RoomIDList() []uint {
	var ids []uint
	if len(b.RoomIDs) == 0 {
		return ids
	}
	_ = json.Unmarshal(b.RoomIDs, &ids)
	return ids
}

// CoversRoom reports whether the blockage applies to roomID. An empty room
// set blocks the whole property.
func (b *Blockage) CoversRoom(roomID uint) bool {
	ids := b.RoomIDList()
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == roomID {
			return true
		}
	}
	return false
}
