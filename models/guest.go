package models

import (
	"time"
)

const (
	PersonAdult   = "adult"
	PersonChild   = "child"
	PersonToddler = "toddler"
)

// Guest is one named roster entry of a confirmed booking. PriceTier may
// differ from the booking's tier for mixed bookings; toddlers are never
// charged regardless of tier.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`

	FullName   string `gorm:"column:full_name;size:255" json:"fullName"`
	PersonType string `gorm:"column:person_type;size:16" json:"personType"`
	PriceTier  string `gorm:"column:price_tier;size:16" json:"priceTier"`

	// RoomID assigns the guest to one room of a multi-room booking.
	RoomID *uint `gorm:"column:room_id;index" json:"room_id,omitempty"`
}

func IsValidPersonType(t string) bool {
	return t == PersonAdult || t == PersonChild || t == PersonToddler
}
