package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingRoom links a booking to one of its rooms. For composite bookings
// the per-room check-in/check-out override the booking-level range; nil
// means the room follows the booking's own dates.
type BookingRoom struct {
	gorm.Model

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`

	CheckIn  *time.Time `gorm:"column:check_in" json:"check_in,omitempty"`
	CheckOut *time.Time `gorm:"column:check_out" json:"check_out,omitempty"`

	// Optional per-room guest breakdown for composite bookings.
	Adults   int `gorm:"column:adults;default:0" json:"adults,omitempty"`
	Children int `gorm:"column:children;default:0" json:"children,omitempty"`
	Toddlers int `gorm:"column:toddlers;default:0" json:"toddlers,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// StayRange returns the effective occupied range for this room given the
// parent booking's range.
func (br *BookingRoom) StayRange(bookingCheckIn, bookingCheckOut time.Time) (time.Time, time.Time) {
	checkIn := bookingCheckIn
	checkOut := bookingCheckOut
	if br.CheckIn != nil {
		checkIn = *br.CheckIn
	}
	if br.CheckOut != nil {
		checkOut = *br.CheckOut
	}
	return checkIn, checkOut
}
