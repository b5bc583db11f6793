package services

import "errors"

var (
	// Availability / commit errors
	ErrRoomUnavailable = errors.New("room_unavailable")

	// Input validation errors
	ErrInvalidDateRange   = errors.New("invalid_date_range")
	ErrGuestCountMismatch = errors.New("guest_count_mismatch")

	// Pricing errors
	ErrInvalidPriceConfiguration = errors.New("invalid_price_configuration")

	// Lookup / permission errors
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrBlockageNotFound = errors.New("blockage_not_found")
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrNotHoldOwner     = errors.New("not_hold_owner")
	ErrInvalidEditToken = errors.New("invalid_edit_token")
)
