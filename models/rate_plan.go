package models

import "time"

// RatePlan holds the nightly pricing for one guest-tier × room-size
// combination. BasePrice is the empty-room rate; surcharges are additive
// per guest per night. Toddlers never incur a surcharge.
type RatePlan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GuestTier string `gorm:"column:guest_tier;size:16;uniqueIndex:idx_tier_size" json:"guest_tier"`
	RoomSize  string `gorm:"column:room_size;size:10;uniqueIndex:idx_tier_size" json:"room_size"`

	BasePrice      int `gorm:"column:base_price" json:"base_price"`
	AdultSurcharge int `gorm:"column:adult_surcharge" json:"adult_surcharge"`
	ChildSurcharge int `gorm:"column:child_surcharge" json:"child_surcharge"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BulkRate prices the whole property as a single unit per night.
type BulkRate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BasePrice      int `gorm:"column:base_price" json:"base_price"`
	AdultSurcharge int `gorm:"column:adult_surcharge" json:"adult_surcharge"`
	ChildSurcharge int `gorm:"column:child_surcharge" json:"child_surcharge"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
