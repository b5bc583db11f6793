package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TierResident = "resident"
	TierExternal = "external"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	// EditToken is the capability credential for self-service changes.
	// Never serialized in list responses.
	EditToken string `gorm:"column:edit_token;size:128;index" json:"-"`

	// Bulk marks a whole-property booking priced via the bulk table.
	Bulk bool `gorm:"column:bulk;default:false" json:"bulk"`

	GuestTier string `gorm:"column:guest_tier;size:16" json:"guest_tier"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`
	Toddlers int `gorm:"column:toddlers;default:0" json:"toddlers"`

	// TotalPrice is the authoritative amount computed at commit time.
	TotalPrice int `gorm:"column:total_price" json:"total_price"`

	Rooms  []BookingRoom `gorm:"foreignKey:BookingID" json:"rooms"`
	Guests []Guest       `gorm:"foreignKey:BookingID" json:"guests"`
}

func IsValidTier(tier string) bool {
	return tier == TierResident || tier == TierExternal
}
