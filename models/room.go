package models

import (
	"gorm.io/gorm"
)

const (
	RoomSizeSmall = "small"
	RoomSizeLarge = "large"
)

type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	// Size is the pricing size class: "small" or "large".
	Size string `json:"size" gorm:"column:size;type:varchar(10)"`
	Beds int    `json:"beds" gorm:"column:beds"`

	Description string `json:"description" gorm:"type:text"`
}

func IsValidRoomSize(size string) bool {
	return size == RoomSizeSmall || size == RoomSizeLarge
}
