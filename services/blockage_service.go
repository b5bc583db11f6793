package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"chalet-backend/models"
	"chalet-backend/utils"

	"gorm.io/gorm"
)

// BlockageService owns admin date exclusions. Blockages occupy room-nights
// with the highest precedence and never expire.
type BlockageService struct {
	DB *gorm.DB
}

func NewBlockageService(db *gorm.DB) *BlockageService {
	return &BlockageService{DB: db}
}

type BlockageRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	RoomIDs   []uint `json:"room_ids"`
	Reason    string `json:"reason"`
}

func (s *BlockageService) Create(req BlockageRequest) (*models.Blockage, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	if utils.Nights(start, end) <= 0 {
		return nil, fmt.Errorf("%w: %s to %s covers no nights", ErrInvalidDateRange, req.StartDate, req.EndDate)
	}

	for _, id := range req.RoomIDs {
		var room models.Room
		if err := s.DB.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: room %d", ErrRoomNotFound, id)
			}
			return nil, fmt.Errorf("db error checking room %d: %w", id, err)
		}
	}

	roomIDsJSON, err := json.Marshal(req.RoomIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode room ids: %w", err)
	}

	blockage := &models.Blockage{
		StartDate: start,
		EndDate:   end,
		RoomIDs:   roomIDsJSON,
		Reason:    req.Reason,
	}
	if err := s.DB.Create(blockage).Error; err != nil {
		return nil, fmt.Errorf("failed to create blockage: %w", err)
	}
	return blockage, nil
}

func (s *BlockageService) GetAll() ([]models.Blockage, error) {
	var list []models.Blockage
	if err := s.DB.Order("start_date").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve blockages: %w", err)
	}
	return list, nil
}

func (s *BlockageService) Delete(id uint) error {
	res := s.DB.Delete(&models.Blockage{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete blockage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBlockageNotFound
	}
	return nil
}
