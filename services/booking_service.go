package services

import (
	"errors"
	"fmt"
	"log"

	"chalet-backend/models"
	"chalet-backend/utils"

	"gorm.io/gorm"
)

// BookingService covers the read side of confirmed bookings plus deletion.
// All mutations of booked room-nights go through HoldService's
// validate-then-commit path.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Guests").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.BookingRoom{}
		}
	}
	return list, nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Guests").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// GetByEditToken is the self-service lookup: the token is the capability,
// no other identity is checked.
func (s *BookingService) GetByEditToken(token string) (*models.Booking, error) {
	if token == "" {
		return nil, ErrInvalidEditToken
	}
	var booking models.Booking
	if err := s.DB.
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Guests").
		Where("edit_token = ?", token).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEditToken
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// Delete removes a booking. editToken empty means an admin delete; a
// non-empty token must match the booking's capability credential.
func (s *BookingService) Delete(id uint, editToken string) error {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to load booking: %w", err)
	}
	if editToken != "" && booking.EditToken != editToken {
		return ErrInvalidEditToken
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&models.BookingRoom{}).Error; err != nil {
			return fmt.Errorf("failed to delete booking rooms: %w", err)
		}
		if err := tx.Where("booking_id = ?", id).Delete(&models.Guest{}).Error; err != nil {
			return fmt.Errorf("failed to delete guests: %w", err)
		}
		return tx.Delete(&models.Booking{}, id).Error
	})
}

// DisplayPrice recomputes the booking's amount from the current tables for
// display. When the tables are unusable the stored historical total is
// returned instead; price display never blocks an otherwise-valid read.
func (s *BookingService) DisplayPrice(booking *models.Booking) int {
	cfg, err := loadPriceConfig(s.DB)
	if err != nil {
		log.Printf("warning: falling back to stored price for booking %d: %v", booking.ID, err)
		return booking.TotalPrice
	}
	if err := cfg.Validate(); err != nil {
		return booking.TotalPrice
	}

	shape, err := shapeFromBooking(s.DB, booking)
	if err != nil {
		return booking.TotalPrice
	}
	amount, err := cfg.Price(shape)
	if err != nil {
		return booking.TotalPrice
	}
	return amount
}

// shapeFromBooking rebuilds the pricing shape of a stored booking.
func shapeFromBooking(db *gorm.DB, booking *models.Booking) (BookingShape, error) {
	req := BookingRequest{
		Bulk:      booking.Bulk,
		GuestTier: booking.GuestTier,
		CheckIn:   booking.CheckIn.Format(utils.DateLayout),
		CheckOut:  booking.CheckOut.Format(utils.DateLayout),
		Adults:    booking.Adults,
		Children:  booking.Children,
		Toddlers:  booking.Toddlers,
	}
	for _, br := range booking.Rooms {
		roomReq := BookingRoomRequest{
			RoomID:   br.RoomID,
			Adults:   br.Adults,
			Children: br.Children,
			Toddlers: br.Toddlers,
		}
		if br.CheckIn != nil && br.CheckOut != nil {
			roomReq.CheckIn = br.CheckIn.Format(utils.DateLayout)
			roomReq.CheckOut = br.CheckOut.Format(utils.DateLayout)
		}
		req.Rooms = append(req.Rooms, roomReq)
	}
	for _, g := range booking.Guests {
		req.Guests = append(req.Guests, GuestInput{
			FullName:   g.FullName,
			PersonType: g.PersonType,
			PriceTier:  g.PriceTier,
			RoomID:     g.RoomID,
		})
	}

	plan, err := parseBookingRequest(req)
	if err != nil {
		return BookingShape{}, err
	}
	if err := resolveStays(db, plan); err != nil {
		return BookingShape{}, err
	}
	return plan.Shape, nil
}
