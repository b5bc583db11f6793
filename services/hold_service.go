package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"chalet-backend/models"
	"chalet-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultHoldTTLMinutes = 15

// HoldService manages temporary reservation holds and the atomic
// check-then-commit transition to confirmed bookings. All conflict
// guarantees come from the store's transaction isolation: the availability
// check re-runs inside the same transaction that inserts the booking, so
// of N racing commits for overlapping room-nights exactly one lands.
type HoldService struct {
	DB  *gorm.DB
	TTL time.Duration
}

func NewHoldService(db *gorm.DB) *HoldService {
	ttl := defaultHoldTTLMinutes
	if raw := utils.EnvOrDefault("HOLD_TTL_MINUTES", ""); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			ttl = parsed
		} else {
			log.Printf("warning: ignoring invalid HOLD_TTL_MINUTES=%q", raw)
		}
	}
	return &HoldService{DB: db, TTL: time.Duration(ttl) * time.Minute}
}

// HoldRequest starts the booking flow for one date range and room set.
type HoldRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	CheckIn   string `json:"check_in" binding:"required"`
	CheckOut  string `json:"check_out" binding:"required"`
	RoomIDs   []uint `json:"room_ids" binding:"required"`
	GuestTier string `json:"guest_tier"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
	Toddlers  int    `json:"toddlers"`
}

// CreateHold inserts a hold after verifying every requested room-night is
// available at call time. The check and the insert share one transaction
// with the room rows locked, so two sessions cannot both hold the same
// night.
func (s *HoldService) CreateHold(req HoldRequest) (*models.ProposedBooking, error) {
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	if utils.Nights(checkIn, checkOut) <= 0 {
		return nil, fmt.Errorf("%w: %s to %s covers no nights", ErrInvalidDateRange, req.CheckIn, req.CheckOut)
	}
	if len(req.RoomIDs) == 0 {
		return nil, fmt.Errorf("%w: no rooms selected", ErrInvalidDateRange)
	}
	if req.GuestTier != "" && !models.IsValidTier(req.GuestTier) {
		return nil, fmt.Errorf("%w: unknown guest tier %q", ErrGuestCountMismatch, req.GuestTier)
	}

	roomIDsJSON, err := json.Marshal(req.RoomIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode room ids: %w", err)
	}

	hold := &models.ProposedBooking{
		SessionID: req.SessionID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		RoomIDs:   roomIDsJSON,
		GuestTier: req.GuestTier,
		Adults:    req.Adults,
		Children:  req.Children,
		Toddlers:  req.Toddlers,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var rooms []models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", req.RoomIDs).
			Find(&rooms).Error; err != nil {
			return fmt.Errorf("failed to lock rooms: %w", err)
		}
		if len(rooms) != len(dedupe(req.RoomIDs)) {
			return ErrRoomNotFound
		}

		snap, err := loadOccupancySnapshot(tx, checkIn, checkOut, snapshotFilter{})
		if err != nil {
			return err
		}
		for _, roomID := range req.RoomIDs {
			if !snap.RangeFree(roomID, checkIn, checkOut) {
				return fmt.Errorf("%w: room %d", ErrRoomUnavailable, roomID)
			}
		}

		hold.ExpiresAt = time.Now().UTC().Add(s.TTL)
		return tx.Create(hold).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return hold, nil
}

// DeleteHold removes a hold. Idempotent: a missing or already-expired
// hold is not an error. A non-empty sessionID must match the hold's owner.
func (s *HoldService) DeleteHold(id uint, sessionID string) error {
	var hold models.ProposedBooking
	if err := s.DB.First(&hold, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load hold: %w", err)
	}
	if sessionID != "" && hold.SessionID != sessionID {
		return ErrNotHoldOwner
	}
	return s.DB.Delete(&models.ProposedBooking{}, id).Error
}

// ExpireHolds physically deletes holds whose TTL elapsed before now. This
// is housekeeping only: the resolver already treats expired holds as
// absent, so correctness never depends on the sweep having run.
func (s *HoldService) ExpireHolds(now time.Time) (int64, error) {
	res := s.DB.Where("expires_at < ?", now).Delete(&models.ProposedBooking{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire holds: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// CommitBooking converts holds (or a direct request) into a confirmed
// booking. Inside one transaction it locks the room rows, re-validates
// every room-night against everything except the superseded holds,
// computes the authoritative price, inserts the booking and deletes the
// holds. On conflict the whole transaction aborts with ErrRoomUnavailable
// and the holds stay untouched. A serialization failure is retried once
// with the full re-validation repeated.
func (s *HoldService) CommitBooking(req BookingRequest) (*models.Booking, error) {
	plan, err := parseBookingRequest(req)
	if err != nil {
		return nil, err
	}
	return s.commitPlan(plan, req.ProposalIDs, 0)
}

// UpdateBooking re-runs the same validate-then-commit path for a
// self-service edit, excluding the booking itself from the conflict set.
func (s *HoldService) UpdateBooking(editToken string, req BookingRequest) (*models.Booking, error) {
	var existing models.Booking
	if err := s.DB.Where("edit_token = ?", editToken).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEditToken
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	plan, err := parseBookingRequest(req)
	if err != nil {
		return nil, err
	}
	return s.commitPlan(plan, req.ProposalIDs, existing.ID)
}

func (s *HoldService) commitPlan(plan *bookingPlan, proposalIDs []uint, existingID uint) (*models.Booking, error) {
	var bookingID uint

	for attempt := 0; ; attempt++ {
		txErr := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := resolveStays(tx, plan); err != nil {
				return err
			}

			var rooms []models.Room
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id IN ?", plan.roomIDs()).
				Find(&rooms).Error; err != nil {
				return fmt.Errorf("failed to lock rooms: %w", err)
			}

			nightFrom, nightTo := plan.windowBounds()
			snap, err := loadOccupancySnapshot(tx, nightFrom, nightTo, snapshotFilter{
				ExcludeHoldIDs:   proposalIDs,
				ExcludeBookingID: existingID,
			})
			if err != nil {
				return err
			}
			for _, stay := range plan.Stays {
				if !snap.RangeFree(stay.RoomID, stay.CheckIn, stay.CheckOut) {
					return fmt.Errorf("%w: room %d", ErrRoomUnavailable, stay.RoomID)
				}
			}

			cfg, err := loadPriceConfig(tx)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			total, err := cfg.Price(plan.Shape)
			if err != nil {
				return err
			}

			if existingID != 0 {
				if err := s.applyEdit(tx, existingID, plan, total); err != nil {
					return err
				}
				bookingID = existingID
			} else {
				id, err := s.insertBooking(tx, plan, total)
				if err != nil {
					return err
				}
				bookingID = id
			}

			if len(proposalIDs) > 0 {
				if err := tx.Where("id IN ?", proposalIDs).
					Delete(&models.ProposedBooking{}).Error; err != nil {
					return fmt.Errorf("failed to delete superseded holds: %w", err)
				}
			}
			return nil
		})

		if txErr == nil {
			break
		}
		if isRetryableTxError(txErr) {
			if attempt == 0 {
				log.Printf("commit serialization conflict, retrying once: %v", txErr)
				continue
			}
			return nil, fmt.Errorf("%w: transaction conflict", ErrRoomUnavailable)
		}
		return nil, txErr
	}

	var booking models.Booking
	if err := s.DB.
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("Guests").
		First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

func (s *HoldService) insertBooking(tx *gorm.DB, plan *bookingPlan, total int) (uint, error) {
	editToken, err := utils.GenerateSecureToken(32)
	if err != nil {
		return 0, fmt.Errorf("failed to generate edit token: %w", err)
	}

	booking := models.Booking{
		ReferenceCode: uuid.NewString(),
		EditToken:     editToken,
		Bulk:          plan.Bulk,
		GuestTier:     plan.GuestTier,
		CheckIn:       plan.CheckIn,
		CheckOut:      plan.CheckOut,
		Adults:        plan.Adults,
		Children:      plan.Children,
		Toddlers:      plan.Toddlers,
		TotalPrice:    total,
	}
	if err := tx.Create(&booking).Error; err != nil {
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}
	if err := s.insertStays(tx, booking.ID, plan); err != nil {
		return 0, err
	}
	return booking.ID, nil
}

func (s *HoldService) applyEdit(tx *gorm.DB, bookingID uint, plan *bookingPlan, total int) error {
	if err := tx.Model(&models.Booking{}).Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"bulk":        plan.Bulk,
			"guest_tier":  plan.GuestTier,
			"check_in":    plan.CheckIn,
			"check_out":   plan.CheckOut,
			"adults":      plan.Adults,
			"children":    plan.Children,
			"toddlers":    plan.Toddlers,
			"total_price": total,
		}).Error; err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if err := tx.Unscoped().Where("booking_id = ?", bookingID).
		Delete(&models.BookingRoom{}).Error; err != nil {
		return fmt.Errorf("failed to clear booking rooms: %w", err)
	}
	if err := tx.Where("booking_id = ?", bookingID).
		Delete(&models.Guest{}).Error; err != nil {
		return fmt.Errorf("failed to clear guests: %w", err)
	}
	return s.insertStays(tx, bookingID, plan)
}

func (s *HoldService) insertStays(tx *gorm.DB, bookingID uint, plan *bookingPlan) error {
	for _, stay := range plan.Stays {
		br := models.BookingRoom{
			BookingID: bookingID,
			RoomID:    stay.RoomID,
			Adults:    stay.Adults,
			Children:  stay.Children,
			Toddlers:  stay.Toddlers,
		}
		if stay.Override {
			br.CheckIn = utils.PtrTime(stay.CheckIn)
			br.CheckOut = utils.PtrTime(stay.CheckOut)
		}
		if err := tx.Create(&br).Error; err != nil {
			return fmt.Errorf("failed to create booking room %d: %w", stay.RoomID, err)
		}
	}
	for _, g := range plan.Guests {
		tier := g.PriceTier
		if tier == "" {
			tier = plan.GuestTier
		}
		guest := models.Guest{
			BookingID:  bookingID,
			FullName:   g.FullName,
			PersonType: g.PersonType,
			PriceTier:  tier,
			RoomID:     g.RoomID,
		}
		if err := tx.Create(&guest).Error; err != nil {
			return fmt.Errorf("failed to create guest: %w", err)
		}
	}
	return nil
}

// isRetryableTxError detects MySQL deadlock (1213) and lock wait timeout
// (1205), the two cases where re-running the whole check-then-insert is
// the correct response.
func isRetryableTxError(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1213 || merr.Number == 1205
	}
	return false
}

func dedupe(ids []uint) []uint {
	seen := map[uint]struct{}{}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
