package controllers

import (
	"log"
	"net/http"
	"strconv"

	"chalet-backend/models"
	"chalet-backend/services"
	"chalet-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
	HoldSvc    *services.HoldService
}

func NewBookingController(bookingSvc *services.BookingService, holdSvc *services.HoldService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, HoldSvc: holdSvc}
}

func bookingResponse(booking *models.Booking, displayPrice int, includeToken bool) gin.H {
	data := gin.H{
		"id":             booking.ID,
		"reference_code": booking.ReferenceCode,
		"bulk":           booking.Bulk,
		"guest_tier":     booking.GuestTier,
		"check_in":       booking.CheckIn.Format(utils.DateLayout),
		"check_out":      booking.CheckOut.Format(utils.DateLayout),
		"adults":         booking.Adults,
		"children":       booking.Children,
		"toddlers":       booking.Toddlers,
		"total_price":    booking.TotalPrice,
		"display_price":  displayPrice,
		"rooms":          booking.Rooms,
		"guests":         booking.Guests,
		"created_at":     booking.CreatedAt,
		"updated_at":     booking.UpdatedAt,
	}
	if includeToken {
		// Returned once, to the party that just proved or gained the
		// capability. Never present in list responses.
		data["edit_token"] = booking.EditToken
	}
	return data
}

// CommitBooking performs the atomic hold-to-booking conversion: availability
// re-check, authoritative pricing and insert in one transaction.
func (ctrl *BookingController) CommitBooking(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "Malformed booking payload",
			"details": err.Error(),
		}})
		return
	}

	booking, err := ctrl.HoldSvc.CommitBooking(req)
	if err != nil {
		log.Printf("CommitBooking error: %v", err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   bookingResponse(booking, booking.TotalPrice, true),
	})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		respondServiceError(c, err)
		return
	}

	list := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		list = append(list, bookingResponse(b, ctrl.BookingSvc.DisplayPrice(b), false))
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": list})
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidBookingId",
			"message": "booking id must be numeric",
		}})
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   bookingResponse(booking, ctrl.BookingSvc.DisplayPrice(booking), false),
	})
}

// GetBookingByToken is the self-service lookup: presenting the edit token
// is the whole authorization.
func (ctrl *BookingController) GetBookingByToken(c *gin.Context) {
	booking, err := ctrl.BookingSvc.GetByEditToken(c.Param("token"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   bookingResponse(booking, ctrl.BookingSvc.DisplayPrice(booking), true),
	})
}

// UpdateBooking re-runs the full validate-then-commit path for a
// self-service edit, gated by the edit token.
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	token := c.GetHeader("X-Edit-Token")
	if token == "" {
		token = c.Query("edit_token")
	}
	if token == "" {
		respondServiceError(c, services.ErrInvalidEditToken)
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "Malformed booking payload",
			"details": err.Error(),
		}})
		return
	}

	booking, err := ctrl.HoldSvc.UpdateBooking(token, req)
	if err != nil {
		log.Printf("UpdateBooking error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   bookingResponse(booking, booking.TotalPrice, true),
	})
}

// DeleteBooking removes a booking: admins call it without a token, guests
// with their edit token.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidBookingId",
			"message": "booking id must be numeric",
		}})
		return
	}

	token := c.GetHeader("X-Edit-Token")
	if token == "" {
		token = c.Query("edit_token")
	}

	if err := ctrl.BookingSvc.Delete(uint(id), token); err != nil {
		log.Printf("DeleteBooking error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking deleted"})
}
