package controllers

import (
	"errors"
	"net/http"

	"chalet-backend/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto the API's structured error
// bodies. Availability conflicts (409) stay distinguishable from
// validation failures (400) so the UI can redirect to date selection for
// the former and highlight a form field for the latter.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.roomUnavailable",
			"message": "One or more requested room-nights are no longer available",
			"details": err.Error(),
		}})
	case errors.Is(err, services.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidDateRange",
			"message": "Invalid or empty date range",
			"details": err.Error(),
		}})
	case errors.Is(err, services.ErrGuestCountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.guestCountMismatch",
			"message": "Guest roster does not match the declared counts",
			"details": err.Error(),
		}})
	case errors.Is(err, services.ErrInvalidPriceConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "error.invalidPriceConfiguration",
			"message": "Price tables are missing or invalid",
			"details": err.Error(),
		}})
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "error.bookingNotFound",
			"message": "Booking not found",
		}})
	case errors.Is(err, services.ErrBlockageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "error.blockageNotFound",
			"message": "Blockage not found",
		}})
	case errors.Is(err, services.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "error.roomNotFound",
			"message": "Room not found",
			"details": err.Error(),
		}})
	case errors.Is(err, services.ErrNotHoldOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": gin.H{
			"code":    "error.notHoldOwner",
			"message": "Hold belongs to a different session",
		}})
	case errors.Is(err, services.ErrInvalidEditToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
			"code":    "error.invalidEditToken",
			"message": "Edit token is invalid",
		}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "error.internal",
			"message": "Internal server error",
			"details": err.Error(),
		}})
	}
}
