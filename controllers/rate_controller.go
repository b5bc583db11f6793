package controllers

import (
	"errors"
	"net/http"

	"chalet-backend/models"
	"chalet-backend/services"

	"github.com/gin-gonic/gin"
)

type RateController struct {
	RateSvc *services.RateService
}

func NewRateController(svc *services.RateService) *RateController {
	return &RateController{RateSvc: svc}
}

type updateRatesPayload struct {
	Plans []models.RatePlan `json:"plans" binding:"required"`
	Bulk  models.BulkRate   `json:"bulk"`
}

func (ctrl *RateController) GetRates(c *gin.Context) {
	plans, bulk, err := ctrl.RateSvc.GetRates()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"plans": plans, "bulk": bulk},
	})
}

// UpdateRates replaces the price tables. The payload must carry all four
// tier×size combinations with no negative values, otherwise nothing is
// written.
func (ctrl *RateController) UpdateRates(c *gin.Context) {
	var payload updateRatesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "plans array is required",
			"details": err.Error(),
		}})
		return
	}

	if err := ctrl.RateSvc.UpdateRates(payload.Plans, payload.Bulk); err != nil {
		// On the admin write path an unusable table set is the admin's
		// input error, not a server fault.
		if errors.Is(err, services.ErrInvalidPriceConfiguration) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "error.invalidPriceConfiguration",
				"message": "Price tables must cover all tier and size combinations with no negative values",
				"details": err.Error(),
			}})
			return
		}
		respondServiceError(c, err)
		return
	}

	plans, bulk, err := ctrl.RateSvc.GetRates()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"plans": plans, "bulk": bulk},
	})
}
