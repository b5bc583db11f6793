package controllers

import (
	"net/http"

	"chalet-backend/services"

	"github.com/gin-gonic/gin"
)

type PricingController struct {
	PricingSvc *services.PricingService
}

func NewPricingController(svc *services.PricingService) *PricingController {
	return &PricingController{PricingSvc: svc}
}

// PreviewPrice quotes the booking shape the user is constructing. It runs
// the same calculator as the commit path, so the preview always matches
// the amount a successful commit will store.
func (ctrl *PricingController) PreviewPrice(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "Malformed price preview payload",
			"details": err.Error(),
		}})
		return
	}

	quote, err := ctrl.PricingSvc.Quote(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": quote})
}
