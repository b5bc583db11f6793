package controllers

import (
	"net/http"
	"strconv"

	"chalet-backend/services"

	"github.com/gin-gonic/gin"
)

type HoldController struct {
	HoldSvc *services.HoldService
}

func NewHoldController(svc *services.HoldService) *HoldController {
	return &HoldController{HoldSvc: svc}
}

// CreateHold starts the booking flow: reserves the requested room-nights
// for the caller's session until the TTL elapses.
func (ctrl *HoldController) CreateHold(c *gin.Context) {
	var req services.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "session_id, check_in, check_out and room_ids are required",
			"details": err.Error(),
		}})
		return
	}

	hold, err := ctrl.HoldSvc.CreateHold(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data": gin.H{
			"proposal_id": hold.ID,
			"expires_at":  hold.ExpiresAt,
		},
	})
}

// DeleteHold cancels a hold. Deleting a hold that is already gone or
// expired succeeds; only a session mismatch is an error.
func (ctrl *HoldController) DeleteHold(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidProposalId",
			"message": "proposal id must be numeric",
		}})
		return
	}
	sessionID := c.Query("session_id")

	if err := ctrl.HoldSvc.DeleteHold(uint(id), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
