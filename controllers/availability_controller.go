package controllers

import (
	"net/http"
	"strconv"

	"chalet-backend/services"
	"chalet-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// GetAvailability returns the resolved status for every (date, room) cell
// in the requested window. The calendar layer calls this once per render
// and never issues per-cell requests.
func (ctrl *AvailabilityController) GetAvailability(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.missingWindow",
			"message": "from and to query parameters are required (YYYY-MM-DD)",
		}})
		return
	}

	from, err := utils.ParseDate(fromStr)
	if err != nil {
		respondServiceError(c, services.ErrInvalidDateRange)
		return
	}
	to, err := utils.ParseDate(toStr)
	if err != nil {
		respondServiceError(c, services.ErrInvalidDateRange)
		return
	}

	var roomID uint
	if raw := c.Query("room_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "error.invalidRoomId",
				"message": "room_id must be numeric",
			}})
			return
		}
		roomID = uint(parsed)
	}
	sessionID := c.Query("session_id")

	cells, err := ctrl.AvailabilitySvc.ResolveWindow(from, to, roomID, sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":  fromStr,
		"to":    toStr,
		"cells": cells,
	})
}
