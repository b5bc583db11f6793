package controllers

import (
	"net/http"
	"strconv"

	"chalet-backend/services"

	"github.com/gin-gonic/gin"
)

type BlockageController struct {
	BlockageSvc *services.BlockageService
}

func NewBlockageController(svc *services.BlockageService) *BlockageController {
	return &BlockageController{BlockageSvc: svc}
}

func (ctrl *BlockageController) GetBlockages(c *gin.Context) {
	blockages, err := ctrl.BlockageSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": blockages})
}

// CreateBlockage excludes the given room-nights from booking. An empty
// room set blocks the whole property.
func (ctrl *BlockageController) CreateBlockage(c *gin.Context) {
	var req services.BlockageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "start_date and end_date are required",
			"details": err.Error(),
		}})
		return
	}

	blockage, err := ctrl.BlockageSvc.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": blockage})
}

func (ctrl *BlockageController) DeleteBlockage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidBlockageId",
			"message": "blockage id must be numeric",
		}})
		return
	}

	if err := ctrl.BlockageSvc.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Blockage deleted"})
}
