package controllers

import (
	"errors"
	"net/http"

	"chalet-backend/config"
	"chalet-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type chaletSettingsPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

func GetChaletSettings(c *gin.Context) {
	var chalet models.ChaletSetting
	if err := config.DB.First(&chalet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"chalet": models.ChaletSetting{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chalet": chalet})
}

func UpdateChaletSettings(c *gin.Context) {
	var payload chaletSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var chalet models.ChaletSetting
	err := config.DB.First(&chalet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			chalet = models.ChaletSetting{
				Name:    payload.Name,
				Address: payload.Address,
				Phone:   payload.Phone,
				Email:   payload.Email,
				Website: payload.Website,
			}
			if err := config.DB.Create(&chalet).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"chalet": chalet})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	chalet.Name = payload.Name
	chalet.Address = payload.Address
	chalet.Phone = payload.Phone
	chalet.Email = payload.Email
	chalet.Website = payload.Website

	if err := config.DB.Save(&chalet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chalet": chalet})
}
