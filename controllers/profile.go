package controllers

import (
	"net/http"

	"github.com/TaxRx/battleborn-tax-sub001/config"
	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name        string `json:"name"`
	FirmName    string `json:"firmName"`
	FirmAddress string `json:"firmAddress"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":           user.Name,
		"firmName":       user.FirmName,
		"firmAddress":    user.FirmAddress,
		"phone":          user.Phone,
		"email":          user.Email,
		"securityAlerts": user.SecurityAlerts,
		"alertPhone":     user.AlertPhone,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	// Update fields
	user.Name = input.Name
	user.FirmName = input.FirmName
	user.FirmAddress = input.FirmAddress
	user.Phone = input.Phone
	user.Email = input.Email

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input struct {
		SecurityAlerts bool   `json:"securityAlerts"`
		AlertPhone     string `json:"alertPhone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"security_alerts": input.SecurityAlerts,
			"alert_phone":     input.AlertPhone,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
