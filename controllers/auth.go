package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/config"
	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Name        string `json:"name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	FirmName    string `json:"firmName" binding:"required"`
	FirmAddress string `json:"firmAddress"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an advisor account with a fresh firm (tenant) id.
func Register(c *gin.Context) {
	var input RegisterInput

	// Bind and validate input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:       input.Email,
		Phone:       input.Phone,
		Name:        input.Name,
		Password:    input.Password, // Will be hashed in BeforeCreate hook
		Role:        models.RoleAdvisor,
		AccountID:   uuid.New(),
		FirmName:    input.FirmName,
		FirmAddress: input.FirmAddress,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	caps, err := capabilitiesFor(&newUser)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve permissions")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), newUser.AccountID.String(),
		newUser.Role, caps)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":       newUser.ID,
			"email":    newUser.Email,
			"role":     newUser.Role,
			"firmName": newUser.FirmName,
		},
	})
}

// Login authenticates a user and issues the JWT. Admin logins additionally
// open a tracked admin session and trigger a security alert.
func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	email := strings.TrimSpace(input.Email)

	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	caps, err := capabilitiesFor(&user)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve permissions")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.AccountID.String(),
		user.Role, caps)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	response := gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"role":     user.Role,
			"firmName": user.FirmName,
		},
	}

	if user.Role == models.RoleAdmin {
		session, err := sessionSvc.Open(&user, c.ClientIP(), c.Request.UserAgent())
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to open admin session")
			return
		}
		response["adminSession"] = gin.H{
			"token":     session.Token,
			"expiresAt": session.ExpiresAt,
		}
	}

	c.JSON(http.StatusOK, response)
}

// capabilitiesFor builds the flat capability union once at login. It is
// carried in the token and never re-derived mid-session.
func capabilitiesFor(user *models.User) ([]utils.Capability, error) {
	switch user.Role {
	case models.RoleAdmin:
		return []utils.Capability{utils.WildcardAll}, nil
	case models.RoleAdvisor:
		return []utils.Capability{
			{Resource: "clients", Action: "manage"},
			{Resource: "reports", Action: "generate"},
		}, nil
	default:
		var links []models.AccountLink
		if err := config.DB.Where("operator_user_id = ?", user.ID).Find(&links).Error; err != nil {
			return nil, err
		}
		caps := make([]utils.Capability, 0, len(links)*2)
		for _, l := range links {
			caps = append(caps,
				utils.Capability{Resource: "client", ResourceID: l.ClientID.String(), Action: "view"},
				utils.Capability{Resource: "client", ResourceID: l.ClientID.String(), Action: "view_documents"},
			)
		}
		return caps, nil
	}
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"name":     user.Name,
			"role":     user.Role,
			"firmName": user.FirmName,
		},
	})
}
