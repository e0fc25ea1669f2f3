package controllers

import (
	"errors"
	"net/http"

	"github.com/TaxRx/battleborn-tax-sub001/services"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidateSessionInput struct {
	Token string `json:"token" binding:"required"`
}

// ValidateAdminSession checks an admin session and extends it when it is
// within 5 minutes of expiry. The dashboard calls this on its 5-minute timer.
func ValidateAdminSession(c *gin.Context) {
	var input ValidateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := sessionSvc.Validate(input.Token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionExpired):
			utils.RespondWithError(c, http.StatusUnauthorized, "Session expired")
		case errors.Is(err, services.ErrSessionRevoked):
			utils.RespondWithError(c, http.StatusUnauthorized, "Session revoked")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusUnauthorized, "Session not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to validate session")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"expiresAt": session.ExpiresAt,
	})
}

// ListAdminSessions lists the caller's admin sessions.
func ListAdminSessions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	sessions, err := sessionSvc.List(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// RevokeAdminSession ends a session before its expiry.
func RevokeAdminSession(c *gin.Context) {
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := sessionSvc.Revoke(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Session not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to revoke session")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}
