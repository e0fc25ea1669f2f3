package controllers

import (
	"net/http"

	"github.com/TaxRx/battleborn-tax-sub001/services"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shared service instances, wired once at startup.
var (
	clientSvc  *services.ClientService
	reportSvc  *services.ReportService
	sessionSvc *services.SessionService
	alertSvc   *services.AlertService
)

func InitServices(db *gorm.DB) {
	alertSvc = services.NewAlertService(db)
	clientSvc = services.NewClientService(db)
	reportSvc = services.NewReportService(db)
	sessionSvc = services.NewSessionService(db, alertSvc)
}

// SessionService exposes the session service for the scheduler in main.
func SessionService() *services.SessionService {
	return sessionSvc
}

// getAccountID pulls the tenant id the auth middleware stored from the token.
func getAccountID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("accountId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid account ID format")
		return uuid.Nil, false
	}
	return id, true
}

func getUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a uuid route parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
