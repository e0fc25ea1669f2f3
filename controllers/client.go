package controllers

import (
	"errors"
	"net/http"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/services"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClient creates a client with its years and businesses in one call.
func CreateClient(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var input models.TaxInfo
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.FilingStatus != "" && !models.ValidFilingStatus(input.FilingStatus) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid filing status")
		return
	}
	for _, b := range input.Businesses {
		if b.EIN != "" && !utils.ValidateEIN(b.EIN) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid EIN format: "+b.EIN)
			return
		}
	}

	client, err := clientSvc.CreateClient(accountID, userID, input)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) || errors.Is(err, services.ErrEmailRequired) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients returns the unified client list with optional filters.
func GetClients(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}

	filters := services.ClientListFilters{
		ToolSlug:        c.Query("tool"),
		IncludeArchived: c.Query("includeArchived") == "true",
	}
	if v := c.Query("createdBy"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid createdBy format")
			return
		}
		filters.CreatedBy = id
	}
	if v := c.Query("operator"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid operator format")
			return
		}
		filters.OperatorID = id
	}
	if filters.ToolSlug != "" && !models.ValidToolSlug(filters.ToolSlug) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown tool: "+filters.ToolSlug)
		return
	}

	clients, err := clientSvc.UnifiedClientList(accountID, filters)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID, archived or not.
func GetClient(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	client, err := clientSvc.GetClient(accountID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient overwrites the client row from the submitted profile.
func UpdateClient(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input models.TaxInfo
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.FilingStatus != "" && !models.ValidFilingStatus(input.FilingStatus) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid filing status")
		return
	}

	client, err := clientSvc.UpdateClient(accountID, clientID, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// ArchiveClient hides the client from listings; the record stays retrievable.
func ArchiveClient(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := clientSvc.ArchiveClient(accountID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to archive client")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client archived"})
}

// DeleteClient is the explicit admin delete action.
func DeleteClient(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := clientSvc.DeleteClient(accountID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// UpsertPersonalYear writes a client's personal tax year keyed by year.
func UpsertPersonalYear(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input models.PersonalYearPayload
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateTaxYear(input.Year) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tax year")
		return
	}

	year, err := clientSvc.UpsertPersonalYear(accountID, clientID, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save personal year")
		}
		return
	}

	c.JSON(http.StatusOK, year)
}
