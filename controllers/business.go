package controllers

import (
	"errors"
	"net/http"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateBusiness attaches a business to a client.
func CreateBusiness(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input models.BusinessPayload
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.BusinessName == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Business name is required")
		return
	}
	if input.EntityType != "" && !models.ValidEntityType(input.EntityType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entity type")
		return
	}
	if input.EIN != "" && !utils.ValidateEIN(input.EIN) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid EIN format")
		return
	}

	business, err := clientSvc.CreateBusiness(accountID, clientID, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create business")
		}
		return
	}

	c.JSON(http.StatusCreated, business)
}

// UpdateBusiness overwrites the business row from the submitted payload.
func UpdateBusiness(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input models.BusinessPayload
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.EntityType != "" && !models.ValidEntityType(input.EntityType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entity type")
		return
	}

	business, err := clientSvc.UpdateBusiness(accountID, businessID, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business")
		}
		return
	}

	c.JSON(http.StatusOK, business)
}

// UpsertBusinessYear writes a business tax year keyed by year.
func UpsertBusinessYear(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input models.BusinessYearPayload
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateTaxYear(input.Year) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tax year")
		return
	}

	year, err := clientSvc.UpsertBusinessYear(accountID, businessID, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save business year")
		}
		return
	}

	c.JSON(http.StatusOK, year)
}
