package controllers

import (
	"errors"
	"net/http"

	"github.com/TaxRx/battleborn-tax-sub001/services"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollInput struct {
	ClientID   uuid.UUID `json:"clientId" binding:"required"`
	BusinessID uuid.UUID `json:"businessId" binding:"required"`
	ToolSlug   string    `json:"toolSlug" binding:"required"`
	Notes      string    `json:"notes"`
}

type EnrollmentStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// EnrollClientInTool enrolls a (client, business) pair in a calculation tool.
func EnrollClientInTool(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var input EnrollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	enrollment, err := clientSvc.EnrollClientInTool(accountID, input.ClientID,
		input.BusinessID, input.ToolSlug, input.Notes, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownTool):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrBusinessMismatch):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to enroll client")
		}
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// ListEnrollments returns a client's tool enrollments.
func ListEnrollments(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	clientID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	enrollments, err := clientSvc.ListEnrollments(accountID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve enrollments")
		}
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// UpdateEnrollmentStatus sets an enrollment's status.
func UpdateEnrollmentStatus(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	enrollmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input EnrollmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	enrollment, err := clientSvc.UpdateEnrollmentStatus(accountID, enrollmentID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Enrollment not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update enrollment")
		}
		return
	}

	c.JSON(http.StatusOK, enrollment)
}
