// controllers/report.go
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

type GenerateReportInput struct {
	BusinessYearID uuid.UUID                   `json:"businessYearId" binding:"required"`
	ReportType     string                      `json:"reportType" binding:"required"`
	Result         *services.CalculationResult `json:"result"`
}

// GenerateReport renders a report document and stores it, overwriting any
// prior document for the same (business year, type).
func GenerateReport(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}

	var input GenerateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	doc, err := reportSvc.Generate(accountID, input.BusinessYearID, input.ReportType, input.Result)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownReportType):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Business year not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate report")
		}
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// GetReport fetches a stored report document as HTML.
func GetReport(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	yearID, ok := pathUUID(c, "yearId")
	if !ok {
		return
	}
	reportType := c.Param("type")

	doc, err := reportSvc.Get(accountID, yearID, reportType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownReportType):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Report not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve report")
		}
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, doc.HTML)
}
