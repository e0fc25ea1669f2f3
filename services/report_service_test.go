package services

import (
	"strings"
	"testing"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestFilingGuideHTML(t *testing.T) {
	result := &CalculationResult{
		TotalCredit:    floatPtr(12000),
		TotalQRELegacy: floatPtr(85000),
	}

	html, err := FilingGuideHTML("Acme LLC", 2024, result)
	require.NoError(t, err)

	assert.Contains(t, html, "Acme LLC")
	assert.Contains(t, html, "Tax Year 2024")
	assert.Contains(t, html, "$12,000")
	assert.Contains(t, html, "$85,000")
	assert.Contains(t, html, "<!DOCTYPE html>")
}

func TestFilingGuideHTMLNilResult(t *testing.T) {
	html, err := FilingGuideHTML("Acme LLC", 2024, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Acme LLC")
	assert.Contains(t, html, "$0")
}

func TestCalculationResultFieldDrift(t *testing.T) {
	// Newer field names win over their legacy counterparts.
	r := &CalculationResult{
		TotalCredit:    floatPtr(10000),
		FederalCredit:  floatPtr(12000),
		TotalQRELegacy: floatPtr(80000),
		TotalQRE:       floatPtr(85000),
	}
	assert.Equal(t, float64(12000), r.Credit())
	assert.Equal(t, float64(85000), r.QRE())

	// Legacy-only payloads still resolve.
	legacy := &CalculationResult{
		TotalCredit:       floatPtr(9000),
		StateCreditLegacy: floatPtr(1000),
	}
	assert.Equal(t, float64(9000), legacy.Credit())
	assert.Equal(t, float64(1000), legacy.State())

	var nilResult *CalculationResult
	assert.Zero(t, nilResult.Credit())
	assert.Zero(t, nilResult.QRE())
}

func TestAllocationReportPercentages(t *testing.T) {
	result := &CalculationResult{
		TotalQRE:    floatPtr(100000),
		WageQRE:     floatPtr(60000),
		SupplyQRE:   floatPtr(25000),
		ContractQRE: floatPtr(15000),
	}

	html, err := AllocationReportHTML("Acme LLC", 2024, result)
	require.NoError(t, err)
	assert.Contains(t, html, "60.0%")
	assert.Contains(t, html, "25.0%")
	assert.Contains(t, html, "15.0%")
	assert.Contains(t, html, "$60,000")
}

func TestAllocationReportZeroTotalGuard(t *testing.T) {
	// A zero total must render "0.0%" in every row, never NaN%.
	html, err := AllocationReportHTML("Acme LLC", 2024, &CalculationResult{
		WageQRE: floatPtr(5000),
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "NaN")
	assert.GreaterOrEqual(t, strings.Count(html, "0.0%"), 3)

	html, err = AllocationReportHTML("Acme LLC", 2024, nil)
	require.NoError(t, err)
	assert.NotContains(t, html, "NaN")
}

func seedBusinessYear(t *testing.T, svc *ClientService, accountID, userID uuid.UUID) uuid.UUID {
	t.Helper()
	client, err := svc.CreateClient(accountID, userID, models.TaxInfo{
		FullName: "Sam Owner",
		Email:    "sam@x.com",
		Businesses: []models.BusinessPayload{{
			BusinessName: "Acme LLC",
			Years:        []models.BusinessYearPayload{{Year: 2024}},
		}},
	})
	require.NoError(t, err)

	fetched, err := svc.GetClient(accountID, client.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Businesses, 1)
	require.Len(t, fetched.Businesses[0].Years, 1)
	return fetched.Businesses[0].Years[0].ID
}

func TestGenerateReportUpserts(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)
	reportSvc := NewReportService(db)
	accountID, userID := uuid.New(), uuid.New()

	yearID := seedBusinessYear(t, clientSvc, accountID, userID)

	first, err := reportSvc.Generate(accountID, yearID, models.ReportFilingGuide,
		&CalculationResult{TotalCredit: floatPtr(12000)})
	require.NoError(t, err)
	assert.Contains(t, first.HTML, "$12,000")

	// Regeneration overwrites the stored document for the same key.
	second, err := reportSvc.Generate(accountID, yearID, models.ReportFilingGuide,
		&CalculationResult{TotalCredit: floatPtr(20000)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Contains(t, second.HTML, "$20,000")

	var count int64
	db.Model(&models.ReportDocument{}).
		Where("business_year_id = ? AND report_type = ?", yearID, models.ReportFilingGuide).
		Count(&count)
	assert.Equal(t, int64(1), count)

	// The two report types are stored independently.
	_, err = reportSvc.Generate(accountID, yearID, models.ReportAllocationSummary, nil)
	require.NoError(t, err)
	db.Model(&models.ReportDocument{}).Where("business_year_id = ?", yearID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestGenerateReportValidation(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)
	reportSvc := NewReportService(db)
	accountID, userID := uuid.New(), uuid.New()

	yearID := seedBusinessYear(t, clientSvc, accountID, userID)

	_, err := reportSvc.Generate(accountID, yearID, "quarterly_digest", nil)
	assert.ErrorIs(t, err, ErrUnknownReportType)

	// A business year outside the caller's account is invisible.
	_, err = reportSvc.Generate(uuid.New(), yearID, models.ReportFilingGuide, nil)
	assert.Error(t, err)
}

func TestGetReport(t *testing.T) {
	db := setupTestDB(t)
	clientSvc := NewClientService(db)
	reportSvc := NewReportService(db)
	accountID, userID := uuid.New(), uuid.New()

	yearID := seedBusinessYear(t, clientSvc, accountID, userID)

	_, err := reportSvc.Get(accountID, yearID, models.ReportFilingGuide)
	assert.Error(t, err)

	_, err = reportSvc.Generate(accountID, yearID, models.ReportFilingGuide, nil)
	require.NoError(t, err)

	doc, err := reportSvc.Get(accountID, yearID, models.ReportFilingGuide)
	require.NoError(t, err)
	assert.Equal(t, models.ReportFilingGuide, doc.ReportType)
	assert.Contains(t, doc.HTML, "Acme LLC")
}
