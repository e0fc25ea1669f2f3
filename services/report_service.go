package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnknownReportType = errors.New("unknown report type")

// CalculationResult is the calculator output a report is rendered from. Field
// names drifted across calculator versions, so each figure has an old and a
// new key; the accessors coalesce them, preferring the newer name.
type CalculationResult struct {
	TotalCredit   *float64 `json:"total_credit"`
	FederalCredit *float64 `json:"federalCredit"`

	StateCreditLegacy *float64 `json:"state_credit"`
	StateCredit       *float64 `json:"stateCredit"`

	TotalQRELegacy *float64 `json:"total_qre"`
	TotalQRE       *float64 `json:"totalQRE"`

	WageQRELegacy *float64 `json:"wage_qre"`
	WageQRE       *float64 `json:"wageQRE"`

	SupplyQRELegacy *float64 `json:"supply_qre"`
	SupplyQRE       *float64 `json:"supplyQRE"`

	ContractQRELegacy *float64 `json:"contract_qre"`
	ContractQRE       *float64 `json:"contractQRE"`
}

func coalesce(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func (r *CalculationResult) Credit() float64 {
	if r == nil {
		return 0
	}
	return coalesce(r.FederalCredit, r.TotalCredit)
}

func (r *CalculationResult) State() float64 {
	if r == nil {
		return 0
	}
	return coalesce(r.StateCredit, r.StateCreditLegacy)
}

func (r *CalculationResult) QRE() float64 {
	if r == nil {
		return 0
	}
	return coalesce(r.TotalQRE, r.TotalQRELegacy)
}

func (r *CalculationResult) Wages() float64 {
	if r == nil {
		return 0
	}
	return coalesce(r.WageQRE, r.WageQRELegacy)
}

func (r *CalculationResult) Supplies() float64 {
	if r == nil {
		return 0
	}
	return coalesce(r.SupplyQRE, r.SupplyQRELegacy)
}

func (r *CalculationResult) Contract() float64 {
	if r == nil {
		return 0
	}
	return coalesce(r.ContractQRE, r.ContractQRELegacy)
}

type reportView struct {
	BusinessName string
	TaxYear      int
	GeneratedOn  string

	FederalCredit string
	StateCredit   string
	TotalCredit   string
	TotalQRE      string

	Rows []allocationRow
}

type allocationRow struct {
	Category string
	Amount   string
	Percent  string
}

var filingGuideTmpl = template.Must(template.New("filing_guide").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Filing Guide - {{.BusinessName}}</title>
<style>
body { font-family: Georgia, serif; color: #1a1a2e; margin: 40px; }
h1 { border-bottom: 3px solid #16213e; padding-bottom: 8px; }
.meta { color: #555; font-size: 14px; margin-bottom: 24px; }
table { border-collapse: collapse; width: 100%; margin: 16px 0; }
th, td { border: 1px solid #ccc; padding: 10px 14px; text-align: left; }
th { background: #16213e; color: #fff; }
.figure { font-size: 20px; font-weight: bold; }
.footnote { font-size: 12px; color: #777; margin-top: 32px; }
</style>
</head>
<body>
<h1>Research &amp; Development Credit Filing Guide</h1>
<div class="meta">{{.BusinessName}} &mdash; Tax Year {{.TaxYear}} &mdash; Generated {{.GeneratedOn}}</div>
<p>This guide summarizes the federal and state research credit figures computed
for {{.BusinessName}} and the forms on which each figure is reported.</p>
<table>
<tr><th>Line</th><th>Amount</th><th>Form</th></tr>
<tr><td>Total Qualified Research Expenses</td><td class="figure">{{.TotalQRE}}</td><td>Form 6765, Line 28</td></tr>
<tr><td>Federal Credit</td><td class="figure">{{.FederalCredit}}</td><td>Form 6765, Line 44</td></tr>
<tr><td>State Credit</td><td class="figure">{{.StateCredit}}</td><td>State schedule</td></tr>
</table>
<p>Attach Form 6765 to the entity return for Tax Year {{.TaxYear}}. Flow-through
entities report the credit to owners on Schedule K-1.</p>
<div class="footnote">Prepared from the calculation snapshot on record. Figures
are rounded to whole dollars.</div>
</body>
</html>
`))

var allocationTmpl = template.Must(template.New("allocation_summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>QRE Allocation Report - {{.BusinessName}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
h1 { color: #0f3460; }
.meta { color: #555; font-size: 14px; margin-bottom: 24px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 10px 14px; text-align: left; }
th { background: #0f3460; color: #fff; }
tr.total td { font-weight: bold; background: #f0f4f8; }
</style>
</head>
<body>
<h1>Qualified Research Expense Allocation</h1>
<div class="meta">{{.BusinessName}} &mdash; Tax Year {{.TaxYear}} &mdash; Generated {{.GeneratedOn}}</div>
<table>
<tr><th>Category</th><th>Amount</th><th>% of Total QRE</th></tr>
{{range .Rows}}<tr><td>{{.Category}}</td><td>{{.Amount}}</td><td>{{.Percent}}</td></tr>
{{end}}<tr class="total"><td>Total QRE</td><td>{{.TotalQRE}}</td><td>100.0%</td></tr>
</table>
</body>
</html>
`))

func buildView(businessName string, taxYear int, result *CalculationResult) reportView {
	total := result.QRE()
	return reportView{
		BusinessName:  businessName,
		TaxYear:       taxYear,
		GeneratedOn:   time.Now().Format("January 2, 2006"),
		FederalCredit: utils.FormatCurrency(result.Credit()),
		StateCredit:   utils.FormatCurrency(result.State()),
		TotalCredit:   utils.FormatCurrency(result.Credit() + result.State()),
		TotalQRE:      utils.FormatCurrency(total),
		Rows: []allocationRow{
			{"Wages", utils.FormatCurrency(result.Wages()), utils.FormatPercent(result.Wages(), total)},
			{"Supplies", utils.FormatCurrency(result.Supplies()), utils.FormatPercent(result.Supplies(), total)},
			{"Contract Research", utils.FormatCurrency(result.Contract()), utils.FormatPercent(result.Contract(), total)},
		},
	}
}

// FilingGuideHTML renders the filing guide document. Pure string templating,
// no I/O; a nil result renders zero figures.
func FilingGuideHTML(businessName string, taxYear int, result *CalculationResult) (string, error) {
	var buf bytes.Buffer
	if err := filingGuideTmpl.Execute(&buf, buildView(businessName, taxYear, result)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// AllocationReportHTML renders the QRE allocation document.
func AllocationReportHTML(businessName string, taxYear int, result *CalculationResult) (string, error) {
	var buf bytes.Buffer
	if err := allocationTmpl.Execute(&buf, buildView(businessName, taxYear, result)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReportService renders report documents and stores them keyed by
// (business year, report type), overwriting on regeneration.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) yearInAccount(accountID, businessYearID uuid.UUID) (*models.BusinessYear, *models.Business, error) {
	var year models.BusinessYear
	err := s.db.Joins("JOIN businesses ON businesses.id = business_years.business_id").
		Joins("JOIN clients ON clients.id = businesses.client_id").
		Where("business_years.id = ? AND clients.account_id = ?", businessYearID, accountID).
		First(&year).Error
	if err != nil {
		return nil, nil, err
	}
	var business models.Business
	if err := s.db.First(&business, "id = ?", year.BusinessID).Error; err != nil {
		return nil, nil, err
	}
	return &year, &business, nil
}

// Generate renders and upserts the requested report for a business year.
func (s *ReportService) Generate(accountID, businessYearID uuid.UUID, reportType string, result *CalculationResult) (*models.ReportDocument, error) {
	if !models.ValidReportType(reportType) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReportType, reportType)
	}
	year, business, err := s.yearInAccount(accountID, businessYearID)
	if err != nil {
		return nil, err
	}

	var html string
	switch reportType {
	case models.ReportFilingGuide:
		html, err = FilingGuideHTML(business.BusinessName, year.Year, result)
	case models.ReportAllocationSummary:
		html, err = AllocationReportHTML(business.BusinessName, year.Year, result)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", reportType, err)
	}

	doc := models.ReportDocument{
		BusinessYearID: businessYearID,
		ReportType:     reportType,
		HTML:           html,
		GeneratedAt:    time.Now(),
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_year_id"}, {Name: "report_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"html", "generated_at", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	var saved models.ReportDocument
	if err := s.db.Where("business_year_id = ? AND report_type = ?", businessYearID, reportType).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// Get fetches a stored report document.
func (s *ReportService) Get(accountID, businessYearID uuid.UUID, reportType string) (*models.ReportDocument, error) {
	if !models.ValidReportType(reportType) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReportType, reportType)
	}
	if _, _, err := s.yearInAccount(accountID, businessYearID); err != nil {
		return nil, err
	}
	var doc models.ReportDocument
	err := s.db.Where("business_year_id = ? AND report_type = ?", businessYearID, reportType).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
