package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report types generated for a business year.
const (
	ReportFilingGuide       = "filing_guide"
	ReportAllocationSummary = "allocation_summary"
)

func ValidReportType(s string) bool {
	return s == ReportFilingGuide || s == ReportAllocationSummary
}

// ReportDocument is a generated HTML document keyed by (business year, type).
// Regeneration overwrites the row; documents are never deleted through the API.
type ReportDocument struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessYearID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_year_report_type,priority:1" json:"businessYearId"`
	ReportType     string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_year_report_type,priority:2" json:"reportType"`

	HTML        string    `gorm:"type:text;not null" json:"html"`
	GeneratedAt time.Time `json:"generatedAt"`

	gorm.Model `json:"-"`
}

func (r *ReportDocument) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
