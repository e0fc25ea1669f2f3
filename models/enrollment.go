package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tool slugs a business can be enrolled in. Fixed set, no dynamic tools.
const (
	ToolRD               = "rd"
	ToolAugusta          = "augusta"
	ToolHireChildren     = "hire_children"
	ToolCostSegregation  = "cost_segregation"
	ToolConvertibleBonds = "convertible_bonds"
	ToolTaxPlanning      = "tax_planning"
)

func ValidToolSlug(s string) bool {
	switch s {
	case ToolRD, ToolAugusta, ToolHireChildren, ToolCostSegregation, ToolConvertibleBonds, ToolTaxPlanning:
		return true
	}
	return false
}

// Enrollment statuses. inactive and completed are terminal by convention only;
// callers set status directly and no transition table is enforced.
const (
	EnrollmentActive    = "active"
	EnrollmentInactive  = "inactive"
	EnrollmentCompleted = "completed"
)

func ValidEnrollmentStatus(s string) bool {
	switch s {
	case EnrollmentActive, EnrollmentInactive, EnrollmentCompleted:
		return true
	}
	return false
}

type ToolEnrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_business_tool,priority:1" json:"clientId"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_business_tool,priority:2" json:"businessId"`
	ToolSlug   string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_client_business_tool,priority:3" json:"toolSlug"`

	Status           string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	EnrolledByUserID uuid.UUID `gorm:"type:uuid;index" json:"enrolledByUserId"`
	EnrolledAt       time.Time `json:"enrolledAt"`
	Notes            string    `gorm:"type:text" json:"notes"`

	gorm.Model `json:"-"`
}

func (e *ToolEnrollment) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// AccountLink ties an operator login to the client records it may see. The
// unified client list filtered by operator resolves through these rows.
type AccountLink struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OperatorUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_operator_client,priority:1" json:"operatorUserId"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_operator_client,priority:2" json:"clientId"`

	gorm.Model `json:"-"`
}

func (l *AccountLink) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
