package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filing statuses accepted on client records.
const (
	FilingSingle          = "single"
	FilingMarriedJoint    = "married_joint"
	FilingMarriedSeparate = "married_separate"
	FilingHeadOfHousehold = "head_of_household"
)

func ValidFilingStatus(s string) bool {
	switch s {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold:
		return true
	}
	return false
}

type Client struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID       uuid.UUID `gorm:"type:uuid;index;not null" json:"accountId"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"createdByUserId"`

	FullName     string `gorm:"not null" json:"fullName"`
	Email        string `gorm:"not null;index" json:"email"`
	Phone        string `json:"phone"`
	HomeAddress  string `json:"homeAddress"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	FilingStatus string `gorm:"type:varchar(30);default:'single'" json:"filingStatus"`
	Dependents   int    `gorm:"default:0" json:"dependents"`

	StandardDeduction bool    `gorm:"default:true" json:"standardDeduction"`
	CustomDeduction   float64 `gorm:"type:decimal(12,2);default:0.0" json:"customDeduction"`

	// Archived hides the client from default listings. Distinct from the
	// admin delete action, which soft-deletes the row.
	Archived   bool       `gorm:"default:false;index" json:"archived"`
	ArchivedAt *time.Time `json:"archivedAt"`

	Businesses    []Business     `gorm:"foreignKey:ClientID" json:"businesses"`
	PersonalYears []PersonalYear `gorm:"foreignKey:ClientID" json:"personalYears"`

	gorm.Model `json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type PersonalYear struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_year,priority:1" json:"clientId"`
	Year     int       `gorm:"not null;uniqueIndex:idx_client_year,priority:2" json:"year"`

	WagesIncome          float64 `gorm:"type:decimal(12,2);default:0.0" json:"wagesIncome"`
	PassiveIncome        float64 `gorm:"type:decimal(12,2);default:0.0" json:"passiveIncome"`
	UnearnedIncome       float64 `gorm:"type:decimal(12,2);default:0.0" json:"unearnedIncome"`
	CapitalGains         float64 `gorm:"type:decimal(12,2);default:0.0" json:"capitalGains"`
	LongTermCapitalGains float64 `gorm:"type:decimal(12,2);default:0.0" json:"longTermCapitalGains"`
	HouseholdIncome      float64 `gorm:"type:decimal(12,2);default:0.0" json:"householdIncome"`
	OrdinaryIncome       float64 `gorm:"type:decimal(12,2);default:0.0" json:"ordinaryIncome"`
	IsActive             bool    `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (y *PersonalYear) BeforeCreate(tx *gorm.DB) (err error) {
	if y.ID == uuid.Nil {
		y.ID = uuid.New()
	}
	return
}
