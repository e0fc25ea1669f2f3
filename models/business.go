package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity types accepted on business records.
const (
	EntityLLC         = "LLC"
	EntitySCorp       = "S-Corp"
	EntityCCorp       = "C-Corp"
	EntityPartnership = "Partnership"
	EntitySoleProp    = "Sole-Prop"
	EntityOther       = "Other"
)

func ValidEntityType(s string) bool {
	switch s {
	case EntityLLC, EntitySCorp, EntityCCorp, EntityPartnership, EntitySoleProp, EntityOther:
		return true
	}
	return false
}

type Business struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	BusinessName    string `gorm:"not null" json:"businessName"`
	EntityType      string `gorm:"type:varchar(20);default:'LLC'" json:"entityType"`
	EIN             string `json:"ein"`
	BusinessAddress string `json:"businessAddress"`
	BusinessCity    string `json:"businessCity"`
	BusinessState   string `json:"businessState"`
	BusinessZip     string `json:"businessZip"`
	Industry        string `json:"industry"`
	YearEstablished int    `gorm:"default:0" json:"yearEstablished"`
	EmployeeCount   int    `gorm:"default:0" json:"employeeCount"`
	IsActive        bool   `gorm:"default:true" json:"isActive"`

	Years []BusinessYear `gorm:"foreignKey:BusinessID" json:"years"`

	gorm.Model `json:"-"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

type BusinessYear struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_business_year,priority:1" json:"businessId"`
	Year       int       `gorm:"not null;uniqueIndex:idx_business_year,priority:2" json:"year"`

	OrdinaryK1Income   float64 `gorm:"type:decimal(12,2);default:0.0" json:"ordinaryK1Income"`
	GuaranteedK1Income float64 `gorm:"type:decimal(12,2);default:0.0" json:"guaranteedK1Income"`
	AnnualRevenue      float64 `gorm:"type:decimal(14,2);default:0.0" json:"annualRevenue"`
	EmployeeCount      int     `gorm:"default:0" json:"employeeCount"`
	IsActive           bool    `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (y *BusinessYear) BeforeCreate(tx *gorm.DB) (err error) {
	if y.ID == uuid.Nil {
		y.ID = uuid.New()
	}
	return
}

// RDBusiness is the R&D credit subsystem's copy of a business, created when a
// business is enrolled in the rd tool. The wizard reads and mutates this row
// without touching the canonical business record.
type RDBusiness struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID   uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	BusinessID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"businessId"`

	BusinessName    string `gorm:"not null" json:"businessName"`
	EntityType      string `gorm:"type:varchar(20)" json:"entityType"`
	EIN             string `json:"ein"`
	Industry        string `json:"industry"`
	YearEstablished int    `gorm:"default:0" json:"yearEstablished"`
	EmployeeCount   int    `gorm:"default:0" json:"employeeCount"`

	gorm.Model `json:"-"`
}

func (b *RDBusiness) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
