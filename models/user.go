package models

import (
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account roles.
const (
	RoleAdmin    = "admin"
	RoleAdvisor  = "advisor"
	RoleClient   = "client"
	RoleOperator = "operator"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`

	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"accountId"`

	FirmName    string `json:"firmName"`
	FirmAddress string `json:"firmAddress"`

	// Security alert preferences for admin logins and session revocations.
	SecurityAlerts bool   `gorm:"default:false" json:"securityAlerts"`
	AlertPhone     string `json:"alertPhone"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
