package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminSession is the server-side record behind the admin dashboard session.
// Sessions expire 30 minutes after issue; validation extends them when less
// than 5 minutes remain, and a sweeper deletes expired rows every 5 minutes.
type AdminSession struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Token  string    `gorm:"uniqueIndex;not null" json:"-"`

	IssuedAt        time.Time  `json:"issuedAt"`
	ExpiresAt       time.Time  `gorm:"index" json:"expiresAt"`
	LastValidatedAt time.Time  `json:"lastValidatedAt"`
	RevokedAt       *time.Time `json:"revokedAt"`

	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`

	gorm.Model `json:"-"`
}

func (s *AdminSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (s *AdminSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}

// SecurityEvent logs every security alert the service attempts to send.
type SecurityEvent struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Type         string    `gorm:"type:varchar(30)" json:"type"` // admin_login, session_revoked
	Message      string    `gorm:"type:text" json:"message"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms, log
	Status       string    `gorm:"type:varchar(20)" json:"status"`  // sent, failed, skipped
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (e *SecurityEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
