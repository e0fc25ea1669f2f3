package services

import (
	"errors"
	"log"
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	sessionLifetime  = 30 * time.Minute
	renewalThreshold = 5 * time.Minute
)

var (
	ErrSessionExpired = errors.New("session expired")
	ErrSessionRevoked = errors.New("session revoked")
)

// SessionService manages admin dashboard sessions: explicit expiry, renewal
// when a session is close to expiring, revocation, and a periodic sweep of
// expired rows.
type SessionService struct {
	db     *gorm.DB
	alerts *AlertService
}

func NewSessionService(db *gorm.DB, alerts *AlertService) *SessionService {
	return &SessionService{db: db, alerts: alerts}
}

// Open creates a session after a successful admin login.
func (s *SessionService) Open(user *models.User, ip, userAgent string) (*models.AdminSession, error) {
	now := time.Now()
	session := models.AdminSession{
		UserID:          user.ID,
		Token:           utils.GenerateRandomString(32),
		IssuedAt:        now,
		ExpiresAt:       now.Add(sessionLifetime),
		LastValidatedAt: now,
		IPAddress:       ip,
		UserAgent:       userAgent,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	if s.alerts != nil {
		s.alerts.Notify(user, "admin_login", "Admin session opened from "+ip)
	}
	return &session, nil
}

// Validate checks the session and proactively extends it when less than
// 5 minutes of validity remain.
func (s *SessionService) Validate(token string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := s.db.First(&session, "token = ?", token).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if session.RevokedAt != nil {
		return nil, ErrSessionRevoked
	}
	if session.ExpiresAt.Before(now) {
		return nil, ErrSessionExpired
	}

	session.LastValidatedAt = now
	if session.ExpiresAt.Sub(now) < renewalThreshold {
		session.ExpiresAt = now.Add(sessionLifetime)
	}
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Revoke ends a session before its expiry.
func (s *SessionService) Revoke(sessionID uuid.UUID) error {
	var session models.AdminSession
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return err
	}
	now := time.Now()
	session.RevokedAt = &now
	if err := s.db.Save(&session).Error; err != nil {
		return err
	}
	if s.alerts != nil {
		var user models.User
		if err := s.db.First(&user, "id = ?", session.UserID).Error; err == nil {
			s.alerts.Notify(&user, "session_revoked", "Admin session revoked")
		}
	}
	return nil
}

// List returns a user's sessions, newest first.
func (s *SessionService) List(userID uuid.UUID) ([]models.AdminSession, error) {
	var sessions []models.AdminSession
	err := s.db.Where("user_id = ?", userID).Order("issued_at DESC").Find(&sessions).Error
	return sessions, err
}

// Sweep deletes sessions past their expiry. Returns rows removed.
func (s *SessionService) Sweep() (int64, error) {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}

// StartSweeper runs Sweep every 5 minutes, matching the dashboard's
// revalidation interval.
func (s *SessionService) StartSweeper() *cron.Cron {
	c := cron.New()

	c.AddFunc("*/5 * * * *", func() {
		removed, err := s.Sweep()
		if err != nil {
			log.Printf("Session sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("Session sweep removed %d expired sessions", removed)
		}
	})

	c.Start()
	log.Println("Session sweeper started")
	return c
}
