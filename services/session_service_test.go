package services

import (
	"testing"
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Email:     "admin@battleborntax.com",
		Password:  "secret",
		Role:      models.RoleAdmin,
		AccountID: uuid.New(),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestSessionOpenAndValidate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, nil)
	user := seedAdmin(t, db)

	session, err := svc.Open(user, "10.0.0.1", "dashboard/1.0")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), session.ExpiresAt, 5*time.Second)

	validated, err := svc.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, validated.ID)
	// Plenty of lifetime remains, so the expiry is untouched.
	assert.WithinDuration(t, session.ExpiresAt, validated.ExpiresAt, time.Second)
}

func TestValidateExtendsExpiringSession(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, nil)
	user := seedAdmin(t, db)

	session, err := svc.Open(user, "10.0.0.1", "dashboard/1.0")
	require.NoError(t, err)

	// Push the session to within the renewal window.
	nearExpiry := time.Now().Add(2 * time.Minute)
	require.NoError(t, db.Model(session).Update("expires_at", nearExpiry).Error)

	validated, err := svc.Validate(session.Token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), validated.ExpiresAt, 5*time.Second)
}

func TestValidateRejectsExpiredAndRevoked(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, nil)
	user := seedAdmin(t, db)

	expired, err := svc.Open(user, "10.0.0.1", "dashboard/1.0")
	require.NoError(t, err)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = svc.Validate(expired.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	revoked, err := svc.Open(user, "10.0.0.1", "dashboard/1.0")
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(revoked.ID))

	_, err = svc.Validate(revoked.Token)
	assert.ErrorIs(t, err, ErrSessionRevoked)

	_, err = svc.Validate("no-such-token")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSweepRemovesExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, nil)
	user := seedAdmin(t, db)

	live, err := svc.Open(user, "10.0.0.1", "dashboard/1.0")
	require.NoError(t, err)

	stale, err := svc.Open(user, "10.0.0.2", "dashboard/1.0")
	require.NoError(t, err)
	require.NoError(t, db.Model(stale).Update("expires_at", time.Now().Add(-time.Hour)).Error)

	removed, err := svc.Sweep()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	sessions, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, live.ID, sessions[0].ID)
}

func TestAlertSkippedWhenNotOptedIn(t *testing.T) {
	db := setupTestDB(t)
	alerts := NewAlertService(db)
	user := seedAdmin(t, db)

	alerts.Notify(user, "admin_login", "Admin session opened from 10.0.0.1")

	var event models.SecurityEvent
	require.NoError(t, db.First(&event, "user_id = ?", user.ID).Error)
	assert.Equal(t, "admin_login", event.Type)
	assert.Equal(t, "log", event.Channel)
	assert.Equal(t, "skipped", event.Status)
}
