// services/alert_service.go
package services

import (
	"log"
	"os"
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// AlertService sends security alert SMS messages for admin auth events and
// logs every attempt to the security_events table.
type AlertService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewAlertService(db *gorm.DB) *AlertService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &AlertService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// Notify sends an alert to the user if they opted in, and logs the event
// either way. Send failures are logged, never propagated: an alert must not
// fail the operation that triggered it.
func (s *AlertService) Notify(user *models.User, eventType, message string) {
	event := models.SecurityEvent{
		UserID:  user.ID,
		Type:    eventType,
		Message: message,
		SentAt:  time.Now(),
	}

	if !user.SecurityAlerts || user.AlertPhone == "" {
		event.Channel = "log"
		event.Status = "skipped"
		log.Printf("Security event for %s: %s (%s)", user.Email, message, eventType)
	} else {
		event.Channel = "sms"
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(user.AlertPhone)
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		params.SetBody(message)

		resp, err := s.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send security alert to %s: %v", user.AlertPhone, err)
			event.Status = "failed"
			event.ErrorMessage = err.Error()
		} else {
			event.Status = "sent"
			if resp.Sid != nil {
				log.Printf("Security alert sent to %s, SID: %s", user.AlertPhone, *resp.Sid)
			}
		}
	}

	if err := s.db.Create(&event).Error; err != nil {
		log.Printf("Failed to log security event for user %s: %v", user.ID, err)
	}
}
