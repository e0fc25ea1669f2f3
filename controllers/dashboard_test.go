package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardCountsScopeToActiveClients(t *testing.T) {
	db := setupControllerDB(t)
	svc := services.NewClientService(db)
	accountID, userID := uuid.New(), uuid.New()

	_, err := svc.CreateClient(accountID, userID, models.TaxInfo{
		FullName:   "Active Owner",
		Email:      "active@x.com",
		Businesses: []models.BusinessPayload{{BusinessName: "Live LLC"}},
	})
	require.NoError(t, err)

	archived, err := svc.CreateClient(accountID, userID, models.TaxInfo{
		FullName:   "Archived Owner",
		Email:      "archived@x.com",
		Businesses: []models.BusinessPayload{{BusinessName: "Dormant LLC"}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.ArchiveClient(accountID, archived.ID))

	// Another firm's data must not leak into the counters.
	_, err = svc.CreateClient(uuid.New(), userID, models.TaxInfo{
		FullName:   "Other Firm Owner",
		Email:      "other@x.com",
		Businesses: []models.BusinessPayload{{BusinessName: "Elsewhere LLC"}},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	c.Set("accountId", accountID.String())

	GetDashboardOverview(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalClients    int64 `json:"totalClients"`
		ArchivedClients int64 `json:"archivedClients"`
		TotalBusinesses int64 `json:"totalBusinesses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, int64(1), resp.TotalClients)
	assert.Equal(t, int64(1), resp.ArchivedClients)
	// Archived clients keep their businesses, but the headline business
	// count tracks the active-client count.
	assert.Equal(t, int64(1), resp.TotalBusinesses)
}
