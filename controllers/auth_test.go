package controllers

import (
	"testing"

	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitiesForRoles(t *testing.T) {
	db := setupControllerDB(t)

	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	caps, err := capabilitiesFor(admin)
	require.NoError(t, err)
	assert.Equal(t, []utils.Capability{utils.WildcardAll}, caps)

	advisor := &models.User{ID: uuid.New(), Role: models.RoleAdvisor}
	caps, err = capabilitiesFor(advisor)
	require.NoError(t, err)
	assert.Contains(t, caps, utils.Capability{Resource: "clients", Action: "manage"})
	assert.Contains(t, caps, utils.Capability{Resource: "reports", Action: "generate"})

	operator := &models.User{ID: uuid.New(), Role: models.RoleOperator}
	clientID := uuid.New()
	require.NoError(t, db.Create(&models.AccountLink{OperatorUserID: operator.ID, ClientID: clientID}).Error)

	caps, err = capabilitiesFor(operator)
	require.NoError(t, err)
	assert.Equal(t, []utils.Capability{
		{Resource: "client", ResourceID: clientID.String(), Action: "view"},
		{Resource: "client", ResourceID: clientID.String(), Action: "view_documents"},
	}, caps)
}

func TestCapabilitiesForPropagatesQueryError(t *testing.T) {
	db := setupControllerDB(t)

	// A failed account-link lookup must fail the login rather than issue a
	// token with no capabilities.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = capabilitiesFor(&models.User{ID: uuid.New(), Role: models.RoleOperator})
	assert.Error(t, err)
}
