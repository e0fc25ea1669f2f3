package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestTaxInfoRoundTrip(t *testing.T) {
	info := TaxInfo{
		FullName:          "Jane Doe",
		Email:             "jane@x.com",
		Phone:             "775-555-0100",
		HomeAddress:       "100 Main St",
		City:              "Reno",
		State:             "NV",
		ZipCode:           "89501",
		FilingStatus:      FilingMarriedJoint,
		Dependents:        2,
		StandardDeduction: boolPtr(false),
		CustomDeduction:   31500,
		Years: []PersonalYearPayload{{
			Year:                 2024,
			WagesIncome:          1500,
			PassiveIncome:        200,
			UnearnedIncome:       50,
			CapitalGains:         7000,
			LongTermCapitalGains: 4000,
			HouseholdIncome:      8750,
			OrdinaryIncome:       1750,
			IsActive:             boolPtr(true),
		}},
		Businesses: []BusinessPayload{{
			BusinessName:    "Acme LLC",
			EntityType:      EntitySCorp,
			EIN:             "12-3456789",
			BusinessAddress: "1 Industrial Way",
			BusinessCity:    "Sparks",
			BusinessState:   "NV",
			BusinessZip:     "89431",
			Industry:        "Software",
			YearEstablished: 2018,
			EmployeeCount:   12,
			IsActive:        boolPtr(true),
			Years: []BusinessYearPayload{{
				Year:               2024,
				OrdinaryK1Income:   120000,
				GuaranteedK1Income: 60000,
				AnnualRevenue:      950000,
				EmployeeCount:      12,
				IsActive:           boolPtr(true),
			}},
		}},
	}

	client := ClientFromTaxInfo(info, uuid.New(), uuid.New())
	back := TaxInfoFromClient(client)

	assert.Equal(t, info.FullName, back.FullName)
	assert.Equal(t, info.Email, back.Email)
	assert.Equal(t, info.FilingStatus, back.FilingStatus)
	assert.Equal(t, info.Dependents, back.Dependents)
	assert.Equal(t, *info.StandardDeduction, *back.StandardDeduction)
	assert.Equal(t, info.CustomDeduction, back.CustomDeduction)

	require.Len(t, back.Years, 1)
	assert.Equal(t, info.Years[0], back.Years[0])

	require.Len(t, back.Businesses, 1)
	assert.Equal(t, info.Businesses[0].BusinessName, back.Businesses[0].BusinessName)
	assert.Equal(t, info.Businesses[0].EIN, back.Businesses[0].EIN)
	require.Len(t, back.Businesses[0].Years, 1)
	assert.Equal(t, info.Businesses[0].Years[0], back.Businesses[0].Years[0])
}

func TestTransformDefaults(t *testing.T) {
	t.Run("MissingBooleansDefaultTrue", func(t *testing.T) {
		year := PersonalYearFromPayload(uuid.Nil, PersonalYearPayload{Year: 2024})
		assert.True(t, year.IsActive)

		business := BusinessFromPayload(uuid.Nil, BusinessPayload{BusinessName: "Acme LLC"})
		assert.True(t, business.IsActive)

		by := BusinessYearFromPayload(uuid.Nil, BusinessYearPayload{Year: 2024})
		assert.True(t, by.IsActive)
	})

	t.Run("ExplicitFalseSurvives", func(t *testing.T) {
		year := PersonalYearFromPayload(uuid.Nil, PersonalYearPayload{Year: 2024, IsActive: boolPtr(false)})
		assert.False(t, year.IsActive)
	})

	t.Run("MissingNumericsDefaultZero", func(t *testing.T) {
		year := PersonalYearFromPayload(uuid.Nil, PersonalYearPayload{Year: 2024})
		assert.Zero(t, year.WagesIncome)
		assert.Zero(t, year.PassiveIncome)
		assert.Zero(t, year.CapitalGains)

		by := BusinessYearFromPayload(uuid.Nil, BusinessYearPayload{Year: 2024})
		assert.Zero(t, by.OrdinaryK1Income)
		assert.Zero(t, by.AnnualRevenue)
	})

	t.Run("FilingStatusDefaultsSingle", func(t *testing.T) {
		client := ClientFromTaxInfo(TaxInfo{FullName: "Jane Doe", Email: "jane@x.com"}, uuid.New(), uuid.New())
		assert.Equal(t, FilingSingle, client.FilingStatus)
		assert.True(t, client.StandardDeduction)
	})

	t.Run("EntityTypeDefaultsLLC", func(t *testing.T) {
		business := BusinessFromPayload(uuid.Nil, BusinessPayload{BusinessName: "Acme LLC"})
		assert.Equal(t, EntityLLC, business.EntityType)
	})
}
