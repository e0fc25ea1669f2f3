package controllers

import (
	"fmt"
	"testing"

	"github.com/TaxRx/battleborn-tax-sub001/config"
	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupControllerDB opens an isolated in-memory database, migrates the full
// schema, and installs it as the shared handle the handlers read.
func setupControllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.PersonalYear{},
		&models.Business{},
		&models.BusinessYear{},
		&models.RDBusiness{},
		&models.ToolEnrollment{},
		&models.AccountLink{},
		&models.ReportDocument{},
		&models.AdminSession{},
		&models.SecurityEvent{},
	)
	require.NoError(t, err)

	config.DB = db
	return db
}
