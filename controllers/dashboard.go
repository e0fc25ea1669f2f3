package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TaxRx/battleborn-tax-sub001/config"
	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/gin-gonic/gin"
)

type RecentClient struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	AddedOn  string `json:"addedOn"` // e.g. "Today", "3 days ago"
}

type ToolBreakdown struct {
	ToolSlug string `json:"toolSlug"`
	Active   int64  `json:"active"`
}

// GetDashboardOverview composes the advisor dashboard counters.
func GetDashboardOverview(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}

	// Active (non-archived) clients
	var totalClients int64
	config.DB.Model(&models.Client{}).
		Where("account_id = ? AND archived = ?", accountID, false).
		Count(&totalClients)

	// Archived clients
	var archivedClients int64
	config.DB.Model(&models.Client{}).
		Where("account_id = ? AND archived = ?", accountID, true).
		Count(&archivedClients)

	// Businesses of active clients, matching the client counter above
	var totalBusinesses int64
	config.DB.Model(&models.Business{}).
		Joins("JOIN clients ON clients.id = businesses.client_id").
		Where("clients.account_id = ? AND clients.archived = ? AND clients.deleted_at IS NULL", accountID, false).
		Count(&totalBusinesses)

	// Active enrollments per tool
	var breakdown []ToolBreakdown
	config.DB.Model(&models.ToolEnrollment{}).
		Select("tool_enrollments.tool_slug, COUNT(*) as active").
		Joins("JOIN clients ON clients.id = tool_enrollments.client_id").
		Where("clients.account_id = ? AND tool_enrollments.status = ?", accountID, models.EnrollmentActive).
		Group("tool_enrollments.tool_slug").
		Scan(&breakdown)

	// Recently added clients
	var clients []models.Client
	config.DB.Where("account_id = ? AND archived = ?", accountID, false).
		Order("created_at DESC").Limit(5).Find(&clients)

	recent := make([]RecentClient, 0, len(clients))
	for _, cl := range clients {
		daysAgo := int(time.Since(cl.CreatedAt).Hours() / 24)
		var label string
		switch daysAgo {
		case 0:
			label = "Today"
		case 1:
			label = "Yesterday"
		default:
			label = fmt.Sprintf("%d days ago", daysAgo)
		}
		recent = append(recent, RecentClient{
			ID:       cl.ID.String(),
			FullName: cl.FullName,
			AddedOn:  label,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":    totalClients,
		"archivedClients": archivedClients,
		"totalBusinesses": totalBusinesses,
		"enrollments":     breakdown,
		"recentClients":   recent,
	})
}
