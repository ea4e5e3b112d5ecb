package controllers

import (
	"log"
	"net/http"
	"time"

	"reservapro-backend/config"
	"reservapro-backend/metrics"
	"reservapro-backend/models"
	"reservapro-backend/services"
	"reservapro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview runs the auto-archive sweep, then partitions the
// workspace's reservations into the action lists and computes the counters.
func GetDashboardOverview(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	// Best-effort sweep, mirroring the old dashboard-mount behavior. A
	// failure here never blocks the dashboard itself.
	sweep := services.NewSweepService(config.DB)
	if n, err := sweep.Run(workspaceID); err != nil {
		log.Printf("Dashboard sweep failed for workspace %s: %v", workspaceID, err)
	} else if n > 0 {
		log.Printf("Dashboard sweep archived %d stale reservations in workspace %s", n, workspaceID)
	}

	var customers []models.Customer
	if err := config.DB.Where("workspace_id = ?", workspaceID).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	now := time.Now()
	lists := metrics.Partition(customers, now)
	summary := metrics.Summarize(lists, now)

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"lists":   lists,
	})
}
