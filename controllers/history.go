package controllers

import (
	"net/http"
	"time"

	"reservapro-backend/config"
	"reservapro-backend/metrics"
	"reservapro-backend/models"
	"reservapro-backend/utils"

	"github.com/gin-gonic/gin"
)

// History views: finalized (completed) and archived reservations, oldest
// request first. Restore and permanent delete act on the archived view.

func GetFinalizedHistory(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := config.DB.Where("workspace_id = ? AND archived = ? AND status = ?",
		workspaceID, false, models.StatusCompleted).
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, sortedByWait(customers))
}

func GetArchivedHistory(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	query := config.DB.Where("workspace_id = ? AND archived = ?", workspaceID, true)
	if reason := c.Query("reason"); reason != "" {
		query = query.Where("archive_reason = ?", reason)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, sortedByWait(customers))
}

func sortedByWait(customers []models.Customer) []models.Customer {
	now := time.Now()
	lists := metrics.Partition(customers, now)
	// Partition sorts each bucket oldest first; rejoin in lifecycle order.
	out := make([]models.Customer, 0, len(customers))
	out = append(out, lists.Archived...)
	out = append(out, lists.Finalized...)
	out = append(out, lists.AwaitingTransfer...)
	out = append(out, lists.ReadyForPickup...)
	out = append(out, lists.LongWait...)
	out = append(out, lists.Awaiting...)
	return out
}
