package controllers

import (
	"net/http"

	"reservapro-backend/config"
	"reservapro-backend/models"
	"reservapro-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct{}

type archiveReasonRow struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

type monthlyRow struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// GetReportAnalytics aggregates the workspace's history: archive reasons,
// completions per month and how many sales came from a transfer.
func (r ReportController) GetReportAnalytics(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	var reasons []archiveReasonRow
	if err := config.DB.Raw(`
        SELECT archive_reason AS reason, COUNT(*) AS count
        FROM customers
        WHERE workspace_id = ? AND archived = true
        GROUP BY archive_reason
        ORDER BY count DESC
    `, workspaceID).Scan(&reasons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get archive breakdown")
		return
	}

	var completions []monthlyRow
	if err := config.DB.Raw(`
        SELECT TO_CHAR(completed_at, 'YYYY-MM') AS month, COUNT(*) AS count
        FROM customers
        WHERE workspace_id = ? AND status = ? AND completed_at IS NOT NULL
        GROUP BY TO_CHAR(completed_at, 'YYYY-MM')
        ORDER BY month DESC
        LIMIT 12
    `, workspaceID, models.StatusCompleted).Scan(&completions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get completion history")
		return
	}

	var transferred int64
	config.DB.Model(&models.Customer{}).
		Where("workspace_id = ? AND status = ? AND source_store IS NOT NULL AND source_store <> ?",
			workspaceID, models.StatusCompleted, models.LocalStore).
		Count(&transferred)

	var totalRevenue float64
	config.DB.Model(&models.Sale{}).
		Where("workspace_id = ?", workspaceID).
		Select("COALESCE(SUM(total), 0)").Scan(&totalRevenue)

	c.JSON(http.StatusOK, gin.H{
		"archiveReasons":       reasons,
		"completionsByMonth":   completions,
		"completedViaTransfer": transferred,
		"totalRevenue":         totalRevenue,
	})
}
