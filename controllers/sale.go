package controllers

import (
	"net/http"

	"reservapro-backend/config"
	"reservapro-backend/models"
	"reservapro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetSales lists the workspace's sale records, newest first. Sales are only
// created through completeOrder; there is no standalone sale entry form.
func GetSales(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	var sales []models.Sale
	if err := config.DB.Where("workspace_id = ?", workspaceID).
		Order("sale_date DESC").Find(&sales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sales")
		return
	}

	var total float64
	config.DB.Model(&models.Sale{}).
		Where("workspace_id = ?", workspaceID).
		Select("COALESCE(SUM(total), 0)").Scan(&total)

	c.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"total": total,
	})
}
