package controllers

import (
	"errors"
	"net/http"

	"reservapro-backend/config"
	"reservapro-backend/models"
	"reservapro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateWorkspaceInput struct {
	Name                  *string `json:"name"`
	Phone                 *string `json:"phone"`
	WhatsAppNotifications *bool   `json:"whatsappNotifications"`
}

type UpdateTemplateInput struct {
	Kind     models.MessageKind `json:"kind" binding:"required,oneof=store_inquiry transfer_offer ready_for_pickup"`
	Body     string             `json:"body" binding:"required"`
	IsActive *bool              `json:"isActive"`
}

// GetProfile returns the workspace settings and its message templates.
func GetProfile(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load workspace")
		return
	}

	var templates []models.MessageTemplate
	if err := config.DB.Where("workspace_id = ?", workspaceID).Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load templates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workspace": workspace,
		"templates": templates,
	})
}

// UpdateWorkspaceProfile edits the store's display name, WhatsApp number and
// notification toggle. The workspace set itself is fixed.
func UpdateWorkspaceProfile(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	var input UpdateWorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load workspace")
		return
	}

	if input.Name != nil {
		workspace.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		workspace.Phone = utils.DigitsOnly(*input.Phone)
	}
	if input.WhatsAppNotifications != nil {
		workspace.WhatsAppNotifications = *input.WhatsAppNotifications
	}

	if err := config.DB.Save(&workspace).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, workspace)
}

// UpdateMessageTemplate upserts a per-workspace notification template.
func UpdateMessageTemplate(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.MessageTemplate
	err := config.DB.Where("workspace_id = ? AND kind = ?", workspaceID, input.Kind).
		First(&template).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		template = models.MessageTemplate{
			WorkspaceID: workspaceID,
			Kind:        input.Kind,
			IsActive:    true,
		}
	}

	template.Body = input.Body
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save template")
		return
	}

	c.JSON(http.StatusOK, template)
}
