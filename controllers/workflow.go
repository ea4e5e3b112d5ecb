package controllers

import (
	"errors"
	"net/http"

	"reservapro-backend/config"
	"reservapro-backend/models"
	"reservapro-backend/services"
	"reservapro-backend/utils"
	"reservapro-backend/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Workflow endpoints: one POST per state-machine transition. Responses carry
// the updated record and, when the transition composes a WhatsApp message,
// the wa.me link for the operator to open.

type CheckStoreInput struct {
	Store models.Store `json:"store" binding:"required"`
}

type ArchiveInput struct {
	Reason models.ArchiveReason `json:"reason" binding:"required"`
	Notes  string               `json:"notes"`
}

type DeclineTransferInput struct {
	Reason models.ArchiveReason `json:"reason"`
	Notes  string               `json:"notes"`
}

type CompleteOrderInput struct {
	Sale *services.SaleInput `json:"sale"`
}

func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, workflow.ErrInvalidStore):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid store")
	case errors.Is(err, workflow.ErrInvalidReason):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid archive reason")
	case errors.Is(err, workflow.ErrCompleted):
		utils.RespondWithError(c, http.StatusConflict, "Reservation is already completed")
	case errors.Is(err, workflow.ErrArchived):
		utils.RespondWithError(c, http.StatusConflict, "Reservation is archived")
	case errors.Is(err, workflow.ErrNotArchived):
		utils.RespondWithError(c, http.StatusConflict, "Reservation is not archived")
	case errors.Is(err, workflow.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, "Action not allowed in the current stage")
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "Reservation was changed by someone else, reload and try again")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// CheckStore starts the stock consultation with the sibling store.
func CheckStore(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var input CheckStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.CheckStore(workspaceID, customerUUID, input.Store)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmStoreStock records that the consulted store has the pair.
func ConfirmStoreStock(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.ConfirmStoreStock(workspaceID, customerUUID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RejectStoreStock records that the consulted store has no stock.
func RejectStoreStock(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.RejectStoreStock(workspaceID, customerUUID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AcceptTransfer moves the reservation to awaitingTransfer.
func AcceptTransfer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.AcceptTransfer(workspaceID, customerUUID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeclineTransfer archives the reservation after the customer refused.
func DeclineTransfer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var input DeclineTransferInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.DeclineTransfer(workspaceID, customerUUID, input.Reason, input.Notes)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProductArrived marks the transferred pair ready for pickup.
func ProductArrived(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.ProductArrived(workspaceID, customerUUID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompleteOrder closes the reservation as sold.
func CompleteOrder(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	userID, ok := contextUserID(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var input CompleteOrderInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.CompleteOrder(workspaceID, customerUUID, userID, input.Sale)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ArchiveCustomer removes the reservation from the active flow.
func ArchiveCustomer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var input ArchiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.Archive(workspaceID, customerUUID, input.Reason, input.Notes)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RestoreCustomer brings an archived reservation back at the pickup stage.
func RestoreCustomer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.Restore(workspaceID, customerUUID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ResetCustomer clears all workflow progress back to bare pending.
func ResetCustomer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	svc := services.NewWorkflowService(config.DB)
	result, err := svc.ResetToInitial(workspaceID, customerUUID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
