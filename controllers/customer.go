package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"reservapro-backend/config"
	"reservapro-backend/metrics"
	"reservapro-backend/models"
	"reservapro-backend/services"
	"reservapro-backend/utils"
	"reservapro-backend/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for registering a
// reservation. These attributes are immutable after creation.
type CreateCustomerInput struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Reference   string `json:"reference"`
	Size        string `json:"size" binding:"required"`
	Color       string `json:"color"`
	Salesperson string `json:"salesperson"`
	Notes       string `json:"notes"`
}

// UpdateCustomerInput allows editing the free-text notes only; the request
// attributes and workflow fields have dedicated paths.
type UpdateCustomerInput struct {
	Notes *string `json:"notes"`
}

// CreateCustomer registers a new reservation (status=pending).
func CreateCustomer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	userID, ok := contextUserID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.Customer{
		WorkspaceID:     workspaceID,
		CreatedByUserID: userID,
		Name:            input.Name,
		Phone:           input.Phone,
		Model:           input.Model,
		Reference:       input.Reference,
		Size:            input.Size,
		Color:           input.Color,
		Salesperson:     input.Salesperson,
		Notes:           input.Notes,
		Status:          models.StatusPending,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves the workspace's reservations. Optional filters:
// ?q= matches name, phone, model or reference; ?status= filters the
// lifecycle state; ?archived=true switches to the archived set.
func GetCustomers(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}

	query := config.DB.Where("workspace_id = ?", workspaceID)

	if c.Query("archived") == "true" {
		query = query.Where("archived = ?", true)
	} else {
		query = query.Where("archived = ?", false)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		// Phones are stored as bare digits; strip formatting from the query
		// so "(11) 98765" still matches.
		phoneLike := "%" + q + "%"
		if digits := utils.DigitsOnly(q); digits != "" {
			phoneLike = "%" + digits + "%"
		}
		query = query.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(model) LIKE ? OR LOWER(reference) LIKE ?",
			like, phoneLike, like, like,
		)
	}

	var customers []models.Customer
	if err := query.Order("created_at ASC").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	now := time.Now()
	type row struct {
		models.Customer
		DaysWaiting int `json:"daysWaiting"`
	}
	rows := make([]row, 0, len(customers))
	for _, cust := range customers {
		rows = append(rows, row{Customer: cust, DaysWaiting: metrics.DaysWaiting(cust.CreatedAt, now)})
	}

	c.JSON(http.StatusOK, rows)
}

// GetCustomer retrieves a specific reservation by ID
func GetCustomer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer edits the reservation's notes. Only the notes column is
// touched: a full-row save here could silently roll back a workflow
// transition that committed after the load.
func UpdateCustomer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Notes == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	svc := services.NewWorkflowService(config.DB)
	customer, err := svc.UpdateNotes(workspaceID, customerUUID, *input.Notes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer permanently deletes an archived reservation. Live and
// completed records are refused.
func DeleteCustomer(c *gin.Context) {
	workspaceID, ok := contextWorkspace(c)
	if !ok {
		return
	}
	customerUUID, ok := customerIDParam(c)
	if !ok {
		return
	}

	svc := services.NewWorkflowService(config.DB)
	if err := svc.PermanentDelete(workspaceID, customerUUID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		case errors.Is(err, workflow.ErrNotArchived):
			utils.RespondWithError(c, http.StatusConflict, "Only archived customers can be permanently deleted")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted permanently"})
}
