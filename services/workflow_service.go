// services/workflow_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"reservapro-backend/models"
	"reservapro-backend/notify"
	"reservapro-backend/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConflict means the record changed between read and write; the caller
// must reload and retry. No automatic retry happens anywhere.
var ErrConflict = errors.New("services: reservation was modified concurrently")

// WorkflowService applies state-machine transitions to stored reservations:
// load, transition in memory, persist under a version check, then compose
// the WhatsApp notification the transition calls for.
type WorkflowService struct {
	db       *gorm.DB
	composer *notify.Composer
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db, composer: notify.NewComposer(db)}
}

// Result is a transition outcome: the updated record plus, when the
// transition composes a message, the wa.me link to open.
type Result struct {
	Customer     models.Customer      `json:"customer"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

// SaleInput optionally captures payment details when completing an order.
type SaleInput struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Discount      float64 `json:"discount" binding:"gte=0"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

func (s *WorkflowService) load(workspaceID string, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.Where("workspace_id = ? AND id = ?", workspaceID, id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// persistWorkflow writes every workflow column guarded by the version the
// record carried when it was read. Zero rows affected means a lost race.
func persistWorkflow(db *gorm.DB, c *models.Customer, prevVersion int) error {
	res := db.Model(&models.Customer{}).
		Where("id = ? AND version = ?", c.ID, prevVersion).
		Updates(map[string]interface{}{
			"status":           c.Status,
			"consulting_store": c.ConsultingStore,
			"store_has_stock":  c.StoreHasStock,
			"source_store":     c.SourceStore,
			"archived":         c.Archived,
			"archive_reason":   c.ArchiveReason,
			"notes":            c.Notes,
			"contacted_at":     c.ContactedAt,
			"transferred_at":   c.TransferredAt,
			"completed_at":     c.CompletedAt,
			"archived_at":      c.ArchivedAt,
			"version":          prevVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	c.Version = prevVersion + 1
	return nil
}

// recordNotification appends to the composition audit log. Failures are
// logged and swallowed: the transition already committed.
func (s *WorkflowService) recordNotification(c *models.Customer, n notify.Notification) {
	entry := models.NotificationLog{
		WorkspaceID: c.WorkspaceID,
		CustomerID:  c.ID,
		Kind:        n.Kind,
		Recipient:   n.Recipient,
		Message:     n.Message,
		URL:         n.URL,
		ComposedAt:  time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for customer %s: %v", c.ID, err)
	}
}

// CheckStore starts a consultation with the sibling store and composes the
// availability inquiry addressed to that store's WhatsApp number.
func (s *WorkflowService) CheckStore(workspaceID string, id uuid.UUID, store models.Store) (*Result, error) {
	c, err := s.load(workspaceID, id)
	if err != nil {
		return nil, err
	}
	prev := c.Version
	if err := workflow.CheckStore(c, store); err != nil {
		return nil, err
	}
	if err := persistWorkflow(s.db, c, prev); err != nil {
		return nil, err
	}

	result := &Result{Customer: *c}
	var ws models.Workspace
	if err := s.db.First(&ws, "id = ?", string(store)).Error; err != nil {
		log.Printf("Customer %s: consulted store %s has no workspace row, skipping inquiry: %v", c.ID, store, err)
		return result, nil
	}
	if !ws.WhatsAppNotifications {
		return result, nil
	}
	n, err := s.composer.StoreInquiry(c, ws)
	if err != nil {
		log.Printf("Customer %s: failed to compose store inquiry: %v", c.ID, err)
		return result, nil
	}
	s.recordNotification(c, n)
	result.Notification = &n
	return result, nil
}

// ConfirmStoreStock records stock at the consulted store and composes the
// transfer offer addressed to the customer.
func (s *WorkflowService) ConfirmStoreStock(workspaceID string, id uuid.UUID) (*Result, error) {
	c, err := s.load(workspaceID, id)
	if err != nil {
		return nil, err
	}
	prev := c.Version
	if err := workflow.ConfirmStoreStock(c); err != nil {
		return nil, err
	}
	if err := persistWorkflow(s.db, c, prev); err != nil {
		return nil, err
	}

	result := &Result{Customer: *c}
	storeName := ""
	if c.ConsultingStore != nil {
		var ws models.Workspace
		if err := s.db.First(&ws, "id = ?", string(*c.ConsultingStore)).Error; err == nil {
			storeName = ws.Name
		}
	}
	n, err := s.composer.TransferOffer(c, storeName)
	if err != nil {
		log.Printf("Customer %s: failed to compose transfer offer: %v", c.ID, err)
		return result, nil
	}
	s.recordNotification(c, n)
	result.Notification = &n
	return result, nil
}

// RejectStoreStock clears the consultation; no notification.
func (s *WorkflowService) RejectStoreStock(workspaceID string, id uuid.UUID) (*Result, error) {
	return s.apply(workspaceID, id, workflow.RejectStoreStock)
}

// AcceptTransfer moves the reservation to awaitingTransfer.
func (s *WorkflowService) AcceptTransfer(workspaceID string, id uuid.UUID) (*Result, error) {
	return s.apply(workspaceID, id, func(c *models.Customer) error {
		return workflow.AcceptTransfer(c, time.Now())
	})
}

// DeclineTransfer archives the reservation without advancing the machine.
func (s *WorkflowService) DeclineTransfer(workspaceID string, id uuid.UUID, reason models.ArchiveReason, notes string) (*Result, error) {
	return s.apply(workspaceID, id, func(c *models.Customer) error {
		return workflow.DeclineTransfer(c, reason, notes, time.Now())
	})
}

// ProductArrived marks the pair ready for pickup and composes the pickup
// notification addressed to the customer.
func (s *WorkflowService) ProductArrived(workspaceID string, id uuid.UUID) (*Result, error) {
	result, err := s.apply(workspaceID, id, func(c *models.Customer) error {
		return workflow.ProductArrived(c, time.Now())
	})
	if err != nil {
		return nil, err
	}
	n, nerr := s.composer.ReadyForPickup(&result.Customer)
	if nerr != nil {
		log.Printf("Customer %s: failed to compose pickup notification: %v", result.Customer.ID, nerr)
		return result, nil
	}
	s.recordNotification(&result.Customer, n)
	result.Notification = &n
	return result, nil
}

// CompleteOrder closes the reservation as sold and, when payment details are
// provided, writes the sale record.
func (s *WorkflowService) CompleteOrder(workspaceID string, id uuid.UUID, userID uuid.UUID, sale *SaleInput) (*Result, error) {
	result, err := s.apply(workspaceID, id, func(c *models.Customer) error {
		return workflow.Complete(c, time.Now())
	})
	if err != nil {
		return nil, err
	}
	if sale != nil {
		record := models.Sale{
			WorkspaceID:     workspaceID,
			CustomerID:      result.Customer.ID,
			CreatedByUserID: userID,
			SaleNumber:      newSaleNumber(),
			SaleDate:        time.Now(),
			Amount:          sale.Amount,
			Discount:        sale.Discount,
			Total:           sale.Amount - sale.Discount,
			PaymentMethod:   sale.PaymentMethod,
			Notes:           sale.Notes,
		}
		if err := s.db.Create(&record).Error; err != nil {
			log.Printf("Customer %s: completed but sale record failed: %v", result.Customer.ID, err)
		}
	}
	return result, nil
}

// Archive removes the reservation from the active flow.
func (s *WorkflowService) Archive(workspaceID string, id uuid.UUID, reason models.ArchiveReason, notes string) (*Result, error) {
	return s.apply(workspaceID, id, func(c *models.Customer) error {
		return workflow.Archive(c, reason, notes, time.Now())
	})
}

// Restore brings an archived reservation back at the pickup stage.
func (s *WorkflowService) Restore(workspaceID string, id uuid.UUID) (*Result, error) {
	return s.apply(workspaceID, id, func(c *models.Customer) error {
		return workflow.Restore(c, time.Now())
	})
}

// ResetToInitial returns the reservation to bare pending.
func (s *WorkflowService) ResetToInitial(workspaceID string, id uuid.UUID) (*Result, error) {
	return s.apply(workspaceID, id, workflow.ResetToInitial)
}

// UpdateNotes edits the free-text notes. Only the notes column is written,
// so a workflow transition committing in between is never reverted.
func (s *WorkflowService) UpdateNotes(workspaceID string, id uuid.UUID, notes string) (*models.Customer, error) {
	if _, err := s.load(workspaceID, id); err != nil {
		return nil, err
	}
	res := s.db.Model(&models.Customer{}).
		Where("workspace_id = ? AND id = ?", workspaceID, id).
		Update("notes", notes)
	if res.Error != nil {
		return nil, res.Error
	}
	return s.load(workspaceID, id)
}

// PermanentDelete hard-deletes an archived reservation. Active and completed
// records cannot be deleted.
func (s *WorkflowService) PermanentDelete(workspaceID string, id uuid.UUID) error {
	c, err := s.load(workspaceID, id)
	if err != nil {
		return err
	}
	if !c.Archived {
		return workflow.ErrNotArchived
	}
	return s.db.Where("workspace_id = ? AND id = ?", workspaceID, id).
		Delete(&models.Customer{}).Error
}

func (s *WorkflowService) apply(workspaceID string, id uuid.UUID, transition func(*models.Customer) error) (*Result, error) {
	c, err := s.load(workspaceID, id)
	if err != nil {
		return nil, err
	}
	prev := c.Version
	if err := transition(c); err != nil {
		return nil, err
	}
	if err := persistWorkflow(s.db, c, prev); err != nil {
		return nil, err
	}
	return &Result{Customer: *c}, nil
}

func newSaleNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("VND-%s-%s", time.Now().Format("20060102"), suffix)
}
