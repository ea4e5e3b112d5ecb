// Package workflow holds the reservation state machine. Every transition is
// a pure precondition check plus an in-memory mutation; persistence and
// notification side effects belong to the service layer.
package workflow

import (
	"errors"
	"time"

	"reservapro-backend/models"
)

var (
	// ErrCompleted rejects any transition on a completed reservation.
	ErrCompleted = errors.New("workflow: reservation already completed")
	// ErrArchived rejects forward transitions on an archived reservation.
	ErrArchived = errors.New("workflow: reservation is archived")
	// ErrNotArchived rejects restore on a live reservation.
	ErrNotArchived = errors.New("workflow: reservation is not archived")
	// ErrInvalidTransition rejects a transition whose precondition fails.
	ErrInvalidTransition = errors.New("workflow: transition not allowed in current state")
	// ErrInvalidStore rejects an unknown or own-workspace consulting store.
	ErrInvalidStore = errors.New("workflow: invalid consulting store")
	// ErrInvalidReason rejects an archive reason outside the fixed enum.
	ErrInvalidReason = errors.New("workflow: invalid archive reason")
)

// guardActive rejects transitions on terminal records.
func guardActive(c *models.Customer) error {
	if c.Archived {
		return ErrArchived
	}
	if c.Status == models.StatusCompleted {
		return ErrCompleted
	}
	return nil
}

// CheckStore starts a stock consultation with the sibling store.
// pending, no consultation in progress.
func CheckStore(c *models.Customer, store models.Store) error {
	if err := guardActive(c); err != nil {
		return err
	}
	if !models.ValidConsultingStore(store) || string(store) == c.WorkspaceID {
		return ErrInvalidStore
	}
	if c.Status != models.StatusPending || c.ConsultingStore != nil {
		return ErrInvalidTransition
	}
	c.ConsultingStore = &store
	return nil
}

// ConfirmStoreStock records that the consulted store has the pair.
func ConfirmStoreStock(c *models.Customer) error {
	if err := guardActive(c); err != nil {
		return err
	}
	if c.Status != models.StatusPending || c.ConsultingStore == nil {
		return ErrInvalidTransition
	}
	yes := true
	c.StoreHasStock = &yes
	return nil
}

// RejectStoreStock records that the consulted store does not have the pair
// and returns the reservation to the bare pending sub-state.
func RejectStoreStock(c *models.Customer) error {
	if err := guardActive(c); err != nil {
		return err
	}
	if c.Status != models.StatusPending || c.ConsultingStore == nil {
		return ErrInvalidTransition
	}
	no := false
	c.ConsultingStore = nil
	c.StoreHasStock = &no
	return nil
}

// AcceptTransfer moves the reservation into awaitingTransfer once the
// customer accepted the offer. The consulting store becomes the source store.
func AcceptTransfer(c *models.Customer, now time.Time) error {
	if err := guardActive(c); err != nil {
		return err
	}
	if c.Status != models.StatusPending || c.ConsultingStore == nil ||
		c.StoreHasStock == nil || !*c.StoreHasStock {
		return ErrInvalidTransition
	}
	source := *c.ConsultingStore
	c.Status = models.StatusAwaitingTransfer
	c.SourceStore = &source
	c.TransferredAt = &now
	c.ConsultingStore = nil
	c.StoreHasStock = nil
	return nil
}

// ProductArrived moves an awaited transfer to readyForPickup and stamps the
// moment the customer was contacted.
func ProductArrived(c *models.Customer, now time.Time) error {
	if err := guardActive(c); err != nil {
		return err
	}
	if c.Status != models.StatusAwaitingTransfer {
		return ErrInvalidTransition
	}
	c.Status = models.StatusReadyForPickup
	c.ContactedAt = &now
	return nil
}

// Complete closes the reservation as sold. Terminal: no transition accepts a
// completed record afterwards. A reservation that never transferred is
// stamped as sold from local stock.
func Complete(c *models.Customer, now time.Time) error {
	if err := guardActive(c); err != nil {
		return err
	}
	if c.Status != models.StatusReadyForPickup {
		return ErrInvalidTransition
	}
	c.Status = models.StatusCompleted
	c.CompletedAt = &now
	if c.SourceStore == nil {
		local := models.LocalStore
		c.SourceStore = &local
	}
	return nil
}

// Archive removes the reservation from the active flow. Allowed from any
// non-completed state; archived implies reason and timestamp are both set.
func Archive(c *models.Customer, reason models.ArchiveReason, notes string, now time.Time) error {
	if c.Status == models.StatusCompleted {
		return ErrCompleted
	}
	if c.Archived {
		return ErrArchived
	}
	if !models.ValidArchiveReason(reason) {
		return ErrInvalidReason
	}
	c.Archived = true
	c.ArchiveReason = &reason
	c.ArchivedAt = &now
	if notes != "" {
		c.Notes = notes
	}
	return nil
}

// DeclineTransfer archives a reservation whose customer refused the offer.
// It does not advance the state machine.
func DeclineTransfer(c *models.Customer, reason models.ArchiveReason, notes string, now time.Time) error {
	if reason == "" {
		reason = models.ReasonCustomerDeclined
	}
	return Archive(c, reason, notes, now)
}

// Restore brings an archived reservation back, re-entering the flow at the
// pickup stage. Prior transfer history is not reconstructed.
func Restore(c *models.Customer, now time.Time) error {
	if !c.Archived {
		return ErrNotArchived
	}
	c.Archived = false
	c.ArchiveReason = nil
	c.ArchivedAt = nil
	c.Status = models.StatusReadyForPickup
	c.ContactedAt = &now
	return nil
}

// ResetToInitial clears all workflow progress and returns the reservation to
// bare pending. Requires some progress to exist.
func ResetToInitial(c *models.Customer) error {
	if err := guardActive(c); err != nil {
		return err
	}
	if c.Status == models.StatusPending && c.ConsultingStore == nil &&
		c.StoreHasStock == nil && c.SourceStore == nil &&
		c.TransferredAt == nil && c.ContactedAt == nil {
		return ErrInvalidTransition
	}
	c.Status = models.StatusPending
	c.ConsultingStore = nil
	c.StoreHasStock = nil
	c.SourceStore = nil
	c.TransferredAt = nil
	c.ContactedAt = nil
	return nil
}
