package workflow

import (
	"testing"
	"time"

	"reservapro-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer() *models.Customer {
	return &models.Customer{
		ID:          uuid.New(),
		WorkspaceID: string(models.StoreA),
		Name:        "Maria Souza",
		Phone:       "5511987654321",
		Model:       "Nike Air Max 90",
		Reference:   "AM90-123",
		Size:        "37",
		Color:       "branco",
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
		Version:     1,
	}
}

func TestCheckStore(t *testing.T) {
	c := newCustomer()

	require.NoError(t, CheckStore(c, models.StoreB))
	require.NotNil(t, c.ConsultingStore)
	assert.Equal(t, models.StoreB, *c.ConsultingStore)
	assert.Equal(t, models.StatusPending, c.Status)

	// A second consultation cannot start while one is in progress
	assert.ErrorIs(t, CheckStore(c, models.StoreB), ErrInvalidTransition)
}

func TestCheckStoreRejectsOwnAndUnknownStore(t *testing.T) {
	c := newCustomer()
	assert.ErrorIs(t, CheckStore(c, models.StoreA), ErrInvalidStore)
	assert.ErrorIs(t, CheckStore(c, models.LocalStore), ErrInvalidStore)
	assert.ErrorIs(t, CheckStore(c, models.Store("StoreC")), ErrInvalidStore)
}

func TestConfirmAndRejectStoreStock(t *testing.T) {
	c := newCustomer()

	// Neither applies without a consultation in progress
	assert.ErrorIs(t, ConfirmStoreStock(c), ErrInvalidTransition)
	assert.ErrorIs(t, RejectStoreStock(c), ErrInvalidTransition)

	require.NoError(t, CheckStore(c, models.StoreB))
	require.NoError(t, ConfirmStoreStock(c))
	require.NotNil(t, c.StoreHasStock)
	assert.True(t, *c.StoreHasStock)

	// Rejection returns to the bare pending sub-state
	c2 := newCustomer()
	require.NoError(t, CheckStore(c2, models.StoreB))
	require.NoError(t, RejectStoreStock(c2))
	assert.Nil(t, c2.ConsultingStore)
	require.NotNil(t, c2.StoreHasStock)
	assert.False(t, *c2.StoreHasStock)
	assert.Equal(t, models.StatusPending, c2.Status)
}

func TestAcceptTransfer(t *testing.T) {
	now := time.Now()
	c := newCustomer()
	require.NoError(t, CheckStore(c, models.StoreB))
	require.NoError(t, ConfirmStoreStock(c))

	require.NoError(t, AcceptTransfer(c, now))
	assert.Equal(t, models.StatusAwaitingTransfer, c.Status)
	require.NotNil(t, c.SourceStore)
	assert.Equal(t, models.StoreB, *c.SourceStore)
	assert.Nil(t, c.ConsultingStore)
	assert.Nil(t, c.StoreHasStock)
	require.NotNil(t, c.TransferredAt)
	assert.Equal(t, now, *c.TransferredAt)
}

func TestAcceptTransferRequiresConfirmedStock(t *testing.T) {
	c := newCustomer()
	assert.ErrorIs(t, AcceptTransfer(c, time.Now()), ErrInvalidTransition)

	require.NoError(t, CheckStore(c, models.StoreB))
	assert.ErrorIs(t, AcceptTransfer(c, time.Now()), ErrInvalidTransition)
}

func TestProductArrived(t *testing.T) {
	now := time.Now()
	c := newCustomer()
	require.NoError(t, CheckStore(c, models.StoreB))
	require.NoError(t, ConfirmStoreStock(c))
	require.NoError(t, AcceptTransfer(c, now))

	require.NoError(t, ProductArrived(c, now))
	assert.Equal(t, models.StatusReadyForPickup, c.Status)
	require.NotNil(t, c.ContactedAt)

	// Only an awaited transfer can arrive
	c2 := newCustomer()
	assert.ErrorIs(t, ProductArrived(c2, now), ErrInvalidTransition)
}

func TestCompleteIsTerminal(t *testing.T) {
	now := time.Now()
	c := newCustomer()
	require.NoError(t, CheckStore(c, models.StoreB))
	require.NoError(t, ConfirmStoreStock(c))
	require.NoError(t, AcceptTransfer(c, now))
	require.NoError(t, ProductArrived(c, now))
	require.NoError(t, Complete(c, now))

	assert.Equal(t, models.StatusCompleted, c.Status)
	require.NotNil(t, c.CompletedAt)

	// No transition may alter a completed record
	assert.ErrorIs(t, CheckStore(c, models.StoreB), ErrCompleted)
	assert.ErrorIs(t, ConfirmStoreStock(c), ErrCompleted)
	assert.ErrorIs(t, AcceptTransfer(c, now), ErrCompleted)
	assert.ErrorIs(t, ProductArrived(c, now), ErrCompleted)
	assert.ErrorIs(t, Complete(c, now), ErrCompleted)
	assert.ErrorIs(t, Archive(c, models.ReasonOther, "", now), ErrCompleted)
	assert.ErrorIs(t, ResetToInitial(c), ErrCompleted)
	assert.Equal(t, models.StatusCompleted, c.Status)
}

func TestCompleteDefaultsToLocalStock(t *testing.T) {
	now := time.Now()
	c := newCustomer()
	c.Status = models.StatusReadyForPickup

	require.NoError(t, Complete(c, now))
	require.NotNil(t, c.SourceStore)
	assert.Equal(t, models.LocalStore, *c.SourceStore)
	assert.False(t, c.Transferred())
}

func TestArchiveSetsReasonAndTimestamp(t *testing.T) {
	now := time.Now()
	c := newCustomer()

	require.NoError(t, Archive(c, models.ReasonNoStock, "sem numeração", now))
	assert.True(t, c.Archived)
	require.NotNil(t, c.ArchiveReason)
	assert.Equal(t, models.ReasonNoStock, *c.ArchiveReason)
	require.NotNil(t, c.ArchivedAt)
	assert.Equal(t, "sem numeração", c.Notes)

	assert.ErrorIs(t, Archive(c, models.ReasonOther, "", now), ErrArchived)
	assert.ErrorIs(t, CheckStore(c, models.StoreB), ErrArchived)
}

func TestArchiveRejectsUnknownReason(t *testing.T) {
	c := newCustomer()
	assert.ErrorIs(t, Archive(c, models.ArchiveReason("whatever"), "", time.Now()), ErrInvalidReason)
	assert.False(t, c.Archived)
}

func TestDeclineTransferDefaultsReason(t *testing.T) {
	c := newCustomer()
	require.NoError(t, CheckStore(c, models.StoreB))
	require.NoError(t, ConfirmStoreStock(c))

	require.NoError(t, DeclineTransfer(c, "", "cliente desistiu", time.Now()))
	assert.True(t, c.Archived)
	require.NotNil(t, c.ArchiveReason)
	assert.Equal(t, models.ReasonCustomerDeclined, *c.ArchiveReason)
}

func TestRestore(t *testing.T) {
	now := time.Now()
	c := newCustomer()
	require.NoError(t, Archive(c, models.ReasonOther, "", now))

	require.NoError(t, Restore(c, now))
	assert.False(t, c.Archived)
	assert.Nil(t, c.ArchiveReason)
	assert.Nil(t, c.ArchivedAt)
	assert.Equal(t, models.StatusReadyForPickup, c.Status)
	require.NotNil(t, c.ContactedAt)

	assert.ErrorIs(t, Restore(c, now), ErrNotArchived)
}

func TestResetToInitial(t *testing.T) {
	now := time.Now()
	c := newCustomer()

	// No progress yet, nothing to reset
	assert.ErrorIs(t, ResetToInitial(c), ErrInvalidTransition)

	require.NoError(t, CheckStore(c, models.StoreB))
	require.NoError(t, ConfirmStoreStock(c))
	require.NoError(t, AcceptTransfer(c, now))
	require.NoError(t, ProductArrived(c, now))

	require.NoError(t, ResetToInitial(c))
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Nil(t, c.ConsultingStore)
	assert.Nil(t, c.StoreHasStock)
	assert.Nil(t, c.SourceStore)
	assert.Nil(t, c.TransferredAt)
	assert.Nil(t, c.ContactedAt)
}
