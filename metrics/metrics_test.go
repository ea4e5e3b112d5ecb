package metrics

import (
	"testing"
	"time"

	"reservapro-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingCustomer(createdAt time.Time) models.Customer {
	return models.Customer{
		ID:          uuid.New(),
		WorkspaceID: string(models.StoreA),
		Name:        "Cliente",
		Status:      models.StatusPending,
		CreatedAt:   createdAt,
	}
}

func TestDaysWaiting(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 0, DaysWaiting(now, now))
	assert.Equal(t, 30, DaysWaiting(now.Add(-30*24*time.Hour), now))
	// Partial days round up
	assert.Equal(t, 1, DaysWaiting(now.Add(-time.Hour), now))
	assert.Equal(t, 15, DaysWaiting(now.Add(-14*24*time.Hour-time.Minute), now))
	// Clock skew (createdAt slightly in the future) must not go negative
	assert.Equal(t, 1, DaysWaiting(now.Add(time.Hour), now))
}

func TestPartitionLifecycleBucketsAreExclusive(t *testing.T) {
	now := time.Now()
	storeB := models.StoreB
	local := models.LocalStore

	awaiting := pendingCustomer(now.Add(-24 * time.Hour))
	longWait := pendingCustomer(now.Add(-31 * 24 * time.Hour))

	transferring := pendingCustomer(now.Add(-5 * 24 * time.Hour))
	transferring.Status = models.StatusAwaitingTransfer
	transferring.SourceStore = &storeB

	ready := pendingCustomer(now.Add(-8 * 24 * time.Hour))
	ready.Status = models.StatusReadyForPickup
	ready.SourceStore = &storeB

	done := pendingCustomer(now.Add(-10 * 24 * time.Hour))
	done.Status = models.StatusCompleted
	done.SourceStore = &local

	reason := models.ReasonOther
	archived := pendingCustomer(now.Add(-40 * 24 * time.Hour))
	archived.Archived = true
	archived.ArchiveReason = &reason

	all := []models.Customer{awaiting, longWait, transferring, ready, done, archived}
	lists := Partition(all, now)

	assert.Len(t, lists.Awaiting, 1)
	assert.Len(t, lists.LongWait, 1)
	assert.Len(t, lists.AwaitingTransfer, 1)
	assert.Len(t, lists.ReadyForPickup, 1)
	assert.Len(t, lists.Finalized, 1)
	assert.Len(t, lists.Archived, 1)

	// Every customer lands in exactly one lifecycle bucket
	seen := map[uuid.UUID]int{}
	for _, list := range [][]models.Customer{
		lists.Awaiting, lists.LongWait, lists.AwaitingTransfer,
		lists.ReadyForPickup, lists.Finalized, lists.Archived,
	} {
		for _, c := range list {
			seen[c.ID]++
		}
	}
	require.Len(t, seen, len(all))
	for id, count := range seen {
		assert.Equal(t, 1, count, "customer %s appears in %d buckets", id, count)
	}

	// Transfer is a tag, not a lifecycle bucket: it overlaps
	assert.Len(t, lists.Transfer, 2)
}

func TestPartitionFreshCustomer(t *testing.T) {
	now := time.Now()
	c := pendingCustomer(now)

	lists := Partition([]models.Customer{c}, now)
	require.Len(t, lists.Awaiting, 1)
	assert.Empty(t, lists.LongWait)
	assert.Empty(t, lists.Transfer)
	assert.LessOrEqual(t, DaysWaiting(c.CreatedAt, now), 1)
}

func TestPartitionSortsOldestFirst(t *testing.T) {
	now := time.Now()
	t1 := pendingCustomer(now.Add(-10 * 24 * time.Hour))
	t2 := pendingCustomer(now.Add(-5 * 24 * time.Hour))
	t3 := pendingCustomer(now.Add(-1 * 24 * time.Hour))

	lists := Partition([]models.Customer{t2, t3, t1}, now)
	require.Len(t, lists.Awaiting, 3)
	assert.Equal(t, t1.ID, lists.Awaiting[0].ID)
	assert.Equal(t, t2.ID, lists.Awaiting[1].ID)
	assert.Equal(t, t3.ID, lists.Awaiting[2].ID)
}

func TestSummarizeEmptyAwaiting(t *testing.T) {
	now := time.Now()
	s := Summarize(Partition(nil, now), now)
	assert.Zero(t, s.AverageWaitDays)
	assert.Zero(t, s.Urgent)
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	customers := []models.Customer{
		pendingCustomer(now.Add(-10 * 24 * time.Hour)),
		pendingCustomer(now.Add(-20 * 24 * time.Hour)),
		pendingCustomer(now.Add(-35 * 24 * time.Hour)),
	}

	lists := Partition(customers, now)
	s := Summarize(lists, now)

	assert.Equal(t, 2, s.Awaiting)
	assert.Equal(t, 1, s.LongWait)
	assert.InDelta(t, 15.0, s.AverageWaitDays, 0.01)
	// 20d and 35d pending are urgent, 10d is not
	assert.Equal(t, 2, s.Urgent)
}
