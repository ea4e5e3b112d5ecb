// Package metrics derives dashboard lists and counters from a workspace's
// reservations. Everything here is pure: callers fetch, metrics partitions.
package metrics

import (
	"math"
	"sort"
	"time"

	"reservapro-backend/models"
)

const (
	// LongWaitDays is the age at which a pending reservation leaves the
	// awaiting list (and becomes a sweep candidate).
	LongWaitDays = 30
	// UrgentDays is the age at which a pending reservation counts as urgent.
	UrgentDays = 14
)

// DaysWaiting is the reservation age in whole days, rounded up.
func DaysWaiting(createdAt, now time.Time) int {
	d := now.Sub(createdAt)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Lists is the dashboard partition. The lifecycle lists (Awaiting, LongWait,
// AwaitingTransfer, ReadyForPickup, Finalized, Archived) are exhaustive and
// mutually exclusive. Transfer is a historical tag and overlaps the others.
type Lists struct {
	Awaiting         []models.Customer `json:"awaiting"`
	LongWait         []models.Customer `json:"longWait"`
	AwaitingTransfer []models.Customer `json:"awaitingTransfer"`
	ReadyForPickup   []models.Customer `json:"readyForPickup"`
	Finalized        []models.Customer `json:"finalized"`
	Archived         []models.Customer `json:"archived"`
	Transfer         []models.Customer `json:"transfer"`
}

// Partition buckets customers by lifecycle state. Every list comes back
// sorted oldest request first.
func Partition(customers []models.Customer, now time.Time) Lists {
	var l Lists
	for _, c := range customers {
		switch {
		case c.Archived:
			l.Archived = append(l.Archived, c)
		case c.Status == models.StatusCompleted:
			l.Finalized = append(l.Finalized, c)
		case c.Status == models.StatusAwaitingTransfer:
			l.AwaitingTransfer = append(l.AwaitingTransfer, c)
		case c.Status == models.StatusReadyForPickup:
			l.ReadyForPickup = append(l.ReadyForPickup, c)
		case DaysWaiting(c.CreatedAt, now) >= LongWaitDays:
			l.LongWait = append(l.LongWait, c)
		default:
			l.Awaiting = append(l.Awaiting, c)
		}
		if c.Transferred() {
			l.Transfer = append(l.Transfer, c)
		}
	}
	for _, list := range [][]models.Customer{
		l.Awaiting, l.LongWait, l.AwaitingTransfer, l.ReadyForPickup,
		l.Finalized, l.Archived, l.Transfer,
	} {
		sortByWait(list, now)
	}
	return l
}

func sortByWait(list []models.Customer, now time.Time) {
	sort.SliceStable(list, func(i, j int) bool {
		return DaysWaiting(list[i].CreatedAt, now) > DaysWaiting(list[j].CreatedAt, now)
	})
}

// Summary are the scalar dashboard metrics.
type Summary struct {
	Awaiting         int `json:"awaiting"`
	LongWait         int `json:"longWait"`
	AwaitingTransfer int `json:"awaitingTransfer"`
	ReadyForPickup   int `json:"readyForPickup"`
	Finalized        int `json:"finalized"`
	Archived         int `json:"archived"`
	Transfer         int `json:"transfer"`

	// AverageWaitDays is averaged over the awaiting list; 0 when empty.
	AverageWaitDays float64 `json:"averageWaitDays"`
	// Urgent counts pending reservations waiting at least UrgentDays.
	Urgent int `json:"urgent"`
}

// Summarize computes the counters for a partition.
func Summarize(l Lists, now time.Time) Summary {
	s := Summary{
		Awaiting:         len(l.Awaiting),
		LongWait:         len(l.LongWait),
		AwaitingTransfer: len(l.AwaitingTransfer),
		ReadyForPickup:   len(l.ReadyForPickup),
		Finalized:        len(l.Finalized),
		Archived:         len(l.Archived),
		Transfer:         len(l.Transfer),
	}
	if len(l.Awaiting) > 0 {
		total := 0
		for _, c := range l.Awaiting {
			total += DaysWaiting(c.CreatedAt, now)
		}
		s.AverageWaitDays = float64(total) / float64(len(l.Awaiting))
	}
	for _, list := range [][]models.Customer{l.Awaiting, l.LongWait} {
		for _, c := range list {
			if DaysWaiting(c.CreatedAt, now) >= UrgentDays {
				s.Urgent++
			}
		}
	}
	return s
}
