// services/sweep_service.go
package services

import (
	"log"
	"time"

	"reservapro-backend/metrics"
	"reservapro-backend/models"
	"reservapro-backend/workflow"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SweepService archives pending reservations that waited too long. It runs
// on a daily schedule and is also triggered best-effort by every dashboard
// request; both paths are idempotent, a record archived by one is skipped by
// the other via the version check.
type SweepService struct {
	db *gorm.DB
}

func NewSweepService(db *gorm.DB) *SweepService {
	return &SweepService{db: db}
}

func (s *SweepService) StartScheduler() {
	c := cron.New()

	// Run every day at 6 AM
	c.AddFunc("0 6 * * *", func() {
		s.RunAll()
	})

	c.Start()
	log.Println("Auto-archive scheduler started")
}

func (s *SweepService) RunAll() {
	var workspaces []models.Workspace
	if err := s.db.Find(&workspaces).Error; err != nil {
		log.Printf("Auto-archive: failed to fetch workspaces: %v", err)
		return
	}
	for _, ws := range workspaces {
		if n, err := s.Run(ws.ID); err != nil {
			log.Printf("Auto-archive: workspace %s failed: %v", ws.ID, err)
		} else if n > 0 {
			log.Printf("Auto-archive: workspace %s archived %d stale reservations", ws.ID, n)
		}
	}
}

// Run archives every non-archived pending reservation whose wait reached
// the long wait threshold. Returns how many records it archived.
func (s *SweepService) Run(workspaceID string) (int, error) {
	now := time.Now()
	// Days waiting round up, so a record crosses the threshold during its
	// 30th day. The SQL cutoff fetches one day wide; the exact ceil check
	// below decides, keeping the sweep in step with the dashboard buckets.
	cutoff := now.Add(-time.Duration(metrics.LongWaitDays-1) * 24 * time.Hour)

	var stale []models.Customer
	err := s.db.Where("workspace_id = ? AND archived = ? AND status = ? AND created_at <= ?",
		workspaceID, false, models.StatusPending, cutoff).
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	archived := 0
	for i := range stale {
		c := &stale[i]
		if metrics.DaysWaiting(c.CreatedAt, now) < metrics.LongWaitDays {
			continue
		}
		prev := c.Version
		if err := workflow.Archive(c, models.ReasonExceededWaitTime, "", now); err != nil {
			continue
		}
		if err := persistWorkflow(s.db, c, prev); err != nil {
			// A concurrent sweep already got this one; not an error.
			if err != ErrConflict {
				log.Printf("Auto-archive: customer %s write failed: %v", c.ID, err)
			}
			continue
		}
		archived++
	}
	return archived, nil
}
