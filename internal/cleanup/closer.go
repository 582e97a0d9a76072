package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

// Closer handles periodic closing of jobs whose close date has passed
type Closer struct {
	repo     store.Repository
	service  *hiring.Service
	interval time.Duration
	now      func() time.Time
}

// NewCloser creates a new close-date worker
func NewCloser(repo store.Repository, service *hiring.Service, interval time.Duration) *Closer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Closer{
		repo:     repo,
		service:  service,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the close-date worker in a goroutine
func (c *Closer) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the close-date worker
func (c *Closer) run(ctx context.Context) {
	slog.Info("close-date worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("close-date worker stopped")
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

// Sweep finds active jobs past their close date, marks them closed, and
// raises a notification for each.
func (c *Closer) Sweep(ctx context.Context) {
	slog.Debug("running close-date sweep")

	jobs, err := c.repo.ListJobs(ctx)
	if err != nil {
		slog.Error("failed to list jobs for close sweep", "error", err)
		return
	}

	now := c.now()
	closed := 0
	for _, job := range jobs {
		if job.Status != models.JobActive || !job.EffectivelyClosed(now) {
			continue
		}

		slog.Info("closing job past close date",
			"id", job.ID,
			"title", job.Title,
			"close_date", job.CloseDate,
		)

		job.Status = models.JobClosed
		job.UpdatedAt = now
		if err := c.repo.UpdateJob(ctx, job); err != nil {
			slog.Error("failed to close job", "error", err, "id", job.ID)
			continue
		}
		closed++

		title := "Job closed"
		body := fmt.Sprintf("%q reached its close date and stopped accepting applications", job.Title)
		if _, err := c.service.Notify(ctx, title, body, job.ID); err != nil {
			slog.Error("failed to create close notification", "error", err, "id", job.ID)
		}
	}

	if closed > 0 {
		slog.Info("close-date sweep finished", "closed", closed)
	}
}
