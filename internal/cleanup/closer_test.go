package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

func TestSweepClosesExpiredJobs(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := hiring.NewService(repo)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	repo.CreateJob(ctx, &models.Job{ID: "job-1", Title: "Expired Role", Status: models.JobActive, CloseDate: &past})
	repo.CreateJob(ctx, &models.Job{ID: "job-2", Title: "Open Role", Status: models.JobActive, CloseDate: &future})
	repo.CreateJob(ctx, &models.Job{ID: "job-3", Title: "No Deadline", Status: models.JobActive})
	repo.CreateJob(ctx, &models.Job{ID: "job-4", Title: "Draft Role", Status: models.JobDraft, CloseDate: &past})
	repo.CreateJob(ctx, &models.Job{ID: "job-5", Title: "Archived Role", Status: models.JobArchived, CloseDate: &past})

	closer := NewCloser(repo, svc, time.Minute)
	closer.now = func() time.Time { return now }

	closer.Sweep(ctx)

	expired, _ := repo.GetJob(ctx, "job-1")
	if expired.Status != models.JobClosed {
		t.Errorf("expired active job should be closed, got %s", expired.Status)
	}
	open, _ := repo.GetJob(ctx, "job-2")
	if open.Status != models.JobActive {
		t.Errorf("job before its close date must stay active, got %s", open.Status)
	}
	noDate, _ := repo.GetJob(ctx, "job-3")
	if noDate.Status != models.JobActive {
		t.Errorf("job without close date must stay active, got %s", noDate.Status)
	}
	draft, _ := repo.GetJob(ctx, "job-4")
	if draft.Status != models.JobDraft {
		t.Errorf("non-active job must be left alone, got %s", draft.Status)
	}
	archived, _ := repo.GetJob(ctx, "job-5")
	if archived.Status != models.JobArchived {
		t.Errorf("archived job must be left alone, got %s", archived.Status)
	}

	// One notification raised, for the one closed job
	notifications, _ := repo.ListNotifications(ctx)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].RelatedID != "job-1" {
		t.Errorf("notification should reference the closed job, got %s", notifications[0].RelatedID)
	}
}

func TestSweepIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := hiring.NewService(repo)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	repo.CreateJob(ctx, &models.Job{ID: "job-1", Title: "Role", Status: models.JobActive, CloseDate: &past})

	closer := NewCloser(repo, svc, time.Minute)
	closer.now = func() time.Time { return now }

	closer.Sweep(ctx)
	closer.Sweep(ctx)

	notifications, _ := repo.ListNotifications(ctx)
	if len(notifications) != 1 {
		t.Errorf("a second sweep must not re-close or re-notify, got %d notifications", len(notifications))
	}
}
