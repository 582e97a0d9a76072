package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talentflow/engine/internal/models"
)

func TestMemoryJobCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)

	job := &models.Job{ID: "job-1", Title: "Backend Engineer", Status: models.JobActive}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	got, err := repo.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if got.Title != "Backend Engineer" {
		t.Errorf("unexpected title %q", got.Title)
	}

	// Rows are copied in and out: mutating the returned pointer must not
	// leak into the store
	got.Title = "mutated"
	again, _ := repo.GetJob(ctx, "job-1")
	if again.Title != "Backend Engineer" {
		t.Error("returned row should be a copy, not a reference into the store")
	}

	got.ID = "job-1"
	got.Title = "Platform Engineer"
	if err := repo.UpdateJob(ctx, got); err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}
	updated, _ := repo.GetJob(ctx, "job-1")
	if updated.Title != "Platform Engineer" {
		t.Errorf("update not applied, got %q", updated.Title)
	}

	if err := repo.DeleteJob(ctx, "job-1"); err != nil {
		t.Fatalf("DeleteJob failed: %v", err)
	}
	if _, err := repo.GetJob(ctx, "job-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)

	if _, err := repo.GetJob(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetJob: expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateJob(ctx, &models.Job{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateJob: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteJob(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteJob: expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateCandidate(ctx, &models.Candidate{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateCandidate: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetAssessmentByJob(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAssessmentByJob: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetProfile(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryScanOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)

	for _, id := range []string{"job-3", "job-1", "job-2"} {
		if err := repo.CreateJob(ctx, &models.Job{ID: id}); err != nil {
			t.Fatalf("CreateJob(%s) failed: %v", id, err)
		}
	}

	jobs, err := repo.ListJobs(ctx)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	want := []string{"job-3", "job-1", "job-2"}
	for i, job := range jobs {
		if job.ID != want[i] {
			t.Errorf("position %d: got %s, want %s (scan must preserve insertion order)", i, job.ID, want[i])
		}
	}
}

func TestMemoryTimelineNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"t-1", "t-2", "t-3"} {
		entry := &models.TimelineEntry{
			ID:          id,
			CandidateID: "candidate-1",
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.CreateTimelineEntry(ctx, entry); err != nil {
			t.Fatalf("CreateTimelineEntry failed: %v", err)
		}
	}
	// Entry for another candidate must be filtered out
	repo.CreateTimelineEntry(ctx, &models.TimelineEntry{ID: "t-x", CandidateID: "candidate-2", Timestamp: base})

	entries, err := repo.ListTimeline(ctx, "candidate-1")
	if err != nil {
		t.Fatalf("ListTimeline failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "t-3" || entries[2].ID != "t-1" {
		t.Errorf("expected newest first, got %s .. %s", entries[0].ID, entries[2].ID)
	}
}

func TestMemoryProfileSingleton(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)

	if err := repo.PutProfile(ctx, &models.UserProfile{ID: "user-1", Name: "Sarah Johnson"}); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}
	if err := repo.PutProfile(ctx, &models.UserProfile{ID: "user-1", Name: "Sarah J."}); err != nil {
		t.Fatalf("PutProfile upsert failed: %v", err)
	}

	profile, err := repo.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Name != "Sarah J." {
		t.Errorf("expected upserted name, got %q", profile.Name)
	}
}
