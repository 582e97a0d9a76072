package hiring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateCandidateSeedsTimeline(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(repo, WithClock(fixedClock(now)))

	c, err := svc.CreateCandidate(ctx, &models.Candidate{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		JobID: "job-1",
		Stage: models.StageApplied,
	})
	if err != nil {
		t.Fatalf("CreateCandidate failed: %v", err)
	}

	if c.ID != "candidate-1769940000000" {
		t.Errorf("expected timestamp id, got %s", c.ID)
	}
	if !c.AppliedAt.Equal(now) {
		t.Errorf("appliedAt not stamped: %v", c.AppliedAt)
	}

	entries, err := svc.Timeline(ctx, c.ID)
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 seeded entry, got %d", len(entries))
	}
	if entries[0].Note != "Application submitted" {
		t.Errorf("unexpected seed note %q", entries[0].Note)
	}
	if entries[0].PreviousStage != "" {
		t.Errorf("seed entry must carry no previous stage, got %q", entries[0].PreviousStage)
	}
}

func TestPatchCandidateStageChangeAudited(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	current := base
	svc := NewService(repo, WithClock(func() time.Time { return current }))

	c, err := svc.CreateCandidate(ctx, &models.Candidate{Name: "Ada", Stage: models.StageApplied})
	if err != nil {
		t.Fatalf("CreateCandidate failed: %v", err)
	}

	current = base.Add(time.Hour)
	stage := models.StageScreen
	patched, err := svc.PatchCandidate(ctx, c.ID, &models.CandidatePatch{Stage: &stage})
	if err != nil {
		t.Fatalf("PatchCandidate failed: %v", err)
	}
	if patched.Stage != models.StageScreen {
		t.Errorf("stage not applied, got %s", patched.Stage)
	}

	entries, _ := svc.Timeline(ctx, c.ID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after stage change, got %d", len(entries))
	}
	latest := entries[0]
	if latest.Note != "Stage change: applied → screen" {
		t.Errorf("unexpected transition note %q", latest.Note)
	}
	if latest.PreviousStage != models.StageApplied || latest.Stage != models.StageScreen {
		t.Errorf("transition fields wrong: %+v", latest)
	}
}

func TestPatchCandidateSameStageNoEntry(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)

	c, _ := svc.CreateCandidate(ctx, &models.Candidate{Name: "Ada", Stage: models.StageApplied})

	// Same stage plus an unrelated field: no audit entry
	stage := models.StageApplied
	score := 80
	if _, err := svc.PatchCandidate(ctx, c.ID, &models.CandidatePatch{Stage: &stage, Score: &score}); err != nil {
		t.Fatalf("PatchCandidate failed: %v", err)
	}

	entries, _ := svc.Timeline(ctx, c.ID)
	if len(entries) != 1 {
		t.Errorf("unchanged stage must not append an entry, got %d entries", len(entries))
	}

	got, _ := svc.GetCandidate(ctx, c.ID)
	if got.Score != 80 {
		t.Errorf("score patch not applied, got %d", got.Score)
	}
}

func TestPatchCandidateNotFound(t *testing.T) {
	svc := NewService(store.NewMemoryRepository(nil))
	stage := models.StageScreen
	_, err := svc.PatchCandidate(context.Background(), "candidate-missing", &models.CandidatePatch{Stage: &stage})
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestTimelineUnknownCandidateIsEmpty(t *testing.T) {
	svc := NewService(store.NewMemoryRepository(nil))
	entries, err := svc.Timeline(context.Background(), "candidate-missing")
	if err != nil {
		t.Fatalf("Timeline must not fail for unknown ids: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty trail, got %d entries", len(entries))
	}
}

func TestAddNoteExtractsMentions(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)

	c, _ := svc.CreateCandidate(ctx, &models.Candidate{Name: "Ada", Stage: models.StageApplied})

	note, err := svc.AddNote(ctx, c.ID, "loop in @sarah before the @tech_panel", "user-1")
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if len(note.Mentions) != 2 || note.Mentions[0] != "sarah" || note.Mentions[1] != "tech_panel" {
		t.Errorf("unexpected mentions %v", note.Mentions)
	}

	if _, err := svc.AddNote(ctx, "candidate-missing", "hi", "user-1"); !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("expected ErrCandidateNotFound for unknown candidate, got %v", err)
	}
}
