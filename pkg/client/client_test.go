package client

import (
	"context"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talentflow/engine/internal/api"
	"github.com/talentflow/engine/internal/config"
	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/sim"
	"github.com/talentflow/engine/internal/store"
)

// newTestEngine spins up a full engine over an in-memory store with the
// failure simulation disabled and latency not slept.
func newTestEngine(t *testing.T) (*httptest.Server, *hiring.Service) {
	t.Helper()

	bus := store.NewBus()
	repo := store.NewMemoryRepository(bus)
	service := hiring.NewService(repo)
	simulator := sim.New(sim.Config{Seed: 1}, sim.WithSleeper(func(time.Duration) {}))

	srv := api.NewServer(config.ServerConfig{}, service, simulator, repo, bus)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, service
}

func TestMoveCandidateHighScoreHired(t *testing.T) {
	ts, svc := newTestEngine(t)
	ctx := context.Background()

	seeded, err := svc.CreateCandidate(ctx, &models.Candidate{
		Name:  "Ada Lovelace",
		Stage: models.StageOffer,
		Score: 90,
	})
	if err != nil {
		t.Fatalf("seed candidate: %v", err)
	}

	c := NewClient(ts.URL)
	moved, err := c.MoveCandidate(ctx, seeded.ID, models.StageHired)
	if err != nil {
		t.Fatalf("MoveCandidate failed: %v", err)
	}
	if moved.Stage != models.StageHired {
		t.Errorf("high scorer should land on hired, got %s", moved.Stage)
	}
}

func TestMoveCandidateLowScoreRedirected(t *testing.T) {
	ts, svc := newTestEngine(t)
	ctx := context.Background()

	seeded, err := svc.CreateCandidate(ctx, &models.Candidate{
		Name:  "Walk-in Applicant",
		Stage: models.StageOffer,
		Score: 30,
	})
	if err != nil {
		t.Fatalf("seed candidate: %v", err)
	}

	c := NewClient(ts.URL, WithRand(rand.New(rand.NewSource(5))))
	moved, err := c.MoveCandidate(ctx, seeded.ID, models.StageHired)
	if err != nil {
		t.Fatalf("MoveCandidate failed: %v", err)
	}
	if moved.Stage == models.StageHired {
		t.Fatal("low scorer must never land on hired")
	}
	if moved.Stage == models.StageOffer {
		t.Errorf("redirect must pick a stage other than the current one, got %s", moved.Stage)
	}
}

func TestMoveCandidateNonHiredSkipsScoreCheck(t *testing.T) {
	ts, svc := newTestEngine(t)
	ctx := context.Background()

	seeded, err := svc.CreateCandidate(ctx, &models.Candidate{
		Name:  "Low Scorer",
		Stage: models.StageApplied,
		Score: 10,
	})
	if err != nil {
		t.Fatalf("seed candidate: %v", err)
	}

	c := NewClient(ts.URL)
	moved, err := c.MoveCandidate(ctx, seeded.ID, models.StageScreen)
	if err != nil {
		t.Fatalf("MoveCandidate failed: %v", err)
	}
	if moved.Stage != models.StageScreen {
		t.Errorf("non-hired moves go through untouched, got %s", moved.Stage)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	ts, _ := newTestEngine(t)

	c := NewClient(ts.URL)
	_, err := c.GetJob(context.Background(), "job-missing")
	if err == nil {
		t.Fatal("expected an error for a missing job")
	}
}

func TestClientJobRoundTrip(t *testing.T) {
	ts, _ := newTestEngine(t)
	ctx := context.Background()

	c := NewClient(ts.URL)
	created, err := c.CreateJob(ctx, &models.Job{Title: "Backend Engineer", Status: models.JobActive})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	got, err := c.GetJob(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if got.Title != "Backend Engineer" {
		t.Errorf("round trip lost the title, got %q", got.Title)
	}

	page, err := c.ListJobs(ctx, JobListOptions{Status: "active"})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if page.Meta.Total != 1 {
		t.Errorf("expected 1 active job, got %d", page.Meta.Total)
	}
}
