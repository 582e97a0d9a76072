package hiring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

func seedOrderedJobs(t *testing.T, repo store.Repository, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		job := &models.Job{
			ID:     fmt.Sprintf("job-%d", i+1),
			Title:  fmt.Sprintf("Job %d", i+1),
			Status: models.JobActive,
			Order:  i,
		}
		if err := repo.CreateJob(ctx, job); err != nil {
			t.Fatalf("seed job failed: %v", err)
		}
	}
}

func orderByID(t *testing.T, repo store.Repository) map[string]int {
	t.Helper()
	jobs, err := repo.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	out := make(map[string]int, len(jobs))
	for _, job := range jobs {
		out[job.ID] = job.Order
	}
	return out
}

func assertDensePermutation(t *testing.T, repo store.Repository) {
	t.Helper()
	jobs, err := repo.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	orders := make([]int, 0, len(jobs))
	for _, job := range jobs {
		orders = append(orders, job.Order)
	}
	sort.Ints(orders)
	for i, o := range orders {
		if o != i {
			t.Fatalf("orders are not a dense 0..N-1 permutation: %v", orders)
		}
	}
}

func TestReorderMoveLater(t *testing.T) {
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)
	seedOrderedJobs(t, repo, 4)

	// A=0 B=1 C=2 D=3, move A from 0 to 2
	if err := svc.ReorderJob(context.Background(), "job-1", 0, 2); err != nil {
		t.Fatalf("ReorderJob failed: %v", err)
	}

	got := orderByID(t, repo)
	want := map[string]int{"job-1": 2, "job-2": 0, "job-3": 1, "job-4": 3}
	for id, order := range want {
		if got[id] != order {
			t.Errorf("%s: got order %d, want %d", id, got[id], order)
		}
	}
	assertDensePermutation(t, repo)
}

func TestReorderMoveEarlier(t *testing.T) {
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)
	seedOrderedJobs(t, repo, 4)

	// Move D from 3 to 1
	if err := svc.ReorderJob(context.Background(), "job-4", 3, 1); err != nil {
		t.Fatalf("ReorderJob failed: %v", err)
	}

	got := orderByID(t, repo)
	want := map[string]int{"job-1": 0, "job-2": 2, "job-3": 3, "job-4": 1}
	for id, order := range want {
		if got[id] != order {
			t.Errorf("%s: got order %d, want %d", id, got[id], order)
		}
	}
	assertDensePermutation(t, repo)
}

func TestReorderNoOp(t *testing.T) {
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)
	seedOrderedJobs(t, repo, 3)

	before := orderByID(t, repo)
	if err := svc.ReorderJob(context.Background(), "job-2", 1, 1); err != nil {
		t.Fatalf("ReorderJob failed: %v", err)
	}
	after := orderByID(t, repo)
	for id := range before {
		if before[id] != after[id] {
			t.Errorf("%s changed on a from==to reorder", id)
		}
	}
}

func TestReorderLocatesMoverByOrderNotPathID(t *testing.T) {
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)
	seedOrderedJobs(t, repo, 3)

	// The path id names job-1 but fromOrder selects job-3; the order value
	// is authoritative
	if err := svc.ReorderJob(context.Background(), "job-1", 2, 0); err != nil {
		t.Fatalf("ReorderJob failed: %v", err)
	}

	got := orderByID(t, repo)
	want := map[string]int{"job-1": 1, "job-2": 2, "job-3": 0}
	for id, order := range want {
		if got[id] != order {
			t.Errorf("%s: got order %d, want %d", id, got[id], order)
		}
	}
}

func TestReorderUnknownFromOrder(t *testing.T) {
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)
	seedOrderedJobs(t, repo, 3)

	err := svc.ReorderJob(context.Background(), "job-1", 99, 0)
	if !errors.Is(err, ErrReorderConflict) {
		t.Fatalf("expected ErrReorderConflict, got %v", err)
	}
	assertDensePermutation(t, repo)
}
