package hiring

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

func TestListJobsPagination(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		repo.CreateJob(ctx, &models.Job{
			ID:        fmt.Sprintf("job-%d", i+1),
			Title:     fmt.Sprintf("Job %d", i+1),
			Status:    models.JobActive,
			Order:     i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	// Default page size is 10
	page1, err := svc.ListJobs(ctx, JobQuery{Page: 1})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(page1.Data) != 10 {
		t.Errorf("expected 10 jobs on page 1, got %d", len(page1.Data))
	}
	if page1.Meta.Total != 25 || page1.Meta.TotalPages != 3 {
		t.Errorf("unexpected meta %+v", page1.Meta)
	}

	// Pages partition the result set
	seen := map[string]bool{}
	total := 0
	for p := 1; p <= page1.Meta.TotalPages; p++ {
		page, err := svc.ListJobs(ctx, JobQuery{Page: p})
		if err != nil {
			t.Fatalf("page %d failed: %v", p, err)
		}
		for _, job := range page.Data {
			if seen[job.ID] {
				t.Errorf("job %s appeared on two pages", job.ID)
			}
			seen[job.ID] = true
		}
		total += len(page.Data)
	}
	if total != 25 {
		t.Errorf("pages sum to %d jobs, want 25", total)
	}

	// Past-the-end page is empty, not an error
	beyond, err := svc.ListJobs(ctx, JobQuery{Page: 99})
	if err != nil {
		t.Fatalf("ListJobs beyond end failed: %v", err)
	}
	if len(beyond.Data) != 0 {
		t.Errorf("expected empty page beyond end, got %d", len(beyond.Data))
	}
	if beyond.Meta.Total != 25 {
		t.Errorf("meta total must survive empty pages, got %d", beyond.Meta.Total)
	}
}

func TestListJobsSort(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Insert with shuffled orders and ascending created times
	orders := []int{2, 0, 1}
	for i, o := range orders {
		repo.CreateJob(ctx, &models.Job{
			ID:        fmt.Sprintf("job-%d", i+1),
			Status:    models.JobActive,
			Order:     o,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	byOrder, err := svc.ListJobs(ctx, JobQuery{Sort: "order"})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	for i, job := range byOrder.Data {
		if job.Order != i {
			t.Errorf("sort=order position %d has order %d", i, job.Order)
		}
	}

	// Default sort is newest createdAt first
	newest, err := svc.ListJobs(ctx, JobQuery{})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if newest.Data[0].ID != "job-3" {
		t.Errorf("default sort should put newest first, got %s", newest.Data[0].ID)
	}
}

func TestListJobsFilters(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)

	repo.CreateJob(ctx, &models.Job{ID: "job-1", Title: "Backend Engineer", Status: models.JobActive, Tags: []string{"go"}})
	repo.CreateJob(ctx, &models.Job{ID: "job-2", Title: "Frontend Engineer", Status: models.JobDraft, Tags: []string{"react"}})
	repo.CreateJob(ctx, &models.Job{ID: "job-3", Title: "Data Analyst", Status: models.JobArchived})

	active, _ := svc.ListJobs(ctx, JobQuery{Status: "active"})
	if active.Meta.Total != 1 || active.Data[0].ID != "job-1" {
		t.Errorf("status filter: got %+v", active.Meta)
	}

	// "all" disables the filter just like ""
	all, _ := svc.ListJobs(ctx, JobQuery{Status: "all"})
	if all.Meta.Total != 3 {
		t.Errorf("status=all should match everything, got %d", all.Meta.Total)
	}

	search, _ := svc.ListJobs(ctx, JobQuery{Search: "engineer"})
	if search.Meta.Total != 2 {
		t.Errorf("search should match 2 titles, got %d", search.Meta.Total)
	}

	tag, _ := svc.ListJobs(ctx, JobQuery{Search: "react"})
	if tag.Meta.Total != 1 || tag.Data[0].ID != "job-2" {
		t.Errorf("search should cover tags, got %d", tag.Meta.Total)
	}
}

func TestListCandidatesFilters(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepository(nil)
	svc := NewService(repo)

	repo.CreateCandidate(ctx, &models.Candidate{ID: "candidate-1", Name: "Ada Lovelace", Email: "ada@example.com", JobID: "job-1", Stage: models.StageApplied})
	repo.CreateCandidate(ctx, &models.Candidate{ID: "candidate-2", Name: "Grace Hopper", Email: "grace@example.com", JobID: "job-1", Stage: models.StageTech})
	repo.CreateCandidate(ctx, &models.Candidate{ID: "candidate-3", Name: "Alan Kay", Email: "alan@example.com", JobID: "job-2", Stage: models.StageTech})

	byStage, _ := svc.ListCandidates(ctx, CandidateQuery{Stage: "tech"})
	if byStage.Meta.Total != 2 {
		t.Errorf("stage filter: got %d, want 2", byStage.Meta.Total)
	}

	byJob, _ := svc.ListCandidates(ctx, CandidateQuery{JobID: "job-1"})
	if byJob.Meta.Total != 2 {
		t.Errorf("job filter: got %d, want 2", byJob.Meta.Total)
	}

	combined, _ := svc.ListCandidates(ctx, CandidateQuery{JobID: "job-1", Stage: "tech"})
	if combined.Meta.Total != 1 || combined.Data[0].ID != "candidate-2" {
		t.Errorf("combined filter: got %d", combined.Meta.Total)
	}

	byEmail, _ := svc.ListCandidates(ctx, CandidateQuery{Search: "grace@"})
	if byEmail.Meta.Total != 1 {
		t.Errorf("search should cover email, got %d", byEmail.Meta.Total)
	}

	// Default candidate page size is 50
	page, _ := svc.ListCandidates(ctx, CandidateQuery{})
	if page.Meta.PageSize != 50 {
		t.Errorf("default page size should be 50, got %d", page.Meta.PageSize)
	}
}
