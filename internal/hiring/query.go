package hiring

import (
	"context"
	"sort"

	"github.com/talentflow/engine/internal/models"
)

// Default page sizes match the original clients
const (
	DefaultJobPageSize       = 10
	DefaultCandidatePageSize = 50
)

// PageMeta describes the full post-filter result set a page was cut from
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// JobQuery holds the list-jobs parameters. Search is a case-insensitive
// substring over title and tags; a Status of "" or "all" matches every job.
type JobQuery struct {
	Search   string
	Status   string
	Page     int
	PageSize int
	Sort     string
}

// JobPage is one page of jobs plus pagination meta
type JobPage struct {
	Data []*models.Job `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// CandidateQuery holds the list-candidates parameters. Search matches name
// and email; Stage and JobID of "" or "all" match everything.
type CandidateQuery struct {
	Search   string
	Stage    string
	JobID    string
	Page     int
	PageSize int
}

// CandidatePage is one page of candidates plus pagination meta
type CandidatePage struct {
	Data []*models.Candidate `json:"data"`
	Meta PageMeta            `json:"meta"`
}

// ListJobs filters, sorts, and paginates the job table.
// Sort "order" is ascending rank; "createdAt" (the default) is newest
// first; anything else keeps the scan order. Status filters on the stored
// field only, never the derived effectively-closed state.
func (s *Service) ListJobs(ctx context.Context, q JobQuery) (*JobPage, error) {
	all, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]*models.Job, 0, len(all))
	for _, job := range all {
		if !job.MatchesSearch(q.Search) {
			continue
		}
		if q.Status != "" && q.Status != "all" && string(job.Status) != q.Status {
			continue
		}
		jobs = append(jobs, job)
	}

	switch q.Sort {
	case "order":
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].Order < jobs[j].Order
		})
	case "", "createdAt":
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		})
	}

	page, meta := paginate(len(jobs), q.Page, q.PageSize, DefaultJobPageSize)
	return &JobPage{Data: jobs[page[0]:page[1]], Meta: meta}, nil
}

// ListCandidates filters and paginates the candidate table. There is no
// configurable sort; results keep the underlying scan order.
func (s *Service) ListCandidates(ctx context.Context, q CandidateQuery) (*CandidatePage, error) {
	all, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*models.Candidate, 0, len(all))
	for _, c := range all {
		if !c.MatchesSearch(q.Search) {
			continue
		}
		if q.Stage != "" && q.Stage != "all" && string(c.Stage) != q.Stage {
			continue
		}
		if q.JobID != "" && q.JobID != "all" && c.JobID != q.JobID {
			continue
		}
		candidates = append(candidates, c)
	}

	page, meta := paginate(len(candidates), q.Page, q.PageSize, DefaultCandidatePageSize)
	return &CandidatePage{Data: candidates[page[0]:page[1]], Meta: meta}, nil
}

// paginate computes the [start, end) slice bounds for a 1-based page and the
// meta block. Total always reflects the post-filter count, not the slice.
func paginate(total, page, pageSize, defaultSize int) ([2]int, PageMeta) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	meta := PageMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	return [2]int{start, end}, meta
}
