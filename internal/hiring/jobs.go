package hiring

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

// CreateJob stores a new job posting. The id is assigned from the creation
// timestamp (`job-<unix-ms>`), matching the wire format clients expect.
// Bodies are stored as-is; there is deliberately no field validation.
func (s *Service) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	now := s.now()
	job.ID = fmt.Sprintf("job-%d", now.UnixMilli())
	if job.Slug == "" {
		job.Slug = models.Slugify(job.Title)
	}
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob returns a job by id
func (s *Service) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// PatchJob applies a partial update to a job and stamps updatedAt
func (s *Service) PatchJob(ctx context.Context, id string, patch *models.JobPatch) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	patch.Apply(job)
	job.UpdatedAt = s.now()

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job posting. Candidates referencing it keep their
// jobId; the reference is allowed to dangle.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if err := s.repo.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	return nil
}
