package hiring

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

// GetAssessment returns the assessment attached to a job, or nil when none
// exists. Callers shape the nil case into an empty-sections placeholder; a
// missing assessment is never an error.
func (s *Service) GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error) {
	a, err := s.repo.GetAssessmentByJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// PutAssessment upserts the assessment for a job: the existing record is
// updated in place when one exists, otherwise a new one is created. The
// one-per-job rule is enforced here, at write time, not by the record key.
func (s *Service) PutAssessment(ctx context.Context, jobID string, sections []models.AssessmentSection) (*models.Assessment, error) {
	now := s.now()

	existing, err := s.repo.GetAssessmentByJob(ctx, jobID)
	if err == nil {
		existing.Sections = sections
		existing.UpdatedAt = now
		if err := s.repo.UpdateAssessment(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update assessment: %w", err)
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	a := &models.Assessment{
		ID:        fmt.Sprintf("assessment-%d", now.UnixMilli()),
		JobID:     jobID,
		Sections:  sections,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return a, nil
}

// SubmitAssessment records a candidate's answers. Every call inserts a new
// response; there is no update-in-place and no duplicate-submission check.
func (s *Service) SubmitAssessment(ctx context.Context, jobID, candidateID string, responses map[string]any) (*models.AssessmentResponse, error) {
	resp := &models.AssessmentResponse{
		ID:          newID("submission"),
		JobID:       jobID,
		CandidateID: candidateID,
		Responses:   responses,
		SubmittedAt: s.now(),
	}
	if err := s.repo.CreateAssessmentResponse(ctx, resp); err != nil {
		return nil, fmt.Errorf("failed to create assessment response: %w", err)
	}
	return resp, nil
}

// AssessmentResponses lists the submissions for a job in submission order
func (s *Service) AssessmentResponses(ctx context.Context, jobID string) ([]*models.AssessmentResponse, error) {
	return s.repo.ListAssessmentResponses(ctx, jobID)
}
