package hiring

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

// CreateCandidate stores a new applicant and seeds their audit trail with an
// "Application submitted" entry carrying no previous stage. The candidate
// insert and the timeline insert are two independent writes with no
// cross-table transaction; see DESIGN.md.
func (s *Service) CreateCandidate(ctx context.Context, c *models.Candidate) (*models.Candidate, error) {
	now := s.now()
	c.ID = fmt.Sprintf("candidate-%d", now.UnixMilli())
	c.AppliedAt = now
	c.UpdatedAt = now

	if err := s.repo.CreateCandidate(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	entry := &models.TimelineEntry{
		ID:          newID("timeline"),
		CandidateID: c.ID,
		Stage:       c.Stage,
		Timestamp:   now,
		Note:        "Application submitted",
	}
	if err := s.repo.CreateTimelineEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to seed timeline: %w", err)
	}

	return c, nil
}

// GetCandidate returns a candidate by id
func (s *Service) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	c, err := s.repo.GetCandidate(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return c, nil
}

// PatchCandidate applies a partial update. When the patch carries a stage
// different from the candidate's current one, exactly one timeline entry
// recording the transition is appended before the patch lands; a patch with
// no stage, or with the unchanged stage, produces no entry. The hired/
// low-score redirect is a client-side rule and is deliberately not enforced
// here (see DESIGN.md).
func (s *Service) PatchCandidate(ctx context.Context, id string, patch *models.CandidatePatch) (*models.Candidate, error) {
	c, err := s.repo.GetCandidate(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	now := s.now()
	if patch.Stage != nil && *patch.Stage != c.Stage {
		entry := &models.TimelineEntry{
			ID:            newID("timeline"),
			CandidateID:   c.ID,
			Stage:         *patch.Stage,
			PreviousStage: c.Stage,
			Timestamp:     now,
			Note:          fmt.Sprintf("Stage change: %s → %s", c.Stage, *patch.Stage),
		}
		if err := s.repo.CreateTimelineEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to append timeline entry: %w", err)
		}
	}

	patch.Apply(c)
	c.UpdatedAt = now

	if err := s.repo.UpdateCandidate(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return c, nil
}

// Timeline returns a candidate's audit trail, newest first. An unknown
// candidate id yields an empty trail, not an error.
func (s *Service) Timeline(ctx context.Context, candidateID string) ([]*models.TimelineEntry, error) {
	return s.repo.ListTimeline(ctx, candidateID)
}

// AddNote appends a free-text note to a candidate, extracting @mention
// tokens from the content
func (s *Service) AddNote(ctx context.Context, candidateID, content, createdBy string) (*models.Note, error) {
	if _, err := s.repo.GetCandidate(ctx, candidateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	note := &models.Note{
		ID:          newID("note"),
		CandidateID: candidateID,
		Content:     content,
		Mentions:    models.ExtractMentions(content),
		CreatedBy:   createdBy,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// Notes returns a candidate's notes, newest first
func (s *Service) Notes(ctx context.Context, candidateID string) ([]*models.Note, error) {
	return s.repo.ListNotes(ctx, candidateID)
}
