package store

import (
	"context"
	"errors"

	"github.com/talentflow/engine/internal/models"
)

// ErrNotFound is returned when a record id is absent from its table.
// It is authoritative: the store never fails a lookup probabilistically.
var ErrNotFound = errors.New("record not found")

// Repository defines the interface for talentflow persistence.
// Implementations publish a change event on the attached Bus after every
// committed write, before the mutating call returns, so outstanding live
// queries observe their own writes.
type Repository interface {
	// Jobs
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	UpdateJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, id string) error
	ListJobs(ctx context.Context) ([]*models.Job, error)

	// Candidates (never hard-deleted)
	CreateCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
	ListCandidates(ctx context.Context) ([]*models.Candidate, error)

	// Timeline (append-only)
	CreateTimelineEntry(ctx context.Context, e *models.TimelineEntry) error
	ListTimeline(ctx context.Context, candidateID string) ([]*models.TimelineEntry, error)

	// Notes (append-only)
	CreateNote(ctx context.Context, n *models.Note) error
	ListNotes(ctx context.Context, candidateID string) ([]*models.Note, error)

	// Assessments (one per job, upsert enforced by the engine)
	CreateAssessment(ctx context.Context, a *models.Assessment) error
	UpdateAssessment(ctx context.Context, a *models.Assessment) error
	GetAssessmentByJob(ctx context.Context, jobID string) (*models.Assessment, error)

	// Assessment responses (append-only)
	CreateAssessmentResponse(ctx context.Context, r *models.AssessmentResponse) error
	ListAssessmentResponses(ctx context.Context, jobID string) ([]*models.AssessmentResponse, error)

	// Notifications
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, id string) (*models.Notification, error)
	UpdateNotification(ctx context.Context, n *models.Notification) error
	DeleteNotification(ctx context.Context, id string) error
	ListNotifications(ctx context.Context) ([]*models.Notification, error)

	// Hidden activities
	CreateHiddenActivity(ctx context.Context, h *models.HiddenActivity) error
	DeleteHiddenActivity(ctx context.Context, id string) error
	ListHiddenActivities(ctx context.Context) ([]*models.HiddenActivity, error)

	// Profile (single record)
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	PutProfile(ctx context.Context, p *models.UserProfile) error

	// Health
	Ping(ctx context.Context) error
	Close() error
}
