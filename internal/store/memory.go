package store

import (
	"context"
	"sort"
	"sync"

	"github.com/talentflow/engine/internal/models"
)

// collection is one in-memory table: rows by id, insertion order preserved
// so scans are deterministic.
type collection[T any] struct {
	mu   sync.RWMutex
	ids  []string
	rows map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{rows: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	row, ok := c.rows[id]
	return row, ok
}

func (c *collection[T]) put(id string, row T) (created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		c.ids = append(c.ids, id)
		created = true
	}
	c.rows[id] = row
	return created
}

func (c *collection[T]) delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		return false
	}
	delete(c.rows, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.rows[id])
	}
	return out
}

// MemoryRepository implements Repository with in-process tables. It is the
// default backend for the simulator and the one every test runs against.
type MemoryRepository struct {
	bus *Bus

	jobs             *collection[models.Job]
	candidates       *collection[models.Candidate]
	timeline         *collection[models.TimelineEntry]
	notes            *collection[models.Note]
	assessments      *collection[models.Assessment]
	responses        *collection[models.AssessmentResponse]
	notifications    *collection[models.Notification]
	hiddenActivities *collection[models.HiddenActivity]
	profile          *collection[models.UserProfile]
}

// NewMemoryRepository creates an empty in-memory repository. The bus may be
// nil when no live-query delivery is needed (most tests).
func NewMemoryRepository(bus *Bus) *MemoryRepository {
	return &MemoryRepository{
		bus:              bus,
		jobs:             newCollection[models.Job](),
		candidates:       newCollection[models.Candidate](),
		timeline:         newCollection[models.TimelineEntry](),
		notes:            newCollection[models.Note](),
		assessments:      newCollection[models.Assessment](),
		responses:        newCollection[models.AssessmentResponse](),
		notifications:    newCollection[models.Notification](),
		hiddenActivities: newCollection[models.HiddenActivity](),
		profile:          newCollection[models.UserProfile](),
	}
}

// Jobs

func (r *MemoryRepository) CreateJob(ctx context.Context, job *models.Job) error {
	r.jobs.put(job.ID, *job)
	publish(r.bus, TableJobs, OpCreate, job.ID)
	return nil
}

func (r *MemoryRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, ok := r.jobs.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (r *MemoryRepository) UpdateJob(ctx context.Context, job *models.Job) error {
	if _, ok := r.jobs.get(job.ID); !ok {
		return ErrNotFound
	}
	r.jobs.put(job.ID, *job)
	publish(r.bus, TableJobs, OpUpdate, job.ID)
	return nil
}

func (r *MemoryRepository) DeleteJob(ctx context.Context, id string) error {
	if !r.jobs.delete(id) {
		return ErrNotFound
	}
	publish(r.bus, TableJobs, OpDelete, id)
	return nil
}

func (r *MemoryRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	rows := r.jobs.list()
	out := make([]*models.Job, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

// Candidates

func (r *MemoryRepository) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	r.candidates.put(c.ID, *c)
	publish(r.bus, TableCandidates, OpCreate, c.ID)
	return nil
}

func (r *MemoryRepository) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	c, ok := r.candidates.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	if _, ok := r.candidates.get(c.ID); !ok {
		return ErrNotFound
	}
	r.candidates.put(c.ID, *c)
	publish(r.bus, TableCandidates, OpUpdate, c.ID)
	return nil
}

func (r *MemoryRepository) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	rows := r.candidates.list()
	out := make([]*models.Candidate, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

// Timeline

func (r *MemoryRepository) CreateTimelineEntry(ctx context.Context, e *models.TimelineEntry) error {
	r.timeline.put(e.ID, *e)
	publish(r.bus, TableTimeline, OpCreate, e.ID)
	return nil
}

func (r *MemoryRepository) ListTimeline(ctx context.Context, candidateID string) ([]*models.TimelineEntry, error) {
	var out []*models.TimelineEntry
	rows := r.timeline.list()
	for i := range rows {
		if rows[i].CandidateID == candidateID {
			out = append(out, &rows[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Notes

func (r *MemoryRepository) CreateNote(ctx context.Context, n *models.Note) error {
	r.notes.put(n.ID, *n)
	publish(r.bus, TableNotes, OpCreate, n.ID)
	return nil
}

func (r *MemoryRepository) ListNotes(ctx context.Context, candidateID string) ([]*models.Note, error) {
	var out []*models.Note
	rows := r.notes.list()
	for i := range rows {
		if rows[i].CandidateID == candidateID {
			out = append(out, &rows[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Assessments

func (r *MemoryRepository) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	r.assessments.put(a.ID, *a)
	publish(r.bus, TableAssessments, OpCreate, a.ID)
	return nil
}

func (r *MemoryRepository) UpdateAssessment(ctx context.Context, a *models.Assessment) error {
	if _, ok := r.assessments.get(a.ID); !ok {
		return ErrNotFound
	}
	r.assessments.put(a.ID, *a)
	publish(r.bus, TableAssessments, OpUpdate, a.ID)
	return nil
}

func (r *MemoryRepository) GetAssessmentByJob(ctx context.Context, jobID string) (*models.Assessment, error) {
	rows := r.assessments.list()
	for i := range rows {
		if rows[i].JobID == jobID {
			return &rows[i], nil
		}
	}
	return nil, ErrNotFound
}

// Assessment responses

func (r *MemoryRepository) CreateAssessmentResponse(ctx context.Context, resp *models.AssessmentResponse) error {
	r.responses.put(resp.ID, *resp)
	publish(r.bus, TableAssessmentResponses, OpCreate, resp.ID)
	return nil
}

func (r *MemoryRepository) ListAssessmentResponses(ctx context.Context, jobID string) ([]*models.AssessmentResponse, error) {
	var out []*models.AssessmentResponse
	rows := r.responses.list()
	for i := range rows {
		if rows[i].JobID == jobID {
			out = append(out, &rows[i])
		}
	}
	return out, nil
}

// Notifications

func (r *MemoryRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	r.notifications.put(n.ID, *n)
	publish(r.bus, TableNotifications, OpCreate, n.ID)
	return nil
}

func (r *MemoryRepository) GetNotification(ctx context.Context, id string) (*models.Notification, error) {
	n, ok := r.notifications.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (r *MemoryRepository) UpdateNotification(ctx context.Context, n *models.Notification) error {
	if _, ok := r.notifications.get(n.ID); !ok {
		return ErrNotFound
	}
	r.notifications.put(n.ID, *n)
	publish(r.bus, TableNotifications, OpUpdate, n.ID)
	return nil
}

func (r *MemoryRepository) DeleteNotification(ctx context.Context, id string) error {
	if !r.notifications.delete(id) {
		return ErrNotFound
	}
	publish(r.bus, TableNotifications, OpDelete, id)
	return nil
}

func (r *MemoryRepository) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	rows := r.notifications.list()
	out := make([]*models.Notification, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Hidden activities

func (r *MemoryRepository) CreateHiddenActivity(ctx context.Context, h *models.HiddenActivity) error {
	r.hiddenActivities.put(h.ID, *h)
	publish(r.bus, TableHiddenActivities, OpCreate, h.ID)
	return nil
}

func (r *MemoryRepository) DeleteHiddenActivity(ctx context.Context, id string) error {
	if !r.hiddenActivities.delete(id) {
		return ErrNotFound
	}
	publish(r.bus, TableHiddenActivities, OpDelete, id)
	return nil
}

func (r *MemoryRepository) ListHiddenActivities(ctx context.Context) ([]*models.HiddenActivity, error) {
	rows := r.hiddenActivities.list()
	out := make([]*models.HiddenActivity, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

// Profile

func (r *MemoryRepository) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	rows := r.profile.list()
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *MemoryRepository) PutProfile(ctx context.Context, p *models.UserProfile) error {
	created := r.profile.put(p.ID, *p)
	op := OpUpdate
	if created {
		op = OpCreate
	}
	publish(r.bus, TableProfile, op, p.ID)
	return nil
}

// Health

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
