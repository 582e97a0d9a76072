package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentflow/engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL. It is the
// durable backend; the simulator and tests default to MemoryRepository.
type PostgresRepository struct {
	pool *pgxpool.Pool
	bus  *Bus
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig, bus *Bus) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool, bus: bus}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Jobs

func (r *PostgresRepository) CreateJob(ctx context.Context, job *models.Job) error {
	tagsJSON, err := json.Marshal(job.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO jobs (id, title, slug, department, location, type, status, tags, openings, display_order, open_date, close_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Slug,
		job.Department,
		job.Location,
		job.Type,
		string(job.Status),
		tagsJSON,
		job.Openings,
		job.Order,
		job.OpenDate,
		nullTime(job.CloseDate),
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	publish(r.bus, TableJobs, OpCreate, job.ID)
	return nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	var statusStr string
	var tagsJSON []byte
	var closeDate sql.NullTime

	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Slug,
		&job.Department,
		&job.Location,
		&job.Type,
		&statusStr,
		&tagsJSON,
		&job.Openings,
		&job.Order,
		&job.OpenDate,
		&closeDate,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Status = models.JobStatus(statusStr)
	if closeDate.Valid {
		job.CloseDate = &closeDate.Time
	}
	if err := json.Unmarshal(tagsJSON, &job.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return &job, nil
}

const jobColumns = `id, title, slug, department, location, type, status, tags, openings, display_order, open_date, close_date, created_at, updated_at`

func (r *PostgresRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (r *PostgresRepository) UpdateJob(ctx context.Context, job *models.Job) error {
	tagsJSON, err := json.Marshal(job.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		UPDATE jobs
		SET title = $2, slug = $3, department = $4, location = $5, type = $6, status = $7, tags = $8, openings = $9, display_order = $10, open_date = $11, close_date = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Slug,
		job.Department,
		job.Location,
		job.Type,
		string(job.Status),
		tagsJSON,
		job.Openings,
		job.Order,
		job.OpenDate,
		nullTime(job.CloseDate),
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	publish(r.bus, TableJobs, OpUpdate, job.ID)
	return nil
}

func (r *PostgresRepository) DeleteJob(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	publish(r.bus, TableJobs, OpDelete, id)
	return nil
}

func (r *PostgresRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Candidates

const candidateColumns = `id, name, email, phone, job_id, stage, score, resume_viewed, resume_url, applied_at, updated_at`

func (r *PostgresRepository) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.JobID,
		string(c.Stage),
		c.Score,
		c.ResumeViewed,
		nullString(c.ResumeURL),
		c.AppliedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	publish(r.bus, TableCandidates, OpCreate, c.ID)
	return nil
}

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	var c models.Candidate
	var stageStr string
	var resumeURL sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.JobID,
		&stageStr,
		&c.Score,
		&c.ResumeViewed,
		&resumeURL,
		&c.AppliedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Stage = models.Stage(stageStr)
	c.ResumeURL = resumeURL.String
	return &c, nil
}

func (r *PostgresRepository) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	c, err := scanCandidate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $2, email = $3, phone = $4, job_id = $5, stage = $6, score = $7, resume_viewed = $8, resume_url = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.JobID,
		string(c.Stage),
		c.Score,
		c.ResumeViewed,
		nullString(c.ResumeURL),
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	publish(r.bus, TableCandidates, OpUpdate, c.ID)
	return nil
}

func (r *PostgresRepository) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY applied_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Timeline

func (r *PostgresRepository) CreateTimelineEntry(ctx context.Context, e *models.TimelineEntry) error {
	query := `
		INSERT INTO timeline_entries (id, candidate_id, stage, previous_stage, timestamp, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.CandidateID,
		string(e.Stage),
		nullString(string(e.PreviousStage)),
		e.Timestamp,
		e.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to create timeline entry: %w", err)
	}

	publish(r.bus, TableTimeline, OpCreate, e.ID)
	return nil
}

func (r *PostgresRepository) ListTimeline(ctx context.Context, candidateID string) ([]*models.TimelineEntry, error) {
	query := `
		SELECT id, candidate_id, stage, previous_stage, timestamp, note
		FROM timeline_entries
		WHERE candidate_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := r.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	defer rows.Close()

	var entries []*models.TimelineEntry
	for rows.Next() {
		var e models.TimelineEntry
		var stageStr string
		var prevStage sql.NullString

		if err := rows.Scan(&e.ID, &e.CandidateID, &stageStr, &prevStage, &e.Timestamp, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan timeline entry: %w", err)
		}
		e.Stage = models.Stage(stageStr)
		e.PreviousStage = models.Stage(prevStage.String)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Notes

func (r *PostgresRepository) CreateNote(ctx context.Context, n *models.Note) error {
	mentionsJSON, err := json.Marshal(n.Mentions)
	if err != nil {
		return fmt.Errorf("failed to marshal mentions: %w", err)
	}

	query := `
		INSERT INTO notes (id, candidate_id, content, mentions, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query, n.ID, n.CandidateID, n.Content, mentionsJSON, n.CreatedBy, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	publish(r.bus, TableNotes, OpCreate, n.ID)
	return nil
}

func (r *PostgresRepository) ListNotes(ctx context.Context, candidateID string) ([]*models.Note, error) {
	query := `
		SELECT id, candidate_id, content, mentions, created_by, created_at
		FROM notes
		WHERE candidate_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var n models.Note
		var mentionsJSON []byte

		if err := rows.Scan(&n.ID, &n.CandidateID, &n.Content, &mentionsJSON, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if err := json.Unmarshal(mentionsJSON, &n.Mentions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mentions: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// Assessments

func (r *PostgresRepository) CreateAssessment(ctx context.Context, a *models.Assessment) error {
	sectionsJSON, err := json.Marshal(a.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	query := `
		INSERT INTO assessments (id, job_id, sections, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, query, a.ID, a.JobID, sectionsJSON, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	publish(r.bus, TableAssessments, OpCreate, a.ID)
	return nil
}

func (r *PostgresRepository) UpdateAssessment(ctx context.Context, a *models.Assessment) error {
	sectionsJSON, err := json.Marshal(a.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	query := `UPDATE assessments SET sections = $2, updated_at = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, a.ID, sectionsJSON, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	publish(r.bus, TableAssessments, OpUpdate, a.ID)
	return nil
}

func (r *PostgresRepository) GetAssessmentByJob(ctx context.Context, jobID string) (*models.Assessment, error) {
	query := `
		SELECT id, job_id, sections, created_at, updated_at
		FROM assessments
		WHERE job_id = $1
		LIMIT 1
	`

	var a models.Assessment
	var sectionsJSON []byte

	err := r.pool.QueryRow(ctx, query, jobID).Scan(&a.ID, &a.JobID, &sectionsJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if err := json.Unmarshal(sectionsJSON, &a.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	return &a, nil
}

// Assessment responses

func (r *PostgresRepository) CreateAssessmentResponse(ctx context.Context, resp *models.AssessmentResponse) error {
	responsesJSON, err := json.Marshal(resp.Responses)
	if err != nil {
		return fmt.Errorf("failed to marshal responses: %w", err)
	}

	query := `
		INSERT INTO assessment_responses (id, job_id, candidate_id, responses, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, query, resp.ID, resp.JobID, resp.CandidateID, responsesJSON, resp.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to create assessment response: %w", err)
	}

	publish(r.bus, TableAssessmentResponses, OpCreate, resp.ID)
	return nil
}

func (r *PostgresRepository) ListAssessmentResponses(ctx context.Context, jobID string) ([]*models.AssessmentResponse, error) {
	query := `
		SELECT id, job_id, candidate_id, responses, submitted_at
		FROM assessment_responses
		WHERE job_id = $1
		ORDER BY submitted_at, id
	`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment responses: %w", err)
	}
	defer rows.Close()

	var responses []*models.AssessmentResponse
	for rows.Next() {
		var resp models.AssessmentResponse
		var responsesJSON []byte

		if err := rows.Scan(&resp.ID, &resp.JobID, &resp.CandidateID, &responsesJSON, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment response: %w", err)
		}
		if err := json.Unmarshal(responsesJSON, &resp.Responses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
		}
		responses = append(responses, &resp)
	}
	return responses, rows.Err()
}

// Notifications

func (r *PostgresRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, title, body, created_at, read, related_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, n.ID, n.Title, nullString(n.Body), n.CreatedAt, n.Read, nullString(n.RelatedID))
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	publish(r.bus, TableNotifications, OpCreate, n.ID)
	return nil
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	var body, relatedID sql.NullString

	if err := row.Scan(&n.ID, &n.Title, &body, &n.CreatedAt, &n.Read, &relatedID); err != nil {
		return nil, err
	}
	n.Body = body.String
	n.RelatedID = relatedID.String
	return &n, nil
}

func (r *PostgresRepository) GetNotification(ctx context.Context, id string) (*models.Notification, error) {
	query := `SELECT id, title, body, created_at, read, related_id FROM notifications WHERE id = $1`

	n, err := scanNotification(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) UpdateNotification(ctx context.Context, n *models.Notification) error {
	query := `UPDATE notifications SET title = $2, body = $3, read = $4, related_id = $5 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, n.ID, n.Title, nullString(n.Body), n.Read, nullString(n.RelatedID))
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	publish(r.bus, TableNotifications, OpUpdate, n.ID)
	return nil
}

func (r *PostgresRepository) DeleteNotification(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	publish(r.bus, TableNotifications, OpDelete, id)
	return nil
}

func (r *PostgresRepository) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	query := `SELECT id, title, body, created_at, read, related_id FROM notifications ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// Hidden activities

func (r *PostgresRepository) CreateHiddenActivity(ctx context.Context, h *models.HiddenActivity) error {
	query := `INSERT INTO hidden_activities (id, hidden_at) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, h.ID, h.HiddenAt)
	if err != nil {
		return fmt.Errorf("failed to create hidden activity: %w", err)
	}

	publish(r.bus, TableHiddenActivities, OpCreate, h.ID)
	return nil
}

func (r *PostgresRepository) DeleteHiddenActivity(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM hidden_activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hidden activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	publish(r.bus, TableHiddenActivities, OpDelete, id)
	return nil
}

func (r *PostgresRepository) ListHiddenActivities(ctx context.Context) ([]*models.HiddenActivity, error) {
	query := `SELECT id, hidden_at FROM hidden_activities ORDER BY hidden_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hidden activities: %w", err)
	}
	defer rows.Close()

	var hidden []*models.HiddenActivity
	for rows.Next() {
		var h models.HiddenActivity
		if err := rows.Scan(&h.ID, &h.HiddenAt); err != nil {
			return nil, fmt.Errorf("failed to scan hidden activity: %w", err)
		}
		hidden = append(hidden, &h)
	}
	return hidden, rows.Err()
}

// Profile

func (r *PostgresRepository) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	query := `SELECT id, name, email, role, avatar, theme, created_at FROM user_profile LIMIT 1`

	var p models.UserProfile
	var avatar sql.NullString

	err := r.pool.QueryRow(ctx, query).Scan(&p.ID, &p.Name, &p.Email, &p.Role, &avatar, &p.Theme, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Avatar = avatar.String
	return &p, nil
}

func (r *PostgresRepository) PutProfile(ctx context.Context, p *models.UserProfile) error {
	query := `
		INSERT INTO user_profile (id, name, email, role, avatar, theme, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = $2, email = $3, role = $4, avatar = $5, theme = $6
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Email, p.Role, nullString(p.Avatar), p.Theme, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to put profile: %w", err)
	}

	publish(r.bus, TableProfile, OpUpdate, p.ID)
	return nil
}

// Helpers

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
