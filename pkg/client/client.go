package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/models"
)

// LowScoreThreshold is the minimum score a candidate needs before a move to
// the hired stage goes through as requested. Below it the move is redirected
// to a random earlier stage instead.
const LowScoreThreshold = 50

// Client is a Go SDK for the TalentFlow hiring API
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRand seeds the source used to pick redirect stages, for deterministic
// tests
func WithRand(rng *rand.Rand) Option {
	return func(c *Client) {
		c.rng = rng
	}
}

// NewClient creates a new TalentFlow client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// JobListOptions contains options for listing jobs
type JobListOptions struct {
	Search   string
	Status   string
	Sort     string
	Page     int
	PageSize int
}

// CandidateListOptions contains options for listing candidates
type CandidateListOptions struct {
	Search   string
	Stage    string
	JobID    string
	Page     int
	PageSize int
}

// ReorderResult reports the outcome of a write that returns no entity
type ReorderResult struct {
	Success bool `json:"success"`
}

// ListJobs retrieves a page of jobs
func (c *Client) ListJobs(ctx context.Context, opts JobListOptions) (*hiring.JobPage, error) {
	q := url.Values{}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}

	var page hiring.JobPage
	if err := c.doJSON(ctx, "GET", "/api/jobs?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetJob retrieves a job by ID
func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := c.doJSON(ctx, "GET", "/api/jobs/"+id, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob creates a new job posting
func (c *Client) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	var created models.Job
	if err := c.doJSON(ctx, "POST", "/api/jobs", job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateJob applies a partial update to a job
func (c *Client) UpdateJob(ctx context.Context, id string, patch *models.JobPatch) (*models.Job, error) {
	var job models.Job
	if err := c.doJSON(ctx, "PATCH", "/api/jobs/"+id, patch, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job posting
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.doJSON(ctx, "DELETE", "/api/jobs/"+id, nil, &ReorderResult{})
}

// ReorderJob moves the job occupying fromOrder to toOrder, shifting the jobs
// between them by one rank
func (c *Client) ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) error {
	body := map[string]int{"fromOrder": fromOrder, "toOrder": toOrder}
	return c.doJSON(ctx, "PATCH", "/api/jobs/"+id+"/reorder", body, &ReorderResult{})
}

// ListCandidates retrieves a page of candidates
func (c *Client) ListCandidates(ctx context.Context, opts CandidateListOptions) (*hiring.CandidatePage, error) {
	q := url.Values{}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Stage != "" {
		q.Set("stage", opts.Stage)
	}
	if opts.JobID != "" {
		q.Set("job", opts.JobID)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}

	var page hiring.CandidatePage
	if err := c.doJSON(ctx, "GET", "/api/candidates?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCandidate retrieves a candidate by ID
func (c *Client) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.doJSON(ctx, "GET", "/api/candidates/"+id, nil, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// CreateCandidate creates a new candidate
func (c *Client) CreateCandidate(ctx context.Context, candidate *models.Candidate) (*models.Candidate, error) {
	var created models.Candidate
	if err := c.doJSON(ctx, "POST", "/api/candidates", candidate, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCandidate applies a partial update to a candidate
func (c *Client) UpdateCandidate(ctx context.Context, id string, patch *models.CandidatePatch) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.doJSON(ctx, "PATCH", "/api/candidates/"+id, patch, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// MoveCandidate transitions a candidate to a new stage. A candidate scoring
// below LowScoreThreshold cannot be hired: the move lands on a random
// non-hired stage instead, mirroring how the kanban board bounces weak
// candidates out of the hired column.
func (c *Client) MoveCandidate(ctx context.Context, id string, stage models.Stage) (*models.Candidate, error) {
	if stage == models.StageHired {
		current, err := c.GetCandidate(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Score < LowScoreThreshold {
			stage = c.redirectStage(current.Stage)
		}
	}

	return c.UpdateCandidate(ctx, id, &models.CandidatePatch{Stage: &stage})
}

// redirectStage picks a random stage that is neither hired nor the
// candidate's current stage
func (c *Client) redirectStage(current models.Stage) models.Stage {
	var alternates []models.Stage
	for _, st := range models.Stages() {
		if st != models.StageHired && st != current {
			alternates = append(alternates, st)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return alternates[c.rng.Intn(len(alternates))]
}

// Timeline retrieves a candidate's stage history, newest first
func (c *Client) Timeline(ctx context.Context, candidateID string) ([]*models.TimelineEntry, error) {
	var entries []*models.TimelineEntry
	if err := c.doJSON(ctx, "GET", "/api/candidates/"+candidateID+"/timeline", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListNotes retrieves the notes attached to a candidate
func (c *Client) ListNotes(ctx context.Context, candidateID string) ([]*models.Note, error) {
	var notes []*models.Note
	if err := c.doJSON(ctx, "GET", "/api/candidates/"+candidateID+"/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// AddNote attaches a note to a candidate
func (c *Client) AddNote(ctx context.Context, candidateID, content, createdBy string) (*models.Note, error) {
	body := map[string]string{"content": content, "createdBy": createdBy}
	var note models.Note
	if err := c.doJSON(ctx, "POST", "/api/candidates/"+candidateID+"/notes", body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// GetAssessment retrieves the assessment form for a job. Jobs without a
// saved form come back with empty sections rather than an error.
func (c *Client) GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := c.doJSON(ctx, "GET", "/api/assessments/"+jobID, nil, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// SaveAssessment creates or replaces the assessment form for a job
func (c *Client) SaveAssessment(ctx context.Context, jobID string, sections []models.AssessmentSection) (*models.Assessment, error) {
	body := map[string]any{"sections": sections}
	var assessment models.Assessment
	if err := c.doJSON(ctx, "PUT", "/api/assessments/"+jobID, body, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// SubmitAssessment records a candidate's answers to a job's assessment
func (c *Client) SubmitAssessment(ctx context.Context, jobID, candidateID string, responses map[string]any) (*models.AssessmentResponse, error) {
	body := map[string]any{"candidateId": candidateID, "responses": responses}
	var submission models.AssessmentResponse
	if err := c.doJSON(ctx, "POST", "/api/assessments/"+jobID+"/submit", body, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

// Notifications retrieves all notifications, newest first
func (c *Client) Notifications(ctx context.Context) ([]*models.Notification, error) {
	var notifications []*models.Notification
	if err := c.doJSON(ctx, "GET", "/api/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flags a notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := c.doJSON(ctx, "PATCH", "/api/notifications/"+id+"/read", nil, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// ClearReadNotifications deletes every notification already marked read
func (c *Client) ClearReadNotifications(ctx context.Context) error {
	return c.doJSON(ctx, "DELETE", "/api/notifications/read", nil, &ReorderResult{})
}

// HiddenActivities retrieves the IDs of activities hidden from the feed
func (c *Client) HiddenActivities(ctx context.Context) ([]*models.HiddenActivity, error) {
	var hidden []*models.HiddenActivity
	if err := c.doJSON(ctx, "GET", "/api/activities/hidden", nil, &hidden); err != nil {
		return nil, err
	}
	return hidden, nil
}

// HideActivity hides an activity from the feed
func (c *Client) HideActivity(ctx context.Context, activityID string) (*models.HiddenActivity, error) {
	var hidden models.HiddenActivity
	if err := c.doJSON(ctx, "POST", "/api/activities/"+activityID+"/hide", nil, &hidden); err != nil {
		return nil, err
	}
	return &hidden, nil
}

// UnhideActivity restores a hidden activity to the feed
func (c *Client) UnhideActivity(ctx context.Context, activityID string) error {
	return c.doJSON(ctx, "DELETE", "/api/activities/"+activityID+"/hide", nil, &ReorderResult{})
}

// Profile retrieves the current user's profile
func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.doJSON(ctx, "GET", "/api/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update to the current user's profile
func (c *Client) UpdateProfile(ctx context.Context, patch *models.ProfilePatch) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.doJSON(ctx, "PATCH", "/api/profile", patch, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, "GET", "/health", nil, &struct {
		Status string `json:"status"`
	}{})
}

// doJSON performs an HTTP request with an optional JSON body and decodes the
// response into out. Error responses carry {"error": message}; the message
// is surfaced verbatim.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
