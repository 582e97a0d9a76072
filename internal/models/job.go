package models

import (
	"regexp"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobDraft    JobStatus = "draft"
	JobArchived JobStatus = "archived"
	JobClosed   JobStatus = "closed"
)

// IsOpen returns true if the posting still accepts applications
func (s JobStatus) IsOpen() bool {
	return s == JobActive
}

// Job represents a job posting
type Job struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Department string     `json:"department"`
	Location   string     `json:"location"`
	Type       string     `json:"type"`
	Status     JobStatus  `json:"status"`
	Tags       []string   `json:"tags"`
	Openings   int        `json:"openings"`
	Order      int        `json:"order"`
	OpenDate   time.Time  `json:"openDate"`
	CloseDate  *time.Time `json:"closeDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// EffectivelyClosed returns true if the posting should be treated as closed:
// either the stored status says so, or the close date has passed (the stored
// status may lag behind until the close-date worker catches up).
func (j *Job) EffectivelyClosed(now time.Time) bool {
	if j.Status == JobClosed {
		return true
	}
	return j.CloseDate != nil && !j.CloseDate.After(now)
}

// MatchesSearch checks the case-insensitive search term against title and tags
func (j *Job) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(j.Title), term) {
		return true
	}
	for _, tag := range j.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// JobPatch is a partial update to a job. Nil fields are left untouched.
type JobPatch struct {
	Title      *string    `json:"title"`
	Slug       *string    `json:"slug"`
	Department *string    `json:"department"`
	Location   *string    `json:"location"`
	Type       *string    `json:"type"`
	Status     *JobStatus `json:"status"`
	Tags       *[]string  `json:"tags"`
	Openings   *int       `json:"openings"`
	Order      *int       `json:"order"`
	OpenDate   *time.Time `json:"openDate"`
	CloseDate  *time.Time `json:"closeDate"`
}

// Apply merges the patch into the job
func (p *JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Slug != nil {
		j.Slug = *p.Slug
	}
	if p.Department != nil {
		j.Department = *p.Department
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Tags != nil {
		j.Tags = *p.Tags
	}
	if p.Openings != nil {
		j.Openings = *p.Openings
	}
	if p.Order != nil {
		j.Order = *p.Order
	}
	if p.OpenDate != nil {
		j.OpenDate = *p.OpenDate
	}
	if p.CloseDate != nil {
		j.CloseDate = p.CloseDate
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify builds a URL-safe slug from a job title
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.Join(strings.Fields(s), "-")
	return slugStrip.ReplaceAllString(s, "")
}
