package models

import (
	"strings"
	"time"
)

// Stage represents a candidate's position in the hiring pipeline
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages lists every pipeline stage in display order
func Stages() []Stage {
	return []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}
}

// IsTerminal returns true if the stage is a final state
func (s Stage) IsTerminal() bool {
	return s == StageHired || s == StageRejected
}

// Candidate represents an applicant to a job posting.
// JobID references a Job and may dangle after a job delete.
type Candidate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	JobID        string    `json:"jobId"`
	Stage        Stage     `json:"stage"`
	Score        int       `json:"score"`
	ResumeViewed bool      `json:"resumeViewed"`
	ResumeURL    string    `json:"resumeUrl,omitempty"`
	AppliedAt    time.Time `json:"appliedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MatchesSearch checks the case-insensitive search term against name and email
func (c *Candidate) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term)
}

// CandidatePatch is a partial update to a candidate. Nil fields are left untouched.
type CandidatePatch struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	JobID        *string `json:"jobId"`
	Stage        *Stage  `json:"stage"`
	Score        *int    `json:"score"`
	ResumeViewed *bool   `json:"resumeViewed"`
	ResumeURL    *string `json:"resumeUrl"`
}

// Apply merges the patch into the candidate
func (p *CandidatePatch) Apply(c *Candidate) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.JobID != nil {
		c.JobID = *p.JobID
	}
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	if p.Score != nil {
		c.Score = *p.Score
	}
	if p.ResumeViewed != nil {
		c.ResumeViewed = *p.ResumeViewed
	}
	if p.ResumeURL != nil {
		c.ResumeURL = *p.ResumeURL
	}
}
