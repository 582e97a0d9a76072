package models

import (
	"time"
)

// QuestionType enumerates the supported assessment question kinds
type QuestionType string

const (
	QuestionSingle    QuestionType = "single"
	QuestionMulti     QuestionType = "multi"
	QuestionShortText QuestionType = "short-text"
	QuestionLongText  QuestionType = "long-text"
	QuestionNumeric   QuestionType = "numeric"
	QuestionFile      QuestionType = "file"
)

// Condition gates a question on another question's answer
type Condition struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// Question is a single assessment question with optional validation bounds
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	Required      bool         `json:"required,omitempty"`
	MinValue      *int         `json:"minValue,omitempty"`
	MaxValue      *int         `json:"maxValue,omitempty"`
	MaxLength     *int         `json:"maxLength,omitempty"`
	ConditionalOn *Condition   `json:"conditionalOn,omitempty"`
}

// AssessmentSection groups an ordered list of questions
type AssessmentSection struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Assessment is the questionnaire attached to a job posting.
// At most one assessment exists per job; uniqueness is enforced at write
// time by upsert-on-jobId, not by the record key.
type Assessment struct {
	ID        string              `json:"id"`
	JobID     string              `json:"jobId"`
	Sections  []AssessmentSection `json:"sections"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// AssessmentResponse is a candidate's submitted answer set, append-only.
// Repeat submissions insert new records; there is no duplicate check.
type AssessmentResponse struct {
	ID          string         `json:"id"`
	JobID       string         `json:"jobId"`
	CandidateID string         `json:"candidateId"`
	Responses   map[string]any `json:"responses"`
	SubmittedAt time.Time      `json:"submittedAt"`
}
