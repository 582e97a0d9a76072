package models

import (
	"regexp"
	"time"
)

// TimelineEntry is an immutable audit record of a candidate's stage history.
// Entries are append-only; nothing in the normal flow mutates or deletes them.
type TimelineEntry struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidateId"`
	Stage         Stage     `json:"stage"`
	PreviousStage Stage     `json:"previousStage,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Note          string    `json:"note"`
}

// Note is a free-text annotation on a candidate, append-only
type Note struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Content     string    `json:"content"`
	Mentions    []string  `json:"mentions"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions pulls @mention tokens (without the @) out of note content
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}
