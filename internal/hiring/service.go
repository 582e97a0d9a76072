// Package hiring implements the applicant-tracking engines: job and
// candidate queries, the dense-rank reorder algorithm, the stage-transition
// audit trail, and assessment persistence.
package hiring

import (
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/engine/internal/store"
)

// Service wires the engines to a repository. Every engine reads and writes
// through the single injected store so tests can instantiate isolated
// instances per case.
type Service struct {
	repo store.Repository
	now  func() time.Time
}

// Option configures the service
type Option func(*Service)

// WithClock replaces the wall clock, pinning timestamps (and the ids derived
// from them) in tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a hiring service on top of the given repository
func NewService(repo store.Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newID builds a collision-free record id with a table prefix. Jobs and
// candidates instead use timestamp ids (see CreateJob/CreateCandidate)
// because clients rely on that wire format.
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
