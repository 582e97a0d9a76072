package hiring

import "errors"

var (
	// ErrJobNotFound is returned when a job id is absent
	ErrJobNotFound = errors.New("job not found")

	// ErrCandidateNotFound is returned when a candidate id is absent
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrNotificationNotFound is returned when a notification id is absent
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrActivityNotHidden is returned when un-hiding an activity that is
	// not currently hidden
	ErrActivityNotHidden = errors.New("activity not hidden")

	// ErrProfileNotFound is returned when no user profile has been seeded
	ErrProfileNotFound = errors.New("profile not found")

	// ErrReorderConflict is returned when no job currently holds the source
	// order of a reorder. It indicates the client acted on a stale view.
	ErrReorderConflict = errors.New("no job holds the source order")
)
