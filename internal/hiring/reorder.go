package hiring

import (
	"context"
	"fmt"
)

// ReorderJob moves the job currently holding fromOrder to toOrder and
// shifts every job in between by one, keeping the order values a dense
// permutation of 0..N-1. The shift set is computed from a single snapshot
// of the job table.
//
// Moving later (from < to): jobs with from < order <= to shift down one.
// Moving earlier (from > to): jobs with to <= order < from shift up one.
// from == to touches nothing.
func (s *Service) ReorderJob(ctx context.Context, jobID string, fromOrder, toOrder int) error {
	jobs, err := s.repo.ListJobs(ctx)
	if err != nil {
		return err
	}

	mover := -1
	for i, job := range jobs {
		if job.Order == fromOrder {
			mover = i
			break
		}
	}
	if mover == -1 {
		return ErrReorderConflict
	}

	if fromOrder == toOrder {
		return nil
	}

	for i, job := range jobs {
		if i == mover {
			continue
		}
		switch {
		case fromOrder < toOrder && job.Order > fromOrder && job.Order <= toOrder:
			job.Order--
		case fromOrder > toOrder && job.Order >= toOrder && job.Order < fromOrder:
			job.Order++
		default:
			continue
		}
		if err := s.repo.UpdateJob(ctx, job); err != nil {
			return fmt.Errorf("failed to shift job %s: %w", job.ID, err)
		}
	}

	jobs[mover].Order = toOrder
	if err := s.repo.UpdateJob(ctx, jobs[mover]); err != nil {
		return fmt.Errorf("failed to move job %s: %w", jobs[mover].ID, err)
	}
	return nil
}
