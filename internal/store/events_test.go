package store

import (
	"context"
	"testing"

	"github.com/talentflow/engine/internal/models"
)

func TestBusDeliversBeforeWriteReturns(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	repo := NewMemoryRepository(bus)

	events, cancel := bus.Subscribe(TableJobs)
	defer cancel()

	if err := repo.CreateJob(ctx, &models.Job{ID: "job-1"}); err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	// Publish is synchronous, so the event is already buffered
	select {
	case ev := <-events:
		if ev.Table != TableJobs || ev.Op != OpCreate || ev.ID != "job-1" {
			t.Errorf("unexpected event %+v", ev)
		}
	default:
		t.Fatal("expected a buffered event immediately after the write returned")
	}
}

func TestBusTableFilter(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()
	repo := NewMemoryRepository(bus)

	events, cancel := bus.Subscribe(TableCandidates)
	defer cancel()

	repo.CreateJob(ctx, &models.Job{ID: "job-1"})
	repo.CreateCandidate(ctx, &models.Candidate{ID: "candidate-1"})

	select {
	case ev := <-events:
		if ev.Table != TableCandidates {
			t.Errorf("filter leaked event for table %s", ev.Table)
		}
	default:
		t.Fatal("expected the candidate event")
	}
	select {
	case ev := <-events:
		t.Errorf("expected exactly one event, got extra %+v", ev)
	default:
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	events, cancel := bus.Subscribe()
	cancel()

	if _, ok := <-events; ok {
		t.Error("expected channel closed after cancel")
	}

	// Publishing to a cancelled subscription must not panic
	bus.Publish(Event{Table: TableJobs, Op: OpCreate, ID: "job-1"})

	// Cancel is idempotent
	cancel()
}

func TestBusSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	_, cancel := bus.Subscribe(TableJobs)
	defer cancel()

	// Overflow the buffer; Publish must never block the writer
	for i := 0; i < 200; i++ {
		bus.Publish(Event{Table: TableJobs, Op: OpUpdate, ID: "job-1"})
	}
}
