package store

import (
	"log/slog"
	"sync"
)

// Table names a typed table in the store
type Table string

const (
	TableJobs                Table = "jobs"
	TableCandidates          Table = "candidates"
	TableTimeline            Table = "timeline"
	TableNotes               Table = "notes"
	TableAssessments         Table = "assessments"
	TableAssessmentResponses Table = "assessmentResponses"
	TableNotifications       Table = "notifications"
	TableHiddenActivities    Table = "hiddenActivities"
	TableProfile             Table = "profile"
)

// Op is the kind of mutation an event describes
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes one committed write to a table. Origin is set only on
// events injected by a remote bridge, so the bridge can avoid forwarding
// them back out.
type Event struct {
	Table  Table  `json:"table"`
	Op     Op     `json:"op"`
	ID     string `json:"id"`
	Origin string `json:"-"`
}

// subscription is one registered listener with its table filter
type subscription struct {
	tables map[Table]bool
	ch     chan Event
}

// Bus fans committed write events out to live-query subscribers.
// Publish runs synchronously in the writer's call path, so a subscriber's
// channel always carries the event before the write that caused it returns.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]*subscription
	next int
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*subscription)}
}

// Subscribe registers a listener for events on the given tables (all tables
// when none are named). The returned cancel func must be called to release
// the subscription; the channel is closed by cancel.
func (b *Bus) Subscribe(tables ...Table) (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, 64)}
	if len(tables) > 0 {
		sub.tables = make(map[Table]bool, len(tables))
		for _, t := range tables {
			sub.tables[t] = true
		}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish delivers the event to every matching subscriber. Delivery is
// non-blocking: a subscriber that falls 64 events behind loses the oldest
// notifications, which is safe because subscribers recompute full result
// sets rather than applying deltas.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if sub.tables != nil && !sub.tables[ev.Table] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			slog.Warn("dropping change event for slow subscriber", "table", ev.Table, "op", ev.Op)
		}
	}
}

// publish is a nil-safe helper for repositories constructed without a bus
func publish(b *Bus, table Table, op Op, id string) {
	if b != nil {
		b.Publish(Event{Table: table, Op: op, ID: id})
	}
}
