package jobs

import (
	"context"
	"sync"
	"time"
)

// RunEvent captures one reload attempt.
type RunEvent struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Version   string
	Notes     int
	Changed   bool
	Err       error
}

// RunRecorder persists reload history.
type RunRecorder interface {
	Record(ctx context.Context, event RunEvent) error
	List(ctx context.Context) ([]RunEvent, error)
	Clear(ctx context.Context) error
}

// InMemoryRunRecorder keeps the most recent runs in memory. A limit of zero
// keeps every run.
type InMemoryRunRecorder struct {
	mu     sync.Mutex
	limit  int
	events []RunEvent
}

// NewInMemoryRunRecorder constructs an empty recorder.
func NewInMemoryRunRecorder(limit int) *InMemoryRunRecorder {
	return &InMemoryRunRecorder{limit: limit}
}

// Record stores the supplied event, dropping the oldest one when full.
func (r *InMemoryRunRecorder) Record(_ context.Context, event RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = append([]RunEvent(nil), r.events[len(r.events)-r.limit:]...)
	}
	return nil
}

// Events returns a snapshot of recorded runs.
func (r *InMemoryRunRecorder) Events() []RunEvent {
	events, _ := r.List(context.Background())
	return events
}

// List returns the runs recorded so far, oldest first.
func (r *InMemoryRunRecorder) List(context.Context) ([]RunEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RunEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

// Clear removes all recorded runs.
func (r *InMemoryRunRecorder) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}
