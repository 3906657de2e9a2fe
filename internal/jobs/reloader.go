// Package jobs runs background maintenance for long-lived processes.
package jobs

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Library is the reloadable note collection. *notes.Module satisfies it.
type Library interface {
	Reload(ctx context.Context) error
	Notes() interfaces.NoteSource
}

// Reloader re-reads the notes on a fixed interval so edits made while a
// server is running reach the search snapshot and distill output.
type Reloader struct {
	library  Library
	history  RunRecorder
	logger   interfaces.Logger
	now      func() time.Time
	interval time.Duration

	entropyMu sync.Mutex
	entropy   io.Reader
}

type Option func(*Reloader)

func WithRunRecorder(recorder RunRecorder) Option {
	return func(r *Reloader) {
		r.history = recorder
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Reloader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(r *Reloader) {
		if clock != nil {
			r.now = clock
		}
	}
}

func NewReloader(library Library, interval time.Duration, opts ...Option) *Reloader {
	r := &Reloader{
		library:  library,
		logger:   logging.NoOp(),
		now:      time.Now,
		interval: interval,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process runs one reload and records its outcome.
func (r *Reloader) Process(ctx context.Context) error {
	if r.library == nil {
		return errors.New("jobs: library is nil")
	}
	started := r.now()
	before := versionOf(r.library.Notes())

	err := r.library.Reload(ctx)

	event := RunEvent{ID: r.runID(started), StartedAt: started, Duration: r.now().Sub(started), Err: err}
	if source := r.library.Notes(); source != nil {
		event.Version = source.Version()
		event.Notes = len(source.All())
	}
	event.Changed = err == nil && event.Version != before
	if r.history != nil {
		_ = r.history.Record(ctx, event)
	}

	if err != nil {
		r.logger.Error("notes.reload.failed", "error", err)
		return err
	}
	if event.Changed {
		r.logger.Info("notes.reload.changed", "version", event.Version, "notes", event.Notes)
	} else {
		r.logger.Debug("notes.reload.unchanged", "version", event.Version)
	}
	return nil
}

// Run calls Process every interval until ctx is cancelled. Failed reloads
// keep the previous notes and are retried on the next tick. A non-positive
// interval returns immediately.
func (r *Reloader) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = r.Process(ctx)
		}
	}
}

// runID returns a ULID for the run; ids sort by start time.
func (r *Reloader) runID(started time.Time) string {
	r.entropyMu.Lock()
	defer r.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(started), r.entropy).String()
}

func versionOf(source interfaces.NoteSource) string {
	if source == nil {
		return ""
	}
	return source.Version()
}
