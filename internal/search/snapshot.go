// Package search builds the flat search index from the note collection.
//
// Records live in immutable snapshots. An Index holds the current snapshot
// and swaps it atomically when the note source reports a new version, so
// readers never see a partially built index.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Snapshot is a read-only search index built from one source version.
type Snapshot struct {
	Version string
	BuiltAt time.Time
	Records []Record
}

// Len reports the number of records. Nil snapshots are empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// BuildSnapshot strips every note of source into a new snapshot.
func BuildSnapshot(ctx context.Context, source interfaces.NoteSource, maxChars int, now time.Time) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notes := source.All()
	records := BuildRecords(notes, maxChars)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Snapshot{Version: source.Version(), BuiltAt: now, Records: records}, nil
}

// Options configures an Index.
type Options struct {
	MaxContentChars int
	Clock           func() time.Time
	Logger          interfaces.Logger
}

// Index holds the current snapshot.
type Index struct {
	current atomic.Pointer[Snapshot]
	stale   atomic.Bool

	mu       sync.Mutex
	maxChars int
	clock    func() time.Time
	logger   interfaces.Logger
}

// NewIndex returns an empty Index. Call Refresh to build the first snapshot.
func NewIndex(opts Options) *Index {
	idx := &Index{
		maxChars: opts.MaxContentChars,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if idx.clock == nil {
		idx.clock = time.Now
	}
	if idx.logger == nil {
		idx.logger = logging.NoOp()
	}
	return idx
}

// Current returns the latest snapshot, or nil before the first Refresh.
func (i *Index) Current() *Snapshot {
	return i.current.Load()
}

// Invalidate forces the next Refresh to rebuild even when the source version
// is unchanged.
func (i *Index) Invalidate() {
	i.stale.Store(true)
}

// Refresh rebuilds the snapshot when source reports a version different from
// the current snapshot or after Invalidate. It reports whether a rebuild
// happened. Concurrent callers are serialised; readers keep using the
// previous snapshot until the swap.
func (i *Index) Refresh(ctx context.Context, source interfaces.NoteSource) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	current := i.current.Load()
	if current != nil && !i.stale.Load() && current.Version == source.Version() {
		return false, nil
	}

	next, err := BuildSnapshot(ctx, source, i.maxChars, i.clock())
	if err != nil {
		i.logger.Error("search.refresh.failed", "error", err)
		return false, err
	}
	i.current.Store(next)
	i.stale.Store(false)
	i.logger.Info("search.refresh.completed", "version", next.Version, "records", next.Len())
	return true, nil
}
