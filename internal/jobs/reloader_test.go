package jobs_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-notes/internal/jobs"
	"github.com/goliatone/go-notes/internal/markdown"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

type stubLibrary struct {
	mu      sync.Mutex
	store   *markdown.Store
	next    []*interfaces.Note
	err     error
	reloads int
}

func (s *stubLibrary) Reload(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloads++
	if s.err != nil {
		return s.err
	}
	s.store = markdown.NewStore(s.next)
	return nil
}

func (s *stubLibrary) Notes() interfaces.NoteSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store
}

func (s *stubLibrary) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloads
}

func note(slug string, sum byte) *interfaces.Note {
	return &interfaces.Note{Slug: slug, Checksum: []byte{sum}}
}

func TestReloaderProcessRecordsChanges(t *testing.T) {
	ctx := context.Background()
	lib := &stubLibrary{store: markdown.NewStore(nil), next: []*interfaces.Note{note("a", 1)}}
	history := jobs.NewInMemoryRunRecorder(0)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	reloader := jobs.NewReloader(lib, time.Minute, jobs.WithRunRecorder(history), jobs.WithClock(func() time.Time { return now }))

	if err := reloader.Process(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}
	if err := reloader.Process(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}

	events := history.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(events))
	}
	if !events[0].Changed || events[0].Notes != 1 {
		t.Fatalf("expected first run to change, got %+v", events[0])
	}
	if events[1].Changed {
		t.Fatalf("expected second run to be unchanged, got %+v", events[1])
	}
	if events[0].ID == "" || events[0].ID >= events[1].ID {
		t.Fatalf("expected increasing run ids, got %q then %q", events[0].ID, events[1].ID)
	}
	if !events[0].StartedAt.Equal(now) {
		t.Fatalf("expected clock to be used, got %s", events[0].StartedAt)
	}
}

func TestReloaderProcessKeepsNotesOnFailure(t *testing.T) {
	ctx := context.Background()
	lib := &stubLibrary{store: markdown.NewStore([]*interfaces.Note{note("a", 1)}), err: errors.New("disk gone")}
	history := jobs.NewInMemoryRunRecorder(0)
	reloader := jobs.NewReloader(lib, time.Minute, jobs.WithRunRecorder(history))

	if err := reloader.Process(ctx); err == nil {
		t.Fatalf("expected reload error")
	}
	events := history.Events()
	if len(events) != 1 || events[0].Err == nil || events[0].Changed {
		t.Fatalf("unexpected history %+v", events)
	}
	if events[0].Notes != 1 {
		t.Fatalf("expected previous notes to remain, got %d", events[0].Notes)
	}
}

func TestReloaderRunStopsOnCancel(t *testing.T) {
	lib := &stubLibrary{store: markdown.NewStore(nil)}
	reloader := jobs.NewReloader(lib, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reloader.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for lib.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if lib.count() < 2 {
		t.Fatalf("expected at least 2 reloads, got %d", lib.count())
	}
}

func TestReloaderRunDisabledInterval(t *testing.T) {
	reloader := jobs.NewReloader(&stubLibrary{}, 0)
	if err := reloader.Run(context.Background()); err != nil {
		t.Fatalf("expected nil for disabled interval, got %v", err)
	}
}

func TestInMemoryRunRecorderLimit(t *testing.T) {
	recorder := jobs.NewInMemoryRunRecorder(2)
	for i := 0; i < 3; i++ {
		_ = recorder.Record(context.Background(), jobs.RunEvent{Version: strconv.Itoa(i)})
	}
	events := recorder.Events()
	if len(events) != 2 || events[0].Version != "1" || events[1].Version != "2" {
		t.Fatalf("unexpected events %+v", events)
	}
}
