package distill

import (
	"context"
	"fmt"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/notesindex"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Library exposes the current note collection and recency index. Both values
// are treated as read-only snapshots for the duration of a call.
type Library interface {
	Notes() interfaces.NoteSource
	Recency() notesindex.Index
}

// StaticLibrary is a Library over fixed values.
type StaticLibrary struct {
	Source interfaces.NoteSource
	Index  notesindex.Index
}

func (l StaticLibrary) Notes() interfaces.NoteSource { return l.Source }
func (l StaticLibrary) Recency() notesindex.Index    { return l.Index }

// Config tunes the service.
type Config struct {
	DefaultMode     Mode
	ValidateExports bool
}

// Service wires collection, rendering and export over a Library.
type Service struct {
	library Library
	cfg     Config
	logger  interfaces.Logger
}

// NewService constructs a Service. A nil logger is replaced by a no-op.
func NewService(library Library, cfg Config, logger interfaces.Logger) *Service {
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = ModeStream
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{library: library, cfg: cfg, logger: logger}
}

// Collect returns the recency-ordered bundle of notes under prefix.
func (s *Service) Collect(ctx context.Context, prefix string) (Bundle, error) {
	source := s.library.Notes()
	index := s.library.Recency()
	if len(index) == 0 && source != nil {
		index = notesindex.FromNotes(source.All())
	}

	bundle, err := Collect(ctx, index, source, prefix)
	if err != nil {
		s.logger.Error("distill.collect.failed", "prefix", prefix, "error", err)
		return Bundle{}, err
	}
	if skipped := len(SelectRows(index, prefix)) - bundle.TotalNotes; skipped > 0 {
		s.logger.Debug("distill.collect.skipped", "prefix", prefix, "missing", skipped)
	}
	s.logger.Info("distill.collect.completed", "prefix", prefix, "notes", bundle.TotalNotes, "clips", bundle.TotalClips)
	return bundle, nil
}

// Bundle extracts clips from the given slugs in order. Unknown slugs yield
// empty sections.
func (s *Service) Bundle(ctx context.Context, slugs []string) (Bundle, error) {
	source := s.library.Notes()
	index := s.library.Recency()

	body := func(_ context.Context, slug string) (string, error) {
		if source == nil {
			return "", nil
		}
		note, ok := source.Get(slug)
		if !ok || note == nil {
			logging.WithNoteContext(s.logger, slug, "bundle").Debug("distill.bundle.missing")
			return "", nil
		}
		return note.Body, nil
	}
	title := func(slug string) string {
		if source != nil {
			if note, ok := source.Get(slug); ok && note != nil {
				return resolveTitle(note, index[slug].Title)
			}
		}
		if entry, ok := index[slug]; ok && entry.Title != "" {
			return entry.Title
		}
		return LastSegmentTitle(slug)
	}

	return BuildBundle(ctx, slugs, body, title)
}

// Render collects the notes under prefix and projects them into mode. An
// empty mode uses the configured default.
func (s *Service) Render(ctx context.Context, prefix string, mode Mode) (Projection, error) {
	if mode == "" {
		mode = s.cfg.DefaultMode
	}
	bundle, err := s.Collect(ctx, prefix)
	if err != nil {
		return Projection{}, err
	}
	projection, err := Render(mode, bundle.Clips())
	if err != nil {
		return Projection{}, err
	}
	return projection, nil
}

// Export collects the notes under prefix and encodes them in format.
func (s *Service) Export(ctx context.Context, prefix string, format Format) ([]byte, error) {
	bundle, err := s.Collect(ctx, prefix)
	if err != nil {
		return nil, err
	}
	data, err := Export(format, bundle.Clips(), s.cfg.ValidateExports)
	if err != nil {
		s.logger.Error("distill.export.failed", "prefix", prefix, "format", string(format), "error", err)
		return nil, fmt.Errorf("distill export %s: %w", format, err)
	}
	s.logger.Info("distill.export.completed", "prefix", prefix, "format", string(format), "bytes", len(data))
	return data, nil
}
