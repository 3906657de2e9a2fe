package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Service loads the note collection and hands out immutable stores.
type Service struct {
	loader *Loader
	logger interfaces.Logger
}

// NewService constructs a Service over filesystem. A nil logger is replaced
// by a no-op logger.
func NewService(filesystem fs.FS, cfg LoaderConfig, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		loader: NewLoader(filesystem, cfg),
		logger: logger,
	}
}

// OpenDir returns an fs.FS rooted at dir on filesystem after checking that
// the directory exists.
func OpenDir(filesystem afero.Fs, dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	ok, err := afero.DirExists(filesystem, dir)
	if err != nil {
		return nil, fmt.Errorf("markdown: stat content dir %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("markdown: content dir %s: %w", dir, fs.ErrNotExist)
	}
	return afero.NewIOFS(afero.NewBasePathFs(filesystem, dir)), nil
}

// Load reads every note and returns a new Store.
func (s *Service) Load(ctx context.Context) (*Store, error) {
	notes, err := s.loader.LoadAll(ctx, ".")
	if err != nil {
		s.logger.Error("markdown.load.failed", "error", err)
		return nil, err
	}
	store := NewStore(notes)
	s.logger.Info("markdown.load.completed", "notes", store.Len(), "version", store.Version())
	return store, nil
}

// LoadNote reads a single note by slug, trying each configured extension.
func (s *Service) LoadNote(ctx context.Context, slug string) (*interfaces.Note, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	var lastErr error
	for _, ext := range s.loader.extensions {
		note, err := s.loader.LoadFile(ctx, slug+ext)
		if err == nil {
			logging.WithNoteContext(s.logger, slug, "load").Debug("markdown.note.loaded")
			return note, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("markdown: no extensions configured for %s", slug)
	}
	return nil, lastErr
}
