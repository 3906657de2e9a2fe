package notes

import (
	"context"
	"errors"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-notes/internal/clips"
	distillcmd "github.com/goliatone/go-notes/internal/commands/distill"
	"github.com/goliatone/go-notes/internal/di"
	"github.com/goliatone/go-notes/internal/distill"
	notesapi "github.com/goliatone/go-notes/internal/http"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/markdown"
	"github.com/goliatone/go-notes/internal/search"
	"github.com/goliatone/go-notes/internal/tree"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Clip exports the extracted clip value.
type Clip = clips.Clip

// ClipType exports the clip classification.
type ClipType = clips.Type

// Section exports the heading context of a clip.
type Section = clips.Section

// Source exports the document handed to ExtractClips.
type Source = clips.Source

// Mode exports the distill projection modes.
type Mode = distill.Mode

// Format exports the distill export formats.
type Format = distill.Format

// Projection exports the result of Render.
type Projection = distill.Projection

// DistillService exports the distill service.
type DistillService = *distill.Service

// ErrFeatureDisabled is returned when a call needs a feature turned off in
// Config.Features.
var ErrFeatureDisabled = errors.New("notes: feature disabled")

// ExtractClips returns the blockquote and callout clips of one document.
func ExtractClips(src Source) []Clip {
	return clips.Extract(src)
}

// Module is the top level notes runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a notes module using the provided configuration and
// optional DI overrides. Notes are read on Reload.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Reload reads the notes and recency index from disk.
func (m *Module) Reload(ctx context.Context) error {
	return m.container.Reload(ctx)
}

// Notes returns the currently loaded notes.
func (m *Module) Notes() interfaces.NoteSource {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Source()
}

// Distill returns the clip distill service.
func (m *Module) Distill() DistillService {
	return m.container.DistillService()
}

// BuildIndex walks the content directory and writes the recency index to
// output, or to the configured index path when output is empty. The loaded
// library picks up the new index.
func (m *Module) BuildIndex(ctx context.Context, output string) error {
	if output == "" {
		output = m.container.Config.Index.Path
	}
	return m.container.Commands().BuildIndex.Execute(ctx, distillcmd.BuildIndexCommand{
		ContentDir: m.container.Config.Content.Dir,
		Output:     output,
	})
}

// Export encodes the clips under prefix in format. An empty output writes
// to the container output writer.
func (m *Module) Export(ctx context.Context, prefix, format, output string) error {
	return m.container.Commands().Export.Execute(ctx, distillcmd.ExportDistillCommand{
		Prefix: prefix,
		Format: format,
		Output: output,
	})
}

// RefreshSearch rebuilds the search snapshot when the notes changed, or
// unconditionally when force is set.
func (m *Module) RefreshSearch(ctx context.Context, force bool) error {
	handler := m.container.Commands().Search
	if handler == nil {
		return ErrFeatureDisabled
	}
	return handler.Execute(ctx, distillcmd.RefreshSearchCommand{Force: force})
}

// Search runs q against the current snapshot. It returns nil before the
// first refresh.
func (m *Module) Search(q string, limit int) []search.Result {
	if !m.container.Config.Features.Search {
		return nil
	}
	return search.Query(m.container.SearchIndex().Current(), q, limit)
}

// Tree arranges the loaded notes into a folder tree.
func (m *Module) Tree() *tree.Node {
	return tree.Build(m.container.TreeEntries())
}

// Workspaces summarises the top-level folders using the configured labels.
func (m *Module) Workspaces() []tree.Workspace {
	return tree.Workspaces(m.container.TreeEntries(), m.container.Config.Workspaces)
}

// Outline lists the headings of the note stored under slug.
func (m *Module) Outline(slug string) ([]Section, bool) {
	note, ok := m.container.Notes().Get(slug)
	if !ok || note == nil {
		return nil, false
	}
	return markdown.Outline(note.Body), true
}

// Router returns the read API. Search routes follow Features.Search and the
// tree routes follow Features.Tree.
func (m *Module) Router() (*chi.Mux, error) {
	if !m.container.Config.Features.HTTP {
		return nil, ErrFeatureDisabled
	}
	cfg := m.container.Config
	opts := []notesapi.Option{
		notesapi.WithBasePath(cfg.HTTP.BasePath),
		notesapi.WithDistiller(m.container.DistillService()),
		notesapi.WithCacheMaxAge(cfg.Search.CacheMaxAge),
		notesapi.WithLogger(logging.HTTPLogger(m.container.LoggerProvider())),
	}
	if cfg.Features.Search {
		opts = append(opts, notesapi.WithSearch(m.container.SearchIndex()))
	}
	if cfg.Features.Tree {
		opts = append(opts,
			notesapi.WithNotes(m.container.Source),
			notesapi.WithWorkspaces(cfg.Workspaces),
		)
	}
	return notesapi.NewNotesAPI(opts...).Router()
}
