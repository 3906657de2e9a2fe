package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/search"
	"github.com/goliatone/go-notes/internal/tree"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// SnapshotReader returns the current search snapshot.
type SnapshotReader interface {
	Current() *search.Snapshot
}

// Distiller renders and exports clip collections. distill.Service
// satisfies it.
type Distiller interface {
	Render(ctx context.Context, prefix string, mode distill.Mode) (distill.Projection, error)
	Export(ctx context.Context, prefix string, format distill.Format) ([]byte, error)
}

// NotesFunc returns the current note collection.
type NotesFunc func() interfaces.NoteSource

// NotesAPI serves the read endpoints.
type NotesAPI struct {
	basePath    string
	search      SnapshotReader
	distill     Distiller
	notes       NotesFunc
	workspaces  []tree.WorkspaceConfig
	cacheMaxAge time.Duration
	logger      interfaces.Logger
}

// Option mutates the NotesAPI configuration.
type Option func(*NotesAPI)

// NewNotesAPI constructs a NotesAPI. Endpoints whose backing service is not
// configured are not registered.
func NewNotesAPI(opts ...Option) *NotesAPI {
	api := &NotesAPI{
		basePath:    "/api",
		cacheMaxAge: time.Hour,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *NotesAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithSearch enables the search endpoints.
func WithSearch(reader SnapshotReader) Option {
	return func(api *NotesAPI) {
		api.search = reader
	}
}

// WithDistiller enables the distill endpoints.
func WithDistiller(d Distiller) Option {
	return func(api *NotesAPI) {
		api.distill = d
	}
}

// WithNotes enables the tree, workspace and outline endpoints.
func WithNotes(fn NotesFunc) Option {
	return func(api *NotesAPI) {
		api.notes = fn
	}
}

// WithWorkspaces supplies the configured workspace labels and order.
func WithWorkspaces(configs []tree.WorkspaceConfig) Option {
	return func(api *NotesAPI) {
		api.workspaces = append([]tree.WorkspaceConfig(nil), configs...)
	}
}

// WithCacheMaxAge sets the Cache-Control max-age of /search.json. Zero
// disables caching.
func WithCacheMaxAge(maxAge time.Duration) Option {
	return func(api *NotesAPI) {
		if maxAge >= 0 {
			api.cacheMaxAge = maxAge
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *NotesAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts the configured routes on r.
func (api *NotesAPI) Register(r chi.Router) error {
	if r == nil {
		return fmt.Errorf("http: router is required")
	}
	if api == nil {
		return fmt.Errorf("http: notes api is nil")
	}

	r.Route(joinPath(api.basePath, ""), func(r chi.Router) {
		if api.search != nil {
			r.Get("/search.json", api.handleSearchIndex)
			r.Get("/search", api.handleSearchQuery)
		}
		if api.distill != nil {
			r.Get("/distill", api.handleDistill)
			r.Get("/distill/export", api.handleDistillExport)
		}
		if api.notes != nil {
			r.Get("/tree", api.handleTree)
			r.Get("/folders", api.handleFolder)
			r.Get("/workspaces", api.handleWorkspaces)
			r.Get("/workspaces/{key}", api.handleWorkspace)
			r.Get("/notes/outline", api.handleOutline)
		}
	})
	return nil
}

// Router returns a chi router with request IDs, panic recovery, request
// logging and the notes routes.
func (api *NotesAPI) Router() (*chi.Mux, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(api.logRequests)
	if err := api.Register(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (api *NotesAPI) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		api.logger.Debug("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(started).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (api *NotesAPI) entries() []tree.Entry {
	source := api.notes()
	if source == nil {
		return nil
	}
	return tree.EntriesFromNotes(source.All())
}
