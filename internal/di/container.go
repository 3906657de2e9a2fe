package di

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/spf13/afero"

	distillcmd "github.com/goliatone/go-notes/internal/commands/distill"
	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/logging/console"
	"github.com/goliatone/go-notes/internal/logging/gologger"
	"github.com/goliatone/go-notes/internal/markdown"
	"github.com/goliatone/go-notes/internal/notesindex"
	"github.com/goliatone/go-notes/internal/runtimeconfig"
	"github.com/goliatone/go-notes/internal/search"
	"github.com/goliatone/go-notes/internal/tree"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Container wires module dependencies from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
	fs             afero.Fs
	clock          func() time.Time
	output         io.Writer

	registry      distillcmd.CommandRegistry
	cronRegistrar distillcmd.CronRegistrar

	library     *library
	searchIndex *search.Index
	distillSvc  *distill.Service
	commands    *distillcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithFS overrides the filesystem notes and index files are read from.
// Defaults to the OS filesystem.
func WithFS(fs afero.Fs) Option {
	return func(c *Container) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithClock overrides the clock used for search snapshots.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithOutput sets the writer that exports without an output path go to.
func WithOutput(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.output = w
		}
	}
}

// WithCommandRegistry registers the command handlers with reg.
func WithCommandRegistry(reg distillcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithCronRegistrar schedules the search refresh handler when
// Config.Search.RefreshCron is set.
func WithCronRegistrar(reg distillcmd.CronRegistrar) Option {
	return func(c *Container) {
		c.cronRegistrar = reg
	}
}

// NewContainer validates cfg and wires the services. Notes are not read
// until Reload.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		fs:      afero.NewOsFs(),
		clock:   time.Now,
		output:  os.Stdout,
		library: newLibrary(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "notes")

	c.searchIndex = search.NewIndex(search.Options{
		MaxContentChars: cfg.Search.MaxContentChars,
		Clock:           c.clock,
		Logger:          logging.SearchLogger(c.loggerProvider),
	})

	mode, err := distill.ParseMode(cfg.Distill.DefaultMode)
	if err != nil {
		return nil, err
	}
	c.distillSvc = distill.NewService(c.library, distill.Config{
		DefaultMode:     mode,
		ValidateExports: cfg.Distill.ValidateExports,
	}, logging.DistillLogger(c.loggerProvider))

	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	c.logger.Debug("container.configured",
		"content_dir", cfg.Content.Dir,
		"index_path", cfg.Index.Path,
		"search", cfg.Features.Search,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = nopProvider{}
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureCommands() error {
	deps := distillcmd.Dependencies{
		FS:       c.fs,
		Exporter: c.distillSvc,
		IndexSink: func(index notesindex.Index) {
			c.library.setIndex(index)
		},
		Output:      c.output,
		RefreshCron: command.HandlerConfig{Expression: c.Config.Search.RefreshCron},
	}
	if c.Config.Features.Search {
		deps.Search = c
	}

	gates := distillcmd.FeatureGates{
		SearchEnabled: func() bool { return c.Config.Features.Search },
	}
	set, err := distillcmd.RegisterCommands(c.registry, deps, c.loggerProvider, gates)
	if err != nil {
		return err
	}
	if err := distillcmd.RegisterRefreshCron(c.cronRegistrar, set.Search); err != nil {
		return fmt.Errorf("register search refresh cron: %w", err)
	}
	c.commands = set
	return nil
}

// Reload reads the notes and the recency index, swaps them in and refreshes
// the search snapshot when search is enabled. A missing index file yields an
// empty index; distill then orders notes by their file times.
func (c *Container) Reload(ctx context.Context) error {
	root, err := markdown.OpenDir(c.fs, c.Config.Content.Dir)
	if err != nil {
		return err
	}
	svc := markdown.NewService(root, markdown.LoaderConfig{
		Pattern:   c.Config.Content.Pattern,
		Recursive: c.Config.Content.Recursive,
	}, logging.MarkdownLogger(c.loggerProvider))

	store, err := svc.Load(ctx)
	if err != nil {
		return err
	}
	index, err := notesindex.Load(c.fs, c.Config.Index.Path)
	if err != nil {
		return err
	}
	c.library.replace(store, index)
	logging.IndexLogger(c.loggerProvider).Debug("index.loaded", "path", c.Config.Index.Path, "entries", len(index))

	if c.Config.Features.Search {
		if _, err := c.RefreshSearch(ctx, false); err != nil {
			return err
		}
	}
	return nil
}

// RefreshSearch rebuilds the search snapshot from the current store. force
// rebuilds even when the store version is unchanged.
func (c *Container) RefreshSearch(ctx context.Context, force bool) (bool, error) {
	if !c.Config.Features.Search {
		return false, distillcmd.ErrSearchFeatureDisabled
	}
	if force {
		c.searchIndex.Invalidate()
	}
	return c.searchIndex.Refresh(ctx, c.library.Notes())
}

// LoggerProvider exposes the provider used by every module logger.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// FS returns the filesystem the container reads and writes through.
func (c *Container) FS() afero.Fs {
	return c.fs
}

// Notes returns the current note store.
func (c *Container) Notes() *markdown.Store {
	return c.library.Store()
}

// Source returns the loaded notes as a NoteSource. Its version changes when a
// note or the recency index changes.
func (c *Container) Source() interfaces.NoteSource {
	return c.library.Notes()
}

// Recency returns the current recency index.
func (c *Container) Recency() notesindex.Index {
	return c.library.Recency()
}

// TreeEntries lists the loaded notes as tree entries.
func (c *Container) TreeEntries() []tree.Entry {
	return tree.EntriesFromNotes(c.library.Store().All())
}

// SearchIndex returns the search snapshot holder.
func (c *Container) SearchIndex() *search.Index {
	return c.searchIndex
}

// DistillService returns the clip distill service.
func (c *Container) DistillService() *distill.Service {
	return c.distillSvc
}

// Commands returns the command handlers.
func (c *Container) Commands() *distillcmd.HandlerSet {
	return c.commands
}

type nopProvider struct{}

func (nopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
