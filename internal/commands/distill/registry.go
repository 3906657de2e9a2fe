package distillcmd

import (
	"errors"
	"io"

	command "github.com/goliatone/go-command"
	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/internal/commands"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// Dependencies are the services the handlers run against.
type Dependencies struct {
	FS        afero.Fs
	Exporter  Exporter
	Search    SearchRefresher
	IndexSink IndexSink
	Output    io.Writer
	// RefreshCron schedules RefreshSearchHandler when registered with a cron registrar.
	RefreshCron command.HandlerConfig
}

// HandlerSet groups the handlers produced by RegisterCommands. Search is nil
// when no SearchRefresher was supplied.
type HandlerSet struct {
	BuildIndex *BuildIndexHandler
	Export     *ExportDistillHandler
	Search     *RefreshSearchHandler
}

// Handlers lists the non-nil handlers in registration order.
func (s *HandlerSet) Handlers() []any {
	if s == nil {
		return nil
	}
	handlers := []any{s.BuildIndex, s.Export}
	if s.Search != nil {
		handlers = append(handlers, s.Search)
	}
	return handlers
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	indexOpts   []commands.HandlerOption[BuildIndexCommand]
	exportOpts  []commands.HandlerOption[ExportDistillCommand]
	refreshOpts []commands.HandlerOption[RefreshSearchCommand]
}

// WithBuildIndexOptions forwards options to the BuildIndexHandler constructor.
func WithBuildIndexOptions(opts ...commands.HandlerOption[BuildIndexCommand]) Option {
	return func(cfg *options) {
		cfg.indexOpts = append(cfg.indexOpts, opts...)
	}
}

// WithExportOptions forwards options to the ExportDistillHandler constructor.
func WithExportOptions(opts ...commands.HandlerOption[ExportDistillCommand]) Option {
	return func(cfg *options) {
		cfg.exportOpts = append(cfg.exportOpts, opts...)
	}
}

// WithRefreshOptions forwards options to the RefreshSearchHandler constructor.
func WithRefreshOptions(opts ...commands.HandlerOption[RefreshSearchCommand]) Option {
	return func(cfg *options) {
		cfg.refreshOpts = append(cfg.refreshOpts, opts...)
	}
}

// RegisterCommands builds the notes command handlers and registers them with
// reg when it is non-nil.
func RegisterCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if deps.FS == nil {
		return nil, errors.New("notes command registration: filesystem is nil")
	}
	if deps.Exporter == nil {
		return nil, errors.New("notes command registration: exporter is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &HandlerSet{
		BuildIndex: NewBuildIndexHandler(deps.FS, deps.IndexSink, commands.CommandLogger(provider, "index"), cfg.indexOpts...),
		Export:     NewExportDistillHandler(deps.Exporter, deps.FS, deps.Output, commands.CommandLogger(provider, "distill"), cfg.exportOpts...),
	}
	if deps.Search != nil {
		set.Search = NewRefreshSearchHandler(deps.Search, commands.CommandLogger(provider, "search"), gates, deps.RefreshCron, cfg.refreshOpts...)
	}

	if reg != nil {
		for _, handler := range set.Handlers() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// RegisterRefreshCron wires handler into a cron registrar using its
// configured schedule. Nil arguments or an empty expression are a no-op.
func RegisterRefreshCron(reg CronRegistrar, handler *RefreshSearchHandler) error {
	if reg == nil || handler == nil || handler.CronOptions().Expression == "" {
		return nil
	}
	return reg(handler.CronOptions(), handler.CronHandler())
}
