package distillcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/internal/commands"
	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/fsutil"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/notesindex"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

const (
	buildIndexOperation    = "notes.index.build"
	exportDistillOperation = "notes.distill.export"
	refreshSearchOperation = "notes.search.refresh"
)

// ErrSearchFeatureDisabled is returned when search is turned off at runtime.
var ErrSearchFeatureDisabled = errors.New("search command: feature disabled")

var (
	_ command.Commander[BuildIndexCommand]    = (*BuildIndexHandler)(nil)
	_ command.Commander[ExportDistillCommand] = (*ExportDistillHandler)(nil)
	_ command.Commander[RefreshSearchCommand] = (*RefreshSearchHandler)(nil)
)

// Exporter produces distill exports. distill.Service satisfies it.
type Exporter interface {
	Export(ctx context.Context, prefix string, format distill.Format) ([]byte, error)
}

// SearchRefresher rebuilds the search snapshot and reports whether it did.
type SearchRefresher interface {
	RefreshSearch(ctx context.Context, force bool) (bool, error)
}

// IndexSink receives a freshly built recency index.
type IndexSink func(notesindex.Index)

// BuildIndexHandler builds and persists the recency index.
type BuildIndexHandler struct {
	inner *commands.Handler[BuildIndexCommand]
}

// NewBuildIndexHandler creates a handler that walks and writes through fs.
// sink may be nil.
func NewBuildIndexHandler(fs afero.Fs, sink IndexSink, logger interfaces.Logger, opts ...commands.HandlerOption[BuildIndexCommand]) *BuildIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildIndexCommand) error {
		output := strings.TrimSpace(msg.Output)
		if output == "" {
			output = notesindex.DefaultPath
		}

		index, err := notesindex.Build(ctx, fs, msg.ContentDir)
		if err != nil {
			return err
		}
		if err := notesindex.Save(fs, output, index); err != nil {
			return err
		}
		if sink != nil {
			sink(index)
		}

		logging.WithFields(baseLogger, map[string]any{
			"notes":  len(index),
			"output": output,
		}).Info("notes.command.index_build.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildIndexCommand]{
		commands.WithLogger[BuildIndexCommand](baseLogger),
		commands.WithOperation[BuildIndexCommand](buildIndexOperation),
		commands.WithMessageFields(func(msg BuildIndexCommand) map[string]any {
			return map[string]any{"content_dir": msg.ContentDir}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildIndexHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[BuildIndexCommand].
func (h *BuildIndexHandler) Execute(ctx context.Context, msg BuildIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportDistillHandler writes distill exports to a file or a writer.
type ExportDistillHandler struct {
	inner *commands.Handler[ExportDistillCommand]
}

// NewExportDistillHandler creates a handler over exporter. Files are written
// atomically through fs; messages without Output go to out.
func NewExportDistillHandler(exporter Exporter, fs afero.Fs, out io.Writer, logger interfaces.Logger, opts ...commands.HandlerOption[ExportDistillCommand]) *ExportDistillHandler {
	baseLogger := commands.EnsureLogger(logger)
	if out == nil {
		out = io.Discard
	}

	exec := func(ctx context.Context, msg ExportDistillCommand) error {
		format, err := distill.ParseFormat(msg.Format)
		if err != nil {
			return err
		}
		data, err := exporter.Export(ctx, msg.Prefix, format)
		if err != nil {
			return err
		}

		output := strings.TrimSpace(msg.Output)
		if output == "" {
			if _, err := out.Write(data); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
		} else if err := fsutil.WriteFileAtomic(fs, output, data); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"bytes":  len(data),
			"output": output,
		}).Info("notes.command.distill_export.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportDistillCommand]{
		commands.WithLogger[ExportDistillCommand](baseLogger),
		commands.WithOperation[ExportDistillCommand](exportDistillOperation),
		commands.WithMessageFields(func(msg ExportDistillCommand) map[string]any {
			return map[string]any{
				"prefix": msg.Prefix,
				"format": msg.Format,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportDistillCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportDistillHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportDistillCommand].
func (h *ExportDistillHandler) Execute(ctx context.Context, msg ExportDistillCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RefreshSearchHandler rebuilds the search snapshot.
type RefreshSearchHandler struct {
	inner      *commands.Handler[RefreshSearchCommand]
	cronConfig command.HandlerConfig
}

// NewRefreshSearchHandler creates a handler over refresher. cronConfig is
// reported to cron integrations through CronOptions.
func NewRefreshSearchHandler(refresher SearchRefresher, logger interfaces.Logger, gates FeatureGates, cronConfig command.HandlerConfig, opts ...commands.HandlerOption[RefreshSearchCommand]) *RefreshSearchHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RefreshSearchCommand) error {
		if !gates.searchEnabled() {
			return ErrSearchFeatureDisabled
		}
		rebuilt, err := refresher.RefreshSearch(ctx, msg.Force)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"rebuilt": rebuilt,
			"force":   msg.Force,
		}).Info("notes.command.search_refresh.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RefreshSearchCommand]{
		commands.WithLogger[RefreshSearchCommand](baseLogger),
		commands.WithOperation[RefreshSearchCommand](refreshSearchOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[RefreshSearchCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshSearchHandler{
		inner:      commands.NewHandler(exec, handlerOpts...),
		cronConfig: cronConfig,
	}
}

// Execute satisfies command.Commander[RefreshSearchCommand].
func (h *RefreshSearchHandler) Execute(ctx context.Context, msg RefreshSearchCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronHandler satisfies command.CronCommand with a non-forced refresh.
func (h *RefreshSearchHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), RefreshSearchCommand{})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *RefreshSearchHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}
