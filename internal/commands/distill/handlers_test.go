package distillcmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/notesindex"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

type exportCall struct {
	prefix string
	format distill.Format
}

type stubExporter struct {
	calls []exportCall
	data  []byte
	err   error
}

func (s *stubExporter) Export(_ context.Context, prefix string, format distill.Format) ([]byte, error) {
	s.calls = append(s.calls, exportCall{prefix: prefix, format: format})
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

type stubRefresher struct {
	forced  []bool
	rebuilt bool
	err     error
}

func (s *stubRefresher) RefreshSearch(_ context.Context, force bool) (bool, error) {
	s.forced = append(s.forced, force)
	return s.rebuilt, s.err
}

type captureLogger struct {
	fields       []map[string]any
	infoMessages []string
}

var _ interfaces.Logger = (*captureLogger)(nil)

func (c *captureLogger) Trace(string, ...any) {}
func (c *captureLogger) Debug(string, ...any) {}
func (c *captureLogger) Info(msg string, _ ...any) {
	c.infoMessages = append(c.infoMessages, msg)
}
func (c *captureLogger) Warn(string, ...any)  {}
func (c *captureLogger) Error(string, ...any) {}
func (c *captureLogger) Fatal(string, ...any) {}

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	c.fields = append(c.fields, copied)
	return c
}

func (c *captureLogger) WithContext(context.Context) interfaces.Logger {
	return c
}

func TestBuildIndexHandlerWritesIndex(t *testing.T) {
	fs := afero.NewMemMapFs()
	mtime := time.UnixMilli(1_700_000_000_000)
	for _, name := range []string{"content/notes/a.md", "content/notes/guides/b.MDX", "content/notes/skip.txt"} {
		if err := afero.WriteFile(fs, name, []byte("# x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if err := fs.Chtimes(name, mtime, mtime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	var sunk notesindex.Index
	logger := &captureLogger{}
	handler := NewBuildIndexHandler(fs, func(idx notesindex.Index) { sunk = idx }, logger)

	if err := handler.Execute(context.Background(), BuildIndexCommand{ContentDir: "content/notes", Output: "out/index.json"}); err != nil {
		t.Fatalf("execute build index: %v", err)
	}

	written, err := notesindex.Load(fs, "out/index.json")
	if err != nil {
		t.Fatalf("load written index: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 entries, got %#v", written)
	}
	if written.MtimeFor("guides/b") != float64(mtime.UnixMilli()) {
		t.Fatalf("unexpected mtime %v", written.MtimeFor("guides/b"))
	}
	if len(sunk) != 2 {
		t.Fatalf("expected sink to receive the index, got %#v", sunk)
	}

	found := false
	for _, fields := range logger.fields {
		if fields["notes"] == 2 && fields["output"] == "out/index.json" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected summary fields recorded, got %#v", logger.fields)
	}
}

func TestBuildIndexHandlerDefaultsOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "notes/a.md", []byte("a"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	handler := NewBuildIndexHandler(fs, nil, nil)
	if err := handler.Execute(context.Background(), BuildIndexCommand{ContentDir: "notes"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ok, _ := afero.Exists(fs, notesindex.DefaultPath); !ok {
		t.Fatalf("expected index at %s", notesindex.DefaultPath)
	}
}

func TestBuildIndexHandlerValidation(t *testing.T) {
	handler := NewBuildIndexHandler(afero.NewMemMapFs(), nil, logging.NoOp())
	err := handler.Execute(context.Background(), BuildIndexCommand{ContentDir: "   "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestBuildIndexHandlerMissingDirectory(t *testing.T) {
	handler := NewBuildIndexHandler(afero.NewMemMapFs(), nil, logging.NoOp())
	err := handler.Execute(context.Background(), BuildIndexCommand{ContentDir: "missing"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestExportDistillHandlerWritesToWriter(t *testing.T) {
	exporter := &stubExporter{data: []byte("quote one")}
	var out bytes.Buffer
	handler := NewExportDistillHandler(exporter, afero.NewMemMapFs(), &out, logging.NoOp())

	if err := handler.Execute(context.Background(), ExportDistillCommand{Prefix: "guides", Format: "md"}); err != nil {
		t.Fatalf("execute export: %v", err)
	}
	if len(exporter.calls) != 1 || exporter.calls[0] != (exportCall{prefix: "guides", format: distill.FormatMarkdown}) {
		t.Fatalf("unexpected exporter calls %#v", exporter.calls)
	}
	if out.String() != "quote one" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestExportDistillHandlerWritesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	exporter := &stubExporter{data: []byte("[]\n")}
	handler := NewExportDistillHandler(exporter, fs, nil, logging.NoOp())

	if err := handler.Execute(context.Background(), ExportDistillCommand{Format: "json", Output: "exports/slides.json"}); err != nil {
		t.Fatalf("execute export: %v", err)
	}
	data, err := afero.ReadFile(fs, "exports/slides.json")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestExportDistillHandlerRejectsUnknownFormat(t *testing.T) {
	exporter := &stubExporter{}
	handler := NewExportDistillHandler(exporter, afero.NewMemMapFs(), nil, logging.NoOp())

	err := handler.Execute(context.Background(), ExportDistillCommand{Format: "pdf"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(exporter.calls) != 0 {
		t.Fatalf("expected exporter not to run, got %d calls", len(exporter.calls))
	}
}

func TestExportDistillHandlerPropagatesExporterError(t *testing.T) {
	exportErr := errors.New("schema mismatch")
	handler := NewExportDistillHandler(&stubExporter{err: exportErr}, afero.NewMemMapFs(), nil, logging.NoOp())

	err := handler.Execute(context.Background(), ExportDistillCommand{Format: "json"})
	if !errors.Is(err, exportErr) {
		t.Fatalf("expected exporter error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRefreshSearchHandlerForwardsForce(t *testing.T) {
	refresher := &stubRefresher{rebuilt: true}
	handler := NewRefreshSearchHandler(refresher, logging.NoOp(), FeatureGates{}, commandConfig("@every 1m"))

	if err := handler.Execute(context.Background(), RefreshSearchCommand{Force: true}); err != nil {
		t.Fatalf("execute refresh: %v", err)
	}
	if err := handler.CronHandler()(); err != nil {
		t.Fatalf("cron refresh: %v", err)
	}
	if len(refresher.forced) != 2 || !refresher.forced[0] || refresher.forced[1] {
		t.Fatalf("unexpected refresh calls %#v", refresher.forced)
	}
	if handler.CronOptions().Expression != "@every 1m" {
		t.Fatalf("unexpected cron options %#v", handler.CronOptions())
	}
}

func TestRefreshSearchHandlerFeatureDisabled(t *testing.T) {
	refresher := &stubRefresher{}
	handler := NewRefreshSearchHandler(refresher, logging.NoOp(), FeatureGates{
		SearchEnabled: func() bool { return false },
	}, commandConfig(""))

	err := handler.Execute(context.Background(), RefreshSearchCommand{})
	if !errors.Is(err, ErrSearchFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if len(refresher.forced) != 0 {
		t.Fatalf("expected no refresh calls, got %d", len(refresher.forced))
	}
}

func TestRefreshSearchHandlerContextCancellation(t *testing.T) {
	refresher := &stubRefresher{}
	handler := NewRefreshSearchHandler(refresher, logging.NoOp(), FeatureGates{}, commandConfig(""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, RefreshSearchCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if len(refresher.forced) != 0 {
		t.Fatalf("expected no refresh calls, got %d", len(refresher.forced))
	}
}
