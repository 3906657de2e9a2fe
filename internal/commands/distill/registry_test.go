package distillcmd

import (
	"errors"
	"testing"

	command "github.com/goliatone/go-command"
	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/internal/commands"
	"github.com/goliatone/go-notes/internal/commands/fixtures"
)

func commandConfig(expression string) command.HandlerConfig {
	return command.HandlerConfig{Expression: expression}
}

func TestRegisterCommandsRegistersHandlers(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()

	set, err := RegisterCommands(reg, Dependencies{
		FS:       afero.NewMemMapFs(),
		Exporter: &stubExporter{},
		Search:   &stubRefresher{},
	}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if set.BuildIndex == nil || set.Export == nil || set.Search == nil {
		t.Fatalf("expected all handlers, got %#v", set)
	}
	if len(reg.Handlers) != 3 {
		t.Fatalf("expected three handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != set.BuildIndex || reg.Handlers[2] != set.Search {
		t.Fatalf("unexpected registration order %#v", reg.Handlers)
	}
}

func TestRegisterCommandsWithoutSearch(t *testing.T) {
	set, err := RegisterCommands(nil, Dependencies{
		FS:       afero.NewMemMapFs(),
		Exporter: &stubExporter{},
	}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if set.Search != nil {
		t.Fatalf("expected no search handler")
	}
	if len(set.Handlers()) != 2 {
		t.Fatalf("expected two handlers, got %d", len(set.Handlers()))
	}
}

func TestRegisterCommandsRequiresDependencies(t *testing.T) {
	if _, err := RegisterCommands(nil, Dependencies{Exporter: &stubExporter{}}, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for missing filesystem")
	}
	if _, err := RegisterCommands(nil, Dependencies{FS: afero.NewMemMapFs()}, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for missing exporter")
	}
}

func TestRegisterCommandsPropagatesRegistryError(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	reg.Fail(errors.New("duplicate"))
	_, err := RegisterCommands(reg, Dependencies{FS: afero.NewMemMapFs(), Exporter: &stubExporter{}}, nil, FeatureGates{})
	if err == nil {
		t.Fatal("expected registry error")
	}
}

func TestRegisterCommandsHandlerOptionsApplied(t *testing.T) {
	indexApplied := false
	exportApplied := false
	refreshApplied := false

	_, err := RegisterCommands(nil, Dependencies{
		FS:       afero.NewMemMapFs(),
		Exporter: &stubExporter{},
		Search:   &stubRefresher{},
	}, nil, FeatureGates{},
		WithBuildIndexOptions(func(*commands.Handler[BuildIndexCommand]) { indexApplied = true }),
		WithExportOptions(func(*commands.Handler[ExportDistillCommand]) { exportApplied = true }),
		WithRefreshOptions(func(*commands.Handler[RefreshSearchCommand]) { refreshApplied = true }),
	)
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if !indexApplied || !exportApplied || !refreshApplied {
		t.Fatalf("expected options applied: index=%v export=%v refresh=%v", indexApplied, exportApplied, refreshApplied)
	}
}

func TestRegisterRefreshCron(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	refresher := &stubRefresher{}
	handler := NewRefreshSearchHandler(refresher, nil, FeatureGates{}, commandConfig("@hourly"))

	if err := RegisterRefreshCron(recorder.Registrar(), handler); err != nil {
		t.Fatalf("register cron: %v", err)
	}
	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected one registration, got %d", len(recorder.Registrations))
	}
	job, ok := recorder.Registrations[0].Handler.(func() error)
	if !ok {
		t.Fatalf("expected func() error handler, got %T", recorder.Registrations[0].Handler)
	}
	if err := job(); err != nil {
		t.Fatalf("run cron job: %v", err)
	}
	if len(refresher.forced) != 1 || refresher.forced[0] {
		t.Fatalf("expected one non-forced refresh, got %#v", refresher.forced)
	}
}

func TestRegisterRefreshCronSkipsWithoutSchedule(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	handler := NewRefreshSearchHandler(&stubRefresher{}, nil, FeatureGates{}, commandConfig(""))

	if err := RegisterRefreshCron(recorder.Registrar(), handler); err != nil {
		t.Fatalf("register cron: %v", err)
	}
	if err := RegisterRefreshCron(nil, handler); err != nil {
		t.Fatalf("nil registrar: %v", err)
	}
	if err := RegisterRefreshCron(recorder.Registrar(), nil); err != nil {
		t.Fatalf("nil handler: %v", err)
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no registrations, got %d", len(recorder.Registrations))
	}
}
