package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/goliatone/go-notes"
	"github.com/goliatone/go-notes/internal/di"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/internal/runtimeconfig"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps. Flag values win over
// the config file and NOTES_* environment variables.
type Options struct {
	ConfigPath     string
	ContentDir     string
	IndexPath      string
	HTTPAddr       string
	LogLevel       string
	EnvFiles       []string
	FS             afero.Fs
	Output         io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the notes module and the CLI logger.
type Module struct {
	Module *notes.Module
	Logger interfaces.Logger
}

// BuildModule loads .env files, the config file and flag overrides, then
// constructs the notes module. Notes are not read until Reload.
func BuildModule(opts Options) (*Module, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load(opts.EnvFiles...)

	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cfg, err := runtimeconfig.LoadFile(fs, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg = runtimeconfig.ApplyEnv(cfg, nil)
	applyOverrides(&cfg, opts)

	diOpts := []di.Option{di.WithFS(fs)}
	if opts.Output != nil {
		diOpts = append(diOpts, di.WithOutput(opts.Output))
	}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := notes.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise notes module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "notes.cli"),
	}, nil
}

func applyOverrides(cfg *runtimeconfig.Config, opts Options) {
	if v := strings.TrimSpace(opts.ContentDir); v != "" {
		cfg.Content.Dir = v
	}
	if v := strings.TrimSpace(opts.IndexPath); v != "" {
		cfg.Index.Path = v
	}
	if v := strings.TrimSpace(opts.HTTPAddr); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
}
