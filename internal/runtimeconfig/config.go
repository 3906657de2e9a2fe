package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/tree"
)

var (
	ErrContentDirRequired       = errors.New("notes config: content directory is required")
	ErrIndexPathRequired        = errors.New("notes config: index path is required")
	ErrDistillModeInvalid       = errors.New("notes config: distill default mode is invalid")
	ErrSearchMaxContentInvalid  = errors.New("notes config: search max content chars must be zero or positive")
	ErrSearchCacheMaxAgeInvalid = errors.New("notes config: search cache max age must be zero or positive")
	ErrWorkspaceKeyInvalid      = errors.New("notes config: workspace key must be a valid slug")
	ErrWorkspaceKeyDuplicate    = errors.New("notes config: workspace key is configured twice")
	ErrHTTPAddrRequired         = errors.New("notes config: http address is required when http feature is enabled")
	ErrHTTPBasePathInvalid      = errors.New("notes config: http base path must start with /")
	ErrLoggingProviderRequired  = errors.New("notes config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("notes config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("notes config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("notes config: logging format is invalid")
)

// Config aggregates the runtime settings of the notes module.
type Config struct {
	Content    ContentConfig          `yaml:"content"`
	Index      IndexConfig            `yaml:"index"`
	Distill    DistillConfig          `yaml:"distill"`
	Search     SearchConfig           `yaml:"search"`
	Workspaces []tree.WorkspaceConfig `yaml:"workspaces"`
	HTTP       HTTPConfig             `yaml:"http"`
	Features   Features               `yaml:"features"`
	Logging    LoggingConfig          `yaml:"logging"`
}

// ContentConfig locates the Markdown notes.
type ContentConfig struct {
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`

	// ReloadInterval re-reads the notes while serving; zero disables it.
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

// IndexConfig locates the recency index file.
type IndexConfig struct {
	Path string `yaml:"path"`
}

// DistillConfig tunes clip rendering and export.
type DistillConfig struct {
	DefaultMode     string `yaml:"default_mode"`
	ValidateExports bool   `yaml:"validate_exports"`
}

// SearchConfig tunes the search index.
type SearchConfig struct {
	MaxContentChars int           `yaml:"max_content_chars"`
	CacheMaxAge     time.Duration `yaml:"cache_max_age"`
	// RefreshCron schedules periodic snapshot refreshes; empty disables it.
	RefreshCron string `yaml:"refresh_cron"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

// Features toggles module functionality.
type Features struct {
	Search bool `yaml:"search"`
	Tree   bool `yaml:"tree"`
	HTTP   bool `yaml:"http"`
	Logger bool `yaml:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns defaults matching the site layout: notes under
// src/content/notes and the index in src/data.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "src/content/notes",
			Pattern:   "",
			Recursive: true,
		},
		Index: IndexConfig{
			Path: "src/data/notes-index.json",
		},
		Distill: DistillConfig{
			DefaultMode:     string(distill.ModeStream),
			ValidateExports: true,
		},
		Search: SearchConfig{
			MaxContentChars: 20_000,
			CacheMaxAge:     time.Hour,
		},
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
		Features: Features{
			Search: true,
			Tree:   true,
			HTTP:   true,
			Logger: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Index.Path) == "" {
		return ErrIndexPathRequired
	}
	if mode := strings.TrimSpace(cfg.Distill.DefaultMode); mode != "" {
		if _, err := distill.ParseMode(mode); err != nil {
			return fmt.Errorf("%w: %s", ErrDistillModeInvalid, mode)
		}
	}
	if cfg.Search.MaxContentChars < 0 {
		return ErrSearchMaxContentInvalid
	}
	if cfg.Search.CacheMaxAge < 0 {
		return ErrSearchCacheMaxAgeInvalid
	}

	seen := make(map[string]struct{}, len(cfg.Workspaces))
	for _, ws := range cfg.Workspaces {
		if !tree.ValidWorkspaceKey(ws.Key) {
			return fmt.Errorf("%w: %q", ErrWorkspaceKeyInvalid, ws.Key)
		}
		if _, dup := seen[ws.Key]; dup {
			return fmt.Errorf("%w: %s", ErrWorkspaceKeyDuplicate, ws.Key)
		}
		seen[ws.Key] = struct{}{}
	}

	if cfg.Features.HTTP {
		if strings.TrimSpace(cfg.HTTP.Addr) == "" {
			return ErrHTTPAddrRequired
		}
		if base := strings.TrimSpace(cfg.HTTP.BasePath); base != "" && !strings.HasPrefix(base, "/") {
			return fmt.Errorf("%w: %s", ErrHTTPBasePathInvalid, base)
		}
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
