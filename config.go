package notes

import (
	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/internal/runtimeconfig"
	"github.com/goliatone/go-notes/internal/tree"
)

var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrIndexPathRequired        = runtimeconfig.ErrIndexPathRequired
	ErrDistillModeInvalid       = runtimeconfig.ErrDistillModeInvalid
	ErrSearchMaxContentInvalid  = runtimeconfig.ErrSearchMaxContentInvalid
	ErrSearchCacheMaxAgeInvalid = runtimeconfig.ErrSearchCacheMaxAgeInvalid
	ErrWorkspaceKeyInvalid      = runtimeconfig.ErrWorkspaceKeyInvalid
	ErrWorkspaceKeyDuplicate    = runtimeconfig.ErrWorkspaceKeyDuplicate
	ErrHTTPAddrRequired         = runtimeconfig.ErrHTTPAddrRequired
	ErrHTTPBasePathInvalid      = runtimeconfig.ErrHTTPBasePathInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ContentConfig   = runtimeconfig.ContentConfig
	IndexConfig     = runtimeconfig.IndexConfig
	DistillConfig   = runtimeconfig.DistillConfig
	SearchConfig    = runtimeconfig.SearchConfig
	HTTPConfig      = runtimeconfig.HTTPConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
	WorkspaceConfig = tree.WorkspaceConfig
)

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file from the OS filesystem over the
// defaults and applies NOTES_* environment overrides. An empty path skips
// the file.
func LoadConfig(path string) (Config, error) {
	cfg, err := runtimeconfig.LoadFile(afero.NewOsFs(), path)
	if err != nil {
		return Config{}, err
	}
	return runtimeconfig.ApplyEnv(cfg, nil), nil
}
