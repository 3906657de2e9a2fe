package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Environment variables honoured by ApplyEnv.
const (
	EnvContentDir = "NOTES_CONTENT_DIR"
	EnvIndexPath  = "NOTES_INDEX_PATH"
	EnvHTTPAddr   = "NOTES_HTTP_ADDR"
	EnvLogLevel   = "NOTES_LOG_LEVEL"
)

// Decode overlays the YAML document in data onto DefaultConfig. Unknown keys
// are rejected.
func Decode(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("notes config: decode: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a YAML config from fs. An empty path returns the defaults.
func LoadFile(fs afero.Fs, path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultConfig(), nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("notes config: read %s: %w", path, err)
	}
	return Decode(data)
}

// ApplyEnv overrides cfg with the NOTES_* variables found through lookup.
// A nil lookup uses os.LookupEnv.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvContentDir); ok && strings.TrimSpace(v) != "" {
		cfg.Content.Dir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvIndexPath); ok && strings.TrimSpace(v) != "" {
		cfg.Index.Path = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvHTTPAddr); ok && strings.TrimSpace(v) != "" {
		cfg.HTTP.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.Logging.Level = strings.TrimSpace(v)
	}
	return cfg
}
