package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notes/cmd/notes/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

type globalFlags struct {
	configPath string
	contentDir string
	indexPath  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "notes",
		Short:         "Distill, index and serve Markdown notes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.contentDir, "content-dir", "", "Notes content directory (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.indexPath, "index", "", "Notes index path (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(newIndexCmd(flags))
	cmd.AddCommand(newDistillCmd(flags))
	cmd.AddCommand(newSearchCmd(flags))
	cmd.AddCommand(newTreeCmd(flags))
	cmd.AddCommand(newOutlineCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	return cmd
}

func (f *globalFlags) options(cmd *cobra.Command) bootstrap.Options {
	return bootstrap.Options{
		ConfigPath: f.configPath,
		ContentDir: f.contentDir,
		IndexPath:  f.indexPath,
		LogLevel:   f.logLevel,
		Output:     cmd.OutOrStdout(),
	}
}

// loadModule builds the module and reads the notes.
func loadModule(ctx context.Context, opts bootstrap.Options) (*bootstrap.Module, error) {
	built, err := moduleBuilder(opts)
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	if built == nil || built.Module == nil {
		return nil, fmt.Errorf("bootstrap module: notes module not configured")
	}
	if err := built.Module.Reload(ctx); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	return built, nil
}
