package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/tree"
)

func newIndexCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the notes recency index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			built, err := loadModule(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			if output == "" {
				output = built.Module.Container().Config.Index.Path
			}
			if err := built.Module.BuildIndex(cmd.Context(), output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "notes index written to %s (%d notes)\n", output, len(built.Module.Container().Recency()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "Index output path (defaults to the configured index path)")
	return cmd
}

func newDistillCmd(flags *globalFlags) *cobra.Command {
	var (
		prefix string
		mode   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "distill",
		Short: "Collect clips under a prefix and render or export them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			built, err := loadModule(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			if format != "" {
				return built.Module.Export(cmd.Context(), prefix, format, output)
			}
			if output != "" {
				return fmt.Errorf("--out requires --format")
			}

			parsed, err := distill.ParseMode(mode)
			if err != nil {
				return err
			}
			projection, err := built.Module.Distill().Render(cmd.Context(), prefix, parsed)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), projection)
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Slug prefix to collect (empty selects every note)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Projection mode: stream, script, slides, essay")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: text, markdown, json")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Write the export to a file instead of stdout")
	return cmd
}

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search note titles and content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := loadModule(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			results := built.Module.Search(strings.Join(args, " "), limit)
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "no matches")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(out, "%s\t%s\n", r.Slug, r.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	return cmd
}

func newTreeCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the notes folder tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			built, err := loadModule(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			root := built.Module.Tree()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), root)
			}
			printTree(cmd.OutOrStdout(), root, 0)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")
	return cmd
}

func newOutlineCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "outline <slug>",
		Short: "Print the heading outline of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := loadModule(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			slug := strings.Trim(strings.TrimSpace(args[0]), "/")
			sections, ok := built.Module.Outline(slug)
			if !ok {
				return fmt.Errorf("note %q not found", slug)
			}
			out := cmd.OutOrStdout()
			for _, s := range sections {
				fmt.Fprintf(out, "%s%s (#%s)\n", strings.Repeat("  ", s.Depth-1), s.Text, s.Slug)
			}
			return nil
		},
	}
}

func printTree(w io.Writer, node *tree.Node, depth int) {
	if node == nil {
		return
	}
	suffix := ""
	if node.Kind == tree.KindFolder {
		suffix = "/"
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), node.Name, suffix)
	for _, child := range node.Children {
		printTree(w, child, depth+1)
	}
}

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
