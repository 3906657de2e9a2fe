package distillcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-notes/internal/distill"
)

const (
	buildIndexMessageType    = "notes.index.build"
	exportDistillMessageType = "notes.distill.export"
	refreshSearchMessageType = "notes.search.refresh"
)

// BuildIndexCommand walks ContentDir for notes and writes the recency index
// to Output. An empty Output uses notesindex.DefaultPath.
type BuildIndexCommand struct {
	ContentDir string `json:"content_dir"`
	Output     string `json:"output,omitempty"`
}

// Type implements command.Message.
func (BuildIndexCommand) Type() string { return buildIndexMessageType }

// Validate ensures the content directory is present.
func (cmd BuildIndexCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ContentDir, validation.Required, validation.By(notBlank("notes.index.build.content_dir_required", "content directory is required"))),
	)
}

// ExportDistillCommand exports the clips of every note under Prefix in
// Format. Output names the destination file; empty writes to the handler's
// writer.
type ExportDistillCommand struct {
	Prefix string `json:"prefix,omitempty"`
	Format string `json:"format"`
	Output string `json:"output,omitempty"`
}

// Type implements command.Message.
func (ExportDistillCommand) Type() string { return exportDistillMessageType }

// Validate checks the export format.
func (cmd ExportDistillCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Format, validation.Required, validation.By(func(value any) error {
			if _, err := distill.ParseFormat(value.(string)); err != nil {
				return validation.NewError("notes.distill.export.format_invalid", "format must be text, markdown or json")
			}
			return nil
		})),
	)
}

// RefreshSearchCommand rebuilds the search snapshot when the note collection
// changed. Force rebuilds unconditionally.
type RefreshSearchCommand struct {
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (RefreshSearchCommand) Type() string { return refreshSearchMessageType }

// Validate implements command.Message. Every payload is valid.
func (RefreshSearchCommand) Validate() error { return nil }

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
