package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-notes/pkg/interfaces"
)

const (
	rootModule     = "notes"
	distillModule  = "notes.distill"
	searchModule   = "notes.search"
	indexModule    = "notes.index"
	markdownModule = "notes.markdown"
	httpModule     = "notes.http"
	commandsPrefix = "notes.commands."
)

const (
	fieldNoteSlug   = "note_slug"
	fieldNoteAction = "note_action"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields a
// no-op logger. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// DistillLogger returns the logger for clip collection and rendering.
func DistillLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, distillModule)
}

// SearchLogger returns the logger for search snapshot maintenance.
func SearchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, searchModule)
}

// IndexLogger returns the logger for the recency index builder.
func IndexLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, indexModule)
}

// MarkdownLogger returns the logger for note loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// HTTPLogger returns the logger for HTTP handlers.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// CommandLogger returns the logger for the named command handler.
func CommandLogger(provider interfaces.LoggerProvider, command string) interfaces.Logger {
	command = strings.TrimSpace(command)
	if command == "" {
		return ModuleLogger(provider, strings.TrimSuffix(commandsPrefix, "."))
	}
	return ModuleLogger(provider, commandsPrefix+command)
}

// WithNoteContext adds the note slug and action fields. Empty values are
// skipped.
func WithNoteContext(logger interfaces.Logger, slug, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldNoteSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldNoteAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
