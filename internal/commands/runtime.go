package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// DefaultCommandTimeout bounds index builds, exports and search refreshes
// unless WithTimeout overrides it.
const DefaultCommandTimeout = 30 * time.Second

// commandContext derives the context a command runs under. A nil parent
// becomes context.Background and a non-positive timeout leaves it unbounded.
func commandContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// EnsureLogger returns logger, or a no-op logger when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
