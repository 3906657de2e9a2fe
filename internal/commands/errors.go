package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command errors.
const (
	CodeInvalidMessage = "NOTES_COMMAND_INVALID"
	CodeCancelled      = "NOTES_COMMAND_CANCELLED"
	CodeTimedOut       = "NOTES_COMMAND_TIMEOUT"
	CodeContext        = "NOTES_COMMAND_CONTEXT"
	CodeFailed         = "NOTES_COMMAND_FAILED"
)

// alreadyWrapped reports errors that need no further categorisation.
func alreadyWrapped(err error) bool {
	return err == nil || goerrors.IsWrapped(err)
}

func wrapValidationError(err error) error {
	if alreadyWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid command message").
		WithTextCode(CodeInvalidMessage)
}

func wrapContextError(err error) error {
	if alreadyWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").WithTextCode(CodeCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command timed out").WithTextCode(CodeTimedOut)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context failed").WithTextCode(CodeContext)
	}
}

func wrapExecuteError(err error) error {
	if alreadyWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").WithTextCode(CodeFailed)
}
