package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped failures. Hosts route on these instead of
// matching message strings.
const (
	codeValidationFailed = "COMMAND_VALIDATION_FAILED"
	codeContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	codeContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	codeContextFailed    = "COMMAND_CONTEXT_ERROR"
	codeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

// The wrap helpers below leave already-classified errors untouched so the
// innermost category wins when handlers call each other.

func wrapValidation(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(codeValidationFailed)
}

// wrapContext keeps cancellation and deadline expiry distinguishable after
// wrapping; anything else on the context is a generic context failure.
func wrapContext(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	msg, code := "command context error", codeContextFailed
	switch {
	case errors.Is(err, context.Canceled):
		msg, code = "command execution cancelled", codeContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		msg, code = "command execution deadline exceeded", codeContextTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

func wrapExecution(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeExecutionFailed)
}
