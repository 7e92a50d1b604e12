// Package commands wraps go-command handlers with the cross-cutting concerns
// every glossary command shares: message validation, context and timeout
// management, structured logging, error classification, and telemetry.
package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const defaultHandlerTimeout = 30 * time.Second

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler adapts a command function to command.Commander, running it behind
// validation, a bounded context, and per-execution logging.
type Handler[T command.Message] struct {
	run           command.CommandFunc[T]
	logger        interfaces.Logger
	timeout       time.Duration
	operation     string
	messageFields func(T) map[string]any
	telemetry     Telemetry[T]
}

// NewHandler wraps fn. The zero configuration gives a no-op logger and a
// 30-second execution timeout.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		run:     fn,
		logger:  logging.NoOp(),
		timeout: defaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute validates the message, runs the wrapped function under the handler
// timeout, and classifies whatever comes back. It satisfies
// command.Commander[T].
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidation(err)
	}

	ctx, cancel := h.executionContext(ctx)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return wrapContext(err)
	}

	name := command.GetMessageType(msg)
	fields := h.logFields(name, msg)
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.start")

	start := time.Now()
	runErr := h.run(ctx, msg)
	elapsed := time.Since(start)

	status := TelemetryStatusSuccess
	var outcome error
	switch {
	case runErr != nil:
		logger.Error("command.failed", "error", runErr)
		status = TelemetryStatusFailed
		outcome = wrapExecution(runErr)
	case ctx.Err() != nil:
		// The function returned nil but its deadline expired mid-run.
		runErr = ctx.Err()
		logger.Error("command.context_error", "error", runErr)
		status = TelemetryStatusContextError
		outcome = wrapContext(runErr)
	default:
		logger.Info("command.completed")
	}

	if h.telemetry != nil {
		h.telemetry(ctx, msg, TelemetryInfo{
			Command:   name,
			Operation: h.operation,
			Fields:    fields,
			Duration:  elapsed,
			Error:     runErr,
			Status:    status,
			Logger:    logger,
		})
	}
	return outcome
}

// executionContext normalizes a nil context and applies the handler timeout
// when one is configured.
func (h *Handler[T]) executionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}

// logFields assembles the fields attached to every log entry and telemetry
// record for one execution.
func (h *Handler[T]) logFields(name string, msg T) map[string]any {
	fields := map[string]any{
		"command": name,
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.messageFields != nil {
		for key, value := range h.messageFields(msg) {
			fields[key] = value
		}
	}
	return fields
}

// WithTimeout overrides the execution timeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger sets the execution logger; nil restores the no-op default.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation names the operation in log entries and telemetry records.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from the message so executions
// can be traced back to their inputs.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.messageFields = fn
	}
}

// WithTelemetry registers a callback invoked after every execution with the
// outcome, duration, and resolved log fields.
func WithTelemetry[T command.Message](telemetry Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = telemetry
	}
}
