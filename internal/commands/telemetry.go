package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus classifies how an execution ended.
type TelemetryStatus string

const (
	// TelemetryStatusSuccess marks a clean completion.
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusFailed marks an error returned by the command function.
	TelemetryStatusFailed TelemetryStatus = "failed"
	// TelemetryStatusContextError marks a cancellation or expired deadline.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is the per-execution record handed to telemetry callbacks.
// Fields carries the same structured fields the handler logged with, and
// Logger is already scoped to them.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry observes command executions. Callbacks run synchronously after
// the command function returns, before the handler reports its outcome.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry emits one "command.telemetry" entry per execution carrying
// status and duration. Log pipelines can count and aggregate these without
// parsing the handler's lifecycle messages.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{
			"status", string(info.Status),
			"duration_ms", info.Duration.Milliseconds(),
		}
		if info.Error != nil {
			entry.Error("command.telemetry", append(args, "error", info.Error)...)
			return
		}
		entry.Info("command.telemetry", args...)
	}
}
