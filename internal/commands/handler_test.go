package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

type pingMessage struct{}

func (pingMessage) Type() string    { return "glossary.test.ping" }
func (pingMessage) Validate() error { return nil }

type rejectedMessage struct{}

func (rejectedMessage) Type() string    { return "glossary.test.rejected" }
func (rejectedMessage) Validate() error { return errors.New("rejected by validator") }

func TestHandlerRunsCommand(t *testing.T) {
	runs := 0
	h := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		runs++
		return nil
	})

	if err := h.Execute(context.Background(), pingMessage{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if runs != 1 {
		t.Fatalf("command ran %d times, want 1", runs)
	}
}

func TestHandlerRejectsInvalidMessage(t *testing.T) {
	runs := 0
	h := NewHandler[rejectedMessage](func(context.Context, rejectedMessage) error {
		runs++
		return nil
	})

	err := h.Execute(context.Background(), rejectedMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if runs != 0 {
		t.Fatal("command must not run when validation fails")
	}
}

func TestHandlerRefusesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runs := 0
	h := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		runs++
		return nil
	})

	err := h.Execute(ctx, pingMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
	if runs != 0 {
		t.Fatal("command must not run on a dead context")
	}
}

func TestHandlerClassifiesExecutionError(t *testing.T) {
	boom := errors.New("boom")
	h := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		return boom
	})

	err := h.Execute(context.Background(), pingMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error in chain, got %v", err)
	}
}

func TestHandlerTimeout(t *testing.T) {
	h := NewHandler[pingMessage](func(ctx context.Context, _ pingMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
			return nil
		}
	}, WithTimeout[pingMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), pingMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error in chain, got %v", err)
	}
}

func TestHandlerTelemetryOutcomes(t *testing.T) {
	var infos []TelemetryInfo
	capture := func(_ context.Context, _ pingMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}

	ok := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		return nil
	},
		WithOperation[pingMessage]("catalog.reindex"),
		WithMessageFields[pingMessage](func(pingMessage) map[string]any {
			return map[string]any{"input": "fixture"}
		}),
		WithTelemetry[pingMessage](capture),
	)
	if err := ok.Execute(context.Background(), pingMessage{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	failing := NewHandler[pingMessage](func(context.Context, pingMessage) error {
		return errors.New("boom")
	}, WithTelemetry[pingMessage](capture))
	if err := failing.Execute(context.Background(), pingMessage{}); err == nil {
		t.Fatal("expected execution error")
	}

	// Returning nil after the deadline expires must surface as a context
	// outcome, not success.
	expired := NewHandler[pingMessage](func(ctx context.Context, _ pingMessage) error {
		<-ctx.Done()
		return nil
	}, WithTimeout[pingMessage](10*time.Millisecond), WithTelemetry[pingMessage](capture))
	if err := expired.Execute(context.Background(), pingMessage{}); err == nil {
		t.Fatal("expected context error")
	}

	if len(infos) != 3 {
		t.Fatalf("telemetry calls = %d, want 3", len(infos))
	}
	first := infos[0]
	if first.Status != TelemetryStatusSuccess || first.Error != nil {
		t.Fatalf("success outcome = %+v", first)
	}
	if first.Command != "glossary.test.ping" || first.Operation != "catalog.reindex" {
		t.Fatalf("outcome identity = %+v", first)
	}
	if first.Fields["input"] != "fixture" || first.Fields["command"] != "glossary.test.ping" {
		t.Fatalf("outcome fields = %+v", first.Fields)
	}
	if infos[1].Status != TelemetryStatusFailed || infos[1].Error == nil {
		t.Fatalf("failure outcome = %+v", infos[1])
	}
	if infos[2].Status != TelemetryStatusContextError || !errors.Is(infos[2].Error, context.DeadlineExceeded) {
		t.Fatalf("context outcome = %+v", infos[2])
	}
}

func TestDefaultTelemetryEmitsOneRecord(t *testing.T) {
	sink := &telemetrySink{}
	emit := DefaultTelemetry[pingMessage](sink)

	emit(context.Background(), pingMessage{}, TelemetryInfo{
		Command:  "glossary.test.ping",
		Fields:   map[string]any{"command": "glossary.test.ping"},
		Duration: 42 * time.Millisecond,
		Status:   TelemetryStatusSuccess,
	})
	emit(context.Background(), pingMessage{}, TelemetryInfo{
		Command:  "glossary.test.ping",
		Duration: 5 * time.Millisecond,
		Status:   TelemetryStatusFailed,
		Error:    errors.New("boom"),
	})

	if len(sink.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(sink.entries))
	}
	if sink.entries[0].level != "info" || sink.entries[0].msg != "command.telemetry" {
		t.Fatalf("first entry = %+v", sink.entries[0])
	}
	if got := sink.entries[0].argValue("status"); got != "success" {
		t.Fatalf("status arg = %v", got)
	}
	if got := sink.entries[0].argValue("duration_ms"); got != int64(42) {
		t.Fatalf("duration arg = %v", got)
	}
	if sink.entries[1].level != "error" {
		t.Fatalf("failure entry level = %q", sink.entries[1].level)
	}
	if sink.entries[1].argValue("error") == nil {
		t.Fatalf("failure entry missing error arg: %+v", sink.entries[1])
	}
}

type telemetryEntry struct {
	level string
	msg   string
	args  []any
}

func (e telemetryEntry) argValue(key string) any {
	for i := 0; i+1 < len(e.args); i += 2 {
		if e.args[i] == key {
			return e.args[i+1]
		}
	}
	return nil
}

// telemetrySink records leveled calls for assertions.
type telemetrySink struct {
	entries []telemetryEntry
}

var _ interfaces.Logger = (*telemetrySink)(nil)

func (s *telemetrySink) log(level, msg string, args []any) {
	s.entries = append(s.entries, telemetryEntry{level: level, msg: msg, args: args})
}

func (s *telemetrySink) Trace(msg string, args ...any) { s.log("trace", msg, args) }
func (s *telemetrySink) Debug(msg string, args ...any) { s.log("debug", msg, args) }
func (s *telemetrySink) Info(msg string, args ...any)  { s.log("info", msg, args) }
func (s *telemetrySink) Warn(msg string, args ...any)  { s.log("warn", msg, args) }
func (s *telemetrySink) Error(msg string, args ...any) { s.log("error", msg, args) }
func (s *telemetrySink) Fatal(msg string, args ...any) { s.log("fatal", msg, args) }

func (s *telemetrySink) WithContext(context.Context) interfaces.Logger { return s }
