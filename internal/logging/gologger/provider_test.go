package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

func TestNewProviderFormats(t *testing.T) {
	cases := []struct {
		format  string
		wantErr bool
	}{
		{format: ""},
		{format: "json"},
		{format: "console"},
		{format: "PRETTY"},
		{format: "xml", wantErr: true},
	}

	for _, tc := range cases {
		name := tc.format
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			p, err := NewProvider(Config{Level: "debug", Format: tc.format})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for format %q", tc.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider(%q): %v", tc.format, err)
			}
			logger := p.GetLogger("glossary.test")
			if logger == nil {
				t.Fatal("expected logger, got nil")
			}
			logger.(interfaces.FieldsLogger).WithFields(map[string]any{"module": "glossary.test"}).Debug("adapter.ready")
		})
	}
}

func TestNewProviderLevelAliasesAndFocus(t *testing.T) {
	p, err := NewProvider(Config{
		Level:  "WARNING",
		Format: "console",
		Focus:  []string{" glossary.linker ", "", "glossary.pages"},
	})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	// Root and named loggers must both be safe to use immediately.
	p.GetLogger("").Warn("root online")
	p.GetLogger("glossary.linker").Warn("module online")
}

func TestNilProviderHandsOutNoOp(t *testing.T) {
	var p *Provider
	logger := p.GetLogger("glossary.anything")
	if logger == nil {
		t.Fatal("nil provider must still return a logger")
	}
	logger.Error("must not panic")
}

func TestWrapNilLoggerIsNoOp(t *testing.T) {
	logger := wrap(nil)
	if logger == nil {
		t.Fatal("wrap(nil) must return a usable logger")
	}
	logger.Info("noop")
}

func TestAdapterForwardsEachLevel(t *testing.T) {
	stub := &recordingGlog{}
	adapted := wrap(stub)

	calls := []struct {
		method string
		emit   func(string, ...any)
	}{
		{"trace", adapted.Trace},
		{"debug", adapted.Debug},
		{"info", adapted.Info},
		{"warn", adapted.Warn},
		{"error", adapted.Error},
		{"fatal", adapted.Fatal},
	}
	for _, call := range calls {
		call.emit(call.method+" message", "slug", "neural-network")
	}

	if len(stub.entries) != len(calls) {
		t.Fatalf("expected %d forwarded calls, got %d", len(calls), len(stub.entries))
	}
	for i, call := range calls {
		got := stub.entries[i]
		if got.method != call.method {
			t.Fatalf("call %d: method = %q, want %q", i, got.method, call.method)
		}
		if got.msg != call.method+" message" {
			t.Fatalf("call %d: msg = %q", i, got.msg)
		}
		if len(got.args) != 2 || got.args[0] != "slug" {
			t.Fatalf("call %d: args = %#v", i, got.args)
		}
	}
}

func TestAdapterClonesFieldMaps(t *testing.T) {
	stub := &recordingGlog{}
	adapted := wrap(stub)

	fields := map[string]any{"entity": "keyword"}
	if child := adapted.(interfaces.FieldsLogger).WithFields(fields); child == nil {
		t.Fatal("WithFields returned nil")
	}

	// Mutating the caller's map after the call must not leak into the logger.
	fields["entity"] = "category"
	if len(stub.fields) != 1 {
		t.Fatalf("expected one recorded field map, got %d", len(stub.fields))
	}
	if stub.fields[0]["entity"] != "keyword" {
		t.Fatalf("field map not cloned: %v", stub.fields[0])
	}
}

func TestAdapterPropagatesContext(t *testing.T) {
	stub := &recordingGlog{}
	adapted := wrap(stub)

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "trace-1")
	adapted.WithContext(ctx)

	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("context not forwarded: %#v", stub.contexts)
	}

	// nil context is a no-op rather than a panic.
	if same := adapted.WithContext(nil); same == nil {
		t.Fatal("WithContext(nil) returned nil")
	}
	if len(stub.contexts) != 1 {
		t.Fatalf("nil context must not be forwarded, got %d calls", len(stub.contexts))
	}
}

type glogCall struct {
	method string
	msg    string
	args   []any
}

// recordingGlog captures every call so tests can assert the adapter forwards
// without reformatting.
type recordingGlog struct {
	entries  []glogCall
	fields   []map[string]any
	contexts []context.Context
}

var (
	_ glog.Logger       = (*recordingGlog)(nil)
	_ glog.FieldsLogger = (*recordingGlog)(nil)
)

func (s *recordingGlog) record(method, msg string, args []any) {
	s.entries = append(s.entries, glogCall{method: method, msg: msg, args: args})
}

func (s *recordingGlog) Trace(msg string, args ...any) { s.record("trace", msg, args) }
func (s *recordingGlog) Debug(msg string, args ...any) { s.record("debug", msg, args) }
func (s *recordingGlog) Info(msg string, args ...any)  { s.record("info", msg, args) }
func (s *recordingGlog) Warn(msg string, args ...any)  { s.record("warn", msg, args) }
func (s *recordingGlog) Error(msg string, args ...any) { s.record("error", msg, args) }
func (s *recordingGlog) Fatal(msg string, args ...any) { s.record("fatal", msg, args) }

func (s *recordingGlog) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *recordingGlog) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}
