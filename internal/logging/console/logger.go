package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// Level represents the severity attached to a log entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String renders the severity label used in console output.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "INFO"
	}
}

// Options configures the console provider. Zero values fall back to stdout,
// wall-clock time, and a DEBUG threshold.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

// NewProvider constructs a console-backed logger provider. Entries are single
// lines: an RFC3339Nano timestamp, the severity, the message, then key=value
// fields in sorted key order.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{
		writer:   opts.Writer,
		clock:    opts.TimeFunc,
		minLevel: LevelDebug,
	}
	if p.writer == nil {
		p.writer = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if opts.MinLevel != nil {
		p.minLevel = *opts.MinLevel
	}
	return p
}

type provider struct {
	mu       sync.Mutex
	writer   io.Writer
	clock    func() time.Time
	minLevel Level
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &consoleLogger{
		provider: p,
		fields:   map[string]any{"logger": name},
	}
}

// consoleLogger is an immutable view over its provider: WithFields and
// WithContext return copies, so a logger can be shared across goroutines.
type consoleLogger struct {
	provider *provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*consoleLogger)(nil)
	_ interfaces.FieldsLogger = (*consoleLogger)(nil)
)

func (l *consoleLogger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *consoleLogger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *consoleLogger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &consoleLogger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	clone := &consoleLogger{provider: l.provider, ctx: ctx}
	if len(l.fields) > 0 {
		clone.fields = maps.Clone(l.fields)
	}
	return clone
}

// emit merges logger, context, and call-site fields (later sources win) and
// writes one entry under the provider lock.
func (l *consoleLogger) emit(level Level, msg string, args []any) {
	if l.provider == nil || level < l.provider.minLevel {
		return
	}

	fields := make(map[string]any, len(l.fields)+len(args)/2+2)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	maps.Copy(fields, pairFields(args))

	line := renderEntry(l.provider.clock().UTC(), level, msg, fields)

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	// Logging is best-effort; a failed write must not take the caller down.
	_, _ = io.WriteString(l.provider.writer, line+"\n")
}

// pairFields folds variadic key/value arguments into a field map. Non-string
// or empty keys, and a trailing key with no value, fall back to positional
// field_N names so data is never dropped.
func pairFields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, (len(args)+1)/2)
	for pair := 0; len(args) > 0; pair++ {
		if len(args) == 1 {
			fields[positionalKey(pair)] = args[0]
			break
		}
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = positionalKey(pair)
		}
		fields[key] = args[1]
		args = args[2:]
	}
	return fields
}

func positionalKey(pair int) string {
	return "field_" + strconv.Itoa(pair)
}

func renderEntry(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.Grow(64 + len(msg) + len(fields)*16)
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(renderValue(fields[key]))
	}
	return b.String()
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quoteIfNeeded(v)
	case time.Time:
		return quoteIfNeeded(v.UTC().Format(time.RFC3339Nano))
	case *time.Time:
		if v == nil {
			return "null"
		}
		return quoteIfNeeded(v.UTC().Format(time.RFC3339Nano))
	case error:
		return quoteIfNeeded(v.Error())
	case fmt.Stringer:
		return quoteIfNeeded(v.String())
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quoteIfNeeded(fmt.Sprint(v))
	}
}

// quoteIfNeeded quotes values containing whitespace, control characters, or
// '=' so entries stay splittable on spaces.
func quoteIfNeeded(value string) string {
	if value == "" {
		return `""`
	}
	for _, r := range value {
		if r <= 0x20 || r == '=' {
			return strconv.Quote(value)
		}
	}
	return value
}
