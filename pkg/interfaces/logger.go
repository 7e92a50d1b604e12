package interfaces

import "context"

// Logger is the leveled, key/value logging surface used throughout the
// glossary. The method set matches github.com/goliatone/go-logger, which
// means a host already using that package can pass its loggers straight in;
// everyone else gets the bundled console provider.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can bind a set of structured
// fields once and repeat them on every subsequent entry. Callers probe for it
// with a type assertion; loggers without it still work, they just receive the
// fields inline as arguments.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// LoggerProvider hands out loggers by name. The glossary asks for one logger
// per module ("glossary.linker", "glossary.pages", ...) so providers can route
// or filter per area; returning the same logger for every name is also valid.
type LoggerProvider interface {
	GetLogger(name string) Logger
}
