package storage

import "context"

// Config holds the connection settings for a single backend. Profiles carry
// one Config each; the json tags keep serialized payloads aligned with
// ConfigJSONSchema.
type Config struct {
	Name     string         `json:"name"`
	Driver   string         `json:"driver"`
	DSN      string         `json:"dsn"`
	ReadOnly bool           `json:"readOnly,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

// Provider is the SQL surface the catalog repositories program against. The
// container owns the concrete adapter and may swap it when the active storage
// profile changes, so callers must not cache anything beyond the interface.
type Provider interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Transaction(ctx context.Context, fn func(tx Transaction) error) error
}

// Transaction scopes Provider operations to a single unit of work. Import
// runs use it so a keyword and its aliases land together or not at all.
type Transaction interface {
	Provider
	Commit() error
	Rollback() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}
