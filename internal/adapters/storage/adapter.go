// Package storage adapts database/sql handles to the glossary storage
// provider contract. Both *sql.DB and *bun.DB satisfy SQLExecutor, so the
// container can hand either to hosts that talk to storage directly.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// SQLExecutor is the subset of database/sql that the provider adapter needs.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// SQLProvider bridges a SQLExecutor to interfaces.StorageProvider. *sql.Rows
// and sql.Result already satisfy the contract's row and result shapes, so
// only the transaction surface needs translating.
type SQLProvider struct {
	db SQLExecutor
}

// NewSQLProvider wraps db as a storage provider.
func NewSQLProvider(db SQLExecutor) interfaces.StorageProvider {
	return &SQLProvider{db: db}
}

func (p *SQLProvider) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *SQLProvider) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	return p.db.ExecContext(ctx, query, args...)
}

// Transaction runs fn inside a database transaction. An error from fn rolls
// the transaction back; a rollback failure is joined onto fn's error.
func (p *SQLProvider) Transaction(ctx context.Context, fn func(tx interfaces.Transaction) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&sqlTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("storage: rollback: %w", rbErr))
		}
		return err
	}
	return tx.Commit()
}

// sqlTx scopes provider operations to one *sql.Tx.
type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *sqlTx) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return errors.New("storage: nested transactions are not supported")
}

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }

// NoOpProvider discards writes and returns empty reads. The container installs
// it when no database is configured so catalog code never nil-checks storage.
type NoOpProvider struct{}

// NewNoOpProvider returns a provider that accepts every call and does nothing.
func NewNoOpProvider() interfaces.StorageProvider {
	return &NoOpProvider{}
}

func (*NoOpProvider) Query(context.Context, string, ...any) (interfaces.Rows, error) {
	return nil, nil
}

func (*NoOpProvider) Exec(context.Context, string, ...any) (interfaces.Result, error) {
	return emptyResult{}, nil
}

func (*NoOpProvider) Transaction(_ context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	return fn(noopTx{})
}

// emptyResult reports zero rows touched. It stands in for sql.Result on paths
// that never reach a database.
type emptyResult struct{}

func (emptyResult) RowsAffected() (int64, error) { return 0, nil }
func (emptyResult) LastInsertId() (int64, error) { return 0, nil }

type noopTx struct{}

func (noopTx) Query(context.Context, string, ...any) (interfaces.Rows, error) {
	return nil, nil
}

func (noopTx) Exec(context.Context, string, ...any) (interfaces.Result, error) {
	return emptyResult{}, nil
}

func (noopTx) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return nil
}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }
