// Package ditesting provides test doubles for container wiring: a recording
// storage provider that captures every statement routed through the shared
// storage interfaces.
package ditesting

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-glossary/internal/di"
	"github.com/goliatone/go-glossary/internal/runtimeconfig"
	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// RecordingStorage records storage interactions for assertions in tests.
type RecordingStorage struct {
	mu         sync.Mutex
	execCalls  []ExecCall
	queryCalls []QueryCall
}

// ExecCall captures an Exec invocation against the recording storage.
type ExecCall struct {
	Query         string
	Args          []any
	InTransaction bool
}

// QueryCall captures a Query invocation against the recording storage.
type QueryCall struct {
	Query         string
	Args          []any
	InTransaction bool
}

// NewRecordingStorage constructs a storage provider that records calls.
func NewRecordingStorage() *RecordingStorage {
	return &RecordingStorage{}
}

// Exec records the executed statement.
func (m *RecordingStorage) Exec(_ context.Context, query string, args ...any) (interfaces.Result, error) {
	m.recordExec(query, false, args)
	return recordedResult{}, nil
}

// Query records the query and returns a stateless rows iterator.
func (m *RecordingStorage) Query(_ context.Context, query string, args ...any) (interfaces.Rows, error) {
	m.recordQuery(query, false, args)
	return recordedRows{}, nil
}

// Transaction executes the provided function with a transactional view of the
// recording storage.
func (m *RecordingStorage) Transaction(_ context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	tx := &recordedTx{storage: m}
	if err := fn(tx); err != nil {
		tx.rollback = true
		return err
	}
	tx.commit = true
	return nil
}

// ExecCalls returns a copy of recorded Exec calls.
func (m *RecordingStorage) ExecCalls() []ExecCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]ExecCall, len(m.execCalls))
	copy(calls, m.execCalls)
	return calls
}

// QueryCalls returns a copy of recorded Query calls.
func (m *RecordingStorage) QueryCalls() []QueryCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]QueryCall, len(m.queryCalls))
	copy(calls, m.queryCalls)
	return calls
}

func (m *RecordingStorage) recordExec(query string, inTx bool, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := append([]any(nil), args...)
	m.execCalls = append(m.execCalls, ExecCall{
		Query:         query,
		Args:          cloned,
		InTransaction: inTx,
	})
}

func (m *RecordingStorage) recordQuery(query string, inTx bool, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := append([]any(nil), args...)
	m.queryCalls = append(m.queryCalls, QueryCall{
		Query:         query,
		Args:          cloned,
		InTransaction: inTx,
	})
}

type recordedRows struct{}

func (recordedRows) Next() bool {
	return false
}

func (recordedRows) Scan(dest ...any) error {
	return errors.New("recording storage: no rows available")
}

func (recordedRows) Close() error {
	return nil
}

type recordedResult struct{}

func (recordedResult) RowsAffected() (int64, error) {
	return 0, nil
}

func (recordedResult) LastInsertId() (int64, error) {
	return 0, nil
}

type recordedTx struct {
	storage  *RecordingStorage
	commit   bool
	rollback bool
}

func (tx *recordedTx) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	tx.storage.recordQuery(query, true, args)
	return recordedRows{}, nil
}

func (tx *recordedTx) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	tx.storage.recordExec(query, true, args)
	return recordedResult{}, nil
}

func (tx *recordedTx) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return errors.New("recording storage: nested transactions not supported")
}

func (tx *recordedTx) Commit() error {
	tx.commit = true
	return nil
}

func (tx *recordedTx) Rollback() error {
	tx.rollback = true
	return nil
}

// NewRecordingContainer creates a DI container whose storage provider records
// every call, leaving repositories on their memory implementations.
func NewRecordingContainer(cfg runtimeconfig.Config, opts ...di.Option) (*di.Container, *RecordingStorage, error) {
	recorder := NewRecordingStorage()
	options := append([]di.Option{di.WithStorage(recorder)}, opts...)

	container, err := di.NewContainer(cfg, options...)
	if err != nil {
		return nil, nil, err
	}
	return container, recorder, nil
}
