package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var dbSeq atomic.Int64

// NewSQLiteMemoryDB opens a fresh in-memory sqlite database wrapped in bun.
// Every call gets its own database; the shared-cache DSN keeps it alive
// across pooled connections, and capping the pool at one connection keeps
// reads and writes on the same handle. Cleanup closes both handles.
func NewSQLiteMemoryDB(tb testing.TB) *bun.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:glossary_test_%d?mode=memory&cache=shared&_fk=1", dbSeq.Add(1))
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() {
		_ = sqldb.Close()
	})

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
