package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/campaignos/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// FailingWriteUoW runs transactions through a real unit of work but fails
// the FailOn-th ExecContext of each one, counting from 1. Reads pass
// through. Use it to show that multi-write operations such as seeding
// statuses or reordering swimlanes roll back as a whole.
type FailingWriteUoW struct {
	UoW    db.UnitOfWork
	FailOn int
	Err    error
}

func NewFailingWriteUoW(database *sql.DB, failOn int, err error) *FailingWriteUoW {
	return &FailingWriteUoW{UoW: db.NewSQLiteUnitOfWork(database), FailOn: failOn, Err: err}
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
