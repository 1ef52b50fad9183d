package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repos can join a
// caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Item represents one candidate row.
type Item struct {
	ID         string
	Collection string
	Text       string
	SortOrder  int
}

// Selection represents a committed value.
type Selection struct {
	ID         string
	Combobox   string
	Text       string
	SelectedAt time.Time
}
