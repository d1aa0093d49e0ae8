package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/site-visits/migrations"
)

// sqlDB is the minimal interface satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OpenSQLite opens (or creates) a SQLite database and applies pending
// migrations. dsn is a file path or a go-sqlite3 URI such as
// "file:visits?mode=memory&cache=shared".
//
// Writes are serialized through a single connection; the compare-and-swap in
// Update still decides which of two racing writers wins.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = "visits.db"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	d, err := sql.Open("sqlite3", dsn+sep+"_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	if err := d.PingContext(ctx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	// journal_mode is not supported for in-memory databases.
	_, _ = d.ExecContext(ctx, `PRAGMA journal_mode=WAL`)

	if err := migrations.Up(ctx, d, goose.DialectSQLite3); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	d.SetMaxOpenConns(1)
	return d, nil
}

// sqliteTimeLayout has a fixed-width fraction so stored timestamps sort
// lexically in time order.
const (
	sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
	sqliteDateLayout = "2006-01-02"
)

func sqliteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseSQLiteTime(s string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, s)
}

func sqliteNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: sqliteTime(*t), Valid: true}
}
