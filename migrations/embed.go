// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
// Each record store dialect has its own directory.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres and SQLite hold the migrations for each dialect, rooted so goose
// sees the *.sql files at the top level.
var (
	Postgres = mustSub("postgres")
	SQLite   = mustSub("sqlite")
)

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}

// Provider returns a goose provider for the given dialect.
// dialect must be goose.DialectPostgres or goose.DialectSQLite3.
func Provider(db *sql.DB, dialect goose.Dialect) (*goose.Provider, error) {
	var fsys fs.FS
	switch dialect {
	case goose.DialectPostgres:
		fsys = Postgres
	case goose.DialectSQLite3:
		fsys = SQLite
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
	return goose.NewProvider(dialect, db, fsys)
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	provider, err := Provider(db, dialect)
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}
