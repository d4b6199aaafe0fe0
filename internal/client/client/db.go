// Package client bootstraps the local SQLite database and wires the
// repositories over it.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lifeboard/internal/client/migrations"
	"github.com/dmitrijs2005/lifeboard/internal/client/repositories/identities"
	"github.com/dmitrijs2005/lifeboard/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the durable stores sharing one database handle.
type Repositories struct {
	Identities identities.Repository
	Metadata   metadata.Repository
	DB         *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn, runs
// migrations, and returns the wired repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Repositories{
		Identities: identities.NewSQLiteRepository(db),
		Metadata:   metadata.NewSQLiteRepository(db),
		DB:         db,
	}, nil
}
