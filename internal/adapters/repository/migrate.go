package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// Migrate applies every embedded migration not yet recorded in
// schema_migrations, in file name order, one transaction per file.
// It returns the versions it applied.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, migrationsTable); err != nil {
		return nil, fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var done []string
	if err := db.SelectContext(ctx, &done, `SELECT version FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("migrate: read applied versions: %w", err)
	}
	appliedSet := make(map[string]bool, len(done))
	for _, v := range done {
		appliedSet[v] = true
	}

	files, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var applied []string
	for _, path := range files {
		version := strings.TrimSuffix(strings.TrimPrefix(path, "migrations/"), ".sql")
		if appliedSet[version] {
			continue
		}

		body, err := migrationFiles.ReadFile(path)
		if err != nil {
			return applied, fmt.Errorf("migrate: read %s: %w", path, err)
		}

		if err := applyMigration(ctx, db, version, string(body)); err != nil {
			return applied, err
		}

		logger.Info("migration applied", "version", version)
		applied = append(applied, version)
	}

	return applied, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, version, body string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin %s: %w", version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("migrate: apply %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("migrate: record %s: %w", version, err)
	}

	return tx.Commit()
}
