package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the migrations in the order they run.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_cv_exports", Up: createExports},
		{Name: "add_cv_exports_session_index", Up: addSessionIndex},
	}
}

func createExports(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS cv_exports (
			id          UUID PRIMARY KEY,
			session_id  UUID NOT NULL,
			file_name   TEXT NOT NULL,
			pages       INTEGER NOT NULL DEFAULT 0,
			bytes       INTEGER NOT NULL DEFAULT 0,
			status      TEXT NOT NULL,
			error       TEXT,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

// addSessionIndex adds the lookup index used when listing a session's exports
func addSessionIndex(ctx context.Context, pool *pgxpool.Pool) error {
	query := `CREATE INDEX IF NOT EXISTS cv_exports_session_id_idx ON cv_exports (session_id, created_at DESC);`

	if _, err := pool.Exec(ctx, query); err != nil {
		// Log the error but don't fail - the index may already exist
		slog.Warn("Error adding cv_exports session index (may already exist)", "error", err)
		return nil
	}
	return nil
}
