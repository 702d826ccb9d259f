package repository

import (
	"context"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ExportsRepo struct {
	pool *pgxpool.Pool
}

// NewExportsRepo wraps pool. A nil pool turns every call into a no-op so the
// service runs without a database.
func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

func (r *ExportsRepo) Save(ctx context.Context, j *domain.ExportJob) error {
	if r == nil || r.pool == nil {
		return nil
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO cv_exports (id, session_id, file_name, pages, bytes, status, error, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET file_name = EXCLUDED.file_name, pages = EXCLUDED.pages, bytes = EXCLUDED.bytes, status = EXCLUDED.status, error = EXCLUDED.error, updated_at = EXCLUDED.updated_at`,
		j.ID, j.SessionID, j.FileName, j.Pages, j.Bytes, j.Status, nullable(j.Error), j.CreatedAt, j.UpdatedAt)
	return err
}

// ListBySession returns the most recent exports of a session, newest first.
func (r *ExportsRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.ExportJob, error) {
	if r == nil || r.pool == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `SELECT id, session_id, file_name, pages, bytes, status, coalesce(error, ''), created_at, updated_at
		FROM cv_exports WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExportJob
	for rows.Next() {
		var j domain.ExportJob
		if err := rows.Scan(&j.ID, &j.SessionID, &j.FileName, &j.Pages, &j.Bytes, &j.Status, &j.Error, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
