package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"locsmith/internal/domain"
)

var batchColumns = []string{
	"id", "status", "created_keys", "updated_keys", "reused_keys",
	"translated_values", "failed_locales", "error", "created_at", "finished_at",
}

type BatchRepo struct{ *Repo }

func NewBatchRepo(db *sql.DB) *BatchRepo { return &BatchRepo{NewRepo(db)} }

func (r *BatchRepo) Create(ctx context.Context, b *domain.BatchRun) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = domain.BatchRunning
	}
	now := time.Now().UTC()
	q := r.SQ.Insert("batch_runs").Columns("id", "status", "created_at").
		Values(b.ID, b.Status, now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return mapErr(err)
	}
	b.CreatedAt = now
	return nil
}

// Finish records the outcome counters and stamps the completion time.
func (r *BatchRepo) Finish(ctx context.Context, b *domain.BatchRun) error {
	now := time.Now().UTC()
	q := r.SQ.Update("batch_runs").
		Set("status", b.Status).
		Set("created_keys", b.CreatedKeys).
		Set("updated_keys", b.UpdatedKeys).
		Set("reused_keys", b.ReusedKeys).
		Set("translated_values", b.TranslatedValues).
		Set("failed_locales", b.FailedLocales).
		Set("error", b.Error).
		Set("finished_at", now.Format(time.RFC3339)).
		Where(sq.Eq{"id": b.ID})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	b.FinishedAt = &now
	return nil
}

func (r *BatchRepo) List(ctx context.Context, limit int) ([]*domain.BatchRun, error) {
	if limit <= 0 {
		limit = 50
	}
	q := r.SQ.Select(batchColumns...).From("batch_runs").
		OrderBy("created_at DESC", "rowid DESC").
		Limit(uint64(limit))
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*domain.BatchRun
	for rows.Next() {
		var b domain.BatchRun
		var created string
		var finished sql.NullString
		if err := rows.Scan(&b.ID, &b.Status, &b.CreatedKeys, &b.UpdatedKeys, &b.ReusedKeys,
			&b.TranslatedValues, &b.FailedLocales, &b.Error, &created, &finished); err != nil {
			return nil, mapErr(err)
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, created)
		if finished.Valid {
			t, _ := time.Parse(time.RFC3339, finished.String)
			b.FinishedAt = &t
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
