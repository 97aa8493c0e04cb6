package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"locsmith/internal/domain"
)

type ChangeLogRepo struct{ *Repo }

func NewChangeLogRepo(db *sql.DB) *ChangeLogRepo { return &ChangeLogRepo{NewRepo(db)} }

// Append writes one audit row. Rows are never mutated afterwards.
func (r *ChangeLogRepo) Append(ctx context.Context, rec *domain.ChangeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	q := r.SQ.Insert("change_log").
		Columns("id", "type", "key", "proposed_key", "resolved_key", "old_en", "new_en", "created_at").
		Values(rec.ID, rec.Type, rec.Key, rec.ProposedKey, rec.ResolvedKey, rec.OldEn, rec.NewEn, now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return mapErr(err)
	}
	rec.CreatedAt = now
	r.emit("store.changed", map[string]any{"table": "change_log"})
	return nil
}

// List returns the newest records first, capped at limit (0 means the
// default of 200).
func (r *ChangeLogRepo) List(ctx context.Context, limit int) ([]*domain.ChangeRecord, error) {
	if limit <= 0 {
		limit = 200
	}
	q := r.SQ.Select("id", "type", "key", "proposed_key", "resolved_key", "old_en", "new_en", "created_at").
		From("change_log").
		OrderBy("created_at DESC", "rowid DESC").
		Limit(uint64(limit))
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*domain.ChangeRecord
	for rows.Next() {
		var rec domain.ChangeRecord
		var created string
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Key, &rec.ProposedKey, &rec.ResolvedKey, &rec.OldEn, &rec.NewEn, &created); err != nil {
			return nil, mapErr(err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *ChangeLogRepo) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM change_log`); err != nil {
		return mapErr(err)
	}
	r.emit("store.changed", map[string]any{"table": "change_log"})
	return nil
}
