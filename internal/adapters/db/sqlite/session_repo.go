package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"locsmith/internal/domain"
)

type SessionRepo struct{ *Repo }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{NewRepo(db)} }

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	q := r.SQ.Insert("sessions").Columns("id", "name", "created_at").
		Values(s.ID, s.Name, now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return mapErr(err)
	}
	s.CreatedAt = now
	r.emit("store.changed", map[string]any{"table": "sessions"})
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	return r.getWhere(ctx, sq.Eq{"id": id})
}

func (r *SessionRepo) GetByName(ctx context.Context, name string) (*domain.Session, error) {
	return r.getWhere(ctx, sq.Eq{"name": name})
}

func (r *SessionRepo) getWhere(ctx context.Context, cond sq.Eq) (*domain.Session, error) {
	q := r.SQ.Select("id", "name", "created_at").From("sessions").Where(cond).OrderBy("created_at").Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var s domain.Session
	var created string
	if err := row.Scan(&s.ID, &s.Name, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, mapErr(err)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &s, nil
}

func (r *SessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	q := r.SQ.Select("id", "name", "created_at").From("sessions").OrderBy("created_at", "rowid")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*domain.Session
	for rows.Next() {
		var s domain.Session
		var created string
		if err := rows.Scan(&s.ID, &s.Name, &created); err != nil {
			return nil, mapErr(err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &s)
	}
	return out, rows.Err()
}
