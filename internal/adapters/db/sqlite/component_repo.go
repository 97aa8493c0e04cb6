package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"locsmith/internal/domain"
)

var componentColumns = []string{"id", "session_id", "name", "code", "created_at", "updated_at"}

type ComponentRepo struct{ *Repo }

func NewComponentRepo(db *sql.DB) *ComponentRepo { return &ComponentRepo{NewRepo(db)} }

func scanComponent(row rowScanner) (*domain.Component, error) {
	var c domain.Component
	var created, updated string
	if err := row.Scan(&c.ID, &c.SessionID, &c.Name, &c.Code, &created, &updated); err != nil {
		return nil, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, created)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &c, nil
}

func (r *ComponentRepo) Create(ctx context.Context, c *domain.Component) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	q := r.SQ.Insert("components").Columns(componentColumns...).
		Values(c.ID, c.SessionID, c.Name, c.Code, now.Format(time.RFC3339), now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return mapErr(err)
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	r.emit("store.changed", map[string]any{"table": "components"})
	return nil
}

func (r *ComponentRepo) Update(ctx context.Context, c *domain.Component) error {
	now := time.Now().UTC()
	q := r.SQ.Update("components").
		Set("name", c.Name).
		Set("code", c.Code).
		Set("updated_at", now.Format(time.RFC3339)).
		Where(sq.Eq{"id": c.ID})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	c.UpdatedAt = now
	r.emit("store.changed", map[string]any{"table": "components"})
	return nil
}

func (r *ComponentRepo) Get(ctx context.Context, id string) (*domain.Component, error) {
	q := r.SQ.Select(componentColumns...).From("components").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	c, err := scanComponent(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *ComponentRepo) List(ctx context.Context) ([]*domain.Component, error) {
	return r.list(ctx, nil)
}

func (r *ComponentRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Component, error) {
	return r.list(ctx, sq.Eq{"session_id": sessionID})
}

func (r *ComponentRepo) list(ctx context.Context, cond sq.Eq) ([]*domain.Component, error) {
	q := r.SQ.Select(componentColumns...).From("components").OrderBy("updated_at DESC", "rowid DESC")
	if cond != nil {
		q = q.Where(cond)
	}
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*domain.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddVersion appends an immutable snapshot. Versions are never updated or
// deleted through this repository.
func (r *ComponentRepo) AddVersion(ctx context.Context, v *domain.ComponentVersion) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	q := r.SQ.Insert("component_versions").Columns("id", "component_id", "code", "created_at").
		Values(v.ID, v.ComponentID, v.Code, now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return mapErr(err)
	}
	v.CreatedAt = now
	r.emit("store.changed", map[string]any{"table": "component_versions"})
	return nil
}

func (r *ComponentRepo) ListVersions(ctx context.Context, componentID string) ([]*domain.ComponentVersion, error) {
	q := r.SQ.Select("id", "component_id", "code", "created_at").
		From("component_versions").
		Where(sq.Eq{"component_id": componentID}).
		OrderBy("created_at", "rowid")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*domain.ComponentVersion
	for rows.Next() {
		var v domain.ComponentVersion
		var created string
		if err := rows.Scan(&v.ID, &v.ComponentID, &v.Code, &created); err != nil {
			return nil, mapErr(err)
		}
		v.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &v)
	}
	return out, rows.Err()
}
