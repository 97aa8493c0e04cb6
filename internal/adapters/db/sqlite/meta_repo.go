package sqlite

import (
	"context"
	"database/sql"
)

// MetaRepo is a process-wide key/value table for schema version and similar
// bookkeeping.
type MetaRepo struct{ *Repo }

func NewMetaRepo(db *sql.DB) *MetaRepo { return &MetaRepo{NewRepo(db)} }

// Get returns the stored value, or "" when the key is absent.
func (r *MetaRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", mapErr(err)
	}
	return v, nil
}

func (r *MetaRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return mapErr(err)
	}
	return nil
}
