package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"locsmith/internal/domain"
)

// CacheRepo memoizes provider translations keyed by source text, target
// locale, provider, and model.
type CacheRepo struct{ *Repo }

func NewCacheRepo(db *sql.DB) *CacheRepo { return &CacheRepo{NewRepo(db)} }

func (r *CacheRepo) Get(ctx context.Context, src, locale, provider, model string) (*domain.CacheEntry, error) {
	q := r.SQ.Select("source_text", "target_locale", "provider", "model", "translation", "created_at").
		From("cache").
		Where(sq.Eq{
			"source_text":   src,
			"target_locale": locale,
			"provider":      provider,
			"model":         model,
		}).
		Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var e domain.CacheEntry
	var created string
	if err := row.Scan(&e.SourceText, &e.TargetLocale, &e.Provider, &e.Model, &e.Translation, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, mapErr(err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &e, nil
}

func (r *CacheRepo) Put(ctx context.Context, entry *domain.CacheEntry) error {
	now := time.Now().UTC()
	q := r.SQ.Insert("cache").
		Columns("source_text", "target_locale", "provider", "model", "translation", "created_at").
		Values(entry.SourceText, entry.TargetLocale, entry.Provider, entry.Model, entry.Translation, now.Format(time.RFC3339)).
		Suffix("ON CONFLICT(source_text, target_locale, provider, model) DO UPDATE SET translation=excluded.translation")
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return mapErr(err)
	}
	return nil
}
