package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"locsmith/internal/domain"
)

var entryColumns = []string{"id", "key", "en", "es", "fr", "de", "ja", "zh", "created_at", "updated_at"}

// entryFields is the set of columns updateEntryField may touch.
var entryFields = map[string]bool{
	"key": true, "en": true, "es": true, "fr": true, "de": true, "ja": true, "zh": true,
}

type EntryRepo struct{ *Repo }

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{NewRepo(db)} }

func scanEntry(row rowScanner) (*domain.LocalizationEntry, error) {
	var e domain.LocalizationEntry
	var created, updated string
	if err := row.Scan(&e.ID, &e.Key, &e.En, &e.Es, &e.Fr, &e.De, &e.Ja, &e.Zh, &created, &updated); err != nil {
		return nil, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &e, nil
}

func (r *EntryRepo) Create(ctx context.Context, e *domain.LocalizationEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	q := r.SQ.Insert("entries").
		Columns(entryColumns...).
		Values(e.ID, e.Key, e.En, e.Es, e.Fr, e.De, e.Ja, e.Zh, now.Format(time.RFC3339), now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return mapErr(err)
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	r.emit("store.changed", map[string]any{"table": "entries"})
	return nil
}

func (r *EntryRepo) Get(ctx context.Context, id string) (*domain.LocalizationEntry, error) {
	return r.getWhere(ctx, sq.Eq{"id": id})
}

func (r *EntryRepo) GetByKey(ctx context.Context, key string) (*domain.LocalizationEntry, error) {
	return r.getWhere(ctx, sq.Eq{"key": key})
}

// GetByEnglish returns the first entry whose source text matches, ordered by
// key so repeated lookups resolve deterministically.
func (r *EntryRepo) GetByEnglish(ctx context.Context, text string) (*domain.LocalizationEntry, error) {
	return r.getWhere(ctx, sq.Eq{"en": text})
}

func (r *EntryRepo) getWhere(ctx context.Context, cond sq.Eq) (*domain.LocalizationEntry, error) {
	q := r.SQ.Select(entryColumns...).From("entries").Where(cond).OrderBy("key").Limit(1)
	sqlStr, args, _ := q.ToSql()
	e, err := scanEntry(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *EntryRepo) List(ctx context.Context) ([]*domain.LocalizationEntry, error) {
	q := r.SQ.Select(entryColumns...).From("entries").OrderBy("key")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	var out []*domain.LocalizationEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateField writes one column of one entry. field is restricted to the
// locale set plus "key"; key renames rely on the unique index for collision
// detection.
func (r *EntryRepo) UpdateField(ctx context.Context, id, field, value string) (*domain.LocalizationEntry, error) {
	if !entryFields[field] {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidField, field)
	}
	now := time.Now().UTC()
	q := r.SQ.Update("entries").Set(field, value).Set("updated_at", now.Format(time.RFC3339)).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	e, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if field != "key" {
		r.emit("entry.updated", map[string]any{"key": e.Key, "locale": field, "value": value})
	}
	r.emit("store.changed", map[string]any{"table": "entries"})
	return e, nil
}

// SetLocaleValue writes one translated value addressed by key.
func (r *EntryRepo) SetLocaleValue(ctx context.Context, key, locale, value string) error {
	if !domain.IsTargetLocale(locale) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidLocale, locale)
	}
	now := time.Now().UTC()
	q := r.SQ.Update("entries").Set(locale, value).Set("updated_at", now.Format(time.RFC3339)).Where(sq.Eq{"key": key})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	r.emit("entry.updated", map[string]any{"key": key, "locale": locale, "value": value})
	r.emit("store.changed", map[string]any{"table": "entries"})
	return nil
}

// ClearTargetLocales blanks every non-English field of an entry so the next
// translation pass refills them.
func (r *EntryRepo) ClearTargetLocales(ctx context.Context, id string) error {
	now := time.Now().UTC()
	q := r.SQ.Update("entries")
	for _, loc := range domain.TargetLocales {
		q = q.Set(loc, "")
	}
	q = q.Set("updated_at", now.Format(time.RFC3339)).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	r.emit("store.changed", map[string]any{"table": "entries"})
	return nil
}

func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	q := r.SQ.Delete("entries").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	r.emit("store.changed", map[string]any{"table": "entries"})
	return nil
}

// LocaleTable returns key -> value for one locale across all entries.
func (r *EntryRepo) LocaleTable(ctx context.Context, locale string) (map[string]string, error) {
	if !domain.IsLocale(locale) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidLocale, locale)
	}
	q := r.SQ.Select("key", locale).From("entries").OrderBy("key")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, mapErr(err)
		}
		out[k] = v
	}
	return out, rows.Err()
}
