package sqlite

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locsmith/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "store.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(newTestDB(t))
}

type recordingEmitter struct {
	mu    sync.Mutex
	names []string
}

func (e *recordingEmitter) Emit(name string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.names = append(e.names, name)
}

func (e *recordingEmitter) count(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, got := range e.names {
		if got == name {
			n++
		}
	}
	return n
}

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")

	db, err := Open(path, testLogger())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not reapply migrations or lose data.
	db, err = Open(path, testLogger())
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_RecreatesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a sqlite file"), 0o644))

	db, err := Open(path, testLogger())
	require.NoError(t, err)
	defer db.Close()

	entries, err := NewEntryRepo(db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	quarantined, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, quarantined, 1, "damaged file should be moved aside")
}

func TestSeed_PopulatesEmptyStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, Seed(ctx, db))

	store := NewStore(db)
	entries, err := store.Entries.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, len(seedEntries))

	e, err := store.Entries.GetByKey(ctx, "common.button.save")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "Save", e.En)
	assert.Equal(t, "Guardar", e.Es)

	v, err := store.Meta.Get(ctx, "store_version")
	require.NoError(t, err)
	assert.Equal(t, storeVersion, v)
}

func TestSeed_NoopOnPopulatedStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	entries, err := NewEntryRepo(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, len(seedEntries))
}

func TestMetaRepo_GetSet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	v, err := store.Meta.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, store.Meta.Set(ctx, "last_session_id", "abc"))
	require.NoError(t, store.Meta.Set(ctx, "last_session_id", "def"))

	v, err = store.Meta.Get(ctx, "last_session_id")
	require.NoError(t, err)
	assert.Equal(t, "def", v)
}

func TestStore_EmitsChangeEvents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	em := &recordingEmitter{}
	store.SetEmitter(em)

	entry := &domain.LocalizationEntry{Key: "settings.title", En: "Settings"}
	require.NoError(t, store.Entries.Create(ctx, entry))
	assert.Equal(t, 1, em.count("store.changed"))

	_, err := store.Entries.UpdateField(ctx, entry.ID, "es", "Ajustes")
	require.NoError(t, err)
	assert.Equal(t, 2, em.count("store.changed"))
	assert.Equal(t, 1, em.count("entry.updated"))

	// Key renames carry no locale payload, only the general change event.
	_, err = store.Entries.UpdateField(ctx, entry.ID, "key", "settings.header")
	require.NoError(t, err)
	assert.Equal(t, 3, em.count("store.changed"))
	assert.Equal(t, 1, em.count("entry.updated"))
}
