package importer

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbsqlite "locsmith/internal/adapters/db/sqlite"
	csvparser "locsmith/internal/adapters/parser/csv"
	"locsmith/internal/adapters/parser/flatjson"
	parreg "locsmith/internal/adapters/parser/registry"
	"locsmith/internal/domain"
	"locsmith/internal/usecase/reconciler"
)

func newTestImporter(t *testing.T) (*Service, *dbsqlite.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := dbsqlite.Open(filepath.Join(t.TempDir(), "store.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := dbsqlite.NewStore(db)
	recon := reconciler.New(reconciler.Deps{Entries: store.Entries, ChangeLog: store.ChangeLog}, reconciler.DefaultConfig(), log)
	reg := parreg.New()
	reg.Register(flatjson.New())
	reg.Register(csvparser.New())
	return New(store.Entries, recon, reg), store
}

func TestImport_EnglishGoesThroughReconciler(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestImporter(t)
	e := &domain.LocalizationEntry{Key: "common.button.save", En: "Save"}
	require.NoError(t, store.Entries.Create(ctx, e))

	content := []byte(`{
		"common.button.save": "Save",
		"common.button.cancel": "Cancel",
		"$schema": "ignored"
	}`)
	res, err := svc.Import(ctx, ImportArgs{Locale: "en", Format: "json", Content: content})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 1, res.Reused)

	recs, err := store.ChangeLog.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1, "the import is audited like any merge")
	assert.Equal(t, domain.ChangeCreated, recs[0].Type)
	assert.Equal(t, "common.button.cancel", recs[0].Key)
}

func TestImport_TargetLocaleFillsKnownKeys(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestImporter(t)
	e := &domain.LocalizationEntry{Key: "common.button.save", En: "Save"}
	require.NoError(t, store.Entries.Create(ctx, e))

	content := []byte("key,translation\ncommon.button.save,Guardar\nunknown.stray.key,Perdido\n")
	res, err := svc.Import(ctx, ImportArgs{Locale: "es", Format: "csv", Content: content})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Filled)
	assert.Equal(t, 1, res.SkippedUnknown, "target imports never create entries")

	got, err := store.Entries.GetByKey(ctx, "common.button.save")
	require.NoError(t, err)
	assert.Equal(t, "Guardar", got.Es)
}

func TestImport_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestImporter(t)

	_, err := svc.Import(ctx, ImportArgs{Locale: "es", Format: "vdf", Content: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = svc.Import(ctx, ImportArgs{Locale: "pt", Format: "json", Content: []byte(`{"a.b.c":"x"}`)})
	assert.ErrorIs(t, err, domain.ErrInvalidLocale)

	_, err = svc.Import(ctx, ImportArgs{Locale: "en", Format: "json", Content: []byte(`not json`)})
	assert.Error(t, err)
}
