package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locsmith/internal/domain"
)

func TestChangeLogRepo_AppendListClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		rec := &domain.ChangeRecord{
			Type:  domain.ChangeCreated,
			Key:   fmt.Sprintf("audit.row.key%d", i),
			NewEn: fmt.Sprintf("Value %d", i),
		}
		require.NoError(t, store.ChangeLog.Append(ctx, rec))
		require.NotEmpty(t, rec.ID)
	}

	recs, err := store.ChangeLog.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "audit.row.key2", recs[0].Key, "newest first")

	recs, err = store.ChangeLog.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	require.NoError(t, store.ChangeLog.Clear(ctx))
	recs, err = store.ChangeLog.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestBatchRepo_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	b := &domain.BatchRun{}
	require.NoError(t, store.Batches.Create(ctx, b))
	require.NotEmpty(t, b.ID)
	assert.Equal(t, domain.BatchRunning, b.Status)

	fin := &domain.BatchRun{
		ID:               b.ID,
		Status:           domain.BatchPartial,
		CreatedKeys:      2,
		UpdatedKeys:      1,
		TranslatedValues: 8,
		FailedLocales:    "fr",
	}
	require.NoError(t, store.Batches.Finish(ctx, fin))
	require.NotNil(t, fin.FinishedAt)

	runs, err := store.Batches.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.BatchPartial, runs[0].Status)
	assert.Equal(t, 2, runs[0].CreatedKeys)
	assert.Equal(t, "fr", runs[0].FailedLocales)
	require.NotNil(t, runs[0].FinishedAt)

	err = store.Batches.Finish(ctx, &domain.BatchRun{ID: "no-such-run", Status: domain.BatchDone})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCacheRepo_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	entry := &domain.CacheEntry{
		SourceText: "Save", TargetLocale: "es", Provider: "fake", Model: "m1", Translation: "Guardar",
	}
	require.NoError(t, store.Cache.Put(ctx, entry))

	got, err := store.Cache.Get(ctx, "Save", "es", "fake", "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Guardar", got.Translation)

	entry.Translation = "Guardar cambios"
	require.NoError(t, store.Cache.Put(ctx, entry))
	got, err = store.Cache.Get(ctx, "Save", "es", "fake", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Guardar cambios", got.Translation)

	// A different model is a different cache slot.
	got, err = store.Cache.Get(ctx, "Save", "es", "fake", "m2")
	require.NoError(t, err)
	assert.Nil(t, got)
}
