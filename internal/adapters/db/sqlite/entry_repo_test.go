package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locsmith/internal/domain"
)

func mustCreateEntry(t *testing.T, store *Store, key, en string) *domain.LocalizationEntry {
	t.Helper()
	e := &domain.LocalizationEntry{Key: key, En: en}
	require.NoError(t, store.Entries.Create(context.Background(), e))
	return e
}

func TestEntryRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	e := &domain.LocalizationEntry{Key: "nav.home.title", En: "Home", Es: "Inicio"}
	require.NoError(t, store.Entries.Create(ctx, e))
	require.NotEmpty(t, e.ID)
	require.False(t, e.CreatedAt.IsZero())

	got, err := store.Entries.Get(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "nav.home.title", got.Key)
	assert.Equal(t, "Home", got.En)
	assert.Equal(t, "Inicio", got.Es)

	byKey, err := store.Entries.GetByKey(ctx, "nav.home.title")
	require.NoError(t, err)
	require.NotNil(t, byKey)
	assert.Equal(t, e.ID, byKey.ID)
}

func TestEntryRepo_GetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	got, err := store.Entries.GetByKey(ctx, "no.such.key")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Entries.Get(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryRepo_CreateDuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	mustCreateEntry(t, store, "common.button.save", "Save")

	err := store.Entries.Create(ctx, &domain.LocalizationEntry{Key: "common.button.save", En: "Store"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestEntryRepo_GetByEnglishDeterministic(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	mustCreateEntry(t, store, "zebra.button.ok", "OK")
	mustCreateEntry(t, store, "alpha.button.ok", "OK")

	got, err := store.Entries.GetByEnglish(ctx, "OK")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alpha.button.ok", got.Key, "lowest key wins on ties")

	got, err = store.Entries.GetByEnglish(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryRepo_ListOrderedByKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	mustCreateEntry(t, store, "c.item.three", "Three")
	mustCreateEntry(t, store, "a.item.one", "One")
	mustCreateEntry(t, store, "b.item.two", "Two")

	list, err := store.Entries.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a.item.one", list[0].Key)
	assert.Equal(t, "b.item.two", list[1].Key)
	assert.Equal(t, "c.item.three", list[2].Key)
}

func TestEntryRepo_UpdateField(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	e := mustCreateEntry(t, store, "form.submit.label", "Submit")

	got, err := store.Entries.UpdateField(ctx, e.ID, "en", "Submit Form")
	require.NoError(t, err)
	assert.Equal(t, "Submit Form", got.En)

	got, err = store.Entries.UpdateField(ctx, e.ID, "ja", "送信")
	require.NoError(t, err)
	assert.Equal(t, "送信", got.Ja)

	got, err = store.Entries.UpdateField(ctx, e.ID, "key", "form.submit.button")
	require.NoError(t, err)
	assert.Equal(t, "form.submit.button", got.Key)
}

func TestEntryRepo_UpdateFieldErrors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	e := mustCreateEntry(t, store, "page.title.main", "Main")
	mustCreateEntry(t, store, "page.title.other", "Other")

	_, err := store.Entries.UpdateField(ctx, e.ID, "color", "red")
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = store.Entries.UpdateField(ctx, "no-such-id", "en", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Renaming onto a taken key trips the unique index.
	_, err = store.Entries.UpdateField(ctx, e.ID, "key", "page.title.other")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestEntryRepo_SetLocaleValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	e := mustCreateEntry(t, store, "cart.checkout.label", "Checkout")

	require.NoError(t, store.Entries.SetLocaleValue(ctx, e.Key, "fr", "Paiement"))
	got, err := store.Entries.GetByKey(ctx, e.Key)
	require.NoError(t, err)
	assert.Equal(t, "Paiement", got.Fr)

	err = store.Entries.SetLocaleValue(ctx, e.Key, "en", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidLocale, "source locale is not writable through SetLocaleValue")

	err = store.Entries.SetLocaleValue(ctx, e.Key, "pt", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidLocale)

	err = store.Entries.SetLocaleValue(ctx, "no.such.key", "fr", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryRepo_ClearTargetLocales(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	e := &domain.LocalizationEntry{
		Key: "hero.banner.text",
		En:  "Welcome", Es: "Bienvenido", Fr: "Bienvenue", De: "Willkommen", Ja: "ようこそ", Zh: "欢迎",
	}
	require.NoError(t, store.Entries.Create(ctx, e))

	require.NoError(t, store.Entries.ClearTargetLocales(ctx, e.ID))

	got, err := store.Entries.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", got.En, "source text survives the clear")
	for _, loc := range domain.TargetLocales {
		assert.Empty(t, got.Value(loc), "locale %s should be cleared", loc)
	}

	err = store.Entries.ClearTargetLocales(ctx, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryRepo_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	e := mustCreateEntry(t, store, "tmp.row.gone", "Gone")

	require.NoError(t, store.Entries.Delete(ctx, e.ID))

	got, err := store.Entries.GetByKey(ctx, e.Key)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = store.Entries.Delete(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryRepo_LocaleTable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	a := &domain.LocalizationEntry{Key: "list.row.first", En: "First", De: "Erste"}
	b := &domain.LocalizationEntry{Key: "list.row.second", En: "Second"}
	require.NoError(t, store.Entries.Create(ctx, a))
	require.NoError(t, store.Entries.Create(ctx, b))

	table, err := store.Entries.LocaleTable(ctx, "de")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"list.row.first": "Erste", "list.row.second": ""}, table)

	table, err = store.Entries.LocaleTable(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "First", table["list.row.first"])

	_, err = store.Entries.LocaleTable(ctx, "pt")
	assert.ErrorIs(t, err, domain.ErrInvalidLocale)
}
