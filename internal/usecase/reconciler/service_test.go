package reconciler

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbsqlite "locsmith/internal/adapters/db/sqlite"
	"locsmith/internal/domain"
)

func newTestService(t *testing.T) (*Service, *dbsqlite.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := dbsqlite.Open(filepath.Join(t.TempDir(), "store.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := dbsqlite.NewStore(db)
	svc := New(Deps{Entries: store.Entries, ChangeLog: store.ChangeLog}, DefaultConfig(), log)
	return svc, store
}

func changeLog(t *testing.T, store *dbsqlite.Store) []*domain.ChangeRecord {
	t.Helper()
	recs, err := store.ChangeLog.List(context.Background(), 0)
	require.NoError(t, err)
	return recs
}

func TestApply_CreatesNewEntry(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	res, err := svc.Apply(ctx, ProposalFromMap(map[string]string{"nav.home.title": "Home"}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, []string{"nav.home.title"}, res.NeedsTranslation,
		"a brand-new key has no translations yet")

	e, err := store.Entries.GetByKey(ctx, "nav.home.title")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "Home", e.En)
	for _, loc := range domain.TargetLocales {
		assert.Empty(t, e.Value(loc))
	}

	recs := changeLog(t, store)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.ChangeCreated, recs[0].Type)
	assert.Equal(t, "nav.home.title", recs[0].Key)
	assert.Equal(t, "Home", recs[0].NewEn)
}

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	proposal := ProposalFromMap(map[string]string{"common.button.save": "Save"})

	first, err := svc.Apply(ctx, proposal)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)
	logLen := len(changeLog(t, store))

	second, err := svc.Apply(ctx, proposal)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, map[string]string{"common.button.save": "Save"}, second.Reused)
	assert.Empty(t, second.NeedsTranslation)
	assert.Len(t, changeLog(t, store), logLen, "a pure reuse adds no log rows")
}

func TestApply_UpdateSignificantClearsLocales(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	e := &domain.LocalizationEntry{Key: "component.button.text", En: "Save", Es: "Guardar", Fr: "Enregistrer"}
	require.NoError(t, store.Entries.Create(ctx, e))

	res, err := svc.Apply(ctx, ProposalFromMap(map[string]string{"component.button.text": "Submit"}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, []string{"component.button.text"}, res.NeedsTranslation,
		"Save/Submit share no words, so the rewrite invalidates the translations")

	got, err := store.Entries.GetByKey(ctx, "component.button.text")
	require.NoError(t, err)
	assert.Equal(t, "Submit", got.En)
	assert.Empty(t, got.Es, "stale translations are cleared for refilling")
	assert.Empty(t, got.Fr)

	recs := changeLog(t, store)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.ChangeUpdated, recs[0].Type)
	assert.Equal(t, "Save", recs[0].OldEn)
	assert.Equal(t, "Submit", recs[0].NewEn)
}

func TestApply_UpdateTrivialKeepsLocales(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	e := &domain.LocalizationEntry{Key: "form.submit.label", En: "Submit", Es: "Enviar"}
	require.NoError(t, store.Entries.Create(ctx, e))

	// Case-only edit: identical length, word overlap 1.0.
	res, err := svc.Apply(ctx, ProposalFromMap(map[string]string{"form.submit.label": "submit"}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Empty(t, res.NeedsTranslation)

	got, err := store.Entries.GetByKey(ctx, "form.submit.label")
	require.NoError(t, err)
	assert.Equal(t, "submit", got.En)
	assert.Equal(t, "Enviar", got.Es, "trivial edits keep existing translations")
}

func TestApply_IgnoredEmpty(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	res, err := svc.Apply(ctx, ProposalFromMap(map[string]string{"empty.value.key": "   "}))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Empty(t, res.NeedsTranslation)

	e, err := store.Entries.GetByKey(ctx, "empty.value.key")
	require.NoError(t, err)
	assert.Nil(t, e)

	recs := changeLog(t, store)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.ChangeIgnoredEmpty, recs[0].Type)
	assert.Equal(t, "empty.value.key", recs[0].ProposedKey)
}

func TestApply_TruncatesLongValues(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	long := strings.Repeat("x", 1200)

	res, err := svc.Apply(ctx, ProposalFromMap(map[string]string{"legal.terms.body": long}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	e, err := store.Entries.GetByKey(ctx, "legal.terms.body")
	require.NoError(t, err)
	assert.Len(t, e.En, 1000)

	var types []string
	for _, rec := range changeLog(t, store) {
		types = append(types, rec.Type)
	}
	assert.Contains(t, types, domain.ChangeTruncated)
	assert.Contains(t, types, domain.ChangeCreated)
}

func TestApply_ConflictResolvesToExistingEntry(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	e := &domain.LocalizationEntry{Key: "common.button.save", En: "Save"}
	require.NoError(t, store.Entries.Create(ctx, e))

	res, err := svc.Apply(ctx, ProposalFromMap(map[string]string{"editor.action.save": "Save"}))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, map[string]string{"common.button.save": "Save"}, res.Reused)
	assert.Empty(t, res.NeedsTranslation)

	dup, err := store.Entries.GetByKey(ctx, "editor.action.save")
	require.NoError(t, err)
	assert.Nil(t, dup, "no twin entry for identical English")

	recs := changeLog(t, store)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.ChangeConflict, recs[0].Type)
	assert.Equal(t, "editor.action.save", recs[0].ProposedKey)
	assert.Equal(t, "common.button.save", recs[0].ResolvedKey)
}

func TestApply_SkipsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	res, err := svc.Apply(ctx, Proposal{
		Keys: []string{"NoDots", "ok.valid.key", "Has Space.x"},
		Pairs: map[string]string{
			"NoDots":       "A",
			"ok.valid.key": "B",
			"Has Space.x":  "C",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.SkippedInvalid)
	assert.Equal(t, 1, res.Created)
	assert.Len(t, changeLog(t, store), 1)
}

func TestApply_PreservesProposalOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	res, err := svc.Apply(ctx, Proposal{
		Keys: []string{"z.last.key", "a.first.key", "m.middle.key"},
		Pairs: map[string]string{
			"z.last.key":   "Z",
			"a.first.key":  "A",
			"m.middle.key": "M",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"z.last.key", "a.first.key", "m.middle.key"}, res.NeedsTranslation)
}

func TestSignificant(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		oldText string
		newText string
		want    bool
	}{
		{"rewrite beyond length ratio", "Submit", "Submit Form Now", true},
		{"case only edit", "Submit", "submit", false},
		{"empty to non-empty", "", "Hello", true},
		{"non-empty to empty", "Hello", "", true},
		{"both empty", "", "", false},
		{"whitespace padding trips length only", "a b", "a   b", true},
		{"disjoint words same length", "Save", "Quit", true},
		{"half overlap on the boundary", "alpha beta", "alpha beta gamma delta", true},
		{"small wording tweak", "Delete selected items", "Delete the selected items", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Significant(tt.oldText, tt.newText))
		})
	}
}

func TestValidateRename(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	a := &domain.LocalizationEntry{Key: "page.title.main", En: "Main"}
	b := &domain.LocalizationEntry{Key: "page.title.other", En: "Other"}
	require.NoError(t, store.Entries.Create(ctx, a))
	require.NoError(t, store.Entries.Create(ctx, b))

	assert.NoError(t, svc.ValidateRename(ctx, a.ID, "page.title.renamed"))
	assert.NoError(t, svc.ValidateRename(ctx, a.ID, "page.title.main"), "renaming to itself is fine")

	err := svc.ValidateRename(ctx, a.ID, "Bad Key")
	assert.ErrorIs(t, err, domain.ErrInvalidKeyFormat)

	err = svc.ValidateRename(ctx, a.ID, "page.title.other")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}
