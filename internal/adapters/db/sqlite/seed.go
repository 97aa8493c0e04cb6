package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"locsmith/internal/domain"
)

// storeVersion is recorded in the meta table at seed time.
const storeVersion = "1"

var seedEntries = []domain.LocalizationEntry{
	{
		Key: "app.title",
		En:  "Component Studio", Es: "Estudio de componentes", Fr: "Studio de composants",
		De: "Komponenten-Studio", Ja: "コンポーネントスタジオ", Zh: "组件工作室",
	},
	{
		Key: "common.button.save",
		En:  "Save", Es: "Guardar", Fr: "Enregistrer",
		De: "Speichern", Ja: "保存", Zh: "保存",
	},
	{
		Key: "common.button.cancel",
		En:  "Cancel", Es: "Cancelar", Fr: "Annuler",
		De: "Abbrechen", Ja: "キャンセル", Zh: "取消",
	},
	{
		Key: "common.status.loading",
		En:  "Loading...", Es: "Cargando...", Fr: "Chargement...",
		De: "Wird geladen...", Ja: "読み込み中...", Zh: "加载中...",
	},
}

// Seed inserts the default entry set and the store version marker into an
// empty store. Running it against a populated store is a no-op.
func Seed(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return mapErr(err)
	}
	if n > 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, e := range seedEntries {
			q := sq.Insert("entries").
				Columns(entryColumns...).
				Values(uuid.New().String(), e.Key, e.En, e.Es, e.Fr, e.De, e.Ja, e.Zh, now, now)
			sqlStr, args, _ := q.ToSql()
			if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
				return mapErr(err)
			}
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES('store_version', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, storeVersion); err != nil {
			return mapErr(err)
		}
		return nil
	})
}
