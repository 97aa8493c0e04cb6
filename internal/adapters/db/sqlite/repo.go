package sqlite

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"locsmith/internal/ports"
)

// Repo provides a base for Squirrel-based repositories.
type Repo struct {
	DB *sql.DB
	SQ sq.StatementBuilderType
	em ports.EventEmitter
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db, SQ: sq.StatementBuilder}
}

// SetEmitter attaches a change notifier; a nil emitter disables events.
func (r *Repo) SetEmitter(em ports.EventEmitter) { r.em = em }

func (r *Repo) emit(name string, payload any) {
	if r.em != nil {
		r.em.Emit(name, payload)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}
