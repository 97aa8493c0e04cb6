package sqlite

import (
	"database/sql"

	"locsmith/internal/ports"
)

// Store bundles the repositories backed by one database handle.
type Store struct {
	Entries    *EntryRepo
	Sessions   *SessionRepo
	Components *ComponentRepo
	ChangeLog  *ChangeLogRepo
	Batches    *BatchRepo
	Cache      *CacheRepo
	Meta       *MetaRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		Entries:    NewEntryRepo(db),
		Sessions:   NewSessionRepo(db),
		Components: NewComponentRepo(db),
		ChangeLog:  NewChangeLogRepo(db),
		Batches:    NewBatchRepo(db),
		Cache:      NewCacheRepo(db),
		Meta:       NewMetaRepo(db),
	}
}

// SetEmitter attaches the change notifier to the repositories that hold
// user-visible localization state. Batch runs and the translation cache are
// operational bookkeeping and stay silent.
func (s *Store) SetEmitter(em ports.EventEmitter) {
	s.Entries.SetEmitter(em)
	s.Sessions.SetEmitter(em)
	s.Components.SetEmitter(em)
	s.ChangeLog.SetEmitter(em)
}
