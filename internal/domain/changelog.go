package domain

import "time"

// Reconciliation decision types recorded in the change log.
const (
	ChangeCreated      = "created"
	ChangeUpdated      = "updated"
	ChangeConflict     = "conflict"
	ChangeIgnoredEmpty = "ignored_empty"
	ChangeTruncated    = "truncated"
)

// ChangeRecord is one append-only audit row. Key is the affected entry's key;
// ProposedKey and ResolvedKey differ only when a proposal was resolved to an
// existing entry under another name.
type ChangeRecord struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Key         string    `json:"key"`
	ProposedKey string    `json:"proposed_key"`
	ResolvedKey string    `json:"resolved_key"`
	OldEn       string    `json:"old_en"`
	NewEn       string    `json:"new_en"`
	CreatedAt   time.Time `json:"created_at"`
}
