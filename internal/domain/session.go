package domain

import "time"

type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionContext pins component writes to one session. It is resolved once at
// startup from the persisted last-used id and threaded through calls
// explicitly instead of living in a process-wide pointer.
type SessionContext struct {
	SessionID string `json:"session_id"`
}
