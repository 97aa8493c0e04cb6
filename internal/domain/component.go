package domain

import "time"

// Component is a saved generated component. Code is never empty.
type Component struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComponentVersion is an immutable code snapshot, appended on every save.
type ComponentVersion struct {
	ID          string    `json:"id"`
	ComponentID string    `json:"component_id"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"created_at"`
}
