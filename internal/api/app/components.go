package app

import (
	"context"

	"locsmith/internal/domain"
	"locsmith/internal/usecase/catalog"
)

type ComponentAPI struct {
	catalog  *catalog.Service
	sessions *SessionAPI
}

func NewComponentAPI(c *catalog.Service, sessions *SessionAPI) *ComponentAPI {
	return &ComponentAPI{catalog: c, sessions: sessions}
}

type SaveComponentRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Save stores the component under the active session. An empty ID inserts,
// a known ID updates; either way a version row is appended.
func (a *ComponentAPI) Save(ctx context.Context, req SaveComponentRequest) (*domain.Component, error) {
	return a.catalog.SaveComponent(ctx, a.sessions.Context(), catalog.SaveArgs{
		ID:   req.ID,
		Name: req.Name,
		Code: req.Code,
	})
}

// List returns components, deduplicated by code. sessionID "current" resolves
// to the active session; empty lists across sessions.
func (a *ComponentAPI) List(ctx context.Context, sessionID string) ([]*domain.Component, error) {
	if sessionID == "current" {
		sessionID = a.sessions.Context().SessionID
	}
	return a.catalog.ListComponents(ctx, sessionID)
}

func (a *ComponentAPI) Versions(ctx context.Context, componentID string) ([]*domain.ComponentVersion, error) {
	return a.catalog.Versions(ctx, componentID)
}
