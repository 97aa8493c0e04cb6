package app

import (
	"context"
	"sync"

	"locsmith/internal/domain"
	"locsmith/internal/usecase/catalog"
)

// SessionAPI owns the active session context. It is resolved once at startup
// and replaced only by an explicit switch.
type SessionAPI struct {
	catalog *catalog.Service

	mu      sync.RWMutex
	current domain.SessionContext
}

func NewSessionAPI(c *catalog.Service, current domain.SessionContext) *SessionAPI {
	return &SessionAPI{catalog: c, current: current}
}

// Context returns the active session context for other calls to thread
// through.
func (a *SessionAPI) Context() domain.SessionContext {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

func (a *SessionAPI) Current(ctx context.Context) (*domain.Session, error) {
	return a.catalog.CurrentSession(ctx, a.Context())
}

func (a *SessionAPI) List(ctx context.Context) ([]*domain.Session, error) {
	return a.catalog.Sessions(ctx)
}

// Switch activates the named session, creating it on first use.
func (a *SessionAPI) Switch(ctx context.Context, name string) (*domain.Session, error) {
	sctx, err := a.catalog.SwitchSession(ctx, name)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.current = sctx
	a.mu.Unlock()
	return a.catalog.CurrentSession(ctx, sctx)
}
