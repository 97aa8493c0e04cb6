package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
	"locsmith/internal/usecase/extractor"
)

const lastSessionKey = "last_session_id"

// Stager receives the extraction of freshly saved component code.
type Stager interface {
	StageExtraction(res *extractor.Result)
}

type Deps struct {
	Components ports.ComponentRepository
	Sessions   ports.SessionRepository
	Meta       ports.MetaRepository
}

// Service manages work sessions and the components saved under them.
type Service struct {
	d      Deps
	stager Stager
	log    *slog.Logger
}

func New(d Deps, stager Stager, log *slog.Logger) *Service {
	return &Service{d: d, stager: stager, log: log}
}

type SaveArgs struct {
	ID   string
	Name string
	Code string
}

// SaveComponent inserts or updates a component and appends a version row
// either way, so the history holds every saved revision. The saved code is
// extracted and staged for the next sync batch.
func (s *Service) SaveComponent(ctx context.Context, sctx domain.SessionContext, args SaveArgs) (*domain.Component, error) {
	if args.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidField)
	}
	if args.Code == "" {
		return nil, fmt.Errorf("%w: code must not be empty", domain.ErrInvalidField)
	}

	var c *domain.Component
	if args.ID != "" {
		existing, err := s.d.Components.Get(ctx, args.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: component %s", domain.ErrNotFound, args.ID)
		}
		existing.Name = args.Name
		existing.Code = args.Code
		if err := s.d.Components.Update(ctx, existing); err != nil {
			return nil, err
		}
		c = existing
	} else {
		c = &domain.Component{SessionID: sctx.SessionID, Name: args.Name, Code: args.Code}
		if err := s.d.Components.Create(ctx, c); err != nil {
			return nil, err
		}
	}

	if err := s.d.Components.AddVersion(ctx, &domain.ComponentVersion{ComponentID: c.ID, Code: args.Code}); err != nil {
		return nil, err
	}

	if s.stager != nil {
		s.stager.StageExtraction(extractor.Extract(args.Code))
	}
	return c, nil
}

// ListComponents returns components newest first, collapsing exact duplicate
// code to the most recently updated copy. An empty sessionID lists across
// sessions.
func (s *Service) ListComponents(ctx context.Context, sessionID string) ([]*domain.Component, error) {
	var (
		list []*domain.Component
		err  error
	)
	if sessionID == "" {
		list, err = s.d.Components.List(ctx)
	} else {
		list, err = s.d.Components.ListBySession(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := make([]*domain.Component, 0, len(list))
	for _, c := range list {
		sum := sha256.Sum256([]byte(c.Code))
		h := hex.EncodeToString(sum[:])
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, c)
	}
	return out, nil
}

// Versions returns the saved revisions of a component, oldest first.
func (s *Service) Versions(ctx context.Context, componentID string) ([]*domain.ComponentVersion, error) {
	return s.d.Components.ListVersions(ctx, componentID)
}

// StartupSession resolves the session context once at startup: the persisted
// last-used session when it still exists, a fresh one otherwise.
func (s *Service) StartupSession(ctx context.Context) (domain.SessionContext, error) {
	id, err := s.d.Meta.Get(ctx, lastSessionKey)
	if err != nil {
		return domain.SessionContext{}, err
	}
	if id != "" {
		sess, err := s.d.Sessions.Get(ctx, id)
		if err != nil {
			return domain.SessionContext{}, err
		}
		if sess != nil {
			return domain.SessionContext{SessionID: sess.ID}, nil
		}
		s.log.Warn("persisted session missing, starting a new one", "sessionId", id)
	}
	return s.newSession(ctx, defaultSessionName())
}

// SwitchSession activates the named session, creating it on first use, and
// persists the choice for the next startup.
func (s *Service) SwitchSession(ctx context.Context, name string) (domain.SessionContext, error) {
	if name == "" {
		return domain.SessionContext{}, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidField)
	}
	sess, err := s.d.Sessions.GetByName(ctx, name)
	if err != nil {
		return domain.SessionContext{}, err
	}
	if sess == nil {
		return s.newSession(ctx, name)
	}
	if err := s.d.Meta.Set(ctx, lastSessionKey, sess.ID); err != nil {
		return domain.SessionContext{}, err
	}
	return domain.SessionContext{SessionID: sess.ID}, nil
}

func (s *Service) Sessions(ctx context.Context) ([]*domain.Session, error) {
	return s.d.Sessions.List(ctx)
}

func (s *Service) CurrentSession(ctx context.Context, sctx domain.SessionContext) (*domain.Session, error) {
	sess, err := s.d.Sessions.Get(ctx, sctx.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, sctx.SessionID)
	}
	return sess, nil
}

func (s *Service) newSession(ctx context.Context, name string) (domain.SessionContext, error) {
	sess := &domain.Session{Name: name}
	if err := s.d.Sessions.Create(ctx, sess); err != nil {
		return domain.SessionContext{}, err
	}
	if err := s.d.Meta.Set(ctx, lastSessionKey, sess.ID); err != nil {
		return domain.SessionContext{}, err
	}
	s.log.Info("session started", "sessionId", sess.ID, "name", name)
	return domain.SessionContext{SessionID: sess.ID}, nil
}

func defaultSessionName() string {
	return "Session " + time.Now().UTC().Format("2006-01-02 15:04")
}
