package ports

import (
	"context"

	"locsmith/internal/domain"
)

type EntryRepository interface {
	Create(ctx context.Context, e *domain.LocalizationEntry) error
	Get(ctx context.Context, id string) (*domain.LocalizationEntry, error)
	GetByKey(ctx context.Context, key string) (*domain.LocalizationEntry, error)
	GetByEnglish(ctx context.Context, text string) (*domain.LocalizationEntry, error)
	List(ctx context.Context) ([]*domain.LocalizationEntry, error)
	UpdateField(ctx context.Context, id, field, value string) (*domain.LocalizationEntry, error)
	SetLocaleValue(ctx context.Context, key, locale, value string) error
	ClearTargetLocales(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	LocaleTable(ctx context.Context, locale string) (map[string]string, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	GetByName(ctx context.Context, name string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
}

type ComponentRepository interface {
	Create(ctx context.Context, c *domain.Component) error
	Update(ctx context.Context, c *domain.Component) error
	Get(ctx context.Context, id string) (*domain.Component, error)
	List(ctx context.Context) ([]*domain.Component, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Component, error)
	AddVersion(ctx context.Context, v *domain.ComponentVersion) error
	ListVersions(ctx context.Context, componentID string) ([]*domain.ComponentVersion, error)
}

type ChangeLogRepository interface {
	Append(ctx context.Context, rec *domain.ChangeRecord) error
	List(ctx context.Context, limit int) ([]*domain.ChangeRecord, error)
	Clear(ctx context.Context) error
}

type BatchRepository interface {
	Create(ctx context.Context, b *domain.BatchRun) error
	Finish(ctx context.Context, b *domain.BatchRun) error
	List(ctx context.Context, limit int) ([]*domain.BatchRun, error)
}

type CacheRepository interface {
	Get(ctx context.Context, src, locale, provider, model string) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
}

type MetaRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
