package app

import (
	"context"
	"fmt"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
	"locsmith/internal/usecase/extractor"
	"locsmith/internal/usecase/reconciler"
)

type EntryAPI struct {
	repo  ports.EntryRepository
	recon *reconciler.Service
}

func NewEntryAPI(repo ports.EntryRepository, recon *reconciler.Service) *EntryAPI {
	return &EntryAPI{repo: repo, recon: recon}
}

func (a *EntryAPI) List(ctx context.Context) ([]*domain.LocalizationEntry, error) {
	return a.repo.List(ctx)
}

func (a *EntryAPI) GetByKey(ctx context.Context, key string) (*domain.LocalizationEntry, error) {
	e, err := a.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: key %s", domain.ErrNotFound, key)
	}
	return e, nil
}

type CreateEntryRequest struct {
	Key string `json:"key"`
	En  string `json:"en"`
	Es  string `json:"es"`
	Fr  string `json:"fr"`
	De  string `json:"de"`
	Ja  string `json:"ja"`
	Zh  string `json:"zh"`
}

func (a *EntryAPI) Create(ctx context.Context, req CreateEntryRequest) (*domain.LocalizationEntry, error) {
	if !extractor.IsValidKey(req.Key) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidKeyFormat, req.Key)
	}
	e := &domain.LocalizationEntry{
		Key: req.Key,
		En:  req.En, Es: req.Es, Fr: req.Fr, De: req.De, Ja: req.Ja, Zh: req.Zh,
	}
	if err := a.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateField writes a single field of one entry. Key renames are validated
// for format and uniqueness before any write happens.
func (a *EntryAPI) UpdateField(ctx context.Context, id, field, value string) (*domain.LocalizationEntry, error) {
	if field == "key" {
		if err := a.recon.ValidateRename(ctx, id, value); err != nil {
			return nil, err
		}
	}
	return a.repo.UpdateField(ctx, id, field, value)
}

func (a *EntryAPI) Delete(ctx context.Context, id string) error {
	return a.repo.Delete(ctx, id)
}

func (a *EntryAPI) LocaleTable(ctx context.Context, locale string) (map[string]string, error) {
	return a.repo.LocaleTable(ctx, locale)
}

type LocaleInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Source bool   `json:"source"`
}

func (a *EntryAPI) Locales() []LocaleInfo {
	out := make([]LocaleInfo, 0, len(domain.TargetLocales)+1)
	for _, code := range domain.AllLocales() {
		out = append(out, LocaleInfo{
			Code:   code,
			Name:   domain.LocaleName(code),
			Source: code == domain.SourceLocale,
		})
	}
	return out
}
