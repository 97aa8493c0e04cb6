package app

import (
	"context"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
)

type ChangeLogAPI struct {
	repo ports.ChangeLogRepository
}

func NewChangeLogAPI(repo ports.ChangeLogRepository) *ChangeLogAPI {
	return &ChangeLogAPI{repo: repo}
}

func (a *ChangeLogAPI) List(ctx context.Context, limit int) ([]*domain.ChangeRecord, error) {
	return a.repo.List(ctx, limit)
}

func (a *ChangeLogAPI) Clear(ctx context.Context) error {
	return a.repo.Clear(ctx)
}
