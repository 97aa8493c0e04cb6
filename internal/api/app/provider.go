package app

import (
	"context"
	"fmt"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
)

// ProviderAPI exposes the configured translation backend, which may be absent.
type ProviderAPI struct {
	provider ports.Provider
}

func NewProviderAPI(provider ports.Provider) *ProviderAPI {
	return &ProviderAPI{provider: provider}
}

type ProviderInfo struct {
	Configured bool   `json:"configured"`
	Name       string `json:"name,omitempty"`
	Model      string `json:"model,omitempty"`
}

func (a *ProviderAPI) Info() ProviderInfo {
	if a.provider == nil {
		return ProviderInfo{}
	}
	return ProviderInfo{Configured: true, Name: a.provider.Name(), Model: a.provider.Model()}
}

func (a *ProviderAPI) Test(ctx context.Context) error {
	if a.provider == nil {
		return fmt.Errorf("%w: no provider configured", domain.ErrNotFound)
	}
	if err := a.provider.Test(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	return nil
}
