package ports

import (
	"context"
)

// TranslationRequest asks for one locale's worth of values.
type TranslationRequest struct {
	TargetLocale string
	Entries      map[string]string // key -> English source
}

type TranslationResponse struct {
	Translations map[string]string // key -> translated text
}

// Provider is a single machine-translation backend. A non-success result
// means "no translations for this locale this round"; callers must not
// retry synchronously.
type Provider interface {
	Translate(ctx context.Context, req TranslationRequest) (TranslationResponse, error)
	Name() string
	Model() string
	Test(ctx context.Context) error
}
