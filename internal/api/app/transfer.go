package app

import (
	"context"

	"locsmith/internal/usecase/exporter"
	"locsmith/internal/usecase/importer"
)

type TransferAPI struct {
	imp *importer.Service
	exp *exporter.Service
}

func NewTransferAPI(imp *importer.Service, exp *exporter.Service) *TransferAPI {
	return &TransferAPI{imp: imp, exp: exp}
}

func (a *TransferAPI) Import(ctx context.Context, locale, format string, content []byte) (importer.ImportResult, error) {
	return a.imp.Import(ctx, importer.ImportArgs{Locale: locale, Format: format, Content: content})
}

func (a *TransferAPI) Export(ctx context.Context, locale, format string) (exporter.ExportResult, error) {
	return a.exp.ExportLocale(ctx, exporter.ExportArgs{Locale: locale, Format: format})
}

func (a *TransferAPI) Formats() []string { return a.exp.Formats() }
