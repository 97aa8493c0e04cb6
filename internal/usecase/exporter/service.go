package exporter

import (
	"context"
	"fmt"

	exreg "locsmith/internal/adapters/exporter/registry"
	"locsmith/internal/domain"
	"locsmith/internal/ports"
)

type Service struct {
	Entries ports.EntryRepository
	Reg     *exreg.Registry
}

func New(entries ports.EntryRepository, reg *exreg.Registry) *Service {
	return &Service{Entries: entries, Reg: reg}
}

type ExportArgs struct {
	Locale string
	Format string
}

type ExportResult struct {
	Filename string
	Content  []byte
}

// ExportLocale renders the full table for one locale, rows ordered by key.
func (s *Service) ExportLocale(ctx context.Context, a ExportArgs) (ExportResult, error) {
	if !domain.IsLocale(a.Locale) {
		return ExportResult{}, fmt.Errorf("%w: %s", domain.ErrInvalidLocale, a.Locale)
	}
	exp, ok := s.Reg.Get(a.Format)
	if !ok {
		return ExportResult{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, a.Format)
	}
	entries, err := s.Entries.List(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	rows := make([]ports.ExportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ports.ExportRow{Key: e.Key, Source: e.En, Text: e.Value(a.Locale)})
	}
	content, err := exp.Export(a.Locale, rows)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Filename: a.Locale + exp.Ext(), Content: content}, nil
}

func (s *Service) Formats() []string { return s.Reg.Formats() }
