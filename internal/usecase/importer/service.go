package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	parreg "locsmith/internal/adapters/parser/registry"
	"locsmith/internal/domain"
	"locsmith/internal/ports"
	"locsmith/internal/usecase/reconciler"
)

type Service struct {
	Entries ports.EntryRepository
	Recon   *reconciler.Service
	Parsers *parreg.Registry
}

func New(entries ports.EntryRepository, recon *reconciler.Service, parsers *parreg.Registry) *Service {
	return &Service{Entries: entries, Recon: recon, Parsers: parsers}
}

type ImportArgs struct {
	Locale  string
	Format  string
	Content []byte
}

type ImportResult struct {
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Reused         int `json:"reused"`
	Filled         int `json:"filled"`
	SkippedUnknown int `json:"skippedUnknown"`
	SkippedInvalid int `json:"skippedInvalid"`
}

// Import parses the uploaded table and merges it. English tables go through
// the reconciler so the change log records every decision; target-locale
// tables only fill values for keys that already exist.
func (s *Service) Import(ctx context.Context, in ImportArgs) (ImportResult, error) {
	parser, ok := s.Parsers.Get(in.Format)
	if !ok {
		return ImportResult{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, in.Format)
	}
	pairs, err := parser.Parse(in.Content)
	if err != nil {
		return ImportResult{}, err
	}

	if in.Locale == domain.SourceLocale {
		res, err := s.Recon.Apply(ctx, reconciler.ProposalFromMap(pairs))
		if err != nil {
			return ImportResult{}, err
		}
		return ImportResult{
			Created:        res.Created,
			Updated:        res.Updated,
			Reused:         len(res.Reused),
			SkippedInvalid: res.SkippedInvalid,
		}, nil
	}

	if !domain.IsTargetLocale(in.Locale) {
		return ImportResult{}, fmt.Errorf("%w: %s", domain.ErrInvalidLocale, in.Locale)
	}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out ImportResult
	for _, key := range keys {
		value := strings.TrimSpace(pairs[key])
		if value == "" {
			continue
		}
		entry, err := s.Entries.GetByKey(ctx, key)
		if err != nil {
			return out, err
		}
		if entry == nil {
			out.SkippedUnknown++
			continue
		}
		if err := s.Entries.SetLocaleValue(ctx, key, in.Locale, value); err != nil {
			return out, err
		}
		out.Filled++
	}
	return out, nil
}
