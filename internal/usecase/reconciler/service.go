package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
	"locsmith/internal/usecase/extractor"
)

// Config holds the merge limits and staleness thresholds. The thresholds are
// product decisions, so they stay injectable rather than hard-coded.
type Config struct {
	MaxEnglishLength int
	LengthDeltaRatio float64
	MinWordOverlap   float64
}

func DefaultConfig() Config {
	return Config{MaxEnglishLength: 1000, LengthDeltaRatio: 0.20, MinWordOverlap: 0.50}
}

type Deps struct {
	Entries   ports.EntryRepository
	ChangeLog ports.ChangeLogRepository
}

// Service merges proposed key/English pairs into the store, recording every
// decision in the change log.
type Service struct {
	d   Deps
	cfg Config
	log *slog.Logger
}

func New(d Deps, cfg Config, log *slog.Logger) *Service {
	if cfg.MaxEnglishLength <= 0 {
		cfg.MaxEnglishLength = 1000
	}
	return &Service{d: d, cfg: cfg, log: log}
}

// Proposal is an ordered key -> English mapping to merge.
type Proposal struct {
	Keys  []string
	Pairs map[string]string
}

// ProposalFromMap orders the pairs by key so repeated merges of the same map
// produce an identical change log.
func ProposalFromMap(m map[string]string) Proposal {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Proposal{Keys: keys, Pairs: m}
}

func ProposalFromExtraction(res *extractor.Result) Proposal {
	if res == nil {
		return Proposal{}
	}
	return Proposal{Keys: res.Order, Pairs: res.Pairs}
}

// Result aggregates one merge pass.
type Result struct {
	Created          int
	Updated          int
	Reused           map[string]string
	NeedsTranslation []string
	SkippedInvalid   int
}

// Apply merges the proposal pair by pair. Malformed keys never reach the
// store; values are trimmed and capped before comparison. Keys returned in
// NeedsTranslation are brand-new entries plus significantly rewritten ones,
// whose target-locale fields have been cleared for refilling.
func (s *Service) Apply(ctx context.Context, p Proposal) (*Result, error) {
	res := &Result{Reused: map[string]string{}}
	flagged := map[string]bool{}
	for _, key := range p.Keys {
		if !extractor.IsValidKey(key) {
			res.SkippedInvalid++
			s.log.Debug("skipping malformed key", "key", key)
			continue
		}
		value := strings.TrimSpace(p.Pairs[key])
		if runes := []rune(value); len(runes) > s.cfg.MaxEnglishLength {
			value = string(runes[:s.cfg.MaxEnglishLength])
			rec := &domain.ChangeRecord{Type: domain.ChangeTruncated, ProposedKey: key, NewEn: value}
			if err := s.d.ChangeLog.Append(ctx, rec); err != nil {
				return nil, err
			}
		}
		existing, err := s.d.Entries.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		switch {
		case existing != nil && existing.En != value:
			old := existing.En
			if _, err := s.d.Entries.UpdateField(ctx, existing.ID, "en", value); err != nil {
				return nil, err
			}
			rec := &domain.ChangeRecord{
				Type: domain.ChangeUpdated,
				Key:  key, ProposedKey: key, ResolvedKey: key,
				OldEn: old, NewEn: value,
			}
			if err := s.d.ChangeLog.Append(ctx, rec); err != nil {
				return nil, err
			}
			res.Updated++
			if s.Significant(old, value) {
				if err := s.d.Entries.ClearTargetLocales(ctx, existing.ID); err != nil {
					return nil, err
				}
				if !flagged[key] {
					flagged[key] = true
					res.NeedsTranslation = append(res.NeedsTranslation, key)
				}
			}
		case existing != nil:
			res.Reused[key] = value
		case value == "":
			rec := &domain.ChangeRecord{Type: domain.ChangeIgnoredEmpty, ProposedKey: key}
			if err := s.d.ChangeLog.Append(ctx, rec); err != nil {
				return nil, err
			}
		default:
			byEn, err := s.d.Entries.GetByEnglish(ctx, value)
			if err != nil {
				return nil, err
			}
			if byEn != nil {
				// Same English already stored under another key: resolve to
				// that entry instead of creating a twin.
				rec := &domain.ChangeRecord{
					Type: domain.ChangeConflict,
					Key:  byEn.Key, ProposedKey: key, ResolvedKey: byEn.Key,
					OldEn: byEn.En, NewEn: value,
				}
				if err := s.d.ChangeLog.Append(ctx, rec); err != nil {
					return nil, err
				}
				res.Reused[byEn.Key] = value
				continue
			}
			e := &domain.LocalizationEntry{Key: key, En: value}
			if err := s.d.Entries.Create(ctx, e); err != nil {
				return nil, err
			}
			rec := &domain.ChangeRecord{
				Type: domain.ChangeCreated,
				Key:  key, ProposedKey: key, ResolvedKey: key,
				NewEn: value,
			}
			if err := s.d.ChangeLog.Append(ctx, rec); err != nil {
				return nil, err
			}
			res.Created++
			if !flagged[key] {
				flagged[key] = true
				res.NeedsTranslation = append(res.NeedsTranslation, key)
			}
		}
	}
	return res, nil
}

// Significant reports whether replacing oldText with newText invalidates the
// existing translations. Empty transitions always do; otherwise a length
// swing beyond the configured ratio or a word-overlap drop below the floor
// marks the change as a genuine rewrite rather than a formatting edit.
func (s *Service) Significant(oldText, newText string) bool {
	if (oldText == "") != (newText == "") {
		return true
	}
	if oldText == "" {
		return false
	}
	oldLen := float64(len([]rune(oldText)))
	newLen := float64(len([]rune(newText)))
	if math.Abs(newLen-oldLen) > s.cfg.LengthDeltaRatio*oldLen {
		return true
	}
	return wordOverlap(oldText, newText) < s.cfg.MinWordOverlap
}

// ValidateRename checks a manual key rename before any write: format first,
// then collision with a different entry.
func (s *Service) ValidateRename(ctx context.Context, id, newKey string) error {
	if !extractor.IsValidKey(newKey) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidKeyFormat, newKey)
	}
	existing, err := s.d.Entries.GetByKey(ctx, newKey)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, newKey)
	}
	return nil
}

// wordOverlap is the Jaccard ratio of the lowercase word sets.
func wordOverlap(a, b string) float64 {
	aw := wordSet(a)
	bw := wordSet(b)
	if len(aw) == 0 && len(bw) == 0 {
		return 1
	}
	inter := 0
	union := len(bw)
	for w := range aw {
		if bw[w] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = true
	}
	return out
}
