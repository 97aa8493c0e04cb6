package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"locsmith/internal/domain"
	"locsmith/internal/ports"
	"locsmith/internal/usecase/extractor"
	"locsmith/internal/usecase/reconciler"
)

// Sync states as reported to the UI.
const (
	StateEmpty      = "empty"
	StateQueued     = "queued"
	StateProcessing = "processing"
)

type Deps struct {
	Entries  ports.EntryRepository
	Batches  ports.BatchRepository
	Cache    ports.CacheRepository
	Recon    *reconciler.Service
	Provider ports.Provider
}

// Scheduler holds payloads staged between renders and runs one batch per
// successful render. Staging replaces the slot wholesale, so only the latest
// snapshot of each payload kind is ever processed.
type Scheduler struct {
	d       Deps
	log     *slog.Logger
	timeout time.Duration
	em      ports.EventEmitter

	mu         sync.Mutex
	cond       *sync.Cond
	blocks     map[string]string
	extraction *extractor.Result
	processing bool
}

func New(d Deps, timeout time.Duration, log *slog.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	s := &Scheduler{d: d, log: log, timeout: timeout}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *Scheduler) SetEmitter(em ports.EventEmitter) { s.em = em }

// StageBlocks replaces the staged translation-block payload.
func (s *Scheduler) StageBlocks(blocks map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = blocks
}

// StageExtraction replaces the staged code-extraction payload.
func (s *Scheduler) StageExtraction(res *extractor.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extraction = res
}

// State reports processing over queued over empty.
func (s *Scheduler) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return StateProcessing
	}
	if len(s.blocks) > 0 || (s.extraction != nil && s.extraction.Len() > 0) {
		return StateQueued
	}
	return StateEmpty
}

// RenderSucceeded takes the staged payloads and processes them in the
// background. While a batch is running further signals are dropped; payloads
// staged in the meantime wait for the next successful render.
func (s *Scheduler) RenderSucceeded() {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		s.log.Debug("render signal dropped, batch in progress")
		return
	}
	blocks := s.blocks
	extraction := s.extraction
	s.blocks = nil
	s.extraction = nil
	if len(blocks) == 0 && (extraction == nil || extraction.Len() == 0) {
		s.mu.Unlock()
		return
	}
	s.processing = true
	s.mu.Unlock()

	go s.process(context.Background(), blocks, extraction)
}

// RenderFailed discards the staged payloads. A batch already running is not
// interrupted.
func (s *Scheduler) RenderFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = nil
	s.extraction = nil
}

// Wait blocks until no batch is running. Used during shutdown.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.processing {
		s.cond.Wait()
	}
}

func (s *Scheduler) process(ctx context.Context, blocks map[string]string, extraction *extractor.Result) {
	defer func() {
		s.mu.Lock()
		s.processing = false
		s.cond.Broadcast()
		s.mu.Unlock()
	}()

	batch := &domain.BatchRun{}
	if err := s.d.Batches.Create(ctx, batch); err != nil {
		s.log.Error("create batch run", "error", err)
		return
	}
	s.emit("sync.started", map[string]any{"batchId": batch.ID})

	var created, updated int
	reused := map[string]string{}
	var flagged []string
	seen := map[string]bool{}

	merge := func(res *reconciler.Result) {
		created += res.Created
		updated += res.Updated
		for k, v := range res.Reused {
			reused[k] = v
		}
		for _, k := range res.NeedsTranslation {
			if !seen[k] {
				seen[k] = true
				flagged = append(flagged, k)
			}
		}
	}

	if len(blocks) > 0 {
		res, err := s.d.Recon.Apply(ctx, reconciler.ProposalFromMap(blocks))
		if err != nil {
			s.fail(ctx, batch.ID, fmt.Errorf("reconcile blocks: %w", err))
			return
		}
		merge(res)
	}
	if extraction != nil && extraction.Len() > 0 {
		res, err := s.d.Recon.Apply(ctx, reconciler.ProposalFromExtraction(extraction))
		if err != nil {
			s.fail(ctx, batch.ID, fmt.Errorf("reconcile extraction: %w", err))
			return
		}
		merge(res)
	}

	translated, failedLocales, transErr := s.translate(ctx, flagged)

	status := domain.BatchDone
	errText := ""
	if len(failedLocales) > 0 {
		status = domain.BatchPartial
	}
	if transErr != nil {
		errText = transErr.Error()
	}
	fin := &domain.BatchRun{
		ID:               batch.ID,
		Status:           status,
		CreatedKeys:      created,
		UpdatedKeys:      updated,
		ReusedKeys:       len(reused),
		TranslatedValues: translated,
		FailedLocales:    strings.Join(failedLocales, ","),
		Error:            errText,
	}
	if err := s.d.Batches.Finish(ctx, fin); err != nil {
		s.log.Error("finish batch run", "error", err)
	}
	s.log.Info("batch finished",
		"batchId", batch.ID,
		"created", created,
		"updated", updated,
		"reused", len(reused),
		"translated", translated,
		"failedLocales", fin.FailedLocales,
	)
	s.emit("localizations.updated", map[string]any{
		"batchId":       batch.ID,
		"created":       created,
		"updated":       updated,
		"translated":    translated,
		"failedLocales": failedLocales,
	})
}

// translate fills the empty target-locale fields of the flagged keys, one
// provider call per locale. A failing locale is skipped without retry; the
// remaining locales still run.
func (s *Scheduler) translate(ctx context.Context, flagged []string) (int, []string, error) {
	if len(flagged) == 0 {
		return 0, nil, nil
	}
	if s.d.Provider == nil {
		s.log.Warn("no translation provider configured, leaving flagged keys untranslated", "keys", len(flagged))
		return 0, nil, nil
	}

	byKey := map[string]*domain.LocalizationEntry{}
	for _, key := range flagged {
		e, err := s.d.Entries.GetByKey(ctx, key)
		if err != nil {
			return 0, nil, err
		}
		if e != nil {
			byKey[key] = e
		}
	}

	var merr *multierror.Error
	var failed []string
	translated := 0
	for _, locale := range domain.TargetLocales {
		want := map[string]string{}
		for _, key := range flagged {
			e, ok := byKey[key]
			if !ok || e.En == "" || e.Value(locale) != "" {
				continue
			}
			want[key] = e.En
		}
		if len(want) == 0 {
			continue
		}

		// Cache hits are written straight away and dropped from the request.
		for key, src := range want {
			ce, err := s.d.Cache.Get(ctx, src, locale, s.d.Provider.Name(), s.d.Provider.Model())
			if err != nil || ce == nil {
				continue
			}
			if err := s.d.Entries.SetLocaleValue(ctx, key, locale, ce.Translation); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%s/%s: %w", key, locale, err))
				continue
			}
			translated++
			delete(want, key)
		}
		if len(want) == 0 {
			continue
		}

		tctx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := s.d.Provider.Translate(tctx, ports.TranslationRequest{TargetLocale: locale, Entries: want})
		cancel()
		if err != nil {
			s.log.Warn("locale translation failed", "locale", locale, "keys", len(want), "error", err)
			failed = append(failed, locale)
			merr = multierror.Append(merr, fmt.Errorf("%s: %w: %v", locale, domain.ErrProvider, err))
			continue
		}
		for key, text := range resp.Translations {
			src, ok := want[key]
			if !ok {
				continue
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			if err := s.d.Entries.SetLocaleValue(ctx, key, locale, text); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%s/%s: %w", key, locale, err))
				continue
			}
			translated++
			_ = s.d.Cache.Put(ctx, &domain.CacheEntry{
				SourceText:   src,
				TargetLocale: locale,
				Provider:     s.d.Provider.Name(),
				Model:        s.d.Provider.Model(),
				Translation:  text,
			})
		}
	}
	return translated, failed, merr.ErrorOrNil()
}

func (s *Scheduler) fail(ctx context.Context, batchID string, err error) {
	s.log.Error("batch failed", "batchId", batchID, "error", err)
	fin := &domain.BatchRun{ID: batchID, Status: domain.BatchFailed, Error: err.Error()}
	if ferr := s.d.Batches.Finish(ctx, fin); ferr != nil {
		s.log.Error("finish batch run", "error", ferr)
	}
	s.emit("localizations.updated", map[string]any{"batchId": batchID, "error": err.Error()})
}

func (s *Scheduler) emit(name string, payload any) {
	if s.em != nil {
		s.em.Emit(name, payload)
	}
}
