package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/raulk/clock"

	dbsqlite "locsmith/internal/adapters/db/sqlite"
	expcsv "locsmith/internal/adapters/exporter/csv"
	expjson "locsmith/internal/adapters/exporter/flatjson"
	exportreg "locsmith/internal/adapters/exporter/registry"
	llmfactory "locsmith/internal/adapters/llm/factory"
	csvparser "locsmith/internal/adapters/parser/csv"
	parjson "locsmith/internal/adapters/parser/flatjson"
	parreg "locsmith/internal/adapters/parser/registry"
	"locsmith/internal/adapters/prompt"
	apiapp "locsmith/internal/api/app"
	"locsmith/internal/api/httpserver"
	"locsmith/internal/config"
	"locsmith/internal/ports"
	"locsmith/internal/usecase/catalog"
	exporterusecase "locsmith/internal/usecase/exporter"
	"locsmith/internal/usecase/importer"
	"locsmith/internal/usecase/notifier"
	"locsmith/internal/usecase/reconciler"
	"locsmith/internal/usecase/scheduler"
)

// App owns every long-lived piece and wires them together.
type App struct {
	log   *slog.Logger
	db    *sql.DB
	hub   *notifier.Hub
	sched *scheduler.Scheduler
	srv   *httpserver.Server
}

func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	ctx := context.Background()

	db, err := dbsqlite.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, err
	}
	if err := dbsqlite.Seed(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	store := dbsqlite.NewStore(db)
	hub := notifier.NewHub()
	store.SetEmitter(hub)

	recon := reconciler.New(
		reconciler.Deps{Entries: store.Entries, ChangeLog: store.ChangeLog},
		reconciler.Config{
			MaxEnglishLength: cfg.Reconcile.MaxEnglishLength,
			LengthDeltaRatio: cfg.Reconcile.LengthDeltaRatio,
			MinWordOverlap:   cfg.Reconcile.MinWordOverlap,
		},
		log,
	)

	// Translation backend is optional; without one, flagged keys simply stay
	// untranslated.
	var provider ports.Provider
	if cfg.Translator.Enabled() {
		provider, err = llmfactory.New(llmfactory.Options{
			Type:        cfg.Translator.Type,
			APIKey:      cfg.Translator.APIKey,
			BaseURL:     cfg.Translator.BaseURL,
			Model:       cfg.Translator.Model,
			Temperature: cfg.Translator.Temperature,
			Timeout:     cfg.Translator.Timeout,
		}, prompt.New())
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	sched := scheduler.New(scheduler.Deps{
		Entries:  store.Entries,
		Batches:  store.Batches,
		Cache:    store.Cache,
		Recon:    recon,
		Provider: provider,
	}, cfg.Translator.Timeout, log)
	sched.SetEmitter(hub)

	cat := catalog.New(catalog.Deps{
		Components: store.Components,
		Sessions:   store.Sessions,
		Meta:       store.Meta,
	}, sched, log)
	sctx, err := cat.StartupSession(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Register transfer formats directly to keep wiring explicit.
	parserReg := parreg.New()
	parserReg.Register(parjson.New())
	parserReg.Register(csvparser.New())
	expReg := exportreg.New()
	expReg.Register(expjson.New())
	expReg.Register(expcsv.New())

	impSvc := importer.New(store.Entries, recon, parserReg)
	expSvc := exporterusecase.New(store.Entries, expReg)

	sessionAPI := apiapp.NewSessionAPI(cat, sctx)
	srv := httpserver.New(cfg.Server, cfg.Notify, clock.New(), httpserver.Deps{
		Entries:    apiapp.NewEntryAPI(store.Entries, recon),
		Sessions:   sessionAPI,
		Components: apiapp.NewComponentAPI(cat, sessionAPI),
		Sync:       apiapp.NewSyncAPI(sched, store.Batches),
		ChangeLog:  apiapp.NewChangeLogAPI(store.ChangeLog),
		Transfer:   apiapp.NewTransferAPI(impSvc, expSvc),
		Provider:   apiapp.NewProviderAPI(provider),
		Hub:        hub,
		DB:         db,
	}, log)

	return &App{log: log, db: db, hub: hub, sched: sched, srv: srv}, nil
}

// Run serves until ctx is cancelled, then drains the in-flight batch and
// closes everything down.
func (a *App) Run(ctx context.Context) error {
	err := a.srv.Run(ctx)
	a.sched.Wait()
	a.hub.Close()
	if cerr := a.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
