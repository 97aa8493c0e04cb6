package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/raulk/clock"

	"locsmith/internal/api/app"
	"locsmith/internal/api/middleware"
	"locsmith/internal/config"
	"locsmith/internal/usecase/notifier"
)

type Deps struct {
	Entries    *app.EntryAPI
	Sessions   *app.SessionAPI
	Components *app.ComponentAPI
	Sync       *app.SyncAPI
	ChangeLog  *app.ChangeLogAPI
	Transfer   *app.TransferAPI
	Provider   *app.ProviderAPI
	Hub        *notifier.Hub
	DB         *sql.DB
}

// Server exposes the REST API and the event stream. Store change events are
// debounced into a single refresh push; everything else passes through.
type Server struct {
	cfg config.ServerConfig
	log *slog.Logger
	d   Deps
	ws  *wsHub
	deb *notifier.Debouncer
}

func New(cfg config.ServerConfig, notify config.NotifyConfig, clk clock.Clock, d Deps, log *slog.Logger) *Server {
	s := &Server{cfg: cfg, log: log, d: d, ws: newWSHub(log)}
	s.deb = notifier.NewDebouncer(clk, notify.Debounce, func() {
		s.ws.broadcast(notifier.Event{Name: "store.refresh"})
	})
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/entries", s.handleListEntries).Methods(http.MethodGet)
	api.HandleFunc("/entries", s.handleCreateEntry).Methods(http.MethodPost)
	api.HandleFunc("/entries/key/{key}", s.handleGetEntryByKey).Methods(http.MethodGet)
	api.HandleFunc("/entries/{id}", s.handleUpdateEntryField).Methods(http.MethodPatch)
	api.HandleFunc("/entries/{id}", s.handleDeleteEntry).Methods(http.MethodDelete)

	api.HandleFunc("/locales", s.handleLocales).Methods(http.MethodGet)
	api.HandleFunc("/locales/{locale}/table", s.handleLocaleTable).Methods(http.MethodGet)

	api.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions", s.handleSwitchSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/current", s.handleCurrentSession).Methods(http.MethodGet)

	api.HandleFunc("/components", s.handleListComponents).Methods(http.MethodGet)
	api.HandleFunc("/components", s.handleSaveComponent).Methods(http.MethodPost)
	api.HandleFunc("/components/{id}/versions", s.handleVersions).Methods(http.MethodGet)

	api.HandleFunc("/render-result", s.handleRenderResult).Methods(http.MethodPost)
	api.HandleFunc("/sync/state", s.handleSyncState).Methods(http.MethodGet)
	api.HandleFunc("/sync/history", s.handleSyncHistory).Methods(http.MethodGet)

	api.HandleFunc("/changelog", s.handleListChangeLog).Methods(http.MethodGet)
	api.HandleFunc("/changelog", s.handleClearChangeLog).Methods(http.MethodDelete)

	api.HandleFunc("/import/{locale}", s.handleImport).Methods(http.MethodPost)
	api.HandleFunc("/export/formats", s.handleExportFormats).Methods(http.MethodGet)
	api.HandleFunc("/export/{locale}", s.handleExport).Methods(http.MethodGet)

	api.HandleFunc("/provider", s.handleProviderInfo).Methods(http.MethodGet)
	api.HandleFunc("/provider/test", s.handleProviderTest).Methods(http.MethodPost)

	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)

	return r
}

// Handler returns the full middleware-wrapped handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(s.log),
		middleware.Logger(s.log),
		middleware.CORS,
	)(s.routes())
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	events, cancelSub := s.d.Hub.Subscribe(64)
	defer cancelSub()
	go s.pump(events)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.deb.Stop()
	s.ws.closeAll()

	shctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shctx)
}

// pump routes hub events to listeners: store changes through the debouncer,
// everything else straight to the sockets.
func (s *Server) pump(events <-chan notifier.Event) {
	for ev := range events {
		if ev.Name == "store.changed" {
			s.deb.Signal()
			continue
		}
		s.ws.broadcast(ev)
	}
}
