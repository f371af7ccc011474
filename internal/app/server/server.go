package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"history/internal/app/server/api"
	"history/internal/app/server/config"
	"history/internal/domain/record"
	"history/internal/domain/session"
	"history/internal/infrastructure/migration"
	"history/internal/infrastructure/storage/memory"
	"history/internal/infrastructure/storage/postgres"
	"history/internal/infrastructure/storage/sqlite"
)

type store interface {
	Ping(ctx context.Context) error
	Close() error
}

// App owns the storage, the services and the HTTP server built from a Config.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	store    store
	Records  *record.Service
	Sessions *session.Service
	handler  http.Handler
}

// New opens the configured storage, brings its schema up to date and wires
// the HTTP API on top of it.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	return newApp(ctx, cfg, log, migration.DefaultEngine)
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, engine migration.MigrationEngine) (*App, error) {
	if err := migration.NewMigration(cfg.DB.Driver, cfg.DB.DatabaseURI, engine, log).Up(); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	var repo record.Repository
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		a.store = db
		repo = postgres.NewRecordRepository(db, log)
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		a.store = db
		repo = sqlite.NewRecordRepository(db, log)
	case config.DriverMemory:
		repo = memory.NewRecordRepository()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.DB.Driver)
	}
	log.Info("storage initialized", "driver", cfg.DB.Driver)

	a.Records = record.NewService(repo, log)
	a.Sessions = session.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, log)

	deps := api.Deps{Records: a.Records, Sessions: a.Sessions}
	if a.store != nil {
		deps.DB = a.store
	}
	a.handler = api.New(deps, log)

	return a, nil
}

// Handler returns the router serving the API.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run listens on the configured address until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.RunAddress)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.Server.RunAddress, err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests for at most the configured shutdown timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", "address", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info("shutdown complete")
	return nil
}

// Close releases the storage connection.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
