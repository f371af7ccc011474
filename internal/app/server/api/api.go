package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"history/internal/app/server/api/http/envelope"
	healthAPI "history/internal/app/server/api/http/health"
	"history/internal/app/server/api/http/middleware"
	"history/internal/app/server/api/http/middleware/auth"
	"history/internal/app/server/api/http/middleware/logger"
	recordAPI "history/internal/app/server/api/http/record"
	"history/internal/domain/record"
	"history/internal/domain/session"
)

// Deps are the services the HTTP layer serves. DB is optional and only
// used by the health check.
type Deps struct {
	Records  record.Servicer
	Sessions session.Servicer
	DB       healthAPI.Pinger
}

type Handlers struct {
	Health *healthAPI.Handler
	Record *recordAPI.Handler
}

// New builds the router with every operation registered through huma.
func New(deps Deps, log *slog.Logger) *chi.Mux {
	envelope.Install()

	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("History API", "1.0.0")
	config.Info.Description = "Personal log records with date, tag and keyword queries."
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	// Bodies are plain envelopes, without a $schema link.
	config.CreateHooks = nil

	API := humachi.New(mux, config)

	h := handlers(API, deps, log)
	h.Health.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	return mux
}

func handlers(api huma.API, deps Deps, log *slog.Logger) *Handlers {
	authMW := auth.New(api, deps.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(deps.DB, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	recordHandler := recordAPI.NewHandler(deps.Records, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Record: recordHandler,
	}
}
