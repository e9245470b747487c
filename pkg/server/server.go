package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/sales-atlas/pkg/handlers/analysis"
	"github.com/de-tools/sales-atlas/pkg/render"
	"github.com/de-tools/sales-atlas/pkg/services/cache"

	atlasmiddleware "github.com/de-tools/sales-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Cache    cache.ResultCache
	Uploader handlers.Uploader
	Logger   zerolog.Logger
	Currency string
	Charts   render.Config
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	h := handlers.NewHandler(deps.Cache, deps.Uploader, deps.Currency, deps.Charts)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(atlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", handlers.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/analysis", h.GetAnalysis)
		r.Get("/summary", h.GetSummary)
		r.Get("/products", h.GetProducts)
		r.Get("/charts", h.ListCharts)
		r.Get("/charts/{name}", h.GetChart)
		r.Get("/ledger", h.SearchLedger)
		r.Get("/export.xlsx", h.ExportWorkbook)
		r.Post("/upload", h.Upload)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: shutdownTimeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
