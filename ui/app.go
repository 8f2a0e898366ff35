package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"datastory/app"
	"datastory/internal/config"
)

// App serves the report generation API. Reports are generated on demand from
// posted statistics; the server keeps no state between requests.
type App struct {
	router  *chi.Mux
	service *app.StoryService
	cfg     *config.Config
	logger  zerolog.Logger
}

// NewApp creates the HTTP application.
func NewApp(cfg *config.Config, service *app.StoryService, logger zerolog.Logger) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(chimiddleware.RequestID)
	a.router.Use(requestLogger(a.logger))
	a.router.Use(chimiddleware.Recoverer)
	a.router.Use(chimiddleware.Compress(5))
	a.router.Use(chimiddleware.Timeout(30 * time.Second))
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/api/detectors", a.handleDetectors)
	a.router.Post("/api/story", a.handleGenerate)
	a.router.Post("/api/story/document/{audience}", a.handleDocument)
}

// Router exposes the configured mux, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("port", a.cfg.Server.Port).Msg("server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
