package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/fixtures"
	"github.com/medflow-ai/caseroom/internal/shared/config"
	"github.com/medflow-ai/caseroom/internal/shared/events"
	"github.com/medflow-ai/caseroom/internal/shared/logging"
	"github.com/medflow-ai/caseroom/internal/shared/metrics"
	secmiddleware "github.com/medflow-ai/caseroom/internal/shared/middleware"
	"github.com/medflow-ai/caseroom/internal/simulation"
	"github.com/medflow-ai/caseroom/internal/site"
)

const serviceName = "caseroom"

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Workspace *caseroom.Workspace
	Injector  *simulation.Injector
	Bus       *events.Bus
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return err
	}
	logging.Init(serviceName, cfg.IsDev(), cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &App{
		Config:    cfg,
		Workspace: caseroom.NewWorkspace(fixtures.Seed),
	}

	// KurrentDB is optional unless it drives the feed
	var pub events.Publisher
	if cfg.KurrentDB.Enabled {
		bus, err := events.NewBus(ctx, cfg.KurrentDB)
		if err != nil {
			if cfg.Simulation.FeedSource == config.FeedSourceKurrentDB {
				return fmt.Errorf("kurrentdb feed unavailable: %w", err)
			}
			log.Warn().Err(err).Msg("KurrentDB not available, running without alert mirroring")
		} else {
			app.Bus = bus
			pub = bus
			defer bus.Close()
			log.Info().Str("prefix", cfg.KurrentDB.StreamPrefix).Msg("KurrentDB event bus initialized")
		}
	}
	app.Injector = simulation.NewInjector(app.Workspace, pub, app.connectDelay())

	if cfg.Simulation.AutoStart {
		src, err := app.feedSource(ctx)
		if err != nil {
			return err
		}
		go func() {
			if err := app.Injector.Run(ctx, src); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("alert feed stopped")
			}
		}()
		log.Info().Str("source", cfg.Simulation.FeedSource).Float64("speed", cfg.Simulation.Speed).Msg("alert feed started")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Server.Env).
			Str("api", fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port)).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// connectDelay is the configured connect delay played at the feed speed.
func (app *App) connectDelay() time.Duration {
	speed := app.Config.Simulation.Speed
	if speed <= 0 {
		speed = 1
	}
	return scaled(app.Config.Simulation.ConnectDelay, speed)
}

func (app *App) feedSource(ctx context.Context) (simulation.Source, error) {
	if app.Config.Simulation.FeedSource == config.FeedSourceKurrentDB {
		return simulation.NewBusSource(ctx, app.Bus, serviceName+"-feed")
	}
	return simulation.NewScriptedSource(simulation.DefaultScript(), app.Config.Simulation.Speed), nil
}

func (app *App) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(secmiddleware.RequestLogger(logging.Component("http")))
	r.Use(metrics.Middleware)
	r.Use(secmiddleware.CORS(secmiddleware.DefaultCORSConfig()))

	r.Get("/health", healthHandler)
	r.Get("/ready", app.readyHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/api", infoHandler)
	r.Mount("/", site.NewHandler(app.Workspace, site.DefaultContent()).Routes())

	limiter := secmiddleware.NewIPRateLimiter(app.Config.RateLimit.RPS, app.Config.RateLimit.Burst)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)

		api := caseroom.NewHandler(app.Workspace).Routes()
		sim := simulation.NewHandler(app.Injector, app.Workspace, simulation.DefaultScript())
		if app.Bus != nil {
			sim.WithHistory(app.Bus)
		}
		api.Mount("/simulation", sim.Routes())
		r.Mount("/", api)
	})

	return r
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "MedFlow AI Case Room",
		"version": "0.1.0",
		"status":  "demo",
		"docs":    "/api/v1",
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (app *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"server": "ready",
		"feed":   string(app.Workspace.Snapshot().Connection),
	}

	allReady := true
	if app.Bus != nil {
		if err := app.Bus.Health(); err != nil {
			checks["kurrentdb"] = "not ready: " + err.Error()
			allReady = false
		} else {
			checks["kurrentdb"] = "ready"
		}
	} else {
		checks["kurrentdb"] = "not configured"
	}

	status := http.StatusOK
	label := "ready"
	if !allReady {
		status = http.StatusServiceUnavailable
		label = "not ready"
	}
	writeJSON(w, status, map[string]any{
		"status": label,
		"checks": checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}
