package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/eventdash/internal/auth"
	"github.com/abrezinsky/eventdash/internal/config"
	"github.com/abrezinsky/eventdash/internal/handlers"
	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/repository"
	"github.com/abrezinsky/eventdash/internal/services"
	"github.com/abrezinsky/eventdash/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	hub      *websocket.Hub
	repo     *repository.Repository
	sessions *services.SessionService
	server   *http.Server
	baseURL  string

	cancelBackground context.CancelFunc
	closeOnce        sync.Once
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg *config.Config, adminAuth *auth.Auth) (*App, error) {
	repo, err := repository.New(cfg.DBPath,
		repository.WithLatency(cfg.Latency),
		repository.WithNodeID(cfg.NodeID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	if cfg.Seed {
		seeded, err := repo.Seed(context.Background())
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
		if seeded {
			log.Info("Sample events loaded")
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = detectBaseURL(realNetworkProvider{}, cfg.Port)
		log.Info("Default base URL set", "url", baseURL)
	}

	// Initialize services
	eventService := services.NewEventService(log, repo, repo)
	participantService := services.NewParticipantService(log, repo, repo, baseURL)
	ruleService := services.NewCheckinRuleService(log, repo, repo)
	sessionService := services.NewSessionService(log, ruleService)
	dashboardService := services.NewDashboardService(log, repo, repo)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, dashboardService)
	hub.Start()
	eventService.SetBroadcaster(hub)
	participantService.SetBroadcaster(hub)
	ruleService.SetBroadcaster(hub)

	// Background loops stop with Close
	ctx, cancel := context.WithCancel(context.Background())
	if cfg.StatsInterval > 0 {
		go hub.StartStatsBroadcast(ctx, cfg.StatsInterval)
	}
	if cfg.SessionIdle > 0 {
		go sessionService.RunJanitor(ctx, janitorInterval(cfg.SessionIdle), cfg.SessionIdle)
	}

	h := handlers.New(
		eventService,
		participantService,
		ruleService,
		sessionService,
		dashboardService,
		adminAuth,
		hub,
		log,
	)

	return &App{
		log:              log,
		hub:              hub,
		handlers:         h,
		repo:             repo,
		sessions:         sessionService,
		server:           &http.Server{Addr: cfg.Addr(), Handler: h.Router()},
		baseURL:          baseURL,
		cancelBackground: cancel,
	}, nil
}

// janitorInterval checks for idle sessions a few times per idle period
func janitorInterval(idle time.Duration) time.Duration {
	if interval := idle / 4; interval > 0 {
		return interval
	}
	return idle
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// BaseURL returns the public URL encoded in check-in QR codes
func (a *App) BaseURL() string {
	return a.baseURL
}

// Run starts the HTTP server and blocks until it stops.
// A server stopped by Shutdown returns nil.
func (a *App) Run() error {
	a.log.Info("Server starting", "addr", a.server.Addr, "url", a.baseURL)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully, then releases app resources
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.Close()
	return err
}

// Close stops background loops and the websocket hub, then closes the
// repository. Safe to call twice.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		if a.cancelBackground != nil {
			a.cancelBackground()
		}
		if a.hub != nil {
			a.hub.Stop()
		}
		if err := a.repo.Close(); err != nil {
			a.log.Warn("Failed to close repository", "error", err)
		}
	})
}
