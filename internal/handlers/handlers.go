package handlers

import (
	"github.com/abrezinsky/eventdash/internal/auth"
	"github.com/abrezinsky/eventdash/internal/models"
	"github.com/abrezinsky/eventdash/internal/services"
	"github.com/abrezinsky/eventdash/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Events       services.EventServicer
	Participants services.ParticipantServicer
	Rules        services.CheckinRuleServicer
	Sessions     services.SessionServicer
	Dashboard    services.DashboardServicer
	Auth         *auth.Auth
	Hub          *websocket.Hub
	Log          HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	events services.EventServicer,
	participants services.ParticipantServicer,
	rules services.CheckinRuleServicer,
	sessions services.SessionServicer,
	dashboard services.DashboardServicer,
	adminAuth *auth.Auth,
	hub *websocket.Hub,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Events:       events,
		Participants: participants,
		Rules:        rules,
		Sessions:     sessions,
		Dashboard:    dashboard,
		Auth:         adminAuth,
		Hub:          hub,
		Log:          log,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// Credentials of the operator created by NewForTesting
const (
	TestEmail    = "admin@eventos.com"
	TestPassword = "test-password"
)

// NewForTesting creates a Handlers instance without a websocket hub (for testing API endpoints)
func NewForTesting(
	events services.EventServicer,
	participants services.ParticipantServicer,
	rules services.CheckinRuleServicer,
	sessions services.SessionServicer,
	dashboard services.DashboardServicer,
) *Handlers {
	testAuth := auth.New(models.User{ID: "1", Name: "Administrador", Email: TestEmail}, TestPassword)
	return New(events, participants, rules, sessions, dashboard, testAuth, nil, NoopHTTPLogger{})
}
