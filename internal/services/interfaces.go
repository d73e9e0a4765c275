package services

import (
	"context"

	"github.com/abrezinsky/eventdash/internal/checkin"
	"github.com/abrezinsky/eventdash/internal/models"
)

// Broadcaster defines the interface for broadcasting messages to clients
type Broadcaster interface {
	BroadcastMessage(msgType string, payload interface{})
}

// EventServicer defines the interface for event operations
type EventServicer interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, input EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	SetBroadcaster(b Broadcaster)
}

// ParticipantServicer defines the interface for participant operations
type ParticipantServicer interface {
	ListParticipants(ctx context.Context, filter ParticipantFilter) ([]models.Participant, error)
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)
	CreateParticipant(ctx context.Context, input ParticipantInput) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, id string, patch ParticipantPatch) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
	ToggleCheckin(ctx context.Context, id string) (*models.Participant, error)
	GenerateQRImage(ctx context.Context, id string) ([]byte, error)
	SetBroadcaster(b Broadcaster)
}

// CheckinRuleServicer defines the interface for check-in rule persistence
type CheckinRuleServicer interface {
	checkin.Saver
	GetCheckinRules(ctx context.Context, eventID string) ([]models.CheckinRule, error)
	ValidateRules(rules []models.CheckinRule) checkin.Validation
	SetBroadcaster(b Broadcaster)
}

// SessionServicer defines the interface for server-held rule editing sessions
type SessionServicer interface {
	OpenSession(ctx context.Context, eventID string) (*SessionState, error)
	GetSession(id string) (*SessionState, error)
	AddRule(id string) (*SessionState, error)
	UpdateRule(id, ruleID string, patch checkin.RulePatch, strict bool) (*SessionState, error)
	RemoveRule(id, ruleID string) (*SessionState, error)
	SaveSession(ctx context.Context, id string) (*SessionState, error)
	ReloadSession(ctx context.Context, id string) (*SessionState, error)
	CloseSession(id string) error
}

// DashboardServicer defines the interface for dashboard operations
type DashboardServicer interface {
	GetDashboard(ctx context.Context) (*models.DashboardData, error)
}

// Ensure concrete types implement interfaces
var (
	_ EventServicer       = (*EventService)(nil)
	_ ParticipantServicer = (*ParticipantService)(nil)
	_ CheckinRuleServicer = (*CheckinRuleService)(nil)
	_ SessionServicer     = (*SessionService)(nil)
	_ DashboardServicer   = (*DashboardService)(nil)
)
