package repository

import (
	"context"

	"github.com/abrezinsky/eventdash/internal/models"
)

// EventRepository defines event data operations
type EventRepository interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	CountEvents(ctx context.Context) (int, error)
	ListUpcomingEvents(ctx context.Context, limit int) ([]models.UpcomingEvent, error)
}

// ParticipantRepository defines participant data operations
type ParticipantRepository interface {
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)
	CreateParticipant(ctx context.Context, p models.Participant) (models.Participant, error)
	UpdateParticipant(ctx context.Context, p models.Participant) error
	DeleteParticipant(ctx context.Context, id string) error
	SetCheckedIn(ctx context.Context, id string, checkedIn bool, at string) error
	RenameParticipantsEvent(ctx context.Context, eventID, eventName string) error
	CountParticipants(ctx context.Context) (int, error)
	ListRecentCheckins(ctx context.Context, limit int) ([]models.RecentCheckin, error)
}

// CheckinRuleRepository defines check-in rule data operations
type CheckinRuleRepository interface {
	ListCheckinRules(ctx context.Context, eventID string) ([]models.CheckinRule, error)
	ReplaceCheckinRules(ctx context.Context, eventID string, rules []models.CheckinRule) error
}

// FullRepository combines all repository interfaces
type FullRepository interface {
	EventRepository
	ParticipantRepository
	CheckinRuleRepository
}

// Compile-time check that Repository implements FullRepository
var _ FullRepository = (*Repository)(nil)
