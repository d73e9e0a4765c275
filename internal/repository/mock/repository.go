package mock

import (
	"context"

	"github.com/abrezinsky/eventdash/internal/models"
	"github.com/abrezinsky/eventdash/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.ReplaceCheckinRulesError = errors.New("database error")
//	svc := services.NewCheckinRuleService(log, mockRepo, mockRepo)
//	_, err := svc.SaveCheckinRules(ctx, "1", rules)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Event Errors =====
	ListEventsError         error
	GetEventError           error
	CreateEventError        error
	UpdateEventError        error
	DeleteEventError        error
	CountEventsError        error
	ListUpcomingEventsError error

	// ===== Participant Errors =====
	ListParticipantsError        error
	GetParticipantError          error
	CreateParticipantError       error
	UpdateParticipantError       error
	DeleteParticipantError       error
	SetCheckedInError            error
	RenameParticipantsEventError error
	CountParticipantsError       error
	ListRecentCheckinsError      error

	// ===== Check-in Rule Errors =====
	ListCheckinRulesError    error
	ReplaceCheckinRulesError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Event Methods =====

func (m *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	if m.ListEventsError != nil {
		return nil, m.ListEventsError
	}
	return m.FullRepository.ListEvents(ctx)
}

func (m *Repository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if m.GetEventError != nil {
		return nil, m.GetEventError
	}
	return m.FullRepository.GetEvent(ctx, id)
}

func (m *Repository) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if m.CreateEventError != nil {
		return models.Event{}, m.CreateEventError
	}
	return m.FullRepository.CreateEvent(ctx, event)
}

func (m *Repository) UpdateEvent(ctx context.Context, event models.Event) error {
	if m.UpdateEventError != nil {
		return m.UpdateEventError
	}
	return m.FullRepository.UpdateEvent(ctx, event)
}

func (m *Repository) DeleteEvent(ctx context.Context, id string) error {
	if m.DeleteEventError != nil {
		return m.DeleteEventError
	}
	return m.FullRepository.DeleteEvent(ctx, id)
}

func (m *Repository) CountEvents(ctx context.Context) (int, error) {
	if m.CountEventsError != nil {
		return 0, m.CountEventsError
	}
	return m.FullRepository.CountEvents(ctx)
}

func (m *Repository) ListUpcomingEvents(ctx context.Context, limit int) ([]models.UpcomingEvent, error) {
	if m.ListUpcomingEventsError != nil {
		return nil, m.ListUpcomingEventsError
	}
	return m.FullRepository.ListUpcomingEvents(ctx, limit)
}

// ===== Participant Methods =====

func (m *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	if m.ListParticipantsError != nil {
		return nil, m.ListParticipantsError
	}
	return m.FullRepository.ListParticipants(ctx)
}

func (m *Repository) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	if m.GetParticipantError != nil {
		return nil, m.GetParticipantError
	}
	return m.FullRepository.GetParticipant(ctx, id)
}

func (m *Repository) CreateParticipant(ctx context.Context, p models.Participant) (models.Participant, error) {
	if m.CreateParticipantError != nil {
		return models.Participant{}, m.CreateParticipantError
	}
	return m.FullRepository.CreateParticipant(ctx, p)
}

func (m *Repository) UpdateParticipant(ctx context.Context, p models.Participant) error {
	if m.UpdateParticipantError != nil {
		return m.UpdateParticipantError
	}
	return m.FullRepository.UpdateParticipant(ctx, p)
}

func (m *Repository) DeleteParticipant(ctx context.Context, id string) error {
	if m.DeleteParticipantError != nil {
		return m.DeleteParticipantError
	}
	return m.FullRepository.DeleteParticipant(ctx, id)
}

func (m *Repository) SetCheckedIn(ctx context.Context, id string, checkedIn bool, at string) error {
	if m.SetCheckedInError != nil {
		return m.SetCheckedInError
	}
	return m.FullRepository.SetCheckedIn(ctx, id, checkedIn, at)
}

func (m *Repository) RenameParticipantsEvent(ctx context.Context, eventID, eventName string) error {
	if m.RenameParticipantsEventError != nil {
		return m.RenameParticipantsEventError
	}
	return m.FullRepository.RenameParticipantsEvent(ctx, eventID, eventName)
}

func (m *Repository) CountParticipants(ctx context.Context) (int, error) {
	if m.CountParticipantsError != nil {
		return 0, m.CountParticipantsError
	}
	return m.FullRepository.CountParticipants(ctx)
}

func (m *Repository) ListRecentCheckins(ctx context.Context, limit int) ([]models.RecentCheckin, error) {
	if m.ListRecentCheckinsError != nil {
		return nil, m.ListRecentCheckinsError
	}
	return m.FullRepository.ListRecentCheckins(ctx, limit)
}

// ===== Check-in Rule Methods =====

func (m *Repository) ListCheckinRules(ctx context.Context, eventID string) ([]models.CheckinRule, error) {
	if m.ListCheckinRulesError != nil {
		return nil, m.ListCheckinRulesError
	}
	return m.FullRepository.ListCheckinRules(ctx, eventID)
}

func (m *Repository) ReplaceCheckinRules(ctx context.Context, eventID string, rules []models.CheckinRule) error {
	if m.ReplaceCheckinRulesError != nil {
		return m.ReplaceCheckinRulesError
	}
	return m.FullRepository.ReplaceCheckinRules(ctx, eventID, rules)
}
