package services

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/abrezinsky/eventdash/internal/checkin"
	"github.com/abrezinsky/eventdash/internal/errors"
	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/models"
	"github.com/abrezinsky/eventdash/internal/repository"
)

// CheckinRuleService persists and validates event check-in rules
type CheckinRuleService struct {
	log         logger.Logger
	repo        repository.CheckinRuleRepository
	events      repository.EventRepository
	newID       func() string
	broadcaster Broadcaster
}

// NewCheckinRuleService creates a new CheckinRuleService
func NewCheckinRuleService(log logger.Logger, repo repository.CheckinRuleRepository, events repository.EventRepository) *CheckinRuleService {
	return &CheckinRuleService{log: log, repo: repo, events: events, newID: uuid.NewString}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *CheckinRuleService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetIDGenerator overrides how ids are assigned to rules saved without one (for testing)
func (s *CheckinRuleService) SetIDGenerator(fn func() string) {
	s.newID = fn
}

// GetCheckinRules returns the stored rules of an event in order
func (s *CheckinRuleService) GetCheckinRules(ctx context.Context, eventID string) ([]models.CheckinRule, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListCheckinRules(ctx, eventID)
}

// SaveCheckinRules replaces every rule of the event with rules and returns
// the stored list. Warnings and conflicts never block a save.
func (s *CheckinRuleService) SaveCheckinRules(ctx context.Context, eventID string, rules []models.CheckinRule) ([]models.CheckinRule, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if !checkin.NamesComplete(rules) {
		return nil, ErrRuleNameRequired
	}

	prepared := make([]models.CheckinRule, len(rules))
	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if rule.ID == "" {
			rule.ID = s.newID()
		}
		if rule.EventID == "" {
			rule.EventID = eventID
		}
		if rule.EventID != eventID {
			return nil, errors.InvalidInputf("A regra %q pertence a outro evento", rule.Name)
		}
		if seen[rule.ID] {
			return nil, errors.InvalidInputf("ID de regra duplicado: %s", rule.ID)
		}
		seen[rule.ID] = true
		prepared[i] = rule
	}

	if err := s.repo.ReplaceCheckinRules(ctx, eventID, prepared); err != nil {
		s.log.Error("Failed to save check-in rules", "event_id", eventID, "error", err)
		return nil, err
	}

	saved, err := s.repo.ListCheckinRules(ctx, eventID)
	if err != nil {
		return nil, err
	}

	validation := checkin.Validate(saved)
	s.log.Info("Check-in rules saved", "event_id", eventID, "count", len(saved),
		"conflicts", len(validation.Conflicts), "warnings", len(validation.Warnings))
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(MsgCheckinRulesSaved, map[string]interface{}{
			"event_id":   eventID,
			"rules":      saved,
			"validation": validation,
		})
	}
	return saved, nil
}

// ValidateRules runs the validator over rules without storing anything
func (s *CheckinRuleService) ValidateRules(rules []models.CheckinRule) checkin.Validation {
	return checkin.Validate(rules)
}

func (s *CheckinRuleService) requireEvent(ctx context.Context, eventID string) error {
	_, err := s.events.GetEvent(ctx, eventID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}
