package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/abrezinsky/eventdash/internal/errors"
	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/models"
	"github.com/abrezinsky/eventdash/internal/repository"
)

// DateLayout is the canonical local timestamp format for event dates
const DateLayout = "2006-01-02T15:04:05"

// dateLayouts are accepted on input; datetime-local fields omit seconds
var dateLayouts = []string{DateLayout, "2006-01-02T15:04"}

// EventFilter narrows ListEvents. Empty fields match everything.
type EventFilter struct {
	Search string // case-insensitive match on name or location
	Status string // Ativo, Encerrado, or "all"
}

// EventInput carries the fields of a new event
type EventInput struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// EventPatch carries a partial event update; nil fields are left untouched
type EventPatch struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

// EventService handles event-related business logic
type EventService struct {
	log          logger.Logger
	repo         repository.EventRepository
	participants repository.ParticipantRepository
	broadcaster  Broadcaster
}

// NewEventService creates a new EventService
func NewEventService(log logger.Logger, repo repository.EventRepository, participants repository.ParticipantRepository) *EventService {
	return &EventService{log: log, repo: repo, participants: participants}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *EventService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ListEvents returns the events matching filter in creation order
func (s *EventService) ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	status := filter.Status
	if strings.EqualFold(status, "all") {
		status = ""
	}

	matched := make([]models.Event, 0, len(events))
	for _, e := range events {
		if status != "" && e.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Location), search) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}

// GetEvent returns an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// CreateEvent validates and stores a new event. Status defaults to Ativo.
func (s *EventService) CreateEvent(ctx context.Context, input EventInput) (*models.Event, error) {
	event := models.Event{
		Name:        strings.TrimSpace(input.Name),
		Date:        input.Date,
		Location:    strings.TrimSpace(input.Location),
		Status:      input.Status,
		Description: input.Description,
	}
	if event.Status == "" {
		event.Status = models.EventStatusActive
	}
	if err := normalizeEvent(&event); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	s.log.Info("Event created", "event_id", created.ID, "name", created.Name)
	s.broadcast(MsgEventsChanged, map[string]interface{}{"action": "created", "event": created})
	return &created, nil
}

// UpdateEvent merges patch into an existing event. Participants keep a copy
// of the event name, so a rename is propagated to them.
func (s *EventService) UpdateEvent(ctx context.Context, id string, patch EventPatch) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	oldName := event.Name

	if patch.Name != nil {
		event.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Location != nil {
		event.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Status != nil {
		event.Status = *patch.Status
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if err := normalizeEvent(event); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEvent(ctx, *event); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.Name != oldName {
		if err := s.participants.RenameParticipantsEvent(ctx, event.ID, event.Name); err != nil {
			s.log.Error("Failed to rename event on participants", "event_id", event.ID, "error", err)
			return nil, err
		}
	}

	s.log.Info("Event updated", "event_id", event.ID)
	s.broadcast(MsgEventsChanged, map[string]interface{}{"action": "updated", "event": event})
	return event, nil
}

// DeleteEvent removes an event and its check-in rules. Unknown ids are ignored.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.log.Info("Event deleted", "event_id", id)
	s.broadcast(MsgEventsChanged, map[string]interface{}{"action": "deleted", "event_id": id})
	return nil
}

func (s *EventService) broadcast(msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(msgType, payload)
	}
}

// normalizeEvent checks required fields and rewrites the date in DateLayout
func normalizeEvent(e *models.Event) error {
	if e.Name == "" {
		return ErrEventNameRequired
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrEventDateRequired
	}
	date, err := parseDate(e.Date)
	if err != nil {
		return errors.Validationf("Data inválida: %s", e.Date)
	}
	e.Date = date.Format(DateLayout)
	if e.Location == "" {
		return ErrEventLocationMissing
	}
	if e.Status != models.EventStatusActive && e.Status != models.EventStatusClosed {
		return ErrInvalidEventStatus
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
