package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/models"
	"github.com/abrezinsky/eventdash/internal/repository"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Check-in filter values for ParticipantFilter.Checkin
const (
	CheckinDone    = "done"
	CheckinPending = "pending"
	CheckinAll     = "all"
)

// ParticipantFilter narrows ListParticipants. Empty fields match everything.
type ParticipantFilter struct {
	Search  string // case-insensitive match on name or email
	EventID string // event id, or "all"
	Checkin string // done, pending, or all
}

// ParticipantInput carries the fields of a new participant
type ParticipantInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	EventID string `json:"event_id"`
}

// ParticipantPatch carries a partial participant update; nil fields are left untouched
type ParticipantPatch struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	EventID   *string `json:"event_id"`
	CheckedIn *bool   `json:"checked_in"`
}

// ParticipantService handles participant-related business logic
type ParticipantService struct {
	log         logger.Logger
	repo        repository.ParticipantRepository
	events      repository.EventRepository
	baseURL     string
	now         func() time.Time
	broadcaster Broadcaster
}

// NewParticipantService creates a new ParticipantService. baseURL prefixes
// the check-in links encoded in participant QR codes.
func NewParticipantService(log logger.Logger, repo repository.ParticipantRepository, events repository.EventRepository, baseURL string) *ParticipantService {
	return &ParticipantService{
		log:     log,
		repo:    repo,
		events:  events,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *ParticipantService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetClock overrides the time source for check-in stamps (for testing)
func (s *ParticipantService) SetClock(now func() time.Time) {
	s.now = now
}

// ListParticipants returns the participants matching filter in registration order
func (s *ParticipantService) ListParticipants(ctx context.Context, filter ParticipantFilter) ([]models.Participant, error) {
	participants, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	eventID := filter.EventID
	if eventID == "all" {
		eventID = ""
	}

	matched := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if eventID != "" && p.EventID != eventID {
			continue
		}
		switch filter.Checkin {
		case CheckinDone:
			if !p.CheckedIn {
				continue
			}
		case CheckinPending:
			if p.CheckedIn {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Email), search) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// GetParticipant returns a participant by ID
func (s *ParticipantService) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	p, err := s.repo.GetParticipant(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, ErrParticipantNotFound
	}
	return p, err
}

// CreateParticipant validates and registers a participant for an existing event
func (s *ParticipantService) CreateParticipant(ctx context.Context, input ParticipantInput) (*models.Participant, error) {
	p := models.Participant{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		EventID: input.EventID,
	}
	if err := s.resolve(ctx, &p); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateParticipant(ctx, p)
	if err != nil {
		return nil, err
	}

	s.log.Info("Participant created", "participant_id", created.ID, "event_id", created.EventID)
	s.broadcast(MsgParticipantsChanged, map[string]interface{}{"action": "created", "participant": created})
	return &created, nil
}

// UpdateParticipant merges patch into an existing participant
func (s *ParticipantService) UpdateParticipant(ctx context.Context, id string, patch ParticipantPatch) (*models.Participant, error) {
	p, err := s.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		p.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.EventID != nil {
		p.EventID = *patch.EventID
	}
	if patch.CheckedIn != nil && *patch.CheckedIn != p.CheckedIn {
		s.stamp(p, *patch.CheckedIn)
	}
	if err := s.resolve(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateParticipant(ctx, *p); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	s.log.Info("Participant updated", "participant_id", p.ID)
	s.broadcast(MsgParticipantsChanged, map[string]interface{}{"action": "updated", "participant": p})
	return p, nil
}

// DeleteParticipant removes a participant. Unknown ids are ignored.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, id string) error {
	if err := s.repo.DeleteParticipant(ctx, id); err != nil {
		return err
	}
	s.log.Info("Participant deleted", "participant_id", id)
	s.broadcast(MsgParticipantsChanged, map[string]interface{}{"action": "deleted", "participant_id": id})
	return nil
}

// ToggleCheckin flips a participant's check-in state. Checking in stamps
// the current time; undoing it clears the stamp.
func (s *ParticipantService) ToggleCheckin(ctx context.Context, id string) (*models.Participant, error) {
	p, err := s.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}

	s.stamp(p, !p.CheckedIn)
	if err := s.repo.SetCheckedIn(ctx, p.ID, p.CheckedIn, p.CheckedInAt); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	s.log.Info("Participant check-in toggled", "participant_id", p.ID, "checked_in", p.CheckedIn)
	s.broadcast(MsgParticipantCheckin, p)
	return p, nil
}

// GenerateQRImage renders a PNG QR code pointing at the participant's check-in link
func (s *ParticipantService) GenerateQRImage(ctx context.Context, id string) ([]byte, error) {
	p, err := s.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(s.CheckinURL(p.ID), qrcode.Medium, 256)
}

// CheckinURL returns the link encoded in a participant's QR code
func (s *ParticipantService) CheckinURL(participantID string) string {
	return fmt.Sprintf("%s/checkin/%s", s.baseURL, participantID)
}

func (s *ParticipantService) broadcast(msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(msgType, payload)
	}
}

func (s *ParticipantService) stamp(p *models.Participant, checkedIn bool) {
	p.CheckedIn = checkedIn
	p.CheckedInAt = ""
	if checkedIn {
		p.CheckedInAt = s.now().Format(DateLayout)
	}
}

// resolve validates p and copies the event name from its event
func (s *ParticipantService) resolve(ctx context.Context, p *models.Participant) error {
	if p.Name == "" {
		return ErrParticipantName
	}
	if p.Email == "" {
		return ErrParticipantEmailMiss
	}
	if !emailPattern.MatchString(p.Email) {
		return ErrParticipantEmail
	}
	if p.EventID == "" {
		return ErrParticipantEvent
	}

	event, err := s.events.GetEvent(ctx, p.EventID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	p.EventName = event.Name
	return nil
}
