package checkin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/abrezinsky/eventdash/internal/models"
)

// Defaults applied to rules created with Add
const (
	DefaultMinutesBefore = 30
	DefaultMinutesAfter  = 60
)

var (
	// ErrRuleNameRequired is returned by Save when a rule has a blank name
	ErrRuleNameRequired = errors.New("every check-in rule needs a name")
	// ErrRuleNotFound is returned by UpdateStrict for an unknown rule id
	ErrRuleNotFound = errors.New("check-in rule not found")
)

// Saver persists the complete rule list of an event and returns the
// canonical saved list
type Saver interface {
	SaveCheckinRules(ctx context.Context, eventID string, rules []models.CheckinRule) ([]models.CheckinRule, error)
}

// RulePatch carries a partial rule update; nil fields are left untouched
type RulePatch struct {
	Name          *string `json:"name"`
	Enabled       *bool   `json:"enabled"`
	Required      *bool   `json:"required"`
	MinutesBefore *int    `json:"minutes_before"`
	MinutesAfter  *int    `json:"minutes_after"`
}

func (p RulePatch) apply(r *models.CheckinRule) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Enabled != nil {
		r.Enabled = *p.Enabled
	}
	if p.Required != nil {
		r.Required = *p.Required
	}
	if p.MinutesBefore != nil {
		r.MinutesBefore = *p.MinutesBefore
	}
	if p.MinutesAfter != nil {
		r.MinutesAfter = *p.MinutesAfter
	}
}

// Session is the working copy of one event's rules during an editing
// session. It is owned by a single editor and is not safe for concurrent use.
type Session struct {
	eventID string
	rules   []models.CheckinRule
	dirty   bool
	newID   func() string
}

// NewSession starts an editing session over the event's persisted rules
func NewSession(eventID string, rules []models.CheckinRule) *Session {
	s := &Session{eventID: eventID, newID: uuid.NewString}
	s.Load(rules)
	return s
}

// SetIDGenerator overrides how Add generates rule ids (for testing)
func (s *Session) SetIDGenerator(fn func() string) {
	s.newID = fn
}

// EventID returns the event whose rules are being edited
func (s *Session) EventID() string {
	return s.eventID
}

// Load replaces the working copy and clears the dirty flag. Call it when
// the canonical list changes: a different event was picked, the rules were
// reloaded, or a save returned the saved list.
func (s *Session) Load(rules []models.CheckinRule) {
	s.rules = append([]models.CheckinRule(nil), rules...)
	s.dirty = false
}

// Add appends a blank rule with the default window and returns it
func (s *Session) Add() models.CheckinRule {
	rule := models.CheckinRule{
		ID:            s.newID(),
		EventID:       s.eventID,
		Name:          "",
		Enabled:       true,
		Required:      false,
		MinutesBefore: DefaultMinutesBefore,
		MinutesAfter:  DefaultMinutesAfter,
	}
	s.rules = append(s.rules, rule)
	s.dirty = true
	return rule
}

// Update merges the patch into the rule with the given id. An unknown id is
// ignored so that an edit racing a removal does not fail, but the session is
// still marked dirty.
func (s *Session) Update(id string, patch RulePatch) {
	if i := s.indexOf(id); i >= 0 {
		patch.apply(&s.rules[i])
	}
	s.dirty = true
}

// UpdateStrict is Update for callers that need the rule to exist
func (s *Session) UpdateStrict(id string, patch RulePatch) error {
	if s.indexOf(id) < 0 {
		return ErrRuleNotFound
	}
	s.Update(id, patch)
	return nil
}

// Remove deletes the rule with the given id, if present, and marks the
// session dirty
func (s *Session) Remove(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.rules = append(s.rules[:i:i], s.rules[i+1:]...)
	}
	s.dirty = true
}

// Rules returns a copy of the working list
func (s *Session) Rules() []models.CheckinRule {
	return append([]models.CheckinRule{}, s.rules...)
}

// HasChanges reports whether the working copy was edited since the last Load
func (s *Session) HasChanges() bool {
	return s.dirty
}

// Validation recomputes the report for the current working copy
func (s *Session) Validation() Validation {
	return Validate(s.rules)
}

// NamesComplete reports whether every rule, enabled or not, has a name
func NamesComplete(rules []models.CheckinRule) bool {
	for _, r := range rules {
		if strings.TrimSpace(r.Name) == "" {
			return false
		}
	}
	return true
}

// CanSave reports whether a save may start. saving is the caller's
// in-flight flag.
func (s *Session) CanSave(saving bool) bool {
	return !saving && NamesComplete(s.rules)
}

// Save hands the working copy to the saver and loads the canonical result.
// If the saver fails, the working copy and dirty flag are left as they were.
func (s *Session) Save(ctx context.Context, saver Saver) error {
	pending, err := s.Pending()
	if err != nil {
		return err
	}
	saved, err := saver.SaveCheckinRules(ctx, s.eventID, pending)
	if err != nil {
		return err
	}
	s.Load(saved)
	return nil
}

// Pending returns a copy of the list a save would hand to the saver, or
// ErrRuleNameRequired. Callers that persist outside the session call Load
// with the canonical result once the saver answers.
func (s *Session) Pending() ([]models.CheckinRule, error) {
	if !NamesComplete(s.rules) {
		return nil, ErrRuleNameRequired
	}
	return s.Rules(), nil
}

func (s *Session) indexOf(id string) int {
	for i := range s.rules {
		if s.rules[i].ID == id {
			return i
		}
	}
	return -1
}
