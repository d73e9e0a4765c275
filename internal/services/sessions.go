package services

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/abrezinsky/eventdash/internal/checkin"
	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/models"
)

// RuleStore loads and saves the canonical rule list of an event
type RuleStore interface {
	checkin.Saver
	GetCheckinRules(ctx context.Context, eventID string) ([]models.CheckinRule, error)
}

// RuleState is a working-copy rule annotated for display
type RuleState struct {
	models.CheckinRule
	HasConflict bool `json:"has_conflict"`
}

// SessionState is a snapshot of an editing session
type SessionState struct {
	ID         string             `json:"id"`
	EventID    string             `json:"event_id"`
	Rules      []RuleState        `json:"rules"`
	Validation checkin.Validation `json:"validation"`
	HasChanges bool               `json:"has_changes"`
	CanSave    bool               `json:"can_save"`
	Saving     bool               `json:"saving"`
}

type editSession struct {
	mu       sync.Mutex
	session  *checkin.Session
	saving   atomic.Bool
	lastUsed atomic.Int64 // unix nanos
}

func (e *editSession) touch(now time.Time) {
	e.lastUsed.Store(now.UnixNano())
}

// state must be called with e.mu held
func (e *editSession) state(id string) *SessionState {
	v := e.session.Validation()
	rules := e.session.Rules()
	states := make([]RuleState, len(rules))
	for i, r := range rules {
		states[i] = RuleState{CheckinRule: r, HasConflict: v.HasConflict(r.ID)}
	}
	saving := e.saving.Load()
	return &SessionState{
		ID:         id,
		EventID:    e.session.EventID(),
		Rules:      states,
		Validation: v,
		HasChanges: e.session.HasChanges(),
		CanSave:    e.session.CanSave(saving),
		Saving:     saving,
	}
}

// SessionService keeps server-held rule editing sessions. Each session is
// serialised by its own lock. While a save is in flight the session can be
// read but not edited.
type SessionService struct {
	log   logger.Logger
	store RuleStore
	newID func() string
	now   func() time.Time

	mu       sync.RWMutex
	sessions map[string]*editSession
}

// NewSessionService creates a new SessionService
func NewSessionService(log logger.Logger, store RuleStore) *SessionService {
	return &SessionService{
		log:      log,
		store:    store,
		newID:    uuid.NewString,
		now:      time.Now,
		sessions: make(map[string]*editSession),
	}
}

// SetClock overrides the time source used for idle tracking (for testing)
func (s *SessionService) SetClock(now func() time.Time) {
	s.now = now
}

// OpenSession loads an event's rules into a new editing session
func (s *SessionService) OpenSession(ctx context.Context, eventID string) (*SessionState, error) {
	rules, err := s.store.GetCheckinRules(ctx, eventID)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	e := &editSession{session: checkin.NewSession(eventID, rules)}
	e.touch(s.now())

	s.mu.Lock()
	s.sessions[id] = e
	s.mu.Unlock()

	s.log.Debug("Editing session opened", "session_id", id, "event_id", eventID, "rules", len(rules))
	return s.withLock(id, e, func() error { return nil })
}

// GetSession returns the current state of a session
func (s *SessionService) GetSession(id string) (*SessionState, error) {
	return s.do(id, func(*checkin.Session) error { return nil })
}

// AddRule appends a blank rule with the default window
func (s *SessionService) AddRule(id string) (*SessionState, error) {
	return s.mutate(id, func(sess *checkin.Session) error {
		sess.Add()
		return nil
	})
}

// UpdateRule merges patch into a rule. Unless strict, an unknown rule id
// is ignored but still marks the session changed.
func (s *SessionService) UpdateRule(id, ruleID string, patch checkin.RulePatch, strict bool) (*SessionState, error) {
	return s.mutate(id, func(sess *checkin.Session) error {
		if !strict {
			sess.Update(ruleID, patch)
			return nil
		}
		if err := sess.UpdateStrict(ruleID, patch); stderrors.Is(err, checkin.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		return nil
	})
}

// RemoveRule deletes a rule from the working copy
func (s *SessionService) RemoveRule(id, ruleID string) (*SessionState, error) {
	return s.mutate(id, func(sess *checkin.Session) error {
		sess.Remove(ruleID)
		return nil
	})
}

// SaveSession persists the working copy and reloads the stored list.
// Only one save per session may be in flight. The session lock is released
// while the store works, so GetSession keeps answering and reports the save;
// edits and reloads are rejected until it resolves.
func (s *SessionService) SaveSession(ctx context.Context, id string) (*SessionState, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !e.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInProgress
	}

	e.mu.Lock()
	e.touch(s.now())
	eventID := e.session.EventID()
	pending, err := e.session.Pending()
	e.mu.Unlock()
	if err != nil {
		e.saving.Store(false)
		if stderrors.Is(err, checkin.ErrRuleNameRequired) {
			return nil, ErrRuleNameRequired
		}
		return nil, err
	}

	saved, err := s.store.SaveCheckinRules(ctx, eventID, pending)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving.Store(false)
	e.touch(s.now())
	if err != nil {
		s.log.Warn("Editing session save failed", "session_id", id, "event_id", eventID, "error", err)
		return nil, err
	}
	e.session.Load(saved)
	return e.state(id), nil
}

// ReloadSession discards the working copy and reloads the stored rules
func (s *SessionService) ReloadSession(ctx context.Context, id string) (*SessionState, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.withLock(id, e, func() error {
		if e.saving.Load() {
			return ErrSaveInProgress
		}
		rules, err := s.store.GetCheckinRules(ctx, e.session.EventID())
		if err != nil {
			return err
		}
		e.session.Load(rules)
		return nil
	})
}

// CloseSession abandons a session without saving
func (s *SessionService) CloseSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.log.Debug("Editing session closed", "session_id", id)
	return nil
}

// Count returns the number of open sessions
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PruneIdle closes sessions unused for longer than maxIdle and returns how
// many were closed. Sessions with a save in flight are kept.
func (s *SessionService) PruneIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for id, e := range s.sessions {
		if e.saving.Load() || e.lastUsed.Load() >= cutoff {
			continue
		}
		delete(s.sessions, id)
		pruned++
	}
	if pruned > 0 {
		s.log.Info("Pruned idle editing sessions", "count", pruned)
	}
	return pruned
}

// RunJanitor prunes idle sessions every interval until ctx is done
func (s *SessionService) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Session janitor stopped")
			return
		case <-ticker.C:
			s.PruneIdle(maxIdle)
		}
	}
}

func (s *SessionService) get(id string) (*editSession, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// do runs fn against the session under its lock and returns the new state
func (s *SessionService) do(id string, fn func(*checkin.Session) error) (*SessionState, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.withLock(id, e, func() error { return fn(e.session) })
}

// mutate is do for edits, which must wait until an in-flight save resolves
func (s *SessionService) mutate(id string, fn func(*checkin.Session) error) (*SessionState, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.withLock(id, e, func() error {
		if e.saving.Load() {
			return ErrSaveInProgress
		}
		return fn(e.session)
	})
}

func (s *SessionService) withLock(id string, e *editSession, fn func() error) (*SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch(s.now())
	if err := fn(); err != nil {
		return nil, err
	}
	return e.state(id), nil
}
