package services_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/abrezinsky/eventdash/internal/checkin"
	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/models"
	"github.com/abrezinsky/eventdash/internal/repository"
	"github.com/abrezinsky/eventdash/internal/services"
	"github.com/abrezinsky/eventdash/internal/testutil"
)

func newSessionService(t *testing.T) (*services.SessionService, *services.CheckinRuleService) {
	t.Helper()
	repo := testutil.NewSeededRepository(t)
	rules := services.NewCheckinRuleService(logger.New(), repo, repo)
	return services.NewSessionService(logger.New(), rules), rules
}

// blockingStore holds every save until release is closed
type blockingStore struct {
	mu      sync.Mutex
	rules   []models.CheckinRule
	started chan struct{}
	release chan struct{}
	err     error
}

func newBlockingStore() *blockingStore {
	return &blockingStore{
		rules:   append([]models.CheckinRule(nil), repository.SampleCheckinRules...),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (s *blockingStore) GetCheckinRules(ctx context.Context, eventID string) ([]models.CheckinRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CheckinRule(nil), s.rules...), nil
}

func (s *blockingStore) SaveCheckinRules(ctx context.Context, eventID string, rules []models.CheckinRule) ([]models.CheckinRule, error) {
	s.started <- struct{}{}
	<-s.release
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append([]models.CheckinRule(nil), rules...)
	return append([]models.CheckinRule(nil), rules...), nil
}

func TestSessionService_OpenSession(t *testing.T) {
	svc, _ := newSessionService(t)

	state, err := svc.OpenSession(context.Background(), "1")
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if state.ID == "" || state.EventID != "1" {
		t.Errorf("unexpected session identity: %+v", state)
	}
	if len(state.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(state.Rules))
	}
	if state.HasChanges {
		t.Error("a fresh session has no changes")
	}
	if !state.CanSave || state.Saving {
		t.Errorf("expected savable idle session, got can_save=%v saving=%v", state.CanSave, state.Saving)
	}
	if !state.Validation.HasActiveRule || len(state.Validation.Warnings) != 0 {
		t.Errorf("unexpected validation for sample rules: %+v", state.Validation)
	}
	if svc.Count() != 1 {
		t.Errorf("expected 1 open session, got %d", svc.Count())
	}
}

func TestSessionService_OpenSession_UnknownEvent(t *testing.T) {
	svc, _ := newSessionService(t)

	if _, err := svc.OpenSession(context.Background(), "99"); !errors.Is(err, services.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
	if svc.Count() != 0 {
		t.Error("failed open must not leave a session behind")
	}
}

func TestSessionService_UnknownSession(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["get"] = svc.GetSession("nope")
	_, checks["add"] = svc.AddRule("nope")
	_, checks["update"] = svc.UpdateRule("nope", "1", checkin.RulePatch{}, false)
	_, checks["remove"] = svc.RemoveRule("nope", "1")
	_, checks["save"] = svc.SaveSession(ctx, "nope")
	_, checks["reload"] = svc.ReloadSession(ctx, "nope")
	checks["close"] = svc.CloseSession("nope")

	for op, err := range checks {
		if !errors.Is(err, services.ErrSessionNotFound) {
			t.Errorf("%s: expected ErrSessionNotFound, got %v", op, err)
		}
	}
}

func TestSessionService_EditAndSave(t *testing.T) {
	svc, rules := newSessionService(t)
	ctx := context.Background()

	state, _ := svc.OpenSession(ctx, "1")
	id := state.ID

	state, err := svc.AddRule(id)
	if err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	added := state.Rules[len(state.Rules)-1]
	if added.MinutesBefore != checkin.DefaultMinutesBefore || added.MinutesAfter != checkin.DefaultMinutesAfter {
		t.Errorf("expected default window, got %+v", added)
	}
	if state.CanSave {
		t.Error("a blank rule name must block saving")
	}
	if !state.HasChanges {
		t.Error("expected changes after AddRule")
	}

	if _, err := svc.SaveSession(ctx, id); !errors.Is(err, services.ErrRuleNameRequired) {
		t.Fatalf("expected ErrRuleNameRequired, got %v", err)
	}

	state, err = svc.UpdateRule(id, added.ID, checkin.RulePatch{Name: strPtr("Facial"), MinutesBefore: intPtr(5)}, true)
	if err != nil {
		t.Fatalf("UpdateRule failed: %v", err)
	}
	if !state.CanSave {
		t.Error("expected session to be savable once every rule is named")
	}

	state, err = svc.RemoveRule(id, "3")
	if err != nil {
		t.Fatalf("RemoveRule failed: %v", err)
	}
	if len(state.Rules) != 3 {
		t.Fatalf("expected 3 rules after add and remove, got %d", len(state.Rules))
	}

	state, err = svc.SaveSession(ctx, id)
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if state.HasChanges || state.Saving {
		t.Errorf("expected clean idle session after save, got %+v", state)
	}

	stored, _ := rules.GetCheckinRules(ctx, "1")
	if len(stored) != 3 || stored[2].Name != "Facial" || stored[2].MinutesBefore != 5 {
		t.Errorf("expected saved rules in store, got %+v", stored)
	}
}

func TestSessionService_UpdateRule_MissingRule(t *testing.T) {
	svc, _ := newSessionService(t)
	state, _ := svc.OpenSession(context.Background(), "1")

	lenient, err := svc.UpdateRule(state.ID, "ghost", checkin.RulePatch{Name: strPtr("X")}, false)
	if err != nil {
		t.Fatalf("lenient UpdateRule failed: %v", err)
	}
	if !lenient.HasChanges {
		t.Error("a lenient update of a missing rule still marks the session changed")
	}
	if !reflect.DeepEqual(lenient.Rules, state.Rules) {
		t.Error("a lenient update of a missing rule must not change the rules")
	}

	if _, err := svc.UpdateRule(state.ID, "ghost", checkin.RulePatch{}, true); !errors.Is(err, services.ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound in strict mode, got %v", err)
	}
}

func TestSessionService_ConflictFlags(t *testing.T) {
	svc, _ := newSessionService(t)
	state, _ := svc.OpenSession(context.Background(), "1")

	// Make "Documento" mandatory with a window after QR Code's closes
	state, err := svc.UpdateRule(state.ID, "2", checkin.RulePatch{
		Required:      boolPtr(true),
		MinutesBefore: intPtr(-90),
		MinutesAfter:  intPtr(120),
	}, true)
	if err != nil {
		t.Fatalf("UpdateRule failed: %v", err)
	}

	if len(state.Validation.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", state.Validation.Conflicts)
	}
	flags := map[string]bool{}
	for _, r := range state.Rules {
		flags[r.ID] = r.HasConflict
	}
	if !flags["1"] || !flags["2"] || flags["3"] {
		t.Errorf("unexpected conflict flags %v", flags)
	}
	if !state.CanSave {
		t.Error("conflicts must not block saving")
	}
}

func TestSessionService_ReloadDiscardsChanges(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()
	state, _ := svc.OpenSession(ctx, "1")

	svc.RemoveRule(state.ID, "1")
	state, err := svc.ReloadSession(ctx, state.ID)
	if err != nil {
		t.Fatalf("ReloadSession failed: %v", err)
	}
	if state.HasChanges || len(state.Rules) != 3 {
		t.Errorf("expected stored rules back, got %+v", state)
	}
}

func TestSessionService_CloseSession(t *testing.T) {
	svc, _ := newSessionService(t)
	state, _ := svc.OpenSession(context.Background(), "1")

	if err := svc.CloseSession(state.ID); err != nil {
		t.Fatalf("CloseSession failed: %v", err)
	}
	if _, err := svc.GetSession(state.ID); !errors.Is(err, services.ErrSessionNotFound) {
		t.Errorf("expected closed session to be gone, got %v", err)
	}
}

func TestSessionService_SecondSaveWhileInFlight(t *testing.T) {
	store := newBlockingStore()
	svc := services.NewSessionService(logger.New(), store)
	ctx := context.Background()

	state, _ := svc.OpenSession(ctx, "1")
	svc.RemoveRule(state.ID, "3")

	done := make(chan error, 1)
	go func() {
		_, err := svc.SaveSession(ctx, state.ID)
		done <- err
	}()
	<-store.started

	if _, err := svc.SaveSession(ctx, state.ID); !errors.Is(err, services.ErrSaveInProgress) {
		t.Errorf("expected ErrSaveInProgress, got %v", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	after, err := svc.GetSession(state.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if after.Saving || after.HasChanges || len(after.Rules) != 2 {
		t.Errorf("expected saved idle session with 2 rules, got %+v", after)
	}
}

func TestSessionService_StateDuringSave(t *testing.T) {
	store := newBlockingStore()
	svc := services.NewSessionService(logger.New(), store)
	ctx := context.Background()

	state, _ := svc.OpenSession(ctx, "1")
	svc.RemoveRule(state.ID, "3")

	done := make(chan error, 1)
	go func() {
		_, err := svc.SaveSession(ctx, state.ID)
		done <- err
	}()
	<-store.started

	got := make(chan *services.SessionState, 1)
	go func() {
		during, err := svc.GetSession(state.ID)
		if err != nil {
			t.Errorf("GetSession failed: %v", err)
		}
		got <- during
	}()

	select {
	case during := <-got:
		if during == nil {
			break
		}
		if !during.Saving || during.CanSave {
			t.Errorf("expected saving=true can_save=false during save, got saving=%v can_save=%v", during.Saving, during.CanSave)
		}
		if !during.HasChanges || len(during.Rules) != 2 {
			t.Errorf("expected the unsaved working copy during save, got %+v", during)
		}
	case <-time.After(time.Second):
		t.Fatal("GetSession waited for the in-flight save")
	}

	if _, err := svc.AddRule(state.ID); !errors.Is(err, services.ErrSaveInProgress) {
		t.Errorf("expected AddRule to be rejected during save, got %v", err)
	}
	if _, err := svc.UpdateRule(state.ID, "1", checkin.RulePatch{Name: strPtr("QR")}, false); !errors.Is(err, services.ErrSaveInProgress) {
		t.Errorf("expected UpdateRule to be rejected during save, got %v", err)
	}
	if _, err := svc.RemoveRule(state.ID, "1"); !errors.Is(err, services.ErrSaveInProgress) {
		t.Errorf("expected RemoveRule to be rejected during save, got %v", err)
	}
	if _, err := svc.ReloadSession(ctx, state.ID); !errors.Is(err, services.ErrSaveInProgress) {
		t.Errorf("expected ReloadSession to be rejected during save, got %v", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("save failed: %v", err)
	}

	after, _ := svc.GetSession(state.ID)
	if after.Saving || !after.CanSave || after.HasChanges || len(after.Rules) != 2 {
		t.Errorf("expected saved idle session, got %+v", after)
	}
	if _, err := svc.AddRule(state.ID); err != nil {
		t.Errorf("expected edits to resume after the save, got %v", err)
	}
}

func TestSessionService_SaveFailureKeepsWorkingCopy(t *testing.T) {
	store := newBlockingStore()
	store.err = errors.New("network down")
	close(store.release)
	svc := services.NewSessionService(logger.New(), store)
	ctx := context.Background()

	state, _ := svc.OpenSession(ctx, "1")
	svc.UpdateRule(state.ID, "1", checkin.RulePatch{Name: strPtr("QR")}, false)

	if _, err := svc.SaveSession(ctx, state.ID); !errors.Is(err, store.err) {
		t.Fatalf("expected store error, got %v", err)
	}

	after, _ := svc.GetSession(state.ID)
	if !after.HasChanges || after.Rules[0].Name != "QR" {
		t.Errorf("expected working copy kept after failed save, got %+v", after)
	}
	if after.Saving || !after.CanSave {
		t.Error("expected the save gate to reopen after a failure")
	}
}

func TestSessionService_PruneIdle(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	stale, _ := svc.OpenSession(ctx, "1")
	now = now.Add(20 * time.Minute)
	fresh, _ := svc.OpenSession(ctx, "1")
	now = now.Add(15 * time.Minute)

	if n := svc.PruneIdle(30 * time.Minute); n != 1 {
		t.Errorf("expected 1 pruned session, got %d", n)
	}
	if _, err := svc.GetSession(stale.ID); !errors.Is(err, services.ErrSessionNotFound) {
		t.Error("expected stale session to be pruned")
	}
	if _, err := svc.GetSession(fresh.ID); err != nil {
		t.Errorf("expected fresh session to survive, got %v", err)
	}
}

func TestSessionService_RunJanitorStopsOnCancel(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunJanitor(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
