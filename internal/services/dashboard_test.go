package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/repository/mock"
	"github.com/abrezinsky/eventdash/internal/services"
	"github.com/abrezinsky/eventdash/internal/testutil"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	repo := testutil.NewSeededRepository(t)
	svc := services.NewDashboardService(logger.New(), repo, repo)

	data, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}

	if data.TotalEvents != 6 || data.TotalParticipants != 8 {
		t.Errorf("expected 6 events and 8 participants, got %d and %d", data.TotalEvents, data.TotalParticipants)
	}
	if len(data.RecentCheckins) != services.RecentCheckinsLimit {
		t.Fatalf("expected %d recent check-ins, got %d", services.RecentCheckinsLimit, len(data.RecentCheckins))
	}
	if data.RecentCheckins[0].ParticipantName != "Ana Silva" {
		t.Errorf("expected the latest check-in first, got %+v", data.RecentCheckins[0])
	}

	wantUpcoming := []string{"1", "2", "6", "4"}
	if len(data.UpcomingEvents) != len(wantUpcoming) {
		t.Fatalf("expected %d upcoming events, got %d", len(wantUpcoming), len(data.UpcomingEvents))
	}
	for i, id := range wantUpcoming {
		if data.UpcomingEvents[i].ID != id {
			t.Errorf("upcoming[%d]: expected %s, got %s", i, id, data.UpcomingEvents[i].ID)
		}
	}
}

func TestDashboardService_EmptyStore(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewDashboardService(logger.New(), repo, repo)

	data, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if data.TotalEvents != 0 || len(data.RecentCheckins) != 0 || len(data.UpcomingEvents) != 0 {
		t.Errorf("expected empty dashboard, got %+v", data)
	}
	if data.RecentCheckins == nil || data.UpcomingEvents == nil {
		t.Error("expected empty lists to encode as [] rather than null")
	}
}

func TestDashboardService_RepositoryErrors(t *testing.T) {
	dbErr := errors.New("database error")

	tests := []struct {
		name   string
		inject func(*mock.Repository)
	}{
		{"count events", func(m *mock.Repository) { m.CountEventsError = dbErr }},
		{"count participants", func(m *mock.Repository) { m.CountParticipantsError = dbErr }},
		{"recent check-ins", func(m *mock.Repository) { m.ListRecentCheckinsError = dbErr }},
		{"upcoming events", func(m *mock.Repository) { m.ListUpcomingEventsError = dbErr }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mock.NewRepository(testutil.NewSeededRepository(t))
			tt.inject(mockRepo)
			svc := services.NewDashboardService(logger.New(), mockRepo, mockRepo)

			if _, err := svc.GetDashboard(context.Background()); !errors.Is(err, dbErr) {
				t.Errorf("expected db error, got %v", err)
			}
		})
	}
}
