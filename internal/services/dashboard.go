package services

import (
	"context"

	"github.com/abrezinsky/eventdash/internal/logger"
	"github.com/abrezinsky/eventdash/internal/models"
	"github.com/abrezinsky/eventdash/internal/repository"
)

// Dashboard list sizes
const (
	RecentCheckinsLimit = 4
	UpcomingEventsLimit = 4
)

// DashboardService assembles the dashboard summary
type DashboardService struct {
	log          logger.Logger
	events       repository.EventRepository
	participants repository.ParticipantRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(log logger.Logger, events repository.EventRepository, participants repository.ParticipantRepository) *DashboardService {
	return &DashboardService{log: log, events: events, participants: participants}
}

// GetDashboard returns totals, the latest check-ins and the next active events
func (s *DashboardService) GetDashboard(ctx context.Context) (*models.DashboardData, error) {
	totalEvents, err := s.events.CountEvents(ctx)
	if err != nil {
		return nil, err
	}
	totalParticipants, err := s.participants.CountParticipants(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.participants.ListRecentCheckins(ctx, RecentCheckinsLimit)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.events.ListUpcomingEvents(ctx, UpcomingEventsLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardData{
		TotalEvents:       totalEvents,
		TotalParticipants: totalParticipants,
		RecentCheckins:    recent,
		UpcomingEvents:    upcoming,
	}, nil
}
