package handlers

import "github.com/abrezinsky/eventdash/internal/models"

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckinRulesRequest carries a full rule list for an event
type CheckinRulesRequest struct {
	Rules []models.CheckinRule `json:"rules"`
}

// SessionOpenRequest represents a request to start editing an event's rules
type SessionOpenRequest struct {
	EventID string `json:"event_id"`
}
