package handlers

import (
	"github.com/abrezinsky/eventdash/internal/checkin"
	"github.com/abrezinsky/eventdash/internal/models"
)

// MessageResponse is a plain confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// CheckinRulesResponse is a rule list with its validation report
type CheckinRulesResponse struct {
	Rules      []models.CheckinRule `json:"rules"`
	Validation checkin.Validation   `json:"validation"`
}
