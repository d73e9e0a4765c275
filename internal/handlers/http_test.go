package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/abrezinsky/eventdash/internal/errors"
	"github.com/abrezinsky/eventdash/internal/handlers"
	"github.com/abrezinsky/eventdash/internal/services"
)

func TestAPIError_Error(t *testing.T) {
	err := handlers.NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "test message")

	if err.Error() != "test message" {
		t.Errorf("expected 'test message', got %q", err.Error())
	}
	if err.Code != "BAD_REQUEST" {
		t.Errorf("expected code 'BAD_REQUEST', got %q", err.Code)
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *handlers.APIError
		status int
		code   string
	}{
		{"BadRequest", handlers.BadRequest("x"), http.StatusBadRequest, handlers.ErrCodeBadRequest},
		{"ValidationError", handlers.ValidationError("x"), http.StatusBadRequest, handlers.ErrCodeValidation},
		{"Unauthorized", handlers.Unauthorized("x"), http.StatusUnauthorized, handlers.ErrCodeUnauthorized},
		{"NotFound", handlers.NotFound("x"), http.StatusNotFound, handlers.ErrCodeNotFound},
		{"Conflict", handlers.Conflict("x"), http.StatusConflict, handlers.ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.Status)
			}
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Message != "x" {
				t.Errorf("expected message 'x', got %q", tt.err.Message)
			}
		})
	}
}

func TestInternalError_HidesCause(t *testing.T) {
	err := handlers.InternalError(fmt.Errorf("db connection failed"))

	if err.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.Status)
	}
	if strings.Contains(err.Message, "db connection") {
		t.Errorf("internal errors must not expose the cause, got %q", err.Message)
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            *handlers.APIError
		expectedStatus int
	}{
		{"ErrBadRequest", handlers.ErrBadRequest, http.StatusBadRequest},
		{"ErrUnauthorized", handlers.ErrUnauthorized, http.StatusUnauthorized},
		{"ErrNotFound", handlers.ErrNotFound, http.StatusNotFound},
		{"ErrInternalServer", handlers.ErrInternalServer, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, tt.err.Status)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", services.ErrEventNotFound, http.StatusNotFound, handlers.ErrCodeNotFound},
		{"validation", services.ErrRuleNameRequired, http.StatusBadRequest, handlers.ErrCodeValidation},
		{"invalid input", errors.InvalidInput("bad"), http.StatusBadRequest, handlers.ErrCodeValidation},
		{"conflict", services.ErrSaveInProgress, http.StatusConflict, handlers.ErrCodeConflict},
		{"unauthorized", errors.Unauthorized("no"), http.StatusUnauthorized, handlers.ErrCodeUnauthorized},
		{"internal kind", errors.Internal(fmt.Errorf("cause")), http.StatusInternalServerError, handlers.ErrCodeInternalServer},
		{"wrapped", fmt.Errorf("loading: %w", services.ErrParticipantNotFound), http.StatusNotFound, handlers.ErrCodeNotFound},
		{"plain", fmt.Errorf("database error"), http.StatusInternalServerError, handlers.ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := handlers.ToAPIError(tt.err)
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, apiErr.Code)
			}
		})
	}
}

func TestToAPIError_KeepsMessage(t *testing.T) {
	apiErr := handlers.ToAPIError(services.ErrParticipantEmail)

	if apiErr.Message != "E-mail inválido" {
		t.Errorf("expected service message, got %q", apiErr.Message)
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/events", nil)
	expectError(t, rec, http.StatusBadRequest, handlers.ErrCodeBadRequest, "Corpo da requisição vazio")
}

func TestDecodeJSON_InvalidJSON(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/events", "{invalid}")
	expectStatus(t, rec, http.StatusBadRequest)
	if !strings.Contains(rec.Body.String(), "JSON") {
		t.Errorf("expected error to mention JSON, got %q", rec.Body.String())
	}
}

func TestRespondJSON_ContentType(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/api/events", nil)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}
