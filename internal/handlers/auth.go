package handlers

import (
	"net/http"
	"strings"

	"github.com/abrezinsky/eventdash/internal/auth"
)

// handleLogin checks the operator credentials and opens a session.
// The token is returned in the body and also set as a cookie.
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, ValidationError("Informe e-mail e senha"))
		return
	}

	token, user, ok := h.Auth.Login(req.Email, req.Password)
	if !ok {
		respondError(w, Unauthorized("Credenciais inválidas"))
		return
	}

	auth.SetSessionCookie(w, token)
	respondOK(w, LoginResponse{Token: token, User: user})
}

// handleLogout invalidates the current session
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromRequest(r); token != "" {
		h.Auth.Logout(token)
	}

	auth.ClearSessionCookie(w)
	respondSuccess(w, "Sessão encerrada")
}

// handleMe returns the authenticated operator
func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}
	respondOK(w, user)
}
