package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/abrezinsky/eventdash/internal/checkin"
	"github.com/abrezinsky/eventdash/internal/services"
)

// sessionHandler resolves the session id and writes the resulting state
func (h *Handlers) sessionHandler(fn func(r *http.Request, id string) (*services.SessionState, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "sessionID")
		if err != nil {
			respondError(w, err)
			return
		}

		state, err := fn(r, id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondOK(w, state)
	}
}

func (h *Handlers) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req SessionOpenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		respondError(w, ValidationError("Selecione um evento"))
		return
	}

	state, err := h.Sessions.OpenSession(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, state)
}

func (h *Handlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	h.sessionHandler(func(r *http.Request, id string) (*services.SessionState, error) {
		return h.Sessions.GetSession(id)
	})(w, r)
}

func (h *Handlers) handleAddSessionRule(w http.ResponseWriter, r *http.Request) {
	h.sessionHandler(func(r *http.Request, id string) (*services.SessionState, error) {
		return h.Sessions.AddRule(id)
	})(w, r)
}

// handleUpdateSessionRule patches one working-copy rule. With ?strict=true
// an unknown rule id is a 404; otherwise it is ignored.
func (h *Handlers) handleUpdateSessionRule(w http.ResponseWriter, r *http.Request) {
	h.sessionHandler(func(r *http.Request, id string) (*services.SessionState, error) {
		ruleID, err := idParam(r, "ruleID")
		if err != nil {
			return nil, err
		}
		strict, err := queryBool(r, "strict")
		if err != nil {
			return nil, err
		}

		var patch checkin.RulePatch
		if err := decodeJSON(r, &patch); err != nil {
			return nil, err
		}
		return h.Sessions.UpdateRule(id, ruleID, patch, strict)
	})(w, r)
}

func (h *Handlers) handleRemoveSessionRule(w http.ResponseWriter, r *http.Request) {
	h.sessionHandler(func(r *http.Request, id string) (*services.SessionState, error) {
		ruleID, err := idParam(r, "ruleID")
		if err != nil {
			return nil, err
		}
		return h.Sessions.RemoveRule(id, ruleID)
	})(w, r)
}

func (h *Handlers) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	h.sessionHandler(func(r *http.Request, id string) (*services.SessionState, error) {
		return h.Sessions.SaveSession(r.Context(), id)
	})(w, r)
}

func (h *Handlers) handleReloadSession(w http.ResponseWriter, r *http.Request) {
	h.sessionHandler(func(r *http.Request, id string) (*services.SessionState, error) {
		return h.Sessions.ReloadSession(r.Context(), id)
	})(w, r)
}

func (h *Handlers) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "sessionID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Sessions.CloseSession(id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// queryBool parses an optional boolean query parameter
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, BadRequest("Parâmetro " + name + " inválido")
	}
	return v, nil
}
