package handlers

import (
	"net/http"

	"github.com/abrezinsky/eventdash/internal/models"
)

func (h *Handlers) handleGetCheckinRules(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	rules, err := h.Rules.GetCheckinRules(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, CheckinRulesResponse{Rules: rules, Validation: h.Rules.ValidateRules(rules)})
}

// handleSaveCheckinRules replaces an event's rules. Conflicts and warnings
// are reported alongside the saved list but never reject the save.
func (h *Handlers) handleSaveCheckinRules(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CheckinRulesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Rules == nil {
		req.Rules = []models.CheckinRule{}
	}

	saved, err := h.Rules.SaveCheckinRules(r.Context(), eventID, req.Rules)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, CheckinRulesResponse{Rules: saved, Validation: h.Rules.ValidateRules(saved)})
}

func (h *Handlers) handleValidateCheckinRules(w http.ResponseWriter, r *http.Request) {
	var req CheckinRulesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Rules == nil {
		req.Rules = []models.CheckinRule{}
	}

	respondOK(w, CheckinRulesResponse{Rules: req.Rules, Validation: h.Rules.ValidateRules(req.Rules)})
}
