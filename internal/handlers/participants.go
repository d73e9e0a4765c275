package handlers

import (
	"net/http"

	"github.com/abrezinsky/eventdash/internal/services"
)

func (h *Handlers) handleGetParticipants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	participants, err := h.Participants.ListParticipants(r.Context(), services.ParticipantFilter{
		Search:  q.Get("search"),
		EventID: q.Get("event_id"),
		Checkin: q.Get("checkin"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participants)
}

func (h *Handlers) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.Participants.GetParticipant(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, p)
}

func (h *Handlers) handleCreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req services.ParticipantInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.Participants.CreateParticipant(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, p)
}

func (h *Handlers) handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req services.ParticipantPatch
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.Participants.UpdateParticipant(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, p)
}

func (h *Handlers) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Participants.DeleteParticipant(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleToggleCheckin(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	p, err := h.Participants.ToggleCheckin(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, p)
}

func (h *Handlers) handleGetParticipantQR(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Participants.GenerateQRImage(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
