package handlers

import (
	"net/http"

	"github.com/abrezinsky/eventdash/internal/services"
)

func (h *Handlers) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := h.Events.ListEvents(r.Context(), services.EventFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, events)
}

func (h *Handlers) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	event, err := h.Events.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, event)
}

func (h *Handlers) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req services.EventInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	event, err := h.Events.CreateEvent(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, event)
}

// handleUpdateEvent applies a partial update; fields left out of the body are kept
func (h *Handlers) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req services.EventPatch
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	event, err := h.Events.UpdateEvent(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, event)
}

func (h *Handlers) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Events.DeleteEvent(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}
