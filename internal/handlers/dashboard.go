package handlers

import "net/http"

func (h *Handlers) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.Dashboard.GetDashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, data)
}
