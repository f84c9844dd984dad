package handler

import (
	"net/http"
)

func (h *Handler) checkinStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	can, err := h.checkin.CanCheckin(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"canCheckin": can,
		"preview":    h.checkin.RewardPreview(user.Role),
	})
}

func (h *Handler) performCheckin(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	res, err := h.checkin.PerformDailyCheckin(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
