package handler

import "net/http"

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.wallets.Leaderboard(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": rows})
}

func (h *Handler) recentActivity(w http.ResponseWriter, r *http.Request) {
	txs, err := h.wallets.RecentActivity(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activity": txs})
}
