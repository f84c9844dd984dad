package handler

import (
	"net/http"

	"github.com/taskforge/bountyboard/internal/domain"
)

type exchangeRequest struct {
	FromCurrency domain.Currency `json:"fromCurrency"`
	ToCurrency   domain.Currency `json:"toCurrency"`
	Amount       int64           `json:"amount"`
}

func (h *Handler) performExchange(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	var req exchangeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.exchange.PerformExchange(r.Context(), id, req.FromCurrency, req.ToCurrency, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
