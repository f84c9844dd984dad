package handler

import (
	"net/http"

	"github.com/taskforge/bountyboard/internal/domain"
	"github.com/taskforge/bountyboard/internal/service"
)

func (h *Handler) getWallet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	wallet, err := h.wallets.GetOrCreate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)
	txs, err := h.wallets.History(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

type createTransactionRequest struct {
	Type        domain.TxType   `json:"type"`
	Currency    domain.Currency `json:"currency"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
}

// createTransaction is the direct ledger operation for administrative
// grants and deductions.
func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	source := req.Source
	if source == "" {
		source = "admin_adjustment"
	}
	tx, wallet, err := h.txs.Create(r.Context(), service.CreateParams{
		UserID:      id,
		Type:        req.Type,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Description: req.Description,
		Source:      source,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transaction": tx, "wallet": wallet})
}

type freezeRequest struct {
	Action   string          `json:"action"` // "freeze" or "unfreeze"
	Currency domain.Currency `json:"currency"`
	Amount   int64           `json:"amount"`
	Reason   string          `json:"reason"`
}

func (h *Handler) freezeBalance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	var req freezeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var txType domain.TxType
	switch req.Action {
	case "freeze":
		txType = domain.TxTypeFreeze
	case "unfreeze":
		txType = domain.TxTypeUnfreeze
	default:
		badRequest(w, "action must be freeze or unfreeze")
		return
	}

	tx, wallet, err := h.txs.Create(r.Context(), service.CreateParams{
		UserID:      id,
		Type:        txType,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Description: req.Reason,
		Source:      "admin_freeze",
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction": tx, "wallet": wallet})
}

type transferRequest struct {
	ToUserID    int64           `json:"toUserId"`
	Currency    domain.Currency `json:"currency"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
}

func (h *Handler) createTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.txs.Transfer(r.Context(), id, req.ToUserID, req.Currency, req.Amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
