package handler

import (
	"net/http"

	"github.com/taskforge/bountyboard/internal/domain"
)

type createUserRequest struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		badRequest(w, "unknown role")
		return
	}
	user, err := h.users.Create(r.Context(), req.Name, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, user)
}

type setStatusRequest struct {
	Status domain.UserStatus `json:"status"`
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}
	var req setStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status != domain.UserStatusActive && req.Status != domain.UserStatusDisabled {
		badRequest(w, "status must be active or disabled")
		return
	}
	if err := h.users.SetStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}
