package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/taskforge/bountyboard/internal/domain"
	"github.com/taskforge/bountyboard/internal/service"
)

type createTaskRequest struct {
	Title          string           `json:"title"`
	ParentTaskID   *int64           `json:"parentTaskId"`
	AssigneeID     *int64           `json:"assigneeId"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours"`
	RewardCurrency *domain.Currency `json:"rewardCurrency"`
	RewardAmount   *int64           `json:"rewardAmount"`
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}
	task, err := h.tasks.Create(r.Context(), service.CreateTaskParams{
		Title:          req.Title,
		ParentTaskID:   req.ParentTaskID,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		RewardCurrency: req.RewardCurrency,
		RewardAmount:   req.RewardAmount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid task id")
		return
	}
	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type updateHoursRequest struct {
	EstimatedHours *decimal.Decimal `json:"estimatedHours"`
	ActualHours    *decimal.Decimal `json:"actualHours"`
}

func (h *Handler) updateTaskHours(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid task id")
		return
	}
	var req updateHoursRequest
	if !decodeBody(w, r, &req) {
		return
	}
	validation, err := h.tasks.UpdateHours(r.Context(), id, req.EstimatedHours, req.ActualHours)
	if err != nil {
		if !validation.IsValid {
			writeJSON(w, http.StatusUnprocessableEntity, validation)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validation)
}

func (h *Handler) taskHoursReport(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid task id")
		return
	}
	report, err := h.taskHours.CalculateTotalHours(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequest(w, "invalid task id")
		return
	}
	payout, err := h.tasks.Complete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"completed": true, "payout": payout})
}
