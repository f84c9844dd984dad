package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// BountyTask is a unit of work. Tasks form a tree via ParentTaskID; hour
// totals are always recomputed from the subtree, never stored denormalized.
type BountyTask struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Status         TaskStatus       `json:"status"`
	ParentTaskID   *int64           `json:"parentTaskId,omitempty"`
	AssigneeID     *int64           `json:"assigneeId,omitempty"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours"`
	ActualHours    *decimal.Decimal `json:"actualHours"`
	RewardCurrency *Currency        `json:"rewardCurrency,omitempty"`
	RewardAmount   *int64           `json:"rewardAmount,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
