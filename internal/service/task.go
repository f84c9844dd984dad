package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taskforge/bountyboard/internal/domain"
)

// TaskService owns bounty task CRUD and the completion payout.
type TaskService struct {
	store Store
	txs   *TransactionService
}

func NewTaskService(store Store, txs *TransactionService) *TaskService {
	return &TaskService{store: store, txs: txs}
}

// CreateTaskParams describes a new bounty task.
type CreateTaskParams struct {
	Title          string
	ParentTaskID   *int64
	AssigneeID     *int64
	EstimatedHours *decimal.Decimal
	RewardCurrency *domain.Currency
	RewardAmount   *int64
}

func (s *TaskService) Create(ctx context.Context, p CreateTaskParams) (*domain.BountyTask, error) {
	if p.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if p.ParentTaskID != nil {
		if _, err := s.store.TaskByID(ctx, *p.ParentTaskID); err != nil {
			return nil, err
		}
	}
	if p.AssigneeID != nil {
		if _, err := s.store.UserByID(ctx, *p.AssigneeID); err != nil {
			return nil, err
		}
	}
	if p.RewardCurrency != nil && !p.RewardCurrency.Valid() {
		return nil, domain.ErrInvalidCurrency
	}
	if p.RewardAmount != nil && *p.RewardAmount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if v := ValidateHours(p.EstimatedHours, nil); !v.IsValid {
		return nil, domain.ErrInvalidAmount
	}

	return s.store.CreateTask(ctx, &domain.BountyTask{
		Title:          p.Title,
		Status:         domain.TaskStatusOpen,
		ParentTaskID:   p.ParentTaskID,
		AssigneeID:     p.AssigneeID,
		EstimatedHours: p.EstimatedHours,
		RewardCurrency: p.RewardCurrency,
		RewardAmount:   p.RewardAmount,
	})
}

// TaskWithChildren is a task plus its direct children.
type TaskWithChildren struct {
	Task     *domain.BountyTask  `json:"task"`
	Children []domain.BountyTask `json:"children"`
}

func (s *TaskService) Get(ctx context.Context, id int64) (*TaskWithChildren, error) {
	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	children, err := s.store.ChildTasks(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TaskWithChildren{Task: task, Children: children}, nil
}

// UpdateHours persists new hour values. Validation errors block the update;
// warnings are returned alongside success so callers can surface them.
func (s *TaskService) UpdateHours(ctx context.Context, id int64, estimated, actual *decimal.Decimal) (HoursValidation, error) {
	v := ValidateHours(estimated, actual)
	if !v.IsValid {
		return v, domain.ErrInvalidAmount
	}
	if _, err := s.store.TaskByID(ctx, id); err != nil {
		return v, err
	}
	if err := s.store.UpdateTaskHours(ctx, id, estimated, actual); err != nil {
		return v, err
	}
	return v, nil
}

// Complete marks the task completed and pays its reward to the assignee, in
// one transaction. Tasks without a reward or an assignee just flip status.
func (s *TaskService) Complete(ctx context.Context, id int64) (*domain.Transaction, error) {
	var payout *domain.Transaction
	err := s.store.InTx(ctx, func(st StoreTx) error {
		task, err := st.TaskForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if task.Status == domain.TaskStatusCompleted {
			return domain.ErrTaskAlreadyDone
		}

		if task.AssigneeID != nil && task.RewardCurrency != nil && task.RewardAmount != nil && *task.RewardAmount > 0 {
			relatedType := "bounty_task"
			tx, _, err := s.txs.CreateInTx(ctx, st, CreateParams{
				UserID:      *task.AssigneeID,
				Type:        domain.TxTypeIncome,
				Currency:    *task.RewardCurrency,
				Amount:      *task.RewardAmount,
				Description: fmt.Sprintf("Bounty reward: %s", task.Title),
				Source:      "task_reward",
				RelatedID:   &task.ID,
				RelatedType: &relatedType,
			})
			if err != nil {
				return err
			}
			payout = tx
		}

		return st.UpdateTaskStatus(ctx, id, domain.TaskStatusCompleted)
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}
