package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/taskforge/bountyboard/internal/domain"
)

const taskColumns = `id, title, status, parent_task_id, assignee_id,
	estimated_hours, actual_hours, reward_currency, reward_amount,
	created_at, updated_at`

func scanTask(row pgx.Row) (*domain.BountyTask, error) {
	var (
		t              domain.BountyTask
		estimated      pgtype.Numeric
		actual         pgtype.Numeric
		rewardCurrency *string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Status, &t.ParentTaskID, &t.AssigneeID,
		&estimated, &actual, &rewardCurrency, &t.RewardAmount,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.EstimatedHours = numericToDecimalPtr(estimated)
	t.ActualHours = numericToDecimalPtr(actual)
	if rewardCurrency != nil {
		c := domain.Currency(*rewardCurrency)
		t.RewardCurrency = &c
	}
	return &t, nil
}

func taskByID(ctx context.Context, q querier, id int64, forUpdate bool) (*domain.BountyTask, error) {
	query := `SELECT ` + taskColumns + ` FROM bounty_tasks WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return scanTask(q.QueryRow(ctx, query, id))
}

func (s *Store) TaskByID(ctx context.Context, id int64) (*domain.BountyTask, error) {
	return taskByID(ctx, s.pool, id, false)
}

func (t *storeTx) TaskForUpdate(ctx context.Context, id int64) (*domain.BountyTask, error) {
	return taskByID(ctx, t.tx, id, true)
}

func (s *Store) ChildTasks(ctx context.Context, parentID int64) ([]domain.BountyTask, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM bounty_tasks WHERE parent_task_id = $1 ORDER BY id`,
		parentID)
	if err != nil {
		return nil, fmt.Errorf("query child tasks: %w", err)
	}
	defer rows.Close()

	var out []domain.BountyTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *task)
	}
	return out, rows.Err()
}

func (s *Store) CreateTask(ctx context.Context, task *domain.BountyTask) (*domain.BountyTask, error) {
	var rewardCurrency *string
	if task.RewardCurrency != nil {
		c := string(*task.RewardCurrency)
		rewardCurrency = &c
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO bounty_tasks
			(title, status, parent_task_id, assignee_id,
			 estimated_hours, actual_hours, reward_currency, reward_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns,
		task.Title, task.Status, task.ParentTaskID, task.AssigneeID,
		decimalPtrToNumeric(task.EstimatedHours), decimalPtrToNumeric(task.ActualHours),
		rewardCurrency, task.RewardAmount,
	)
	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateTaskHours(ctx context.Context, id int64, estimated, actual *decimal.Decimal) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE bounty_tasks
		SET estimated_hours = $2, actual_hours = $3, updated_at = now()
		WHERE id = $1`,
		id, decimalPtrToNumeric(estimated), decimalPtrToNumeric(actual))
	if err != nil {
		return fmt.Errorf("update task hours: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (t *storeTx) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE bounty_tasks SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
