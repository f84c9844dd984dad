package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/taskforge/bountyboard/internal/config"
	"github.com/taskforge/bountyboard/internal/domain"
)

// TaskHoursService aggregates estimated and actual hours over task subtrees.
// Read-only; totals are recomputed on every call.
type TaskHoursService struct {
	store Store
}

func NewTaskHoursService(store Store) *TaskHoursService {
	return &TaskHoursService{store: store}
}

// HoursBucket is a pair of hour totals with a derived efficiency.
// Efficiency is estimated/actual as a percentage, 0 when either side is zero.
type HoursBucket struct {
	Estimated  decimal.Decimal `json:"estimated"`
	Actual     decimal.Decimal `json:"actual"`
	Efficiency decimal.Decimal `json:"efficiency"`
}

// SubtaskHours sums hours over the descendants only.
type SubtaskHours struct {
	Estimated decimal.Decimal `json:"estimated"`
	Actual    decimal.Decimal `json:"actual"`
	Count     int             `json:"count"`
}

// HoursReport is the full aggregation for one task.
type HoursReport struct {
	Task     HoursBucket  `json:"task"`
	Subtasks SubtaskHours `json:"subtasks"`
	Total    HoursBucket  `json:"total"`
}

// CalculateTotalHours aggregates hours for the task and every descendant.
// The walk carries a visited set: the tree invariant says parent links are
// acyclic, but a corrupted link fails fast with ErrCycleDetected instead of
// recursing forever.
func (s *TaskHoursService) CalculateTotalHours(ctx context.Context, taskID int64) (*HoursReport, error) {
	task, err := s.store.TaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	visited := map[int64]bool{task.ID: true}
	descendants, err := s.collectDescendants(ctx, task.ID, visited)
	if err != nil {
		return nil, err
	}

	report := &HoursReport{}
	report.Task.Estimated = hoursOrZero(task.EstimatedHours)
	report.Task.Actual = hoursOrZero(task.ActualHours)
	report.Task.Efficiency = efficiency(report.Task.Estimated, report.Task.Actual)

	for _, d := range descendants {
		report.Subtasks.Estimated = report.Subtasks.Estimated.Add(hoursOrZero(d.EstimatedHours))
		report.Subtasks.Actual = report.Subtasks.Actual.Add(hoursOrZero(d.ActualHours))
	}
	report.Subtasks.Count = len(descendants)

	report.Total.Estimated = report.Task.Estimated.Add(report.Subtasks.Estimated)
	report.Total.Actual = report.Task.Actual.Add(report.Subtasks.Actual)
	report.Total.Efficiency = efficiency(report.Total.Estimated, report.Total.Actual)

	return report, nil
}

func (s *TaskHoursService) collectDescendants(ctx context.Context, taskID int64, visited map[int64]bool) ([]domain.BountyTask, error) {
	children, err := s.store.ChildTasks(ctx, taskID)
	if err != nil {
		return nil, err
	}
	var out []domain.BountyTask
	for _, child := range children {
		if visited[child.ID] {
			return nil, domain.ErrCycleDetected
		}
		visited[child.ID] = true
		out = append(out, child)
		deeper, err := s.collectDescendants(ctx, child.ID, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, deeper...)
	}
	return out, nil
}

// TaskHoursSummary pairs a task with its aggregated report.
type TaskHoursSummary struct {
	TaskID int64       `json:"taskId"`
	Title  string      `json:"title"`
	Hours  HoursReport `json:"hours"`
}

// TasksHoursSummary computes the report for each task in order. Overlapping
// subtrees are recomputed per task; fine for list views of modest size.
func (s *TaskHoursService) TasksHoursSummary(ctx context.Context, tasks []domain.BountyTask) ([]TaskHoursSummary, error) {
	out := make([]TaskHoursSummary, 0, len(tasks))
	for _, t := range tasks {
		report, err := s.CalculateTotalHours(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, TaskHoursSummary{TaskID: t.ID, Title: t.Title, Hours: *report})
	}
	return out, nil
}

// HoursValidation is the outcome of a ValidateHours rule check. Errors block
// persistence; warnings never do.
type HoursValidation struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateHours applies the sanity rules for a task's hour fields.
func ValidateHours(estimated, actual *decimal.Decimal) HoursValidation {
	v := HoursValidation{IsValid: true}

	est := hoursOrZero(estimated)
	act := hoursOrZero(actual)

	if est.IsNegative() {
		v.IsValid = false
		v.Errors = append(v.Errors, "estimated hours cannot be negative")
	}
	if act.IsNegative() {
		v.IsValid = false
		v.Errors = append(v.Errors, "actual hours cannot be negative")
	}
	if !v.IsValid {
		return v
	}

	if est.IsPositive() && act.IsPositive() {
		ratio := act.Div(est)
		if ratio.GreaterThan(decimal.NewFromFloat(config.HoursRatioHigh)) {
			v.Warnings = append(v.Warnings, "actual hours far exceed the estimate")
		} else if ratio.LessThan(decimal.NewFromFloat(config.HoursRatioLow)) {
			v.Warnings = append(v.Warnings, "actual hours far below the estimate")
		}
	}
	hardMax := decimal.NewFromInt(config.HoursHardMax)
	if est.GreaterThan(hardMax) {
		v.Warnings = append(v.Warnings, "estimated hours unusually large")
	}
	if act.GreaterThan(hardMax) {
		v.Warnings = append(v.Warnings, "actual hours unusually large")
	}
	return v
}

func hoursOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// efficiency returns estimated/actual as a percentage. Zero on either side
// yields 0, never a division error or an infinite ratio.
func efficiency(estimated, actual decimal.Decimal) decimal.Decimal {
	if estimated.IsZero() || actual.IsZero() {
		return decimal.Zero
	}
	return estimated.Div(actual).Mul(decimal.NewFromInt(100))
}
