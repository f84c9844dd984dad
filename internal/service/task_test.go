package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/bountyboard/internal/domain"
)

func TestCompleteTaskPaysReward(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	dev := store.addUser(domain.RoleDeveloper)
	store.addWallet(dev.ID)
	gold := domain.CurrencyGold
	amount := int64(75)
	task := store.addTask(nil, nil, nil)
	task.AssigneeID = &dev.ID
	task.RewardCurrency = &gold
	task.RewardAmount = &amount
	svc := NewTaskService(store, NewTransactionService(store))

	payout, err := svc.Complete(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, payout)
	assert.Equal(t, "task_reward", payout.Source)
	require.NotNil(t, payout.RelatedID)
	assert.Equal(t, task.ID, *payout.RelatedID)

	w, _ := store.WalletByUserID(ctx, dev.ID)
	assert.Equal(t, int64(75), w.GoldBalance)
	assert.Equal(t, int64(75), w.TotalEarned)
	assert.Equal(t, domain.TaskStatusCompleted, store.tasks[task.ID].Status)

	// Completing again neither pays nor flips anything.
	_, err = svc.Complete(ctx, task.ID)
	require.ErrorIs(t, err, domain.ErrTaskAlreadyDone)
	assert.Len(t, store.ledger, 1)
}

func TestCompleteTaskWithoutRewardJustFlipsStatus(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	task := store.addTask(nil, nil, nil)
	svc := NewTaskService(store, NewTransactionService(store))

	payout, err := svc.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, payout)
	assert.Equal(t, domain.TaskStatusCompleted, store.tasks[task.ID].Status)
	assert.Empty(t, store.ledger)
}

func TestCompleteTaskRollsBackWhenPayoutFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	dev := store.addUser(domain.RoleDeveloper)
	// no wallet for dev: the payout leg fails
	gold := domain.CurrencyGold
	amount := int64(10)
	task := store.addTask(nil, nil, nil)
	task.AssigneeID = &dev.ID
	task.RewardCurrency = &gold
	task.RewardAmount = &amount
	svc := NewTaskService(store, NewTransactionService(store))

	_, err := svc.Complete(ctx, task.ID)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
	assert.Equal(t, domain.TaskStatusOpen, store.tasks[task.ID].Status)
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewTaskService(store, NewTransactionService(store))

	_, err := svc.Create(ctx, CreateTaskParams{})
	assert.Error(t, err)

	missing := int64(99)
	_, err = svc.Create(ctx, CreateTaskParams{Title: "orphan", ParentTaskID: &missing})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	bad := domain.Currency("platinum")
	_, err = svc.Create(ctx, CreateTaskParams{Title: "t", RewardCurrency: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)

	zero := int64(0)
	_, err = svc.Create(ctx, CreateTaskParams{Title: "t", RewardAmount: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	task, err := svc.Create(ctx, CreateTaskParams{Title: "real work", EstimatedHours: dec("12.5")})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusOpen, task.Status)
	require.NotNil(t, task.EstimatedHours)
}

func TestUpdateHoursBlocksOnErrors(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	task := store.addTask(nil, dec("5"), nil)
	svc := NewTaskService(store, NewTransactionService(store))

	v, err := svc.UpdateHours(ctx, task.ID, dec("-2"), nil)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.False(t, v.IsValid)
	assert.True(t, store.tasks[task.ID].EstimatedHours.Equal(decimal.RequireFromString("5")))

	v, err = svc.UpdateHours(ctx, task.ID, dec("5"), dec("30"))
	require.NoError(t, err)
	assert.NotEmpty(t, v.Warnings)
	assert.True(t, store.tasks[task.ID].ActualHours.Equal(decimal.RequireFromString("30")))
}
