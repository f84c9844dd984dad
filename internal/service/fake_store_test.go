package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taskforge/bountyboard/internal/domain"
)

// fakeStore is an in-memory Store. InTx snapshots all state before running
// the callback and restores it on error, mirroring a database rollback.
type fakeStore struct {
	users   map[int64]*domain.User
	wallets map[int64]*domain.Wallet // keyed by user ID
	ledger  []domain.Transaction
	claims  map[string]bool
	tasks   map[int64]*domain.BountyTask
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[int64]*domain.User),
		wallets: make(map[int64]*domain.Wallet),
		claims:  make(map[string]bool),
		tasks:   make(map[int64]*domain.BountyTask),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// Test seeding helpers.

func (f *fakeStore) addUser(role domain.Role) *domain.User {
	u := &domain.User{
		ID:     f.id(),
		Name:   fmt.Sprintf("user-%d", f.nextID),
		Role:   role,
		Status: domain.UserStatusActive,
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addWallet(userID int64) *domain.Wallet {
	w := &domain.Wallet{ID: f.id(), UserID: userID}
	f.wallets[userID] = w
	return w
}

func (f *fakeStore) addTask(parentID *int64, estimated, actual *decimal.Decimal) *domain.BountyTask {
	t := &domain.BountyTask{
		ID:             f.id(),
		Title:          fmt.Sprintf("task-%d", f.nextID),
		Status:         domain.TaskStatusOpen,
		ParentTaskID:   parentID,
		EstimatedHours: estimated,
		ActualHours:    actual,
	}
	f.tasks[t.ID] = t
	return t
}

func (f *fakeStore) snapshot() *fakeStore {
	s := newFakeStore()
	s.nextID = f.nextID
	for id, u := range f.users {
		cp := *u
		s.users[id] = &cp
	}
	for id, w := range f.wallets {
		cp := *w
		s.wallets[id] = &cp
	}
	s.ledger = append([]domain.Transaction(nil), f.ledger...)
	for k, v := range f.claims {
		s.claims[k] = v
	}
	for id, t := range f.tasks {
		cp := *t
		s.tasks[id] = &cp
	}
	return s
}

func (f *fakeStore) restore(s *fakeStore) {
	f.users = s.users
	f.wallets = s.wallets
	f.ledger = s.ledger
	f.claims = s.claims
	f.tasks = s.tasks
	f.nextID = s.nextID
}

// Store implementation.

func (f *fakeStore) InTx(ctx context.Context, fn func(StoreTx) error) error {
	snap := f.snapshot()
	if err := fn(&fakeTx{f}); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeStore) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, name string, role domain.Role) (*domain.User, error) {
	u := &domain.User{ID: f.id(), Name: name, Role: role, Status: domain.UserStatusActive}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeStore) SetUserStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeStore) WalletByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeStore) TransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for i := len(f.ledger) - 1; i >= 0; i-- {
		if f.ledger[i].UserID == userID {
			out = append(out, f.ledger[i])
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for i := len(f.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.ledger[i])
	}
	return out, nil
}

func (f *fakeStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var out []LeaderboardRow
	for _, u := range f.users {
		if u.Status != domain.UserStatusActive {
			continue
		}
		w, ok := f.wallets[u.ID]
		if !ok {
			continue
		}
		out = append(out, LeaderboardRow{
			UserID:      u.ID,
			Name:        u.Name,
			Role:        u.Role,
			TotalEarned: w.TotalEarned,
			TotalSpent:  w.TotalSpent,
		})
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].TotalEarned > out[i].TotalEarned {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) TaskByID(ctx context.Context, id int64) (*domain.BountyTask, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) ChildTasks(ctx context.Context, parentID int64) ([]domain.BountyTask, error) {
	var out []domain.BountyTask
	for id := int64(1); id <= f.nextID; id++ {
		t, ok := f.tasks[id]
		if ok && t.ParentTaskID != nil && *t.ParentTaskID == parentID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateTask(ctx context.Context, t *domain.BountyTask) (*domain.BountyTask, error) {
	cp := *t
	cp.ID = f.id()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.tasks[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) UpdateTaskHours(ctx context.Context, id int64, estimated, actual *decimal.Decimal) error {
	t, ok := f.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.EstimatedHours = estimated
	t.ActualHours = actual
	return nil
}

// fakeTx implements StoreTx directly against the fake's maps; InTx handles
// rollback by snapshot.
type fakeTx struct {
	f *fakeStore
}

func (t *fakeTx) WalletForUpdate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w, ok := t.f.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (t *fakeTx) CreateWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w := &domain.Wallet{ID: t.f.id(), UserID: userID, CreatedAt: time.Now()}
	t.f.wallets[userID] = w
	cp := *w
	return &cp, nil
}

func (t *fakeTx) UpdateWalletBalances(ctx context.Context, w *domain.Wallet) error {
	stored, ok := t.f.wallets[w.UserID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	cp := *w
	cp.LastRechargeAt = stored.LastRechargeAt
	cp.LastDailyClaimAt = stored.LastDailyClaimAt
	cp.LastMonthlyClaimAt = stored.LastMonthlyClaimAt
	t.f.wallets[w.UserID] = &cp
	return nil
}

func (t *fakeTx) StampDailyClaim(ctx context.Context, userID int64, at time.Time) error {
	w, ok := t.f.wallets[userID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	w.LastDailyClaimAt = &at
	return nil
}

func (t *fakeTx) InsertTransaction(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
	cp := *tr
	cp.ID = t.f.id()
	t.f.ledger = append(t.f.ledger, cp)
	out := cp
	return &out, nil
}

func (t *fakeTx) InsertDailyClaim(ctx context.Context, userID int64, day time.Time) error {
	key := fmt.Sprintf("%d:%s", userID, day.Format("2006-01-02"))
	if t.f.claims[key] {
		return domain.ErrAlreadyCheckedIn
	}
	t.f.claims[key] = true
	return nil
}

func (t *fakeTx) TaskForUpdate(ctx context.Context, id int64) (*domain.BountyTask, error) {
	task, ok := t.f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (t *fakeTx) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	task, ok := t.f.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Status = status
	return nil
}
