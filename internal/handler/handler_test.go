package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/bountyboard/internal/config"
	"github.com/taskforge/bountyboard/internal/domain"
	"github.com/taskforge/bountyboard/internal/service"
)

// memStore is a minimal in-memory service.Store for routing tests.
type memStore struct {
	users   map[int64]*domain.User
	wallets map[int64]*domain.Wallet
	ledger  []domain.Transaction
	claims  map[string]bool
	tasks   map[int64]*domain.BountyTask
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int64]*domain.User),
		wallets: make(map[int64]*domain.Wallet),
		claims:  make(map[string]bool),
		tasks:   make(map[int64]*domain.BountyTask),
	}
}

func (m *memStore) id() int64 { m.nextID++; return m.nextID }

func (m *memStore) InTx(ctx context.Context, fn func(service.StoreTx) error) error {
	// Route tests only assert observable HTTP behavior; rollback fidelity is
	// covered by the service-level tests.
	return fn(m)
}

func (m *memStore) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memStore) CreateUser(ctx context.Context, name string, role domain.Role) (*domain.User, error) {
	u := &domain.User{ID: m.id(), Name: name, Role: role, Status: domain.UserStatusActive}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) SetUserStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (m *memStore) WalletByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w, ok := m.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return w, nil
}

func (m *memStore) TransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range m.ledger {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memStore) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	return m.ledger, nil
}

func (m *memStore) Leaderboard(ctx context.Context, limit int) ([]service.LeaderboardRow, error) {
	var out []service.LeaderboardRow
	for _, u := range m.users {
		if w, ok := m.wallets[u.ID]; ok {
			out = append(out, service.LeaderboardRow{UserID: u.ID, Name: u.Name, Role: u.Role, TotalEarned: w.TotalEarned})
		}
	}
	return out, nil
}

func (m *memStore) TaskByID(ctx context.Context, id int64) (*domain.BountyTask, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

func (m *memStore) ChildTasks(ctx context.Context, parentID int64) ([]domain.BountyTask, error) {
	var out []domain.BountyTask
	for id := int64(1); id <= m.nextID; id++ {
		if t, ok := m.tasks[id]; ok && t.ParentTaskID != nil && *t.ParentTaskID == parentID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memStore) CreateTask(ctx context.Context, t *domain.BountyTask) (*domain.BountyTask, error) {
	cp := *t
	cp.ID = m.id()
	m.tasks[cp.ID] = &cp
	return &cp, nil
}

func (m *memStore) UpdateTaskHours(ctx context.Context, id int64, estimated, actual *decimal.Decimal) error {
	t, ok := m.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.EstimatedHours, t.ActualHours = estimated, actual
	return nil
}

// StoreTx methods (memStore doubles as its own transaction view).

func (m *memStore) WalletForUpdate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return m.WalletByUserID(ctx, userID)
}

func (m *memStore) CreateWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w := &domain.Wallet{ID: m.id(), UserID: userID}
	m.wallets[userID] = w
	return w, nil
}

func (m *memStore) UpdateWalletBalances(ctx context.Context, w *domain.Wallet) error {
	m.wallets[w.UserID] = w
	return nil
}

func (m *memStore) StampDailyClaim(ctx context.Context, userID int64, at time.Time) error {
	w, ok := m.wallets[userID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	w.LastDailyClaimAt = &at
	return nil
}

func (m *memStore) InsertTransaction(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
	cp := *tr
	cp.ID = m.id()
	m.ledger = append(m.ledger, cp)
	return &cp, nil
}

func (m *memStore) InsertDailyClaim(ctx context.Context, userID int64, day time.Time) error {
	key := fmt.Sprintf("%d:%s", userID, day.Format("2006-01-02"))
	if m.claims[key] {
		return domain.ErrAlreadyCheckedIn
	}
	m.claims[key] = true
	return nil
}

func (m *memStore) TaskForUpdate(ctx context.Context, id int64) (*domain.BountyTask, error) {
	return m.TaskByID(ctx, id)
}

func (m *memStore) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	t, ok := m.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Status = status
	return nil
}

func newTestServer(store *memStore) *httptest.Server {
	cfg := &config.Config{LeaderboardLimit: 20, ActivityLimit: 50}
	txs := service.NewTransactionService(store)
	h := New(Deps{
		Cfg:       cfg,
		Users:     service.NewUserService(store),
		Wallets:   service.NewWalletService(store, cfg),
		Txs:       txs,
		Checkin:   service.NewCheckinService(store, txs, config.DefaultRewards()),
		Exchange:  service.NewExchangeService(store, txs, config.DefaultExchange()),
		Tasks:     service.NewTaskService(store, txs),
		TaskHours: service.NewTaskHoursService(store),
	})
	return httptest.NewServer(h.Routes())
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUserWalletCheckinFlow(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(store)
	defer srv.Close()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]any{"name": "ada", "role": "client"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	resp.Body.Close()

	// First wallet access creates it empty.
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/users/%d/wallet", srv.URL, user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/users/%d/checkin", srv.URL, user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Same calendar day: the second claim is rejected.
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/users/%d/checkin", srv.URL, user.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestExchangeInsufficientBalanceStatus(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(store)
	defer srv.Close()

	user, _ := store.CreateUser(context.Background(), "bo", domain.RoleDeveloper)
	w, _ := store.CreateWallet(context.Background(), user.ID)
	w.GoldBalance = 50

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/users/%d/exchange", srv.URL, user.ID),
		map[string]any{"fromCurrency": "gold", "toCurrency": "silver", "amount": 100})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, int64(50), store.wallets[user.ID].GoldBalance)
}

func TestTaskHoursEndpointNotFound(t *testing.T) {
	srv := newTestServer(newMemStore())
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/tasks/404/hours", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetUnknownUserIs404(t *testing.T) {
	srv := newTestServer(newMemStore())
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/9", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBadIDIs400(t *testing.T) {
	srv := newTestServer(newMemStore())
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/abc/wallet", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
