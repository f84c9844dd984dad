package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taskforge/bountyboard/internal/domain"
)

// Store is the persistence boundary for all services. The pgx implementation
// lives in internal/repository; tests use an in-memory fake.
type Store interface {
	// InTx runs fn inside one database transaction. Any error from fn rolls
	// the whole transaction back.
	InTx(ctx context.Context, fn func(StoreTx) error) error

	UserByID(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, name string, role domain.Role) (*domain.User, error)
	SetUserStatus(ctx context.Context, id int64, status domain.UserStatus) error

	WalletByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
	TransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error)
	RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)

	TaskByID(ctx context.Context, id int64) (*domain.BountyTask, error)
	ChildTasks(ctx context.Context, parentID int64) ([]domain.BountyTask, error)
	CreateTask(ctx context.Context, t *domain.BountyTask) (*domain.BountyTask, error)
	UpdateTaskHours(ctx context.Context, id int64, estimated, actual *decimal.Decimal) error
}

// StoreTx is the transactional view handed to InTx callbacks. Wallet reads
// through it take a row lock so read-modify-write sequences are serialized
// per wallet.
type StoreTx interface {
	WalletForUpdate(ctx context.Context, userID int64) (*domain.Wallet, error)
	CreateWallet(ctx context.Context, userID int64) (*domain.Wallet, error)
	UpdateWalletBalances(ctx context.Context, w *domain.Wallet) error
	StampDailyClaim(ctx context.Context, userID int64, at time.Time) error

	InsertTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)

	// InsertDailyClaim records the per-day claim marker and returns
	// domain.ErrAlreadyCheckedIn if one already exists for that date.
	InsertDailyClaim(ctx context.Context, userID int64, day time.Time) error

	TaskForUpdate(ctx context.Context, id int64) (*domain.BountyTask, error)
	UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) error
}

// LeaderboardRow is one entry of the total-earned ranking.
type LeaderboardRow struct {
	UserID      int64       `json:"userId"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	TotalEarned int64       `json:"totalEarned"`
	TotalSpent  int64       `json:"totalSpent"`
}
