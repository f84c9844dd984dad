package service

import (
	"context"
	"errors"

	"github.com/taskforge/bountyboard/internal/config"
	"github.com/taskforge/bountyboard/internal/domain"
)

// WalletService owns wallet lookup and the reporting queries. Balance
// mutation lives in TransactionService.
type WalletService struct {
	store Store
	cfg   *config.Config
}

func NewWalletService(store Store, cfg *config.Config) *WalletService {
	return &WalletService{store: store, cfg: cfg}
}

// GetOrCreate returns the user's wallet, creating an empty one on first
// access.
func (s *WalletService) GetOrCreate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	if _, err := s.store.UserByID(ctx, userID); err != nil {
		return nil, err
	}

	w, err := s.store.WalletByUserID(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	err = s.store.InTx(ctx, func(st StoreTx) error {
		w, err = st.WalletForUpdate(ctx, userID)
		if errors.Is(err, domain.ErrWalletNotFound) {
			w, err = st.CreateWallet(ctx, userID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// History returns the user's ledger entries, newest first.
func (s *WalletService) History(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = config.HistoryPageSize
	}
	if limit > config.HistoryMaxPageSize {
		limit = config.HistoryMaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.TransactionsByUser(ctx, userID, limit, offset)
}

// Leaderboard ranks wallets by lifetime earnings.
func (s *WalletService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 || limit > s.cfg.LeaderboardLimit {
		limit = s.cfg.LeaderboardLimit
	}
	return s.store.Leaderboard(ctx, limit)
}

// RecentActivity returns the newest ledger entries across all users.
func (s *WalletService) RecentActivity(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > s.cfg.ActivityLimit {
		limit = s.cfg.ActivityLimit
	}
	return s.store.RecentTransactions(ctx, limit)
}
