package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/taskforge/bountyboard/internal/domain"
	"github.com/taskforge/bountyboard/internal/service"
)

const walletColumns = `id, user_id,
	diamond_balance, gold_balance, silver_balance, copper_balance,
	frozen_diamond, frozen_gold, frozen_silver, frozen_copper,
	total_earned, total_spent,
	last_recharge_at, last_daily_claim_at, last_monthly_claim_at,
	created_at, updated_at`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.ID, &w.UserID,
		&w.DiamondBalance, &w.GoldBalance, &w.SilverBalance, &w.CopperBalance,
		&w.FrozenDiamond, &w.FrozenGold, &w.FrozenSilver, &w.FrozenCopper,
		&w.TotalEarned, &w.TotalSpent,
		&w.LastRechargeAt, &w.LastDailyClaimAt, &w.LastMonthlyClaimAt,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return &w, nil
}

func walletByUserID(ctx context.Context, q querier, userID int64, forUpdate bool) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return scanWallet(q.QueryRow(ctx, query, userID))
}

func (s *Store) WalletByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return walletByUserID(ctx, s.pool, userID, false)
}

func (t *storeTx) WalletForUpdate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return walletByUserID(ctx, t.tx, userID, true)
}

func (t *storeTx) CreateWallet(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := t.tx.QueryRow(ctx,
		`INSERT INTO wallets (user_id) VALUES ($1) RETURNING `+walletColumns, userID)
	w, err := scanWallet(row)
	if err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return w, nil
}

func (t *storeTx) UpdateWalletBalances(ctx context.Context, w *domain.Wallet) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE wallets SET
			diamond_balance = $2, gold_balance = $3, silver_balance = $4, copper_balance = $5,
			frozen_diamond = $6, frozen_gold = $7, frozen_silver = $8, frozen_copper = $9,
			total_earned = $10, total_spent = $11,
			updated_at = now()
		WHERE user_id = $1`,
		w.UserID,
		w.DiamondBalance, w.GoldBalance, w.SilverBalance, w.CopperBalance,
		w.FrozenDiamond, w.FrozenGold, w.FrozenSilver, w.FrozenCopper,
		w.TotalEarned, w.TotalSpent,
	)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	return nil
}

func (t *storeTx) StampDailyClaim(ctx context.Context, userID int64, at time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE wallets SET last_daily_claim_at = $2, updated_at = now() WHERE user_id = $1`,
		userID, at)
	if err != nil {
		return fmt.Errorf("stamp daily claim: %w", err)
	}
	return nil
}

func (t *storeTx) InsertDailyClaim(ctx context.Context, userID int64, day time.Time) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO daily_claims (user_id, claim_date) VALUES ($1, $2)`,
		userID, day)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("insert daily claim: %w", err)
	}
	return nil
}

func (s *Store) Leaderboard(ctx context.Context, limit int) ([]service.LeaderboardRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.name, u.role, w.total_earned, w.total_spent
		FROM wallets w
		JOIN users u ON u.id = w.user_id
		WHERE u.status = 'active'
		ORDER BY w.total_earned DESC, u.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []service.LeaderboardRow
	for rows.Next() {
		var r service.LeaderboardRow
		if err := rows.Scan(&r.UserID, &r.Name, &r.Role, &r.TotalEarned, &r.TotalSpent); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
