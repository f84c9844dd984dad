package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskforge/bountyboard/internal/domain"
)

const ledgerColumns = `id, public_id, user_id, type, currency, amount,
	balance_before, balance_after, description, source,
	related_id, related_type, from_user_id, to_user_id, status, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t        domain.Transaction
		publicID string
	)
	err := row.Scan(
		&t.ID, &publicID, &t.UserID, &t.Type, &t.Currency, &t.Amount,
		&t.BalanceBefore, &t.BalanceAfter, &t.Description, &t.Source,
		&t.RelatedID, &t.RelatedType, &t.FromUserID, &t.ToUserID, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.PublicID, err = uuid.Parse(publicID); err != nil {
		return nil, fmt.Errorf("parse ledger public id: %w", err)
	}
	return &t, nil
}

// InsertTransaction appends one ledger entry. There is deliberately no
// update or delete path for ledger_entries anywhere in this package.
func (t *storeTx) InsertTransaction(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO ledger_entries
			(public_id, user_id, type, currency, amount,
			 balance_before, balance_after, description, source,
			 related_id, related_type, from_user_id, to_user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+ledgerColumns,
		tr.PublicID.String(), tr.UserID, tr.Type, tr.Currency, tr.Amount,
		tr.BalanceBefore, tr.BalanceAfter, tr.Description, tr.Source,
		tr.RelatedID, tr.RelatedType, tr.FromUserID, tr.ToUserID, tr.Status, tr.CreatedAt,
	)
	inserted, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("insert ledger entry: %w", err)
	}
	return inserted, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) TransactionsByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query ledger by user: %w", err)
	}
	return collectTransactions(rows)
}

func (s *Store) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent ledger entries: %w", err)
	}
	return collectTransactions(rows)
}
