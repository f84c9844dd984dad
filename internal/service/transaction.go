package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/bountyboard/internal/domain"
)

// TransactionService is the only path that mutates wallet balances. Every
// mutation updates exactly one wallet row and appends exactly one ledger
// entry, atomically.
type TransactionService struct {
	store Store
}

func NewTransactionService(store Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateParams describes one balance mutation.
type CreateParams struct {
	UserID      int64
	Type        domain.TxType
	Currency    domain.Currency
	Amount      int64
	Description string
	Source      string
	RelatedID   *int64
	RelatedType *string
	FromUserID  *int64
	ToUserID    *int64
}

// Create applies one balance mutation in its own database transaction.
func (s *TransactionService) Create(ctx context.Context, p CreateParams) (*domain.Transaction, *domain.Wallet, error) {
	var (
		tx *domain.Transaction
		w  *domain.Wallet
	)
	err := s.store.InTx(ctx, func(st StoreTx) error {
		var err error
		tx, w, err = s.CreateInTx(ctx, st, p)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return tx, w, nil
}

// CreateInTx applies one balance mutation inside an already-open store
// transaction. Composite operations (check-in, exchange, transfer, task
// payout) use this so all their legs commit or roll back together.
func (s *TransactionService) CreateInTx(ctx context.Context, st StoreTx, p CreateParams) (*domain.Transaction, *domain.Wallet, error) {
	if !p.Currency.Valid() {
		return nil, nil, domain.ErrInvalidCurrency
	}
	if p.Amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}
	sign, ok := p.Type.Direction()
	if !ok {
		return nil, nil, domain.ErrInvalidTransactionType
	}

	w, err := st.WalletForUpdate(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}

	before := w.Balance(p.Currency)
	if sign < 0 && before < p.Amount {
		return nil, nil, domain.ErrInsufficientBalance
	}

	switch p.Type {
	case domain.TxTypeFreeze:
		w.SetBalance(p.Currency, before-p.Amount)
		w.SetFrozen(p.Currency, w.Frozen(p.Currency)+p.Amount)
	case domain.TxTypeUnfreeze:
		if w.Frozen(p.Currency) < p.Amount {
			return nil, nil, domain.ErrInsufficientBalance
		}
		w.SetFrozen(p.Currency, w.Frozen(p.Currency)-p.Amount)
		w.SetBalance(p.Currency, before+p.Amount)
	default:
		w.SetBalance(p.Currency, before+sign*p.Amount)
	}

	// Lifetime totals track real income and spend only; transfers and
	// freezes are internal movements.
	switch p.Type {
	case domain.TxTypeIncome:
		w.TotalEarned += p.Amount
	case domain.TxTypeExpense:
		w.TotalSpent += p.Amount
	}

	if err := st.UpdateWalletBalances(ctx, w); err != nil {
		return nil, nil, err
	}

	tx := &domain.Transaction{
		PublicID:      uuid.New(),
		UserID:        p.UserID,
		Type:          p.Type,
		Currency:      p.Currency,
		Amount:        p.Amount,
		BalanceBefore: before,
		BalanceAfter:  w.Balance(p.Currency),
		Description:   p.Description,
		Source:        p.Source,
		RelatedID:     p.RelatedID,
		RelatedType:   p.RelatedType,
		FromUserID:    p.FromUserID,
		ToUserID:      p.ToUserID,
		Status:        domain.TxStatusCompleted,
		CreatedAt:     time.Now(),
	}
	tx, err = st.InsertTransaction(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	return tx, w, nil
}

// TransferResult reports both legs of a completed transfer.
type TransferResult struct {
	Out *domain.Transaction `json:"out"`
	In  *domain.Transaction `json:"in"`
}

// Transfer moves an amount between two users' wallets. Both legs run in one
// database transaction, so a debited-but-not-credited state is never
// observable.
func (s *TransactionService) Transfer(ctx context.Context, fromUserID, toUserID int64, currency domain.Currency, amount int64, description string) (*TransferResult, error) {
	if fromUserID == toUserID {
		return nil, domain.ErrInvalidTransfer
	}
	res := &TransferResult{}
	err := s.store.InTx(ctx, func(st StoreTx) error {
		out, _, err := s.CreateInTx(ctx, st, CreateParams{
			UserID:      fromUserID,
			Type:        domain.TxTypeTransferOut,
			Currency:    currency,
			Amount:      amount,
			Description: description,
			Source:      "transfer",
			FromUserID:  &fromUserID,
			ToUserID:    &toUserID,
		})
		if err != nil {
			return err
		}
		in, _, err := s.CreateInTx(ctx, st, CreateParams{
			UserID:      toUserID,
			Type:        domain.TxTypeTransferIn,
			Currency:    currency,
			Amount:      amount,
			Description: description,
			Source:      "transfer",
			FromUserID:  &fromUserID,
			ToUserID:    &toUserID,
		})
		if err != nil {
			return err
		}
		res.Out, res.In = out, in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
