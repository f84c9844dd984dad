package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taskforge/bountyboard/internal/config"
	"github.com/taskforge/bountyboard/internal/domain"
)

// ExchangeService converts balance between currency denominations at the
// configured rates. Both legs of a conversion run in one database
// transaction.
type ExchangeService struct {
	store Store
	txs   *TransactionService
	rates config.ExchangeConfig
}

func NewExchangeService(store Store, txs *TransactionService, rates config.ExchangeConfig) *ExchangeService {
	return &ExchangeService{store: store, txs: txs, rates: rates}
}

// ExchangeResult reports a completed conversion.
type ExchangeResult struct {
	FromCurrency   domain.Currency `json:"fromCurrency"`
	ToCurrency     domain.Currency `json:"toCurrency"`
	FromAmount     int64           `json:"fromAmount"`
	ToAmount       int64           `json:"toAmount"`
	Rate           float64         `json:"rate"`
	NewFromBalance int64           `json:"newFromBalance"`
	NewToBalance   int64           `json:"newToBalance"`
}

// PerformExchange converts fromAmount of one currency into another. The
// credited amount is floor(fromAmount * rate); conversions that would floor
// to zero are rejected rather than silently burning the source amount.
func (s *ExchangeService) PerformExchange(ctx context.Context, userID int64, from, to domain.Currency, fromAmount int64) (*ExchangeResult, error) {
	if !from.Valid() || !to.Valid() {
		return nil, domain.ErrInvalidCurrency
	}
	if from == to {
		return nil, domain.ErrInvalidExchange
	}
	if fromAmount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	rate := s.rates.Rate(from, to)
	toAmount := decimal.NewFromInt(fromAmount).
		Mul(decimal.NewFromFloat(rate)).
		Floor().
		IntPart()
	if toAmount <= 0 {
		return nil, domain.ErrExchangeTooSmall
	}

	res := &ExchangeResult{
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   fromAmount,
		ToAmount:     toAmount,
		Rate:         rate,
	}
	err := s.store.InTx(ctx, func(st StoreTx) error {
		desc := fmt.Sprintf("Exchange %d %s to %d %s", fromAmount, from, toAmount, to)
		_, w, err := s.txs.CreateInTx(ctx, st, CreateParams{
			UserID:      userID,
			Type:        domain.TxTypeExpense,
			Currency:    from,
			Amount:      fromAmount,
			Description: desc,
			Source:      "exchange_out",
		})
		if err != nil {
			return err
		}
		res.NewFromBalance = w.Balance(from)

		_, w, err = s.txs.CreateInTx(ctx, st, CreateParams{
			UserID:      userID,
			Type:        domain.TxTypeIncome,
			Currency:    to,
			Amount:      toAmount,
			Description: desc,
			Source:      "exchange_in",
		})
		if err != nil {
			return err
		}
		res.NewToBalance = w.Balance(to)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
