package domain

// Currency is one of the four denominations a wallet holds.
type Currency string

const (
	CurrencyDiamond Currency = "diamond"
	CurrencyGold    Currency = "gold"
	CurrencySilver  Currency = "silver"
	CurrencyCopper  Currency = "copper"
)

// Currencies lists all denominations in descending value order.
var Currencies = []Currency{CurrencyDiamond, CurrencyGold, CurrencySilver, CurrencyCopper}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyDiamond, CurrencyGold, CurrencySilver, CurrencyCopper:
		return true
	}
	return false
}

// TxType classifies a ledger entry.
type TxType string

const (
	TxTypeIncome      TxType = "income"
	TxTypeExpense     TxType = "expense"
	TxTypeTransferIn  TxType = "transfer_in"
	TxTypeTransferOut TxType = "transfer_out"
	TxTypeFreeze      TxType = "freeze"
	TxTypeUnfreeze    TxType = "unfreeze"
)

// Direction reports the sign of the available-balance change for the type:
// +1 for crediting types, -1 for debiting types. ok is false for unknown types.
func (t TxType) Direction() (sign int64, ok bool) {
	switch t {
	case TxTypeIncome, TxTypeTransferIn, TxTypeUnfreeze:
		return 1, true
	case TxTypeExpense, TxTypeTransferOut, TxTypeFreeze:
		return -1, true
	}
	return 0, false
}
