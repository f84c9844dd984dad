package domain

import "time"

// Wallet holds one user's balances. Available and frozen amounts only change
// through the transaction service; every mutation leaves a ledger entry.
type Wallet struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`

	DiamondBalance int64 `json:"diamondBalance"`
	GoldBalance    int64 `json:"goldBalance"`
	SilverBalance  int64 `json:"silverBalance"`
	CopperBalance  int64 `json:"copperBalance"`

	FrozenDiamond int64 `json:"frozenDiamond"`
	FrozenGold    int64 `json:"frozenGold"`
	FrozenSilver  int64 `json:"frozenSilver"`
	FrozenCopper  int64 `json:"frozenCopper"`

	TotalEarned int64 `json:"totalEarned"`
	TotalSpent  int64 `json:"totalSpent"`

	LastRechargeAt     *time.Time `json:"lastRechargeAt"`
	LastDailyClaimAt   *time.Time `json:"lastDailyClaimAt"`
	LastMonthlyClaimAt *time.Time `json:"lastMonthlyClaimAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Balance returns the available balance for c. Callers validate c first.
func (w *Wallet) Balance(c Currency) int64 {
	switch c {
	case CurrencyDiamond:
		return w.DiamondBalance
	case CurrencyGold:
		return w.GoldBalance
	case CurrencySilver:
		return w.SilverBalance
	case CurrencyCopper:
		return w.CopperBalance
	}
	return 0
}

// Frozen returns the frozen balance for c.
func (w *Wallet) Frozen(c Currency) int64 {
	switch c {
	case CurrencyDiamond:
		return w.FrozenDiamond
	case CurrencyGold:
		return w.FrozenGold
	case CurrencySilver:
		return w.FrozenSilver
	case CurrencyCopper:
		return w.FrozenCopper
	}
	return 0
}

// SetBalance overwrites the available balance for c.
func (w *Wallet) SetBalance(c Currency, v int64) {
	switch c {
	case CurrencyDiamond:
		w.DiamondBalance = v
	case CurrencyGold:
		w.GoldBalance = v
	case CurrencySilver:
		w.SilverBalance = v
	case CurrencyCopper:
		w.CopperBalance = v
	}
}

// SetFrozen overwrites the frozen balance for c.
func (w *Wallet) SetFrozen(c Currency, v int64) {
	switch c {
	case CurrencyDiamond:
		w.FrozenDiamond = v
	case CurrencyGold:
		w.FrozenGold = v
	case CurrencySilver:
		w.FrozenSilver = v
	case CurrencyCopper:
		w.FrozenCopper = v
	}
}
