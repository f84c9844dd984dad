package config

import (
	"fmt"

	"github.com/taskforge/bountyboard/internal/domain"
)

// RewardConfig defines the daily check-in reward bundle. The final amount per
// currency is the base amount plus the role bonus; roles without a bonus row
// fall back to the DefaultRole tier.
type RewardConfig struct {
	Base        map[domain.Currency]int64
	RoleBonus   map[domain.Role]map[domain.Currency]int64
	DefaultRole domain.Role
}

// DefaultRewards returns the stock reward table.
func DefaultRewards() RewardConfig {
	return RewardConfig{
		Base: map[domain.Currency]int64{
			domain.CurrencyGold:   20,
			domain.CurrencySilver: 50,
			domain.CurrencyCopper: 100,
		},
		RoleBonus: map[domain.Role]map[domain.Currency]int64{
			domain.RoleAdmin: {
				domain.CurrencyDiamond: 2,
				domain.CurrencyGold:    100,
				domain.CurrencySilver:  300,
			},
			domain.RoleManager: {
				domain.CurrencyDiamond: 1,
				domain.CurrencyGold:    80,
				domain.CurrencySilver:  250,
			},
			domain.RoleClient: {
				domain.CurrencyDiamond: 1,
				domain.CurrencyGold:    80,
				domain.CurrencySilver:  200,
			},
			domain.RoleDeveloper: {
				domain.CurrencyGold:   30,
				domain.CurrencySilver: 100,
				domain.CurrencyCopper: 200,
			},
		},
		DefaultRole: domain.RoleDeveloper,
	}
}

// ExchangeConfig holds directed conversion rates keyed "{from}_to_{to}".
type ExchangeConfig struct {
	Rates       map[string]float64
	DefaultRate float64
}

// DefaultExchange returns the stock conversion table. Only the descending
// direction is listed; the ascending direction is resolved as the reciprocal.
func DefaultExchange() ExchangeConfig {
	return ExchangeConfig{
		Rates: map[string]float64{
			RateKey(domain.CurrencyDiamond, domain.CurrencyGold):  1000,
			RateKey(domain.CurrencyGold, domain.CurrencySilver):   10,
			RateKey(domain.CurrencySilver, domain.CurrencyCopper): 10,
			RateKey(domain.CurrencyGold, domain.CurrencyCopper):   100,
		},
		DefaultRate: DefaultExchangeRate,
	}
}

// RateKey builds the lookup key for a directed conversion.
func RateKey(from, to domain.Currency) string {
	return fmt.Sprintf("%s_to_%s", from, to)
}

// Rate resolves the conversion rate from one currency to another: the direct
// key first, then the reciprocal of the inverse key, then the default.
func (c ExchangeConfig) Rate(from, to domain.Currency) float64 {
	if r, ok := c.Rates[RateKey(from, to)]; ok {
		return r
	}
	if r, ok := c.Rates[RateKey(to, from)]; ok && r != 0 {
		return 1 / r
	}
	return c.DefaultRate
}
