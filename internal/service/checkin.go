package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskforge/bountyboard/internal/config"
	"github.com/taskforge/bountyboard/internal/domain"
)

// CheckinService grants the daily reward bundle. The amount per currency is
// the base reward plus the caller's role bonus; at most one claim per user
// per calendar day, enforced by a claim marker inserted in the same
// transaction as the reward grant.
type CheckinService struct {
	store   Store
	txs     *TransactionService
	rewards config.RewardConfig
}

func NewCheckinService(store Store, txs *TransactionService, rewards config.RewardConfig) *CheckinService {
	return &CheckinService{store: store, txs: txs, rewards: rewards}
}

// CheckinResult reports a successful claim.
type CheckinResult struct {
	Rewards      map[domain.Currency]int64 `json:"rewards"`
	Transactions []*domain.Transaction     `json:"transactions"`
}

// RewardPreview computes the bundle a role would receive today. Currencies
// with a zero total are omitted. Unrecognized roles get the default tier.
func (s *CheckinService) RewardPreview(role domain.Role) map[domain.Currency]int64 {
	bonus, ok := s.rewards.RoleBonus[role]
	if !ok {
		bonus = s.rewards.RoleBonus[s.rewards.DefaultRole]
	}
	out := make(map[domain.Currency]int64)
	for _, c := range domain.Currencies {
		if total := s.rewards.Base[c] + bonus[c]; total > 0 {
			out[c] = total
		}
	}
	return out
}

// CanCheckin reports whether the user could claim right now. Advisory only:
// the claim marker inside PerformDailyCheckin is what actually serializes
// concurrent claims.
func (s *CheckinService) CanCheckin(ctx context.Context, userID int64) (bool, error) {
	w, err := s.store.WalletByUserID(ctx, userID)
	if errors.Is(err, domain.ErrWalletNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return w.LastDailyClaimAt == nil || !sameCalendarDay(*w.LastDailyClaimAt, time.Now()), nil
}

// PerformDailyCheckin claims today's reward for the user. The wallet is
// created lazily on first claim. All per-currency grants, the claim marker,
// and the eligibility stamp commit together or not at all.
func (s *CheckinService) PerformDailyCheckin(ctx context.Context, userID int64) (*CheckinResult, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, domain.ErrUserDisabled
	}

	rewards := s.RewardPreview(user.Role)
	now := time.Now()
	res := &CheckinResult{Rewards: rewards}

	err = s.store.InTx(ctx, func(st StoreTx) error {
		w, err := st.WalletForUpdate(ctx, userID)
		if errors.Is(err, domain.ErrWalletNotFound) {
			w, err = st.CreateWallet(ctx, userID)
		}
		if err != nil {
			return err
		}

		if w.LastDailyClaimAt != nil && sameCalendarDay(*w.LastDailyClaimAt, now) {
			return domain.ErrAlreadyCheckedIn
		}
		if err := st.InsertDailyClaim(ctx, userID, now); err != nil {
			return err
		}

		for _, c := range domain.Currencies {
			amount, ok := rewards[c]
			if !ok {
				continue
			}
			tx, _, err := s.txs.CreateInTx(ctx, st, CreateParams{
				UserID:      userID,
				Type:        domain.TxTypeIncome,
				Currency:    c,
				Amount:      amount,
				Description: fmt.Sprintf("Daily check-in reward: %d %s", amount, c),
				Source:      "daily_checkin",
			})
			if err != nil {
				return err
			}
			res.Transactions = append(res.Transactions, tx)
		}

		return st.StampDailyClaim(ctx, userID, now)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
