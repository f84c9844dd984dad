package domain

import (
	"time"

	"github.com/google/uuid"
)

type TxStatus string

const (
	TxStatusCompleted TxStatus = "completed"
)

// Transaction is one append-only ledger entry. BalanceAfter always equals
// BalanceBefore plus or minus Amount according to the type; rows are never
// updated after insert.
type Transaction struct {
	ID            int64     `json:"id"`
	PublicID      uuid.UUID `json:"publicId"`
	UserID        int64     `json:"userId"`
	Type          TxType    `json:"type"`
	Currency      Currency  `json:"currency"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balanceBefore"`
	BalanceAfter  int64     `json:"balanceAfter"`
	Description   string    `json:"description"`
	Source        string    `json:"source"`
	RelatedID     *int64    `json:"relatedId,omitempty"`
	RelatedType   *string   `json:"relatedType,omitempty"`
	FromUserID    *int64    `json:"fromUserId,omitempty"`
	ToUserID      *int64    `json:"toUserId,omitempty"`
	Status        TxStatus  `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
