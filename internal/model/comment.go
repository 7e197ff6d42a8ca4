package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user remark on a coin. TxHash is set when the comment
// was anchored to an on-chain action, empty otherwise.
type Comment struct {
	ID          uuid.UUID
	CoinAddress string
	UserAddress string
	Comment     string
	TxHash      string
	CreatedAt   time.Time
}
