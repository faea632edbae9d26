package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit  TransactionType = "Deposit"
	TransactionWithdraw TransactionType = "Withdraw"
	TransactionTransfer TransactionType = "Transfer"
)

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "Completed"
	StatusFailed    TransactionStatus = "Failed"
)

// Transaction is an immutable audit record of one applied balance change.
// Transfers are recorded once, from the source account's side.
type Transaction struct {
	ID          string            `json:"id"`
	AccountID   int64             `json:"account_id"`
	UserID      int64             `json:"user_id"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	FromAccount *string           `json:"from_account,omitempty"`
	ToAccount   *string           `json:"to_account,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
