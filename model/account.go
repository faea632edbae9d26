package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types accepted at provisioning time.
const (
	AccountTypeSavings = "savings"
	AccountTypeCurrent = "current"
)

type Account struct {
	ID                    int64           `json:"id"`
	UserID                int64           `json:"user_id"`
	BranchID              int64           `json:"branch_id"`
	AccountNumber         string          `json:"account_number"`
	AccountType           string          `json:"account_type"`
	CurrencyCode          string          `json:"currency_code"`
	Balance               decimal.Decimal `json:"balance"`
	IsMinor               bool            `json:"is_minor"`
	PowerOfAttorneyUserID *int64          `json:"power_of_attorney_user_id,omitempty"`
	IsClosed              bool            `json:"is_closed"`
	CreatedAt             time.Time       `json:"created_at"`
}

// CanBeViewedBy reports whether userID owns the account or holds power of attorney over it.
func (a *Account) CanBeViewedBy(userID int64) bool {
	if a.UserID == userID {
		return true
	}
	return a.PowerOfAttorneyUserID != nil && *a.PowerOfAttorneyUserID == userID
}
