// file: model/request.go

package model

import "github.com/shopspring/decimal"

// CreateAccountRequest is the payload for provisioning a new account.
type CreateAccountRequest struct {
	BranchID              int64           `json:"branch_id" validate:"required,gt=0"`
	AccountType           string          `json:"account_type" validate:"required,oneof=savings current"`
	CurrencyCode          string          `json:"currency_code" validate:"required,len=3,uppercase"`
	InitialBalance        decimal.Decimal `json:"initial_balance" swaggertype:"string" example:"0.00" validate:"dgte0"`
	IsMinor               bool            `json:"is_minor"`
	PowerOfAttorneyUserID *int64          `json:"power_of_attorney_user_id" validate:"omitempty,gt=0"`
}

// AmountRequest is the payload for deposits and withdrawals; the account comes from the URL.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"25.00" validate:"dgt0"`
}

// TransferRequest moves Amount from FromAccountID to ToAccountID.
type TransferRequest struct {
	FromAccountID int64           `json:"from_account_id" validate:"required,gt=0"`
	ToAccountID   int64           `json:"to_account_id" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00" validate:"dgt0"`
}

// CloseAccountResponse reports the outcome of a close request.
type CloseAccountResponse struct {
	AccountID int64 `json:"account_id"`
	Closed    bool  `json:"closed"`
}
