package service

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountClosed       = errors.New("account is closed")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("amount must be greater than zero and fit the account currency")
	ErrSameAccountTransfer = errors.New("cannot transfer money to the same account")
	ErrCurrencyMismatch    = errors.New("currency mismatch between accounts")
	ErrNotAuthorized       = errors.New("not authorized to act on this account")
	ErrAlreadyClosed       = errors.New("account is already closed")
	// ErrStorageConflict is transient: the caller may retry the same request.
	ErrStorageConflict = errors.New("concurrent update conflict, retry the request")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrAccountNotFound, "account_not_found"},
	{ErrAccountClosed, "account_closed"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrSameAccountTransfer, "same_account_transfer"},
	{ErrCurrencyMismatch, "currency_mismatch"},
	{ErrNotAuthorized, "not_authorized"},
	{ErrAlreadyClosed, "already_closed"},
	{ErrStorageConflict, "storage_conflict"},
}

// ErrorKind returns a stable label for err: "ok" for nil, "internal" for anything outside the
// ledger taxonomy.
func ErrorKind(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}
