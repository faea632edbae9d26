package repository

import (
	"context"
	"database/sql"
	"errors"

	"go-bank-ledger/model"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict marks a lost race with a concurrent writer; the unit of work may be retried.
	ErrConflict = errors.New("concurrent update conflict")
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// IAccountRepository defines the read and provisioning side of the account store.
type IAccountRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
	GetAccountsByUserID(ctx context.Context, userID int64) ([]*model.Account, error)
	GetAllAccounts(ctx context.Context) ([]*model.Account, error)
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}

// ITransactionRepository is the read side of the transaction log.
type ITransactionRepository interface {
	GetTransactionsByAccountID(ctx context.Context, accountID int64) ([]*model.Transaction, error)
}

// Tx is one atomic unit of work over accounts and the transaction log.
// Nothing written through a Tx is visible to other callers before RunInTx commits it.
type Tx interface {
	// GetAccountsForUpdate locks the given accounts in ascending id order and returns the ones
	// that exist, keyed by id.
	GetAccountsForUpdate(ctx context.Context, ids ...int64) (map[int64]*model.Account, error)
	UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error
	CloseAccount(ctx context.Context, accountID int64) error
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
}

// Store is the ledger's storage boundary.
type Store interface {
	IAccountRepository
	ITransactionRepository
	// RunInTx runs fn in a single unit of work. The unit commits only when fn returns nil.
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}
