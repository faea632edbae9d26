package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const accountColumns = `id, user_id, branch_id, account_number, account_type, currency_code, balance,
	is_minor, power_of_attorney_user_id, is_closed, created_at`

type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		acc model.Account
		poa sql.NullInt64
	)
	err := row.Scan(&acc.ID, &acc.UserID, &acc.BranchID, &acc.AccountNumber, &acc.AccountType,
		&acc.CurrencyCode, &acc.Balance, &acc.IsMinor, &poa, &acc.IsClosed, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	if poa.Valid {
		acc.PowerOfAttorneyUserID = &poa.Int64
	}
	return &acc, nil
}

// CreateAccount adds a new account to the database.
func (r *AccountRepository) CreateAccount(ctx context.Context, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":        account.UserID,
		"account_number": account.AccountNumber,
		"currency":       account.CurrencyCode,
	})
	log.Info("Executing query to create a new account")

	var poa sql.NullInt64
	if account.PowerOfAttorneyUserID != nil {
		poa = sql.NullInt64{Int64: *account.PowerOfAttorneyUserID, Valid: true}
	}

	query := `INSERT INTO accounts (user_id, branch_id, account_number, account_type, currency_code, balance, is_minor, power_of_attorney_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, is_closed, created_at`
	err := r.DB.QueryRowContext(ctx, query, account.UserID, account.BranchID, account.AccountNumber, account.AccountType,
		account.CurrencyCode, account.Balance, account.IsMinor, poa).Scan(&account.ID, &account.IsClosed, &account.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create account query")
		return mapPgError(err)
	}
	return nil
}

// GetAccountByID returns the committed snapshot of one account.
func (r *AccountRepository) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	acc, err := scanAccount(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.WithField("account_id", id).WithError(err).Error("Failed to execute get account query")
		return nil, err
	}
	return acc, nil
}

// GetAccountsByUserID retrieves all open accounts for a specific user.
func (r *AccountRepository) GetAccountsByUserID(ctx context.Context, userID int64) ([]*model.Account, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get accounts by user ID")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND is_closed = FALSE ORDER BY id`
	return r.queryAccounts(ctx, log, query, userID)
}

// GetAllAccounts retrieves all open accounts. For admin use only.
func (r *AccountRepository) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log.WithField("scope", "all")
	log.Info("Executing query to get all accounts")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE is_closed = FALSE ORDER BY id`
	return r.queryAccounts(ctx, log, query)
}

func (r *AccountRepository) queryAccounts(ctx context.Context, log *logrus.Entry, query string, args ...any) ([]*model.Account, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute accounts query")
		return nil, err
	}
	defer rows.Close()

	accounts := []*model.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number: %w", err)
	}
	return exists, nil
}

// GetAccountForUpdate reads one account and holds its row lock until tx ends.
func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, tx Querier, accountID int64) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Debug("Executing query to get account for update")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
	acc, err := scanAccount(tx.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("Account not found for update")
			return nil, ErrNotFound
		}
		log.WithError(err).Error("Failed to execute get account for update query")
		return nil, mapPgError(err)
	}
	return acc, nil
}

func (r *AccountRepository) UpdateAccountBalance(ctx context.Context, tx Querier, accountID int64, newBalance decimal.Decimal) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"new_balance": newBalance.String(),
	})
	log.Debug("Executing query to update account balance")

	query := `UPDATE accounts SET balance = $1 WHERE id = $2 AND is_closed = FALSE`
	res, err := tx.ExecContext(ctx, query, newBalance, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account balance query")
		return mapPgError(err)
	}
	return expectOneRow(res)
}

func (r *AccountRepository) CloseAccount(ctx context.Context, tx Querier, accountID int64) error {
	res, err := tx.ExecContext(ctx, `UPDATE accounts SET is_closed = TRUE WHERE id = $1 AND is_closed = FALSE`, accountID)
	if err != nil {
		logger.Log.WithField("account_id", accountID).WithError(err).Error("Failed to execute close account query")
		return mapPgError(err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
