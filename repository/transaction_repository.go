package repository

import (
	"context"
	"database/sql"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/sirupsen/logrus"
)

// TransactionRepository is the PostgreSQL transaction log.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// CreateTransaction appends one record. It must run on the same tx as the balance change it records.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx Querier, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"account_id":     transaction.AccountID,
		"type":           transaction.Type,
		"amount":         transaction.Amount.String(),
	})
	log.Debug("Executing query to create a new transaction")

	query := `INSERT INTO transactions (id, account_id, user_id, amount, type, status, from_account, to_account, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := tx.ExecContext(ctx, query, transaction.ID, transaction.AccountID, transaction.UserID, transaction.Amount,
		string(transaction.Type), string(transaction.Status), nullString(transaction.FromAccount),
		nullString(transaction.ToAccount), transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return mapPgError(err)
	}
	return nil
}

// GetTransactionsByAccountID retrieves the history of one account, newest first.
func (r *TransactionRepository) GetTransactionsByAccountID(ctx context.Context, accountID int64) ([]*model.Transaction, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get transactions by account ID")

	query := `
		SELECT id, account_id, user_id, amount, type, status, from_account, to_account, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for transactions by account ID")
		return nil, err
	}
	defer rows.Close()

	transactions := []*model.Transaction{}
	for rows.Next() {
		var (
			t        model.Transaction
			from, to sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.AccountID, &t.UserID, &t.Amount, &t.Type, &t.Status, &from, &to, &t.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		if from.Valid {
			t.FromAccount = &from.String
		}
		if to.Valid {
			t.ToAccount = &to.String
		}
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
