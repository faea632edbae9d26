package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-bank-ledger/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresStore runs ledger units of work as PostgreSQL transactions with row locks.
type PostgresStore struct {
	*AccountRepository
	*TransactionRepository

	db          *sql.DB
	lockTimeout time.Duration
}

func NewPostgresStore(db *sql.DB, lockTimeout time.Duration) *PostgresStore {
	return &PostgresStore{
		AccountRepository:     NewAccountRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		db:                    db,
		lockTimeout:           lockTimeout,
	}
}

func (s *PostgresStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", mapPgError(err))
	}
	defer sqlTx.Rollback()

	if s.lockTimeout > 0 {
		// SET LOCAL does not take bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
		if _, err := sqlTx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not set lock timeout: %w", mapPgError(err))
		}
	}

	if err := fn(&pgTx{store: s, tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", mapPgError(err))
	}
	return nil
}

type pgTx struct {
	store *PostgresStore
	tx    *sql.Tx
}

func (t *pgTx) GetAccountsForUpdate(ctx context.Context, ids ...int64) (map[int64]*model.Account, error) {
	ordered := append([]int64(nil), ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	accounts := make(map[int64]*model.Account, len(ordered))
	for _, id := range ordered {
		if _, seen := accounts[id]; seen {
			continue
		}
		acc, err := t.store.GetAccountForUpdate(ctx, t.tx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		accounts[id] = acc
	}
	return accounts, nil
}

func (t *pgTx) UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	return t.store.AccountRepository.UpdateAccountBalance(ctx, t.tx, accountID, balance)
}

func (t *pgTx) CloseAccount(ctx context.Context, accountID int64) error {
	return t.store.AccountRepository.CloseAccount(ctx, t.tx, accountID)
}

func (t *pgTx) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	return t.store.TransactionRepository.CreateTransaction(ctx, t.tx, transaction)
}

// PostgreSQL error codes the ledger reacts to.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func mapPgError(err error) error {
	var pgErr *pq.Error
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.Message)
	}
	return err
}
