package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-bank-ledger/config"
	"go-bank-ledger/events"
	"go-bank-ledger/logger"
	"go-bank-ledger/metrics"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	opDeposit  = "deposit"
	opWithdraw = "withdraw"
	opTransfer = "transfer"
	opClose    = "close_account"
)

// CacheInvalidator drops cached account snapshots after their balance or status changed.
type CacheInvalidator interface {
	InvalidateAccounts(ctx context.Context, accountIDs ...int64)
}

// LedgerService applies deposits, withdrawals, transfers and closures as atomic units of work
// over a repository.Store. Every successful balance change appends exactly one transaction
// record in the same unit.
type LedgerService struct {
	store      repository.Store
	publisher  events.Publisher
	metrics    *metrics.Collector
	cache      CacheInvalidator
	ids        *idGenerator
	now        func() time.Time
	maxRetries int
	backoff    time.Duration
}

type LedgerOption func(*LedgerService)

func WithPublisher(p events.Publisher) LedgerOption {
	return func(s *LedgerService) { s.publisher = p }
}

func WithMetrics(c *metrics.Collector) LedgerOption {
	return func(s *LedgerService) { s.metrics = c }
}

func WithCacheInvalidator(c CacheInvalidator) LedgerOption {
	return func(s *LedgerService) { s.cache = c }
}

func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) { s.now = now }
}

func NewLedgerService(store repository.Store, cfg config.LedgerConfig, opts ...LedgerOption) *LedgerService {
	s := &LedgerService{
		store:      store,
		publisher:  events.NoopPublisher{},
		ids:        newIDGenerator(),
		now:        func() time.Time { return time.Now().UTC() },
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deposit credits amount to an open account.
func (s *LedgerService) Deposit(ctx context.Context, userID, accountID int64, amount decimal.Decimal) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"operation":  opDeposit,
		"account_id": accountID,
		"user_id":    userID,
		"amount":     amount.String(),
	})

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var (
		txn      *model.Transaction
		currency string
	)
	err := s.execute(ctx, opDeposit, func(tx repository.Tx) error {
		accounts, err := tx.GetAccountsForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		acc, ok := accounts[accountID]
		if !ok {
			return ErrAccountNotFound
		}
		if err := checkMutable(acc, amount); err != nil {
			return err
		}

		if err := tx.UpdateAccountBalance(ctx, acc.ID, acc.Balance.Add(amount)); err != nil {
			return fmt.Errorf("could not update account balance: %w", err)
		}
		rec, err := s.newTransaction(acc.ID, userID, amount, model.TransactionDeposit, nil, &acc.AccountNumber)
		if err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, rec); err != nil {
			return fmt.Errorf("could not create transaction record: %w", err)
		}
		txn, currency = rec, acc.CurrencyCode
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Deposit rejected")
		return nil, err
	}

	log.WithField("transaction_id", txn.ID).Info("Deposit completed successfully")
	s.afterCommit(ctx, txn, currency, accountID)
	return txn, nil
}

// Withdraw debits amount from an open account holding at least that much.
func (s *LedgerService) Withdraw(ctx context.Context, userID, accountID int64, amount decimal.Decimal) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"operation":  opWithdraw,
		"account_id": accountID,
		"user_id":    userID,
		"amount":     amount.String(),
	})

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var (
		txn      *model.Transaction
		currency string
	)
	err := s.execute(ctx, opWithdraw, func(tx repository.Tx) error {
		accounts, err := tx.GetAccountsForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		acc, ok := accounts[accountID]
		if !ok {
			return ErrAccountNotFound
		}
		if err := checkMutable(acc, amount); err != nil {
			return err
		}
		if acc.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}

		if err := tx.UpdateAccountBalance(ctx, acc.ID, acc.Balance.Sub(amount)); err != nil {
			return fmt.Errorf("could not update account balance: %w", err)
		}
		rec, err := s.newTransaction(acc.ID, userID, amount, model.TransactionWithdraw, &acc.AccountNumber, nil)
		if err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, rec); err != nil {
			return fmt.Errorf("could not create transaction record: %w", err)
		}
		txn, currency = rec, acc.CurrencyCode
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Withdrawal rejected")
		return nil, err
	}

	log.WithField("transaction_id", txn.ID).Info("Withdrawal completed successfully")
	s.afterCommit(ctx, txn, currency, accountID)
	return txn, nil
}

// Transfer moves amount between two open accounts of the same currency. Both balances and the
// single source-side record commit together or not at all.
func (s *LedgerService) Transfer(ctx context.Context, userID, fromAccountID, toAccountID int64, amount decimal.Decimal) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"operation":       opTransfer,
		"from_account_id": fromAccountID,
		"to_account_id":   toAccountID,
		"user_id":         userID,
		"amount":          amount.String(),
	})
	log.Info("Starting money transfer process")

	if fromAccountID == toAccountID {
		return nil, ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var (
		txn      *model.Transaction
		currency string
	)
	err := s.execute(ctx, opTransfer, func(tx repository.Tx) error {
		// Locks are taken in ascending id order whatever the direction of the transfer.
		accounts, err := tx.GetAccountsForUpdate(ctx, fromAccountID, toAccountID)
		if err != nil {
			return err
		}
		from, okFrom := accounts[fromAccountID]
		to, okTo := accounts[toAccountID]
		if !okFrom || !okTo {
			return ErrAccountNotFound
		}
		if from.IsClosed || to.IsClosed {
			return ErrAccountClosed
		}
		if from.CurrencyCode != to.CurrencyCode {
			return ErrCurrencyMismatch
		}
		if !model.FitsCurrency(amount, from.CurrencyCode) {
			return ErrInvalidAmount
		}
		if from.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}

		if err := tx.UpdateAccountBalance(ctx, from.ID, from.Balance.Sub(amount)); err != nil {
			return fmt.Errorf("could not update sender balance: %w", err)
		}
		if err := tx.UpdateAccountBalance(ctx, to.ID, to.Balance.Add(amount)); err != nil {
			return fmt.Errorf("could not update receiver balance: %w", err)
		}
		rec, err := s.newTransaction(from.ID, userID, amount, model.TransactionTransfer, &from.AccountNumber, &to.AccountNumber)
		if err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, rec); err != nil {
			return fmt.Errorf("could not create transaction record: %w", err)
		}
		txn, currency = rec, from.CurrencyCode
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Transfer rejected")
		return nil, err
	}

	log.WithField("transaction_id", txn.ID).Info("Transaction completed successfully")
	s.afterCommit(ctx, txn, currency, fromAccountID, toAccountID)
	return txn, nil
}

// CloseAccount marks an account closed. Only the owner or a privileged caller may close it.
func (s *LedgerService) CloseAccount(ctx context.Context, accountID, actingUserID int64, isPrivileged bool) (bool, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"operation":     opClose,
		"account_id":    accountID,
		"user_id":       actingUserID,
		"is_privileged": isPrivileged,
	})

	err := s.execute(ctx, opClose, func(tx repository.Tx) error {
		accounts, err := tx.GetAccountsForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		acc, ok := accounts[accountID]
		if !ok {
			return ErrAccountNotFound
		}
		if acc.IsClosed {
			return ErrAlreadyClosed
		}
		if !isPrivileged && acc.UserID != actingUserID {
			return ErrNotAuthorized
		}
		if err := tx.CloseAccount(ctx, acc.ID); err != nil {
			return fmt.Errorf("could not close account: %w", err)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Account closure rejected")
		return false, err
	}

	log.Info("Account closed")
	if s.cache != nil {
		s.cache.InvalidateAccounts(context.WithoutCancel(ctx), accountID)
	}
	return true, nil
}

// ListTransactions returns the records owned by accountID, newest first. It never writes.
func (s *LedgerService) ListTransactions(ctx context.Context, accountID int64) ([]*model.Transaction, error) {
	if _, err := s.store.GetAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("could not load account: %w", err)
	}

	transactions, err := s.store.GetTransactionsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("could not load transactions: %w", err)
	}
	return transactions, nil
}

// execute runs fn as one unit of work, retrying only storage conflicts, at most maxRetries times.
// fn must be safe to run again from scratch.
func (s *LedgerService) execute(ctx context.Context, op string, fn func(tx repository.Tx) error) error {
	start := time.Now()

	var err error
	for attempt := 0; ; attempt++ {
		err = s.store.RunInTx(ctx, fn)
		if !errors.Is(err, repository.ErrConflict) || attempt >= s.maxRetries {
			break
		}

		s.metrics.ConflictRetry(op)
		logger.Log.WithFields(logrus.Fields{
			"operation": op,
			"attempt":   attempt + 1,
		}).WithError(err).Warn("Storage conflict, retrying unit of work")

		if werr := sleepCtx(ctx, time.Duration(attempt+1)*s.backoff); werr != nil {
			err = werr
			break
		}
	}

	if errors.Is(err, repository.ErrConflict) {
		err = fmt.Errorf("%w: %w", ErrStorageConflict, err)
	}
	s.metrics.ObserveOperation(op, ErrorKind(err), time.Since(start))
	return err
}

func (s *LedgerService) newTransaction(accountID, userID int64, amount decimal.Decimal, txType model.TransactionType, from, to *string) (*model.Transaction, error) {
	now := s.now()
	id, err := s.ids.New(now)
	if err != nil {
		return nil, err
	}
	return &model.Transaction{
		ID:          id,
		AccountID:   accountID,
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Status:      model.StatusCompleted,
		FromAccount: from,
		ToAccount:   to,
		CreatedAt:   now,
	}, nil
}

// afterCommit runs side effects that must not change the outcome of a committed operation.
func (s *LedgerService) afterCommit(ctx context.Context, txn *model.Transaction, currency string, accountIDs ...int64) {
	ctx = context.WithoutCancel(ctx)

	if s.cache != nil {
		s.cache.InvalidateAccounts(ctx, accountIDs...)
	}
	s.metrics.AmountMoved(string(txn.Type), currency, txn.Amount.InexactFloat64())

	if err := s.publisher.Publish(ctx, events.NewTransactionEvent(txn, currency)); err != nil {
		s.metrics.PublishFailed()
		logger.Log.WithField("transaction_id", txn.ID).WithError(err).Error("Could not publish transaction event")
	}
}

func checkMutable(acc *model.Account, amount decimal.Decimal) error {
	if acc.IsClosed {
		return ErrAccountClosed
	}
	if !model.FitsCurrency(amount, acc.CurrencyCode) {
		return ErrInvalidAmount
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
