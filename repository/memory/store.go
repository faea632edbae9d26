// Package memory is an in-process ledger store. Each account has its own lock; a unit of work
// takes the locks it needs in ascending id order, stages its writes and applies them all at once
// on commit, so readers never see half of a unit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/shopspring/decimal"
)

type Store struct {
	mu           sync.RWMutex
	nextID       int64
	accounts     map[int64]*model.Account
	numbers      map[string]int64
	transactions map[int64][]*model.Transaction
	locks        map[int64]chan struct{}

	lockTimeout time.Duration
}

// NewStore returns an empty store. Lock waits longer than lockTimeout fail with
// repository.ErrConflict; zero means wait until the context ends.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		accounts:     make(map[int64]*model.Account),
		numbers:      make(map[string]int64),
		transactions: make(map[int64][]*model.Transaction),
		locks:        make(map[int64]chan struct{}),
		lockTimeout:  lockTimeout,
	}
}

func copyAccount(a *model.Account) *model.Account {
	cp := *a
	if a.PowerOfAttorneyUserID != nil {
		poa := *a.PowerOfAttorneyUserID
		cp.PowerOfAttorneyUserID = &poa
	}
	return &cp
}

func (s *Store) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.numbers[account.AccountNumber]; exists {
		return fmt.Errorf("%w: account number %s", repository.ErrDuplicate, account.AccountNumber)
	}

	s.nextID++
	account.ID = s.nextID
	account.IsClosed = false
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	s.accounts[account.ID] = copyAccount(account)
	s.numbers[account.AccountNumber] = account.ID
	s.locks[account.ID] = make(chan struct{}, 1)
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyAccount(acc), nil
}

func (s *Store) GetAccountsByUserID(ctx context.Context, userID int64) ([]*model.Account, error) {
	return s.filterAccounts(func(a *model.Account) bool { return a.UserID == userID && !a.IsClosed }), nil
}

func (s *Store) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	return s.filterAccounts(func(a *model.Account) bool { return !a.IsClosed }), nil
}

func (s *Store) filterAccounts(keep func(*model.Account) bool) []*model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*model.Account{}
	for _, acc := range s.accounts {
		if keep(acc) {
			result = append(result, copyAccount(acc))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.numbers[accountNumber]
	return exists, nil
}

// GetTransactionsByAccountID returns committed records of one account, newest first.
func (s *Store) GetTransactionsByAccountID(ctx context.Context, accountID int64) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.transactions[accountID]
	result := make([]*model.Transaction, 0, len(records))
	for _, t := range records {
		cp := *t
		result = append(result, &cp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		store:    s,
		held:     make(map[int64]chan struct{}),
		balances: make(map[int64]decimal.Decimal),
		closed:   make(map[int64]bool),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit(ctx)
}

type memTx struct {
	store    *Store
	held     map[int64]chan struct{}
	balances map[int64]decimal.Decimal
	closed   map[int64]bool
	appended []*model.Transaction
}

func (t *memTx) GetAccountsForUpdate(ctx context.Context, ids ...int64) (map[int64]*model.Account, error) {
	ordered := append([]int64(nil), ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	for _, id := range ordered {
		if _, ok := t.held[id]; ok {
			continue
		}
		t.store.mu.RLock()
		lock, exists := t.store.locks[id]
		t.store.mu.RUnlock()
		if !exists {
			continue
		}
		if err := t.acquire(ctx, lock); err != nil {
			return nil, err
		}
		t.held[id] = lock
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	accounts := make(map[int64]*model.Account, len(ordered))
	for _, id := range ordered {
		acc, ok := t.store.accounts[id]
		if !ok {
			continue
		}
		cp := copyAccount(acc)
		if bal, staged := t.balances[id]; staged {
			cp.Balance = bal
		}
		if t.closed[id] {
			cp.IsClosed = true
		}
		accounts[id] = cp
	}
	return accounts, nil
}

func (t *memTx) acquire(ctx context.Context, lock chan struct{}) error {
	var timeout <-chan time.Time
	if t.store.lockTimeout > 0 {
		timer := time.NewTimer(t.store.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return fmt.Errorf("%w: lock wait exceeded %s", repository.ErrConflict, t.store.lockTimeout)
	}
}

func (t *memTx) requireHeld(accountID int64) error {
	if _, ok := t.held[accountID]; !ok {
		return fmt.Errorf("account %d is not locked by this unit of work", accountID)
	}
	return nil
}

func (t *memTx) UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	if err := t.requireHeld(accountID); err != nil {
		return err
	}
	t.balances[accountID] = balance
	return nil
}

func (t *memTx) CloseAccount(ctx context.Context, accountID int64) error {
	if err := t.requireHeld(accountID); err != nil {
		return err
	}
	t.closed[accountID] = true
	return nil
}

func (t *memTx) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	if err := t.requireHeld(transaction.AccountID); err != nil {
		return err
	}
	cp := *transaction
	t.appended = append(t.appended, &cp)
	return nil
}

// commit is the point after which the unit can no longer be cancelled.
func (t *memTx) commit(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	for id, bal := range t.balances {
		t.store.accounts[id].Balance = bal
	}
	for id := range t.closed {
		t.store.accounts[id].IsClosed = true
	}
	for _, rec := range t.appended {
		t.store.transactions[rec.AccountID] = append(t.store.transactions[rec.AccountID], rec)
	}
	return nil
}

func (t *memTx) release() {
	for id, lock := range t.held {
		<-lock
		delete(t.held, id)
	}
}
