// file: service/account_service.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/sirupsen/logrus"
)

const maxAccountNumberAttempts = 5

var ErrAccountNumberExhausted = errors.New("could not allocate a unique account number")

// AccountService provisions accounts and serves account snapshots with a cache-aside strategy.
// It never changes balances; that is the ledger's job.
type AccountService struct {
	repo      repository.IAccountRepository
	cache     ICacheClient
	ttl       time.Duration
	newNumber func() (string, error)
}

// NewAccountService accepts a nil cache, in which case every read goes to the repository.
func NewAccountService(repo repository.IAccountRepository, cache ICacheClient, ttl time.Duration) *AccountService {
	return &AccountService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		newNumber: newAccountNumber,
	}
}

func accountCacheKey(accountID int64) string {
	return fmt.Sprintf("account:%d", accountID)
}

// CreateAccount provisions a new open account with a collision-checked account number.
func (s *AccountService) CreateAccount(ctx context.Context, userID int64, req model.CreateAccountRequest) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":   userID,
		"branch_id": req.BranchID,
		"currency":  req.CurrencyCode,
	})

	if req.InitialBalance.IsNegative() || !model.FitsCurrency(req.InitialBalance, req.CurrencyCode) {
		return nil, ErrInvalidAmount
	}

	for attempt := 1; attempt <= maxAccountNumberAttempts; attempt++ {
		number, err := s.newNumber()
		if err != nil {
			return nil, err
		}

		exists, err := s.repo.AccountNumberExists(ctx, number)
		if err != nil {
			return nil, err
		}
		if exists {
			log.WithField("attempt", attempt).Warn("Generated account number already taken")
			continue
		}

		account := &model.Account{
			UserID:                userID,
			BranchID:              req.BranchID,
			AccountNumber:         number,
			AccountType:           req.AccountType,
			CurrencyCode:          req.CurrencyCode,
			Balance:               req.InitialBalance,
			IsMinor:               req.IsMinor,
			PowerOfAttorneyUserID: req.PowerOfAttorneyUserID,
		}
		err = s.repo.CreateAccount(ctx, account)
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race for the same number between the check and the insert.
			log.WithField("attempt", attempt).Warn("Account number collided on insert")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not create account: %w", err)
		}

		log.WithField("account_id", account.ID).Info("Account created")
		return account, nil
	}
	return nil, ErrAccountNumberExhausted
}

// GetAccount returns the committed snapshot of one account.
func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (*model.Account, error) {
	key := accountCacheKey(accountID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var account model.Account
			if err := json.Unmarshal([]byte(cached), &account); err == nil {
				return &account, nil
			}
		}
	}

	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(account); err == nil {
			s.cache.Set(ctx, key, data, s.ttl)
		}
	}
	return account, nil
}

// ListAccountsForUser lists the caller's open accounts.
func (s *AccountService) ListAccountsForUser(ctx context.Context, userID int64) ([]*model.Account, error) {
	return s.repo.GetAccountsByUserID(ctx, userID)
}

// GetAllAccounts retrieves all open accounts. Caching is not applied as admin data must be fresh.
func (s *AccountService) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	return s.repo.GetAllAccounts(ctx)
}

// InvalidateAccounts drops cached snapshots; the ledger calls it after every commit.
func (s *AccountService) InvalidateAccounts(ctx context.Context, accountIDs ...int64) {
	if s.cache == nil || len(accountIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		keys = append(keys, accountCacheKey(id))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		logger.Log.WithField("keys", keys).WithError(err).Warn("Failed to invalidate account cache")
	}
}
