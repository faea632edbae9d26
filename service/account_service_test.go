// file: service/account_service_test.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAccountRepo is a mock implementation of IAccountRepository for testing the account service.
type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) CreateAccount(ctx context.Context, account *model.Account) error {
	args := m.Called(account)
	if args.Error(0) == nil {
		account.ID = 77
	}
	return args.Error(0)
}

func (m *mockAccountRepo) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *mockAccountRepo) GetAccountsByUserID(ctx context.Context, userID int64) ([]*model.Account, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *mockAccountRepo) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	args := m.Called()
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *mockAccountRepo) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(accountNumber)
	return args.Bool(0), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.Called(key, value, expiration)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(keys)
	return redis.NewIntResult(int64(len(keys)), args.Error(0))
}

// sequenceNumbers replaces the random generator with a fixed sequence.
func sequenceNumbers(numbers ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		n := numbers[i%len(numbers)]
		i++
		return n, nil
	}
}

func validCreateRequest() model.CreateAccountRequest {
	return model.CreateAccountRequest{
		BranchID:       3,
		AccountType:    model.AccountTypeCurrent,
		CurrencyCode:   "USD",
		InitialBalance: decimal.RequireFromString("250.00"),
	}
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		accountService := NewAccountService(mockRepo, nil, time.Minute)
		accountService.newNumber = sequenceNumbers("1234567890")

		mockRepo.On("AccountNumberExists", "1234567890").Return(false, nil).Once()
		mockRepo.On("CreateAccount", mock.MatchedBy(func(acc *model.Account) bool {
			return acc.AccountNumber == "1234567890" && acc.UserID == 5 && acc.BranchID == 3 &&
				acc.Balance.Equal(decimal.RequireFromString("250"))
		})).Return(nil).Once()

		account, err := accountService.CreateAccount(ctx, 5, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(77), account.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("retries taken and colliding numbers", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		accountService := NewAccountService(mockRepo, nil, time.Minute)
		accountService.newNumber = sequenceNumbers("1111111111", "2222222222", "3333333333")

		mockRepo.On("AccountNumberExists", "1111111111").Return(true, nil).Once()
		mockRepo.On("AccountNumberExists", "2222222222").Return(false, nil).Once()
		mockRepo.On("CreateAccount", mock.MatchedBy(func(acc *model.Account) bool {
			return acc.AccountNumber == "2222222222"
		})).Return(repository.ErrDuplicate).Once()
		mockRepo.On("AccountNumberExists", "3333333333").Return(false, nil).Once()
		mockRepo.On("CreateAccount", mock.MatchedBy(func(acc *model.Account) bool {
			return acc.AccountNumber == "3333333333"
		})).Return(nil).Once()

		account, err := accountService.CreateAccount(ctx, 5, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "3333333333", account.AccountNumber)
		mockRepo.AssertExpectations(t)
	})

	t.Run("gives up when every number is taken", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		accountService := NewAccountService(mockRepo, nil, time.Minute)
		accountService.newNumber = sequenceNumbers("9999999999")
		mockRepo.On("AccountNumberExists", "9999999999").Return(true, nil).Times(maxAccountNumberAttempts)

		_, err := accountService.CreateAccount(ctx, 5, validCreateRequest())

		assert.ErrorIs(t, err, ErrAccountNumberExhausted)
		mockRepo.AssertNotCalled(t, "CreateAccount", mock.Anything)
	})

	t.Run("negative initial balance", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		accountService := NewAccountService(mockRepo, nil, time.Minute)
		req := validCreateRequest()
		req.InitialBalance = decimal.RequireFromString("-1")

		_, err := accountService.CreateAccount(ctx, 5, req)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		mockRepo.AssertNotCalled(t, "AccountNumberExists", mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		accountService := NewAccountService(mockRepo, nil, time.Minute)
		accountService.newNumber = sequenceNumbers("1234567890")
		expectedError := errors.New("db error")
		mockRepo.On("AccountNumberExists", "1234567890").Return(false, nil).Once()
		mockRepo.On("CreateAccount", mock.Anything).Return(expectedError).Once()

		_, err := accountService.CreateAccount(ctx, 5, validCreateRequest())

		assert.ErrorIs(t, err, expectedError)
	})
}

func TestAccountService_GetAccount(t *testing.T) {
	ctx := context.Background()
	account := &model.Account{ID: 9, UserID: 5, AccountNumber: "1234567890", CurrencyCode: "USD", Balance: decimal.RequireFromString("12.50")}

	t.Run("cache hit", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		cache := new(mockCache)
		data, _ := json.Marshal(account)
		cache.On("Get", "account:9").Return(string(data), nil).Once()

		accountService := NewAccountService(mockRepo, cache, time.Minute)
		got, err := accountService.GetAccount(ctx, 9)

		require.NoError(t, err)
		assert.True(t, got.Balance.Equal(account.Balance))
		mockRepo.AssertNotCalled(t, "GetAccountByID", mock.Anything)
	})

	t.Run("cache miss fills cache", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		cache := new(mockCache)
		cache.On("Get", "account:9").Return("", redis.Nil).Once()
		cache.On("Set", "account:9", mock.Anything, time.Minute).Once()
		mockRepo.On("GetAccountByID", int64(9)).Return(account, nil).Once()

		accountService := NewAccountService(mockRepo, cache, time.Minute)
		got, err := accountService.GetAccount(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, account.AccountNumber, got.AccountNumber)
		mockRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mockAccountRepo)
		mockRepo.On("GetAccountByID", int64(404)).Return(nil, repository.ErrNotFound).Once()

		accountService := NewAccountService(mockRepo, nil, time.Minute)
		_, err := accountService.GetAccount(ctx, 404)

		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestAccountService_InvalidateAccounts(t *testing.T) {
	cache := new(mockCache)
	cache.On("Del", []string{"account:1", "account:2"}).Return(nil).Once()

	accountService := NewAccountService(new(mockAccountRepo), cache, time.Minute)
	accountService.InvalidateAccounts(context.Background(), 1, 2)

	cache.AssertExpectations(t)
}

func TestNewAccountNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		n, err := newAccountNumber()
		require.NoError(t, err)
		require.Len(t, n, accountNumberDigits)
		assert.NotEqual(t, byte('0'), n[0])
	}
}
