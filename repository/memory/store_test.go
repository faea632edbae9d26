package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store, number string, balance string) *model.Account {
	t.Helper()
	acc := &model.Account{
		UserID:        1,
		BranchID:      1,
		AccountNumber: number,
		AccountType:   model.AccountTypeSavings,
		CurrencyCode:  "USD",
		Balance:       decimal.RequireFromString(balance),
	}
	require.NoError(t, s.CreateAccount(context.Background(), acc))
	return acc
}

func TestStore_CreateAccountRejectsDuplicateNumber(t *testing.T) {
	s := NewStore(time.Second)
	seed(t, s, "1000000001", "0")

	err := s.CreateAccount(context.Background(), &model.Account{AccountNumber: "1000000001"})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
	exists, _ := s.AccountNumberExists(context.Background(), "1000000001")
	assert.True(t, exists)
}

func TestStore_StagedWritesInvisibleUntilCommit(t *testing.T) {
	s := NewStore(time.Second)
	acc := seed(t, s, "1000000001", "10")
	ctx := context.Background()

	err := s.RunInTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.GetAccountsForUpdate(ctx, acc.ID); err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, acc.ID, decimal.NewFromInt(25)); err != nil {
			return err
		}

		outside, err := s.GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, outside.Balance.Equal(decimal.NewFromInt(10)), "staged balance leaked")

		inside, err := tx.GetAccountsForUpdate(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, inside[acc.ID].Balance.Equal(decimal.NewFromInt(25)), "unit must read its own writes")
		return nil
	})
	require.NoError(t, err)

	after, err := s.GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(25)))
}

func TestStore_FailedUnitLeavesNoTrace(t *testing.T) {
	s := NewStore(time.Second)
	acc := seed(t, s, "1000000001", "10")
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.GetAccountsForUpdate(ctx, acc.ID); err != nil {
			return err
		}
		_ = tx.UpdateAccountBalance(ctx, acc.ID, decimal.Zero)
		_ = tx.CloseAccount(ctx, acc.ID)
		_ = tx.CreateTransaction(ctx, &model.Transaction{ID: "x", AccountID: acc.ID})
		return boom
	})

	assert.ErrorIs(t, err, boom)
	after, _ := s.GetAccountByID(ctx, acc.ID)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(10)))
	assert.False(t, after.IsClosed)
	history, _ := s.GetTransactionsByAccountID(ctx, acc.ID)
	assert.Empty(t, history)

	// The lock was released, so a new unit can proceed.
	err = s.RunInTx(ctx, func(tx repository.Tx) error {
		_, err := tx.GetAccountsForUpdate(ctx, acc.ID)
		return err
	})
	assert.NoError(t, err)
}

func TestStore_WritesRequireLock(t *testing.T) {
	s := NewStore(time.Second)
	acc := seed(t, s, "1000000001", "10")
	ctx := context.Background()

	err := s.RunInTx(ctx, func(tx repository.Tx) error {
		return tx.UpdateAccountBalance(ctx, acc.ID, decimal.Zero)
	})

	assert.Error(t, err)
}

func TestStore_LockTimeoutIsConflict(t *testing.T) {
	s := NewStore(20 * time.Millisecond)
	acc := seed(t, s, "1000000001", "10")
	ctx := context.Background()

	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = s.RunInTx(ctx, func(tx repository.Tx) error {
			if _, err := tx.GetAccountsForUpdate(ctx, acc.ID); err != nil {
				return err
			}
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding

	err := s.RunInTx(ctx, func(tx repository.Tx) error {
		_, err := tx.GetAccountsForUpdate(ctx, acc.ID)
		return err
	})
	close(done)

	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestStore_LockWaitHonoursContext(t *testing.T) {
	s := NewStore(0)
	acc := seed(t, s, "1000000001", "10")

	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = s.RunInTx(context.Background(), func(tx repository.Tx) error {
			if _, err := tx.GetAccountsForUpdate(context.Background(), acc.ID); err != nil {
				return err
			}
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.RunInTx(ctx, func(tx repository.Tx) error {
		_, err := tx.GetAccountsForUpdate(ctx, acc.ID)
		return err
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_ListingsSkipClosedAccounts(t *testing.T) {
	s := NewStore(time.Second)
	a := seed(t, s, "1000000001", "0")
	b := seed(t, s, "1000000002", "0")
	ctx := context.Background()

	require.NoError(t, s.RunInTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.GetAccountsForUpdate(ctx, a.ID); err != nil {
			return err
		}
		return tx.CloseAccount(ctx, a.ID)
	}))

	all, _ := s.GetAllAccounts(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)

	mine, _ := s.GetAccountsByUserID(ctx, 1)
	assert.Len(t, mine, 1)

	closed, err := s.GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)
}

func TestStore_GetAccountByIDReturnsCopy(t *testing.T) {
	s := NewStore(time.Second)
	acc := seed(t, s, "1000000001", "10")

	got, _ := s.GetAccountByID(context.Background(), acc.ID)
	got.Balance = decimal.NewFromInt(999)

	again, _ := s.GetAccountByID(context.Background(), acc.ID)
	assert.True(t, again.Balance.Equal(decimal.NewFromInt(10)))
}
