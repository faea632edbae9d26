package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestLedgerError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{service.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
		{service.ErrAccountClosed, http.StatusConflict, "account_closed"},
		{service.ErrAlreadyClosed, http.StatusConflict, "already_closed"},
		{service.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
		{service.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
		{service.ErrSameAccountTransfer, http.StatusBadRequest, "same_account_transfer"},
		{service.ErrCurrencyMismatch, http.StatusBadRequest, "currency_mismatch"},
		{service.ErrNotAuthorized, http.StatusForbidden, "not_authorized"},
		{fmt.Errorf("%w: lock wait", service.ErrStorageConflict), http.StatusConflict, "storage_conflict"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			appErr := ledgerError(tt.err, "Could not process request")

			assert.Equal(t, tt.status, appErr.Code)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestLedgerError_ConflictAsksForRetry(t *testing.T) {
	rr := httptest.NewRecorder()

	ledgerError(service.ErrStorageConflict, "").Send(rr)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestLedgerError_InternalHidesCause(t *testing.T) {
	appErr := ledgerError(errors.New("pq: password authentication failed"), "Could not process deposit")

	assert.Equal(t, "Could not process deposit", appErr.Message)
}

func TestAuthMiddleware(t *testing.T) {
	auth := service.NewAuthService("test-secret", time.Minute)
	var seen caller
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, appErr := callerFromRequest(r)
		require.Nil(t, appErr)
		seen = c
		w.WriteHeader(http.StatusNoContent)
	})
	protected := AuthMiddleware(auth)(next)

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.IssueToken(42, model.RoleAdmin)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, int64(42), seen.userID)
		assert.True(t, seen.isPrivileged())
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()

			protected.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	next := ErrorHandlingMiddleware(func(w http.ResponseWriter, r *http.Request) *common.AppError {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
	auth := service.NewAuthService("test-secret", time.Minute)
	chain := AuthMiddleware(auth)(AdminMiddleware(next))

	userToken, _ := auth.IssueToken(7, model.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	adminToken, _ := auth.IssueToken(1, model.RoleAdmin)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rr = httptest.NewRecorder()
	chain.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
