package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-bank-ledger/common"
	"go-bank-ledger/service"
)

// conflictRetryAfter is the Retry-After hint, in seconds, sent with storage conflicts.
const conflictRetryAfter = 1

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// ledgerError maps the ledger error taxonomy onto HTTP responses.
func ledgerError(err error, fallback string) *common.AppError {
	kind := service.ErrorKind(err)

	var status int
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAccountClosed), errors.Is(err, service.ErrAlreadyClosed):
		status = http.StatusConflict
	case errors.Is(err, service.ErrStorageConflict):
		appErr := common.NewAppError(http.StatusConflict, err.Error(), err).WithKind(kind)
		appErr.RetryAfter = conflictRetryAfter
		return appErr
	case errors.Is(err, service.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrSameAccountTransfer),
		errors.Is(err, service.ErrCurrencyMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthorized):
		status = http.StatusForbidden
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err).WithKind(kind)
	}
	return common.NewAppError(status, err.Error(), err).WithKind(kind)
}

func pathID(r *http.Request, name string) (int64, *common.AppError) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err).WithKind("invalid_request")
	}
	return id, nil
}
