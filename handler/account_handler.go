package handler

import (
	"context"
	"errors"
	"net/http"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccount godoc
// @Summary      Open a new account
// @Description  Provisions an open account for the authenticated user with a generated 10-digit account number.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        account body model.CreateAccountRequest true "Account details"
// @Success      201  {object}  model.Account
// @Failure      400  {object}  common.AppError "Invalid request body or initial balance"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Could not create account"
// @Router       /api/accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}

	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  c.userID,
		"currency": req.CurrencyCode,
		"type":     req.AccountType,
	})
	log.Info("Create account request received")

	account, err := h.service.CreateAccount(r.Context(), c.userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return common.NewAppError(http.StatusBadRequest, "Initial balance must not be negative and must fit the currency", err).
				WithKind(service.ErrorKind(err))
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create account", err)
	}

	common.WriteJSON(w, http.StatusCreated, account)
	return nil
}

// ListAccounts godoc
// @Summary      List my accounts
// @Description  Lists the open accounts owned by the authenticated user.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Account
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Could not retrieve accounts"
// @Router       /api/accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id": c.userID,
		"role":    c.role,
	}).Info("List accounts request received")

	accounts, err := h.service.ListAccountsForUser(r.Context(), c.userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve accounts", err)
	}

	common.WriteJSON(w, http.StatusOK, accounts)
	return nil
}

// ListAllAccounts godoc
// @Summary      List all open accounts
// @Description  Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Account
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Admin privileges required"
// @Failure      500  {object}  common.AppError "Could not retrieve accounts"
// @Router       /api/admin/accounts [get]
func (h *AccountHandler) ListAllAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	accounts, err := h.service.GetAllAccounts(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve accounts", err)
	}

	common.WriteJSON(w, http.StatusOK, accounts)
	return nil
}

// GetAccount godoc
// @Summary      Get an account
// @Description  Returns the committed snapshot of an account. Visible to the owner, the power of attorney holder and admins.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        accountId path int true "Account ID"
// @Success      200  {object}  model.Account
// @Failure      400  {object}  common.AppError "Invalid account ID in URL path"
// @Failure      403  {object}  common.AppError "Not authorized to view this account"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}
	accountID, appErr := pathID(r, "accountId")
	if appErr != nil {
		return appErr
	}

	account, appErr := visibleAccount(r.Context(), h.service, c, accountID)
	if appErr != nil {
		return appErr
	}

	common.WriteJSON(w, http.StatusOK, account)
	return nil
}

// visibleAccount loads an account the caller owns, holds power of attorney over, or may see as admin.
func visibleAccount(ctx context.Context, accounts *service.AccountService, c caller, accountID int64) (*model.Account, *common.AppError) {
	account, err := accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, ledgerError(err, "Could not retrieve account")
	}
	if !c.isPrivileged() && !account.CanBeViewedBy(c.userID) {
		return nil, ledgerError(service.ErrNotAuthorized, "")
	}
	return account, nil
}
