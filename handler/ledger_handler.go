package handler

import (
	"net/http"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"

	"github.com/sirupsen/logrus"
)

// LedgerHandler exposes the ledger operations. Ownership of the debited account is checked
// here; the ledger itself trusts the user id it is given.
type LedgerHandler struct {
	ledger   *service.LedgerService
	accounts *service.AccountService
}

func NewLedgerHandler(ledger *service.LedgerService, accounts *service.AccountService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, accounts: accounts}
}

// Deposit godoc
// @Summary      Deposit money
// @Description  Credits an open account. Any authenticated user may deposit into any open account.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        accountId path int true "Account ID"
// @Param        deposit body model.AmountRequest true "Amount to deposit"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Invalid amount"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      409  {object}  common.AppError "Account closed or concurrent update conflict"
// @Failure      500  {object}  common.AppError "Could not process deposit"
// @Router       /api/accounts/{accountId}/deposit [post]
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}
	accountID, appErr := pathID(r, "accountId")
	if appErr != nil {
		return appErr
	}
	var req model.AmountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":    c.userID,
		"account_id": accountID,
	}).Info("Deposit request received")

	txn, err := h.ledger.Deposit(r.Context(), c.userID, accountID, req.Amount)
	if err != nil {
		return ledgerError(err, "Could not process deposit")
	}

	common.WriteJSON(w, http.StatusCreated, txn)
	return nil
}

// Withdraw godoc
// @Summary      Withdraw money
// @Description  Debits an open account holding at least the amount. The caller must own the account, hold power of attorney over it, or be an admin.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        accountId path int true "Account ID"
// @Param        withdrawal body model.AmountRequest true "Amount to withdraw"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Invalid amount"
// @Failure      403  {object}  common.AppError "Not authorized to act on this account"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      409  {object}  common.AppError "Account closed or concurrent update conflict"
// @Failure      422  {object}  common.AppError "Insufficient funds"
// @Failure      500  {object}  common.AppError "Could not process withdrawal"
// @Router       /api/accounts/{accountId}/withdraw [post]
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}
	accountID, appErr := pathID(r, "accountId")
	if appErr != nil {
		return appErr
	}
	var req model.AmountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if _, appErr := visibleAccount(r.Context(), h.accounts, c, accountID); appErr != nil {
		return appErr
	}

	txn, err := h.ledger.Withdraw(r.Context(), c.userID, accountID, req.Amount)
	if err != nil {
		return ledgerError(err, "Could not process withdrawal")
	}

	common.WriteJSON(w, http.StatusCreated, txn)
	return nil
}

// CreateTransfer godoc
// @Summary      Transfer money between accounts
// @Description  Moves an amount between two open accounts of the same currency. The caller must be allowed to act on the source account.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transfer body model.TransferRequest true "Details of the financial transfer"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Invalid amount, same account or currency mismatch"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Forbidden: User may not act on the source account"
// @Failure      404  {object}  common.AppError "Sender or receiver account not found"
// @Failure      409  {object}  common.AppError "Account closed or concurrent update conflict"
// @Failure      422  {object}  common.AppError "Insufficient funds"
// @Failure      500  {object}  common.AppError "Internal server error while processing transfer"
// @Router       /api/transfers [post]
func (h *LedgerHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}

	if req.FromAccountID != req.ToAccountID {
		if _, appErr := visibleAccount(r.Context(), h.accounts, c, req.FromAccountID); appErr != nil {
			return appErr
		}
	}

	txn, err := h.ledger.Transfer(r.Context(), c.userID, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		return ledgerError(err, "Could not process transfer")
	}

	common.WriteJSON(w, http.StatusCreated, txn)
	return nil
}

// CloseAccount godoc
// @Summary      Close an account
// @Description  Marks an account closed. Only the owner or an admin may close it; closing is terminal.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        accountId path int true "Account ID"
// @Success      200  {object}  model.CloseAccountResponse
// @Failure      400  {object}  common.AppError "Invalid account ID in URL path"
// @Failure      403  {object}  common.AppError "Not authorized to close this account"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      409  {object}  common.AppError "Account already closed"
// @Router       /api/accounts/{accountId}/close [post]
func (h *LedgerHandler) CloseAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}
	accountID, appErr := pathID(r, "accountId")
	if appErr != nil {
		return appErr
	}

	closed, err := h.ledger.CloseAccount(r.Context(), accountID, c.userID, c.isPrivileged())
	if err != nil {
		return ledgerError(err, "Could not close account")
	}

	common.WriteJSON(w, http.StatusOK, model.CloseAccountResponse{AccountID: accountID, Closed: closed})
	return nil
}

// ListTransactionsForAccount godoc
// @Summary      List account transaction history
// @Description  Retrieves the transactions recorded on an account, newest first. Incoming transfers are recorded on the sending account only.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        accountId path int true "The ID of the account to retrieve transactions for"
// @Success      200  {array}   model.Transaction "A list of transactions for the account"
// @Failure      400  {object}  common.AppError "Invalid account ID in URL path"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Forbidden: User may not view the specified account"
// @Failure      404  {object}  common.AppError "Account with the specified ID not found"
// @Failure      500  {object}  common.AppError "Internal server error while retrieving transactions"
// @Router       /api/accounts/{accountId}/transactions [get]
func (h *LedgerHandler) ListTransactionsForAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	c, appErr := callerFromRequest(r)
	if appErr != nil {
		return appErr
	}
	accountID, appErr := pathID(r, "accountId")
	if appErr != nil {
		return appErr
	}

	if _, appErr := visibleAccount(r.Context(), h.accounts, c, accountID); appErr != nil {
		return appErr
	}

	transactions, err := h.ledger.ListTransactions(r.Context(), accountID)
	if err != nil {
		return ledgerError(err, "Could not retrieve transactions")
	}

	common.WriteJSON(w, http.StatusOK, transactions)
	return nil
}
