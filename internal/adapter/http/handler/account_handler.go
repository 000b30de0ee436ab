package handler

import (
	"account-ledger/internal/adapter/http/dto"
	"account-ledger/internal/adapter/http/middleware"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"
	"account-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles the authenticated ledger endpoints. It holds no
// business rules; every decision is delegated to the ledger service.
type AccountHandler struct {
	ledger ports.LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledger ports.LedgerService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// sessionAccountID pulls the account bound by the session middleware.
func sessionAccountID(c *gin.Context) (string, bool) {
	id, ok := c.Get(middleware.CtxAccountID)
	if !ok {
		response.Error(c, apperror.ErrInvalidSessionState())
		return "", false
	}
	return id.(string), true
}

// Get handles GET /api/v1/account, the dashboard snapshot.
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, ok := sessionAccountID(c)
	if !ok {
		return
	}

	snap, err := h.ledger.Snapshot(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromSnapshot(snap))
}

// Statement handles GET /api/v1/account/statement, the mini statement.
func (h *AccountHandler) Statement(c *gin.Context) {
	accountID, ok := sessionAccountID(c)
	if !ok {
		return
	}

	txs, err := h.ledger.Statement(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"transactions": dto.FromTransactions(txs)})
}

// Deposit handles POST /api/v1/account/deposit.
func (h *AccountHandler) Deposit(c *gin.Context) {
	accountID, ok := sessionAccountID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	tx, err := h.ledger.Deposit(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromTransaction(*tx))
}

// Withdraw handles POST /api/v1/account/withdraw.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	accountID, ok := sessionAccountID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	tx, err := h.ledger.Withdraw(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromTransaction(*tx))
}

// Transfer handles POST /api/v1/account/transfer.
func (h *AccountHandler) Transfer(c *gin.Context) {
	accountID, ok := sessionAccountID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	req.Sanitize()

	tx, err := h.ledger.Transfer(c.Request.Context(), accountID, req.DestinationID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromTransaction(*tx))
}

// ChangePIN handles PUT /api/v1/account/pin.
func (h *AccountHandler) ChangePIN(c *gin.Context) {
	accountID, ok := sessionAccountID(c)
	if !ok {
		return
	}

	var req dto.ChangePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	req.Sanitize()

	if err := h.ledger.ChangePIN(c.Request.Context(), accountID, req.CurrentPIN, req.NewPIN, req.ConfirmPIN); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "pin_updated"})
}
