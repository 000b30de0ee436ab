package dto

import (
	"strings"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
)

// LoginRequest is the request body for opening a session.
type LoginRequest struct {
	AccountID string `json:"account_id" binding:"required,max=32"`
	PIN       string `json:"pin" binding:"required,max=16"`
}

// Sanitize trims surrounding whitespace from user-entered fields.
func (r *LoginRequest) Sanitize() {
	r.AccountID = strings.TrimSpace(r.AccountID)
	r.PIN = strings.TrimSpace(r.PIN)
}

// AmountRequest is the request body for deposits and withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest is the request body for transfers.
type TransferRequest struct {
	DestinationID string          `json:"destination_id" binding:"required,max=32"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// Sanitize trims surrounding whitespace from user-entered fields.
func (r *TransferRequest) Sanitize() {
	r.DestinationID = strings.TrimSpace(r.DestinationID)
}

// ChangePINRequest is the request body for changing the account PIN.
type ChangePINRequest struct {
	CurrentPIN string `json:"current_pin" binding:"required,max=16"`
	NewPIN     string `json:"new_pin" binding:"required,max=16"`
	ConfirmPIN string `json:"confirm_pin" binding:"required,max=16"`
}

// Sanitize trims surrounding whitespace from user-entered fields.
func (r *ChangePINRequest) Sanitize() {
	r.CurrentPIN = strings.TrimSpace(r.CurrentPIN)
	r.NewPIN = strings.TrimSpace(r.NewPIN)
	r.ConfirmPIN = strings.TrimSpace(r.ConfirmPIN)
}

// TransactionResponse mirrors one history entry.
type TransactionResponse struct {
	Time    string `json:"time"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
	Meta    string `json:"meta,omitempty"`
}

// AccountResponse is the account snapshot shown on the dashboard.
type AccountResponse struct {
	AccountID    string                `json:"account_id"`
	Name         string                `json:"name"`
	Balance      string                `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}

// SessionResponse is the response body for a successful login.
type SessionResponse struct {
	Token   string          `json:"token"`
	Expiry  int64           `json:"expiry"` // Unix timestamp
	Account AccountResponse `json:"account"`
}

// FromTransaction converts a history entry to its response form.
func FromTransaction(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Time:    tx.Time,
		Type:    string(tx.Kind),
		Amount:  tx.Amount.StringFixed(2),
		Balance: tx.Balance.StringFixed(2),
		Meta:    tx.Meta,
	}
}

// FromTransactions converts a statement slice.
func FromTransactions(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = FromTransaction(tx)
	}
	return out
}

// FromSnapshot converts the engine's read model.
func FromSnapshot(snap *ports.AccountSnapshot) AccountResponse {
	return AccountResponse{
		AccountID:    snap.ID,
		Name:         snap.Name,
		Balance:      snap.Balance.StringFixed(2),
		Transactions: FromTransactions(snap.Transactions),
	}
}
