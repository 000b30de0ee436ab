package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of money movement.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "deposit"
	KindWithdrawal  TransactionKind = "withdrawal"
	KindTransferOut TransactionKind = "transfer_out"
	KindTransferIn  TransactionKind = "transfer_in"
)

// Persisted time layouts. TimeLayout is second resolution; DateLayout is the
// calendar date the daily withdrawal counter applies to.
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// Transaction is an immutable history entry. Balance is the owner's balance
// immediately after the movement was applied.
type Transaction struct {
	Time    string          `json:"time"`
	Kind    TransactionKind `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Meta    string          `json:"meta"`
}

// NewTransaction builds a history entry stamped at the given instant.
// Amounts are stored at two-decimal precision.
func NewTransaction(kind TransactionKind, amount, balance decimal.Decimal, meta string, at time.Time) Transaction {
	return Transaction{
		Time:    at.Format(TimeLayout),
		Kind:    kind,
		Amount:  RoundAmount(amount),
		Balance: RoundAmount(balance),
		Meta:    meta,
	}
}

// RoundAmount normalizes a monetary value to two-decimal precision.
// Every amount is rounded before comparison or storage.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
