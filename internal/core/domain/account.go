package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHistoryCap is the number of transactions retained per account.
const DefaultHistoryCap = 50

// Account is a single ledger account. The ID doubles as the persisted map
// key and never changes; the PIN is the only mutable credential.
type Account struct {
	ID             string          `json:"-"`
	Name           string          `json:"name"`
	PIN            string          `json:"pin"`
	Balance        decimal.Decimal `json:"balance"`
	DailyWithdrawn decimal.Decimal `json:"daily_withdrawn"`
	WithdrawDate   string          `json:"withdraw_date"`
	Transactions   []Transaction   `json:"transactions"`
}

// Append records a movement in the account history and enforces the cap,
// evicting the oldest entries first. Balance must already reflect the
// movement. Cannot fail.
func (a *Account) Append(kind TransactionKind, amount decimal.Decimal, meta string, at time.Time, capacity int) {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	a.Transactions = append(a.Transactions, NewTransaction(kind, amount, a.Balance, meta, at))
	if excess := len(a.Transactions) - capacity; excess > 0 {
		a.Transactions = append([]Transaction(nil), a.Transactions[excess:]...)
	}
}

// EffectiveDailyWithdrawn returns the daily counter reconciled against the
// given calendar date: a date change since the last update resets it to zero.
// The counter is never reset mid-day.
func (a *Account) EffectiveDailyWithdrawn(today string) decimal.Decimal {
	if a.WithdrawDate != today {
		return decimal.Zero
	}
	return a.DailyWithdrawn
}

// LastTransactions returns up to n most recent entries in insertion order.
func (a *Account) LastTransactions(n int) []Transaction {
	if n <= 0 || len(a.Transactions) == 0 {
		return nil
	}
	start := len(a.Transactions) - n
	if start < 0 {
		start = 0
	}
	out := make([]Transaction, len(a.Transactions)-start)
	copy(out, a.Transactions[start:])
	return out
}

// Clone returns a deep copy. Mutations are applied to clones and only
// committed to the live account set once persistence has succeeded.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = append([]Transaction(nil), a.Transactions...)
	return &cp
}

// ValidPIN reports whether s is an acceptable PIN: digits only, 4-6 long.
func ValidPIN(s string) bool {
	if len(s) < 4 || len(s) > 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
