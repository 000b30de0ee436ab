package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction_RoundsAndStamps(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	tx := NewTransaction(KindDeposit, decimal.RequireFromString("10.005"), decimal.RequireFromString("110.005"), "", at)

	assert.Equal(t, "2026-03-14 09:26:53", tx.Time)
	assert.Equal(t, KindDeposit, tx.Kind)
	assert.Equal(t, "10.01", tx.Amount.StringFixed(2))
	assert.Equal(t, "110.01", tx.Balance.StringFixed(2))
}

func TestAccount_Append_EvictsOldestBeyondCap(t *testing.T) {
	acct := &Account{ID: "1001", Balance: decimal.Zero}
	at := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 51; i++ {
		acct.Balance = acct.Balance.Add(decimal.NewFromInt(1))
		acct.Append(KindDeposit, decimal.NewFromInt(1), fmt.Sprintf("#%d", i), at, DefaultHistoryCap)
	}

	require.Len(t, acct.Transactions, 50)
	// Oldest entry evicted, relative order preserved.
	assert.Equal(t, "#2", acct.Transactions[0].Meta)
	assert.Equal(t, "#51", acct.Transactions[49].Meta)
}

func TestAccount_Append_ZeroCapFallsBackToDefault(t *testing.T) {
	acct := &Account{ID: "1001"}
	at := time.Now()
	for i := 0; i < 60; i++ {
		acct.Append(KindDeposit, decimal.NewFromInt(1), "", at, 0)
	}
	assert.Len(t, acct.Transactions, DefaultHistoryCap)
}

func TestAccount_EffectiveDailyWithdrawn(t *testing.T) {
	acct := &Account{
		DailyWithdrawn: decimal.RequireFromString("1500.00"),
		WithdrawDate:   "2026-03-13",
	}

	// Same day: counter unchanged.
	assert.True(t, acct.EffectiveDailyWithdrawn("2026-03-13").Equal(decimal.RequireFromString("1500.00")))
	// New day: counter observed as zero.
	assert.True(t, acct.EffectiveDailyWithdrawn("2026-03-14").IsZero())
}

func TestAccount_LastTransactions(t *testing.T) {
	acct := &Account{ID: "1001"}
	at := time.Now()
	for i := 1; i <= 15; i++ {
		acct.Append(KindDeposit, decimal.NewFromInt(int64(i)), fmt.Sprintf("#%d", i), at, DefaultHistoryCap)
	}

	last10 := acct.LastTransactions(10)
	require.Len(t, last10, 10)
	assert.Equal(t, "#6", last10[0].Meta)
	assert.Equal(t, "#15", last10[9].Meta)

	assert.Len(t, acct.LastTransactions(100), 15)
	assert.Nil(t, acct.LastTransactions(0))
}

func TestAccount_Clone_IsolatesHistory(t *testing.T) {
	acct := &Account{ID: "1001", Balance: decimal.NewFromInt(100)}
	acct.Append(KindDeposit, decimal.NewFromInt(100), "", time.Now(), DefaultHistoryCap)

	cp := acct.Clone()
	cp.Balance = decimal.NewFromInt(200)
	cp.Append(KindDeposit, decimal.NewFromInt(100), "", time.Now(), DefaultHistoryCap)

	assert.Len(t, acct.Transactions, 1)
	assert.Len(t, cp.Transactions, 2)
	assert.Equal(t, "100", acct.Balance.String())
}

func TestValidPIN(t *testing.T) {
	tests := []struct {
		pin   string
		valid bool
	}{
		{"1234", true},
		{"123456", true},
		{"00000", true},
		{"123", false},
		{"1234567", false},
		{"12a4", false},
		{"12.4", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPIN(tt.pin))
		})
	}
}
