package service

import (
	"context"
	"sync"

	"account-ledger/config"
	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Policy holds the process-wide ledger rules. The withdrawal limits apply
// to every account.
type Policy struct {
	PerTxWithdrawLimit decimal.Decimal
	DailyWithdrawLimit decimal.Decimal
	HistoryCap         int
	StatementWindow    int
}

// PolicyFromConfig converts the raw config section into ledger policy.
func PolicyFromConfig(cfg config.LedgerConfig) Policy {
	return Policy{
		PerTxWithdrawLimit: domain.RoundAmount(decimal.NewFromFloat(cfg.PerTxWithdrawLimit)),
		DailyWithdrawLimit: domain.RoundAmount(decimal.NewFromFloat(cfg.DailyWithdrawLimit)),
		HistoryCap:         cfg.HistoryCap,
		StatementWindow:    cfg.StatementWindow,
	}
}

// LedgerServiceImpl implements ports.LedgerService. It owns the in-process
// authoritative account map: mutations are applied to clones, persisted via
// the store, and committed into the map only when the save succeeded. A
// failed save therefore never leaves the in-memory state diverged from
// disk, and a transfer commits both accounts or neither.
//
// A single mutex serializes every operation; the engine is built for one
// interactive session, so one global write lock is all the concurrency
// control the HTTP adapter needs.
type LedgerServiceImpl struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	store    ports.AccountStore
	clock    ports.Clock
	policy   Policy
	log      zerolog.Logger
}

// NewLedgerService loads the account set and creates the service.
func NewLedgerService(
	ctx context.Context,
	store ports.AccountStore,
	clock ports.Clock,
	policy Policy,
	log zerolog.Logger,
) (*LedgerServiceImpl, error) {
	accounts, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if policy.HistoryCap <= 0 {
		policy.HistoryCap = domain.DefaultHistoryCap
	}
	if policy.StatementWindow <= 0 {
		policy.StatementWindow = 10
	}

	return &LedgerServiceImpl{
		accounts: accounts,
		store:    store,
		clock:    clock,
		policy:   policy,
		log:      log,
	}, nil
}

// Deposit adds a positive amount to the account balance.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	amount = domain.RoundAmount(amount)
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return nil, apperror.ErrAccountNotFound(accountID)
	}

	next := acct.Clone()
	next.Balance = domain.RoundAmount(next.Balance.Add(amount))
	next.Append(domain.KindDeposit, amount, "", s.clock.Now(), s.policy.HistoryCap)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.accounts[accountID] = next

	s.log.Info().
		Str("account_id", accountID).
		Str("kind", string(domain.KindDeposit)).
		Str("amount", amount.StringFixed(2)).
		Str("balance", next.Balance.StringFixed(2)).
		Msg("deposit applied")

	tx := next.Transactions[len(next.Transactions)-1]
	return &tx, nil
}

// Withdraw deducts a positive amount, enforcing the per-transaction limit,
// the balance, then the daily limit, in that order.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	amount = domain.RoundAmount(amount)
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return nil, apperror.ErrAccountNotFound(accountID)
	}

	today := s.clock.Now().Format(domain.DateLayout)
	dailyWithdrawn := acct.EffectiveDailyWithdrawn(today)

	if amount.GreaterThan(s.policy.PerTxWithdrawLimit) {
		return nil, apperror.ErrPerTransactionLimitExceeded(s.policy.PerTxWithdrawLimit)
	}
	if amount.GreaterThan(acct.Balance) {
		return nil, apperror.ErrInsufficientFunds()
	}
	if dailyWithdrawn.Add(amount).GreaterThan(s.policy.DailyWithdrawLimit) {
		remaining := s.policy.DailyWithdrawLimit.Sub(dailyWithdrawn)
		return nil, apperror.ErrDailyLimitExceeded(remaining)
	}

	next := acct.Clone()
	next.Balance = domain.RoundAmount(next.Balance.Sub(amount))
	next.DailyWithdrawn = domain.RoundAmount(dailyWithdrawn.Add(amount))
	next.WithdrawDate = today
	next.Append(domain.KindWithdrawal, amount, "", s.clock.Now(), s.policy.HistoryCap)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.accounts[accountID] = next

	s.log.Info().
		Str("account_id", accountID).
		Str("kind", string(domain.KindWithdrawal)).
		Str("amount", amount.StringFixed(2)).
		Str("daily_withdrawn", next.DailyWithdrawn.StringFixed(2)).
		Str("balance", next.Balance.StringFixed(2)).
		Msg("withdrawal applied")

	tx := next.Transactions[len(next.Transactions)-1]
	return &tx, nil
}

// Transfer moves funds between two accounts as a single unit: both balances
// reflect the transfer or neither does. No withdrawal limits apply.
// Returns the source's transfer_out entry.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, sourceID, destID string, amount decimal.Decimal) (*domain.Transaction, error) {
	amount = domain.RoundAmount(amount)
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.accounts[sourceID]
	if !ok {
		return nil, apperror.ErrAccountNotFound(sourceID)
	}
	dst, ok := s.accounts[destID]
	if !ok {
		return nil, apperror.ErrAccountNotFound(destID)
	}
	if destID == sourceID {
		return nil, apperror.ErrSelfTransfer()
	}
	if amount.GreaterThan(src.Balance) {
		return nil, apperror.ErrInsufficientFunds()
	}

	now := s.clock.Now()

	nextSrc := src.Clone()
	nextSrc.Balance = domain.RoundAmount(nextSrc.Balance.Sub(amount))
	nextSrc.Append(domain.KindTransferOut, amount, "to "+destID, now, s.policy.HistoryCap)

	nextDst := dst.Clone()
	nextDst.Balance = domain.RoundAmount(nextDst.Balance.Add(amount))
	nextDst.Append(domain.KindTransferIn, amount, "from "+sourceID, now, s.policy.HistoryCap)

	if err := s.persist(ctx, nextSrc, nextDst); err != nil {
		return nil, err
	}
	s.accounts[sourceID] = nextSrc
	s.accounts[destID] = nextDst

	s.log.Info().
		Str("source_id", sourceID).
		Str("dest_id", destID).
		Str("amount", amount.StringFixed(2)).
		Msg("transfer applied")

	tx := nextSrc.Transactions[len(nextSrc.Transactions)-1]
	return &tx, nil
}

// ChangePIN replaces the stored PIN. No transaction is appended.
func (s *LedgerServiceImpl) ChangePIN(ctx context.Context, accountID, currentPIN, newPIN, confirmPIN string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return apperror.ErrAccountNotFound(accountID)
	}
	if currentPIN != acct.PIN {
		return apperror.ErrAuthFailure()
	}
	if newPIN != confirmPIN {
		return apperror.ErrPinMismatch()
	}
	if !domain.ValidPIN(newPIN) {
		return apperror.ErrInvalidPinFormat()
	}

	next := acct.Clone()
	next.PIN = newPIN

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.accounts[accountID] = next

	s.log.Info().Str("account_id", accountID).Msg("pin changed")
	return nil
}

// Snapshot returns the presentation read model for an account.
func (s *LedgerServiceImpl) Snapshot(_ context.Context, accountID string) (*ports.AccountSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return nil, apperror.ErrAccountNotFound(accountID)
	}

	return &ports.AccountSnapshot{
		ID:           acct.ID,
		Name:         acct.Name,
		Balance:      acct.Balance,
		Transactions: acct.LastTransactions(s.policy.StatementWindow),
	}, nil
}

// Statement returns the mini statement (display window of recent entries).
func (s *LedgerServiceImpl) Statement(_ context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	if !ok {
		return nil, apperror.ErrAccountNotFound(accountID)
	}
	return acct.LastTransactions(s.policy.StatementWindow), nil
}

// VerifyPIN reports whether the account exists and the PIN matches.
// Used by the session gate; no lockout or attempt counting.
func (s *LedgerServiceImpl) VerifyPIN(accountID, pin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[accountID]
	return ok && acct.PIN == pin
}

// Persist rewrites the current account set. Called by the session gate when
// a session ends.
func (s *LedgerServiceImpl) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx, s.accounts)
}

// persist saves the account set with the pending clones swapped in. The
// live map is untouched until the caller commits.
func (s *LedgerServiceImpl) persist(ctx context.Context, pending ...*domain.Account) error {
	view := make(map[string]*domain.Account, len(s.accounts))
	for id, acct := range s.accounts {
		view[id] = acct
	}
	for _, acct := range pending {
		view[acct.ID] = acct
	}
	return s.store.Save(ctx, view)
}
