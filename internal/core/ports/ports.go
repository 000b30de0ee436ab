package ports

import (
	"context"
	"time"

	"account-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

// AccountStore is the durable persistence layer: the whole account set is
// loaded once at startup and rewritten in full after every mutation.
type AccountStore interface {
	// Load returns all accounts keyed by id. A missing file yields the
	// seeded demo dataset; an unparseable file is a storage failure.
	Load(ctx context.Context) (map[string]*domain.Account, error)
	// Save durably writes the entire account set. Implementations must
	// write a temp file and atomically rename it over the target so a
	// crash mid-write never corrupts the committed state.
	Save(ctx context.Context, accounts map[string]*domain.Account) error
}

// Clock supplies the current time. Injected so tests can drive the daily
// withdrawal counter across date boundaries deterministically.
type Clock interface {
	Now() time.Time
}

// AccountSnapshot is the read model handed to the presentation layer.
type AccountSnapshot struct {
	ID           string
	Name         string
	Balance      decimal.Decimal
	Transactions []domain.Transaction // mini statement, insertion order
}

// LedgerService is the sole authority for mutating balances. Every mutation
// is validated, recorded in history, and persisted before it returns.
type LedgerService interface {
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Transaction, error)
	Transfer(ctx context.Context, sourceID, destID string, amount decimal.Decimal) (*domain.Transaction, error)
	ChangePIN(ctx context.Context, accountID, currentPIN, newPIN, confirmPIN string) error
	Snapshot(ctx context.Context, accountID string) (*AccountSnapshot, error)
	Statement(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// Session describes an established session binding.
type Session struct {
	AccountID string
	Token     string
	ExpiresAt time.Time
}

// SessionGate binds a caller to exactly one active account at a time.
type SessionGate interface {
	// Authenticate verifies the id/PIN pair, binds the account as active
	// and issues a session token. On failure nothing becomes active.
	Authenticate(ctx context.Context, accountID, pin string) (*Session, error)
	// Require rejects callers whose account is not the active binding.
	Require(accountID string) error
	// EndSession persists in-memory state and clears the active binding.
	EndSession(ctx context.Context) error
}

// TokenService issues and validates the bearer tokens that carry the
// session binding across HTTP requests.
type TokenService interface {
	Generate(accountID string) (string, time.Time, error)
	// Validate returns the account id the token was issued for.
	Validate(token string) (string, error)
}

// HealthChecker checks dependency health.
type HealthChecker interface {
	// Ping verifies availability. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "account-store").
	Name() string
}
