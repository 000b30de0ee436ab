package service

import (
	"context"
	"sync"

	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// PINVerifier is the slice of the ledger the session gate needs: credential
// checks and a way to flush state when a session ends.
type PINVerifier interface {
	VerifyPIN(accountID, pin string) bool
	Persist(ctx context.Context) error
}

// SessionGateImpl implements ports.SessionGate. It tracks the single active
// account binding: Unauthenticated -> Active(accountID) -> Unauthenticated.
// Authenticating while a session is active replaces the binding.
type SessionGateImpl struct {
	mu       sync.Mutex
	activeID string

	ledger PINVerifier
	tokens ports.TokenService
	log    zerolog.Logger
}

// NewSessionGate creates a session gate in the Unauthenticated state.
func NewSessionGate(ledger PINVerifier, tokens ports.TokenService, log zerolog.Logger) *SessionGateImpl {
	return &SessionGateImpl{
		ledger: ledger,
		tokens: tokens,
		log:    log,
	}
}

// Authenticate verifies the account id/PIN pair. On success the account
// becomes the active binding and a session token is issued; on failure
// nothing becomes active.
func (g *SessionGateImpl) Authenticate(_ context.Context, accountID, pin string) (*ports.Session, error) {
	if !g.ledger.VerifyPIN(accountID, pin) {
		g.log.Warn().Str("account_id", accountID).Msg("authentication rejected")
		return nil, apperror.ErrAuthFailure()
	}

	token, expiresAt, err := g.tokens.Generate(accountID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	g.mu.Lock()
	g.activeID = accountID
	g.mu.Unlock()

	g.log.Info().Str("account_id", accountID).Msg("session opened")

	return &ports.Session{
		AccountID: accountID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Require rejects ledger calls unless accountID is the active binding.
func (g *SessionGateImpl) Require(accountID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.activeID == "" || g.activeID != accountID {
		return apperror.ErrInvalidSessionState()
	}
	return nil
}

// EndSession persists in-memory state and clears the active binding,
// returning the gate to the Unauthenticated state. Ending an already ended
// session is a no-op.
func (g *SessionGateImpl) EndSession(ctx context.Context) error {
	g.mu.Lock()
	accountID := g.activeID
	g.mu.Unlock()

	if accountID == "" {
		return nil
	}

	if err := g.ledger.Persist(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	g.activeID = ""
	g.mu.Unlock()

	g.log.Info().Str("account_id", accountID).Msg("session closed")
	return nil
}
