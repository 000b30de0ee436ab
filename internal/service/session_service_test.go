package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVerifier stands in for the ledger behind the session gate.
type fakeVerifier struct {
	pins        map[string]string
	persists    int
	persistFail error
}

func (f *fakeVerifier) VerifyPIN(accountID, pin string) bool {
	stored, ok := f.pins[accountID]
	return ok && stored == pin
}

func (f *fakeVerifier) Persist(_ context.Context) error {
	if f.persistFail != nil {
		return f.persistFail
	}
	f.persists++
	return nil
}

func setupGate(t *testing.T) (*SessionGateImpl, *fakeVerifier) {
	t.Helper()
	verifier := &fakeVerifier{pins: map[string]string{"1001": "1234", "1002": "4321"}}
	tokens := NewJWTTokenService("test-secret", 30*time.Minute, "account-ledger")
	return NewSessionGate(verifier, tokens, zerolog.Nop()), verifier
}

func TestAuthenticate_Success(t *testing.T) {
	gate, _ := setupGate(t)

	sess, err := gate.Authenticate(context.Background(), "1001", "1234")
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.Equal(t, "1001", sess.AccountID)
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	assert.NoError(t, gate.Require("1001"))
}

func TestAuthenticate_Failure(t *testing.T) {
	gate, _ := setupGate(t)

	tests := []struct {
		name      string
		accountID string
		pin       string
	}{
		{"wrong pin", "1001", "0000"},
		{"unknown account", "9999", "1234"},
		{"other account's pin", "1001", "4321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := gate.Authenticate(context.Background(), tt.accountID, tt.pin)
			assert.Nil(t, sess)
			assertAppError(t, err, "AUTH_001")

			// Nothing became active.
			assertAppError(t, gate.Require(tt.accountID), "AUTH_004")
		})
	}
}

func TestRequire_Unauthenticated(t *testing.T) {
	gate, _ := setupGate(t)
	assertAppError(t, gate.Require("1001"), "AUTH_004")
}

func TestRequire_DifferentAccount(t *testing.T) {
	gate, _ := setupGate(t)

	_, err := gate.Authenticate(context.Background(), "1001", "1234")
	require.NoError(t, err)

	assertAppError(t, gate.Require("1002"), "AUTH_004")
}

func TestAuthenticate_ReplacesBinding(t *testing.T) {
	gate, _ := setupGate(t)
	ctx := context.Background()

	_, err := gate.Authenticate(ctx, "1001", "1234")
	require.NoError(t, err)

	_, err = gate.Authenticate(ctx, "1002", "4321")
	require.NoError(t, err)

	assert.NoError(t, gate.Require("1002"))
	assertAppError(t, gate.Require("1001"), "AUTH_004")
}

func TestEndSession_PersistsAndClears(t *testing.T) {
	gate, verifier := setupGate(t)
	ctx := context.Background()

	_, err := gate.Authenticate(ctx, "1001", "1234")
	require.NoError(t, err)

	require.NoError(t, gate.EndSession(ctx))
	assert.Equal(t, 1, verifier.persists)
	assertAppError(t, gate.Require("1001"), "AUTH_004")

	// Ending again is a no-op.
	require.NoError(t, gate.EndSession(ctx))
	assert.Equal(t, 1, verifier.persists)
}

func TestEndSession_PersistFailureKeepsSession(t *testing.T) {
	gate, verifier := setupGate(t)
	ctx := context.Background()

	_, err := gate.Authenticate(ctx, "1001", "1234")
	require.NoError(t, err)

	verifier.persistFail = assert.AnError
	require.Error(t, gate.EndSession(ctx))

	// The session was not cleared on a failed flush.
	assert.NoError(t, gate.Require("1001"))
}
