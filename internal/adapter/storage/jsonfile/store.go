package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store persists the full account set as a single JSON document. Writes go
// to a temp file first and are renamed over the target, so the previously
// committed state survives a crash mid-write; a leftover temp file is
// simply ignored by the next Load.
type Store struct {
	path  string
	clock ports.Clock
	log   zerolog.Logger
}

// New creates a Store persisting to path.
func New(path string, clock ports.Clock, log zerolog.Logger) *Store {
	return &Store{path: path, clock: clock, log: log}
}

// Load reads the persisted account set. On first run (no file) it seeds the
// demo dataset and persists it before returning.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info().Str("path", s.path).Msg("no persisted state, seeding demo accounts")
			return s.seed(ctx)
		}
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("read %s: %w", s.path, err))
	}

	accounts := make(map[string]*domain.Account)
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("parse %s: %w", s.path, err))
	}

	// The id is the map key, not a field of the persisted record.
	for id, acct := range accounts {
		acct.ID = id
	}

	return accounts, nil
}

// Save writes the entire account set durably via temp-file-then-rename.
func (s *Store) Save(_ context.Context, accounts map[string]*domain.Account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("marshal accounts: %w", err))
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("write %s: %w", tmp, err))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperror.ErrStorageUnavailable(fmt.Errorf("rename %s: %w", tmp, err))
	}

	return nil
}

// seed builds the demo dataset and persists it.
func (s *Store) seed(ctx context.Context) (map[string]*domain.Account, error) {
	today := s.clock.Now().Format(domain.DateLayout)

	accounts := map[string]*domain.Account{
		"1001": {
			ID:             "1001",
			Name:           "Alice",
			PIN:            "1234",
			Balance:        decimal.RequireFromString("100000.00"),
			DailyWithdrawn: decimal.Zero,
			WithdrawDate:   today,
			Transactions:   []domain.Transaction{},
		},
		"1002": {
			ID:             "1002",
			Name:           "Bob",
			PIN:            "4321",
			Balance:        decimal.RequireFromString("50000.00"),
			DailyWithdrawn: decimal.Zero,
			WithdrawDate:   today,
			Transactions:   []domain.Transaction{},
		},
	}

	if err := s.Save(ctx, accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}
