package jsonfile

import (
	"context"
	"os"
	"path/filepath"
)

// HealthCheck implements ports.HealthChecker for the account file store.
type HealthCheck struct {
	store *Store
}

// NewHealthCheck creates a file store health checker.
func NewHealthCheck(store *Store) *HealthCheck {
	return &HealthCheck{store: store}
}

// Ping verifies the storage directory is reachable. The data file itself
// may not exist yet (it is seeded on first load).
func (h *HealthCheck) Ping(_ context.Context) error {
	dir := filepath.Dir(h.store.path)
	_, err := os.Stat(dir)
	return err
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "account-store"
}
