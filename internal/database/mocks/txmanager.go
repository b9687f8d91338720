// Package mocks provides test doubles for the database package.
package mocks

import (
	"context"
	"testing"
)

// MockTxManager is a TxManager that runs the callback without a real
// transaction. Use it in use case tests where repositories are mocked and no
// database is involved.
type MockTxManager struct {
	// Calls counts how many times WithTx was invoked.
	Calls int
	// Err, when set, is returned without invoking the callback.
	Err error
}

// NewMockTxManager creates a MockTxManager.
func NewMockTxManager(t *testing.T) *MockTxManager {
	t.Helper()
	return &MockTxManager{}
}

// WithTx runs fn with the unmodified context, mirroring commit-on-success and
// rollback-on-error semantics without touching a database.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}
