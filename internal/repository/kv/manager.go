// Package kv implements the repository over any ordered key/value database.
// Entities are stored msgpack-encoded under prefixed keys and every
// repository is one database transaction.
package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/LeJamon/goQortald/internal/repository"
	"github.com/LeJamon/goQortald/internal/storage/database"
	"go.uber.org/zap"
)

// Manager hands out repositories over one database.
type Manager struct {
	db     database.DB
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for the manager and its repositories.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a manager that owns db; Close closes it.
func NewManager(db database.DB, opts ...Option) *Manager {
	m := &Manager{
		db:     db,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin opens a repository. Callers must Close it.
func (m *Manager) Begin(ctx context.Context) (repository.Repository, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, repository.NewError(repository.KindClosed, "begin", nil)
	}

	txn, err := m.db.Begin(ctx)
	if err != nil {
		return nil, repository.NewTransactionError("begin", err)
	}
	return newRepository(m.db, txn, m.logger), nil
}

// WithRepository runs fn in a new repository and saves its changes if fn
// returns nil.
func (m *Manager) WithRepository(ctx context.Context, fn func(repository.Repository) error) error {
	repo, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := fn(repo); err != nil {
		if discardErr := repo.DiscardChanges(ctx); discardErr != nil {
			m.logger.Warn("failed to discard repository changes", zap.Error(discardErr))
		}
		return err
	}
	if err := repo.SaveChanges(ctx); err != nil {
		return fmt.Errorf("failed to save repository changes: %w", err)
	}
	return nil
}

// Close closes the underlying database. Open repositories must be closed
// first.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	if err := m.db.Close(); err != nil {
		return repository.NewError(repository.KindConnection, "close", err)
	}
	return nil
}

var _ repository.RepositoryManager = (*Manager)(nil)
