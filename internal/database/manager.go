package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one ledger client per community, opening stores
// lazily on first access and caching the handles for the process
// lifetime. Communities are few enough that handles are never evicted.
type Manager struct {
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	ledgers map[uint64]Client
}

// NewManager creates a manager that stores community ledgers under dir.
func NewManager(dir string, logger *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Manager{
		dir:     dir,
		logger:  logger,
		ledgers: make(map[uint64]Client),
	}, nil
}

// Get returns the ledger client for a community, opening and migrating
// the store on first access. Safe for concurrent calls with the same id;
// both tables are guaranteed to exist before Get returns.
func (m *Manager) Get(ctx context.Context, communityID uint64) (Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if client, ok := m.ledgers[communityID]; ok {
		return client, nil
	}

	path := filepath.Join(m.dir, fmt.Sprintf("guild_%d.db", communityID))

	client, err := OpenLedger(ctx, path, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger for community %d: %w", communityID, err)
	}

	m.ledgers[communityID] = client

	m.logger.Info("Opened community ledger",
		zap.Uint64("communityID", communityID),
		zap.String("path", path))

	return client, nil
}

// Path returns the ledger file path for a community without opening it.
func (m *Manager) Path(communityID uint64) string {
	return filepath.Join(m.dir, fmt.Sprintf("guild_%d.db", communityID))
}

// Close shuts down all open ledger handles. Called once at process
// shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, client := range m.ledgers {
		if err := client.Close(); err != nil {
			m.logger.Error("Failed to close community ledger",
				zap.Uint64("communityID", id),
				zap.Error(err))
		}
	}

	m.ledgers = make(map[uint64]Client)
}
