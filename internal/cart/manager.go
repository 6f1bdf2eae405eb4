package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/metrics"
)

// Manager hands out one engine per cart id, loading each exactly once.
// Engines live for the manager's lifetime; every client session with the
// same cart id shares the same serialized engine.
type Manager struct {
	mu        sync.Mutex
	engines   map[string]*Engine
	resolver  PricingResolver
	snapshots SnapshotStore
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
}

// NewManager builds an engine manager with the shared collaborators.
func NewManager(resolver PricingResolver, snapshots SnapshotStore, logg *logger.Logger, m *metrics.CartMetrics) (*Manager, error) {
	if resolver == nil {
		return nil, fmt.Errorf("pricing resolver required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		engines:   make(map[string]*Engine),
		resolver:  resolver,
		snapshots: snapshots,
		logg:      logg,
		metrics:   m,
	}, nil
}

// Engine returns the loaded engine for a cart, creating and rehydrating it
// on first use. The load notice, when present, is surfaced only on that
// first call.
func (m *Manager) Engine(ctx context.Context, cartID, storeID string) (*Engine, LoadResult, error) {
	m.mu.Lock()
	if engine, ok := m.engines[cartID]; ok {
		m.mu.Unlock()
		return engine, LoadResult{}, nil
	}
	m.mu.Unlock()

	engine, err := NewEngine(cartID, storeID, m.resolver, m.snapshots, m.logg, m.metrics)
	if err != nil {
		return nil, LoadResult{}, err
	}
	result, err := engine.Load(ctx)
	if err != nil {
		return nil, LoadResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.engines[cartID]; ok {
		// another request finished loading first; use its engine
		return existing, LoadResult{}, nil
	}
	m.engines[cartID] = engine
	return engine, result, nil
}

// Evict drops a cart's engine, forcing a fresh load on next access.
func (m *Manager) Evict(cartID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, cartID)
}
