package pricing

import (
	"sync"

	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// Cache holds resolved store price models and product tier sets for the
// lifetime of one resolver. Entries are never invalidated implicitly; a
// config change on the server requires a Reset to be observed.
type Cache struct {
	mu          sync.RWMutex
	storeModels map[string]*types.StorePriceModel
	tiers       map[string][]types.PriceTier
}

// NewCache builds an empty pricing cache.
func NewCache() *Cache {
	return &Cache{
		storeModels: make(map[string]*types.StorePriceModel),
		tiers:       make(map[string][]types.PriceTier),
	}
}

// StoreModel returns the cached price model for a store, if present.
func (c *Cache) StoreModel(storeID string) (*types.StorePriceModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	model, ok := c.storeModels[storeID]
	return model, ok
}

// PutStoreModel caches a resolved store price model.
func (c *Cache) PutStoreModel(storeID string, model *types.StorePriceModel) {
	if model == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeModels[storeID] = model
}

// Tiers returns the cached tier set for a product, if present.
func (c *Cache) Tiers(productID string) ([]types.PriceTier, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tiers, ok := c.tiers[productID]
	return tiers, ok
}

// PutTiers caches a fetched tier set. An empty set is cached too so a
// product without tiers is not re-fetched on every pass.
func (c *Cache) PutTiers(productID string, tiers []types.PriceTier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tiers[productID] = tiers
}

// Reset drops all cached entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeModels = make(map[string]*types.StorePriceModel)
	c.tiers = make(map[string][]types.PriceTier)
}
