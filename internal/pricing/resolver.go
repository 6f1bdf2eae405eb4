package pricing

import (
	"context"
	"fmt"

	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/metrics"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

const (
	cacheKindStoreModel = "store_model"
	cacheKindTiers      = "tiers"
)

// StoreModelSource loads the pricing configuration row of a store.
type StoreModelSource interface {
	FetchPriceModel(ctx context.Context, storeID string) (*types.StorePriceModel, error)
}

// TierSource loads a product's active price tiers.
type TierSource interface {
	ListActiveTiers(ctx context.Context, productID string) ([]types.PriceTier, error)
}

// Resolver answers store-price-model and product-tier lookups with a
// read-through cache. Lookup failures never propagate as errors: the
// caller falls back to the next-lower-confidence pricing rule.
type Resolver struct {
	stores  StoreModelSource
	tiers   TierSource
	cache   *Cache
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewResolver builds a pricing resolver with the provided collaborators.
// Metrics may be nil.
func NewResolver(stores StoreModelSource, tiers TierSource, cache *Cache, logg *logger.Logger, m *metrics.CartMetrics) (*Resolver, error) {
	if stores == nil {
		return nil, fmt.Errorf("store model source required")
	}
	if tiers == nil {
		return nil, fmt.Errorf("tier source required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Resolver{stores: stores, tiers: tiers, cache: cache, logg: logg, metrics: m}, nil
}

// FetchStoreModel resolves the price model for a store. Returns nil on
// lookup failure; nothing is cached so a later pass can retry.
func (r *Resolver) FetchStoreModel(ctx context.Context, storeID string) *types.StorePriceModel {
	if storeID == "" {
		return nil
	}
	if model, ok := r.cache.StoreModel(storeID); ok {
		r.metrics.IncCacheHit(cacheKindStoreModel)
		return model
	}
	r.metrics.IncCacheMiss(cacheKindStoreModel)

	model, err := r.stores.FetchPriceModel(ctx, storeID)
	if err != nil {
		ctx = r.logg.WithFields(ctx, map[string]any{"store_id": storeID, "error": err.Error()})
		r.logg.Warn(ctx, "store price model lookup failed, falling back to product hint")
		return nil
	}
	r.cache.PutStoreModel(storeID, model)
	return model
}

// FetchTiers resolves the active tier set for a product. Returns nil on
// lookup failure; an empty fetched set is cached.
func (r *Resolver) FetchTiers(ctx context.Context, productID string) []types.PriceTier {
	if productID == "" {
		return nil
	}
	if tiers, ok := r.cache.Tiers(productID); ok {
		r.metrics.IncCacheHit(cacheKindTiers)
		return tiers
	}
	r.metrics.IncCacheMiss(cacheKindTiers)

	tiers, err := r.tiers.ListActiveTiers(ctx, productID)
	if err != nil {
		ctx = r.logg.WithFields(ctx, map[string]any{"product_id": productID, "error": err.Error()})
		r.logg.Warn(ctx, "product tier lookup failed, skipping gradual wholesale for this pass")
		return nil
	}
	r.cache.PutTiers(productID, tiers)
	return tiers
}

// ResetCache drops all cached lookups.
func (r *Resolver) ResetCache() {
	r.cache.Reset()
}
