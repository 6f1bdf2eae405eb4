package cart

import (
	"context"

	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// PricingResolver answers the cached lookups the recomputation pass needs.
// Both methods return nil on lookup failure; the rule chain falls back to
// the product hint and ultimately to retail pricing.
type PricingResolver interface {
	FetchStoreModel(ctx context.Context, storeID string) *types.StorePriceModel
	FetchTiers(ctx context.Context, productID string) []types.PriceTier
}

// SnapshotStore persists the serialized item array of one cart under a
// fixed per-cart key, fully overwritten on every settled state change.
type SnapshotStore interface {
	Read(ctx context.Context, cartID string) ([]byte, error)
	Write(ctx context.Context, cartID string, payload []byte) error
	Clear(ctx context.Context, cartID string) error
}
