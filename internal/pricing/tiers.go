package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// SelectTier picks the active tier with the largest satisfied MinQuantity
// (ties broken by input order) and the smallest tier not yet reached.
// Either result may be nil.
func SelectTier(tiers []types.PriceTier, quantity int) (current, next *types.TierInfo) {
	for i := range tiers {
		tier := tiers[i]
		if !tier.IsActive {
			continue
		}
		if tier.MinQuantity <= quantity {
			if current == nil || tier.MinQuantity > current.MinQuantity {
				current = tierInfo(tier)
			}
			continue
		}
		if next == nil || tier.MinQuantity < next.MinQuantity {
			next = tierInfo(tier)
		}
	}
	return current, next
}

// NextTierQuantityNeeded returns how many more units unlock the next tier.
func NextTierQuantityNeeded(next *types.TierInfo, quantity int) int {
	if next == nil {
		return 0
	}
	needed := next.MinQuantity - quantity
	if needed < 0 {
		return 0
	}
	return needed
}

// NextTierPotentialSavings returns the per-unit saving the next tier would
// bring, or nil when the next tier is not cheaper. Savings are never
// negative.
func NextTierPotentialSavings(currentPrice decimal.Decimal, next *types.TierInfo) *decimal.Decimal {
	if next == nil {
		return nil
	}
	savings := currentPrice.Sub(next.Price)
	if savings.Sign() <= 0 {
		return nil
	}
	return &savings
}

func tierInfo(tier types.PriceTier) *types.TierInfo {
	return &types.TierInfo{
		Name:        tier.Name,
		MinQuantity: tier.MinQuantity,
		Price:       tier.Price,
		Order:       tier.Order,
	}
}
