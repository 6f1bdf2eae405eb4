package cart

import (
	cartdto "github.com/brunomacedo/vitrinezap-backend/api/controllers/cart/dto"
	cartsvc "github.com/brunomacedo/vitrinezap-backend/internal/cart"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

func newCartView(cartID string, engine *cartsvc.Engine, notice string) cartdto.Cart {
	items := engine.Items()
	lines := make([]cartdto.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, newCartLine(item))
	}

	return cartdto.Cart{
		CartID:   cartID,
		State:    engine.State(),
		Degraded: engine.Degraded(),
		Notice:   notice,
		Items:    lines,
		Totals:   newCartTotals(engine.Totals()),
	}
}

func newCartLine(item types.CartItem) cartdto.CartLine {
	return cartdto.CartLine{
		ID:                   item.ID,
		ProductID:            item.Product.ID,
		ProductName:          item.Product.Name,
		Quantity:             item.Quantity,
		Price:                item.Price,
		OriginalPrice:        item.OriginalPrice,
		LineTotal:            item.LineTotal(),
		Variation:            item.Variation,
		CatalogType:          item.CatalogType,
		IsWholesalePrice:     item.IsWholesalePrice,
		CurrentTier:          item.CurrentTier,
		NextTier:             item.NextTier,
		GradeInfo:            item.GradeInfo,
		FlexibleGradeMode:    item.FlexibleGradeMode,
		CustomGradeSelection: item.CustomGradeSelection,
	}
}

func newCartTotals(totals cartsvc.Totals) cartdto.CartTotals {
	var progress map[string]cartdto.TierProgressEntry
	if len(totals.TierProgress) > 0 {
		progress = make(map[string]cartdto.TierProgressEntry, len(totals.TierProgress))
		for productID, entry := range totals.TierProgress {
			progress[productID] = cartdto.TierProgressEntry{
				CurrentTierOrder: entry.CurrentTierOrder,
				NextTierOrder:    entry.NextTierOrder,
				QuantityNeeded:   entry.QuantityNeeded,
				PotentialSavings: entry.PotentialSavings,
			}
		}
	}

	return cartdto.CartTotals{
		TotalAmount:          totals.TotalAmount,
		TotalItems:           totals.TotalItems,
		PotentialSavings:     totals.PotentialSavings,
		CanGetWholesalePrice: totals.CanGetWholesalePrice,
		TierProgress:         progress,
	}
}
