package cartdto

import (
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// Cart is the authoritative cart view exposed through the API: the settled
// lines plus the derived totals.
type Cart struct {
	CartID   string          `json:"cart_id"`
	State    enums.CartState `json:"state"`
	Degraded bool            `json:"degraded,omitempty"`
	Notice   string          `json:"notice,omitempty"`
	Items    []CartLine      `json:"items"`
	Totals   CartTotals      `json:"totals"`
}

// CartLine is one priced line of the cart view.
type CartLine struct {
	ID                   string                      `json:"id"`
	ProductID            string                      `json:"product_id"`
	ProductName          string                      `json:"product_name"`
	Quantity             int                         `json:"quantity"`
	Price                decimal.Decimal             `json:"price"`
	OriginalPrice        decimal.Decimal             `json:"original_price"`
	LineTotal            decimal.Decimal             `json:"line_total"`
	Variation            *types.VariationRef         `json:"variation,omitempty"`
	CatalogType          enums.CatalogType           `json:"catalog_type"`
	IsWholesalePrice     bool                        `json:"is_wholesale_price"`
	CurrentTier          *types.TierInfo             `json:"current_tier,omitempty"`
	NextTier             *types.TierInfo             `json:"next_tier,omitempty"`
	GradeInfo            *types.GradeInfo            `json:"grade_info,omitempty"`
	FlexibleGradeMode    enums.FlexibleGradeMode     `json:"flexible_grade_mode,omitempty"`
	CustomGradeSelection *types.CustomGradeSelection `json:"custom_grade_selection,omitempty"`
}

// CartTotals carries the aggregate values derived from the settled lines.
type CartTotals struct {
	TotalAmount          decimal.Decimal              `json:"total_amount"`
	TotalItems           int                          `json:"total_items"`
	PotentialSavings     decimal.Decimal              `json:"potential_savings"`
	CanGetWholesalePrice bool                         `json:"can_get_wholesale_price"`
	TierProgress         map[string]TierProgressEntry `json:"tier_progress,omitempty"`
}

// TierProgressEntry reports how far a product is along its tier ladder.
type TierProgressEntry struct {
	CurrentTierOrder int              `json:"current_tier_order"`
	NextTierOrder    int              `json:"next_tier_order"`
	QuantityNeeded   int              `json:"quantity_needed"`
	PotentialSavings *decimal.Decimal `json:"potential_savings,omitempty"`
}

// AddItemResult is the add endpoint payload: the touched line, merge info
// and the refreshed cart view.
type AddItemResult struct {
	Item           CartLine `json:"item"`
	Merged         bool     `json:"merged"`
	NewlyWholesale []string `json:"newly_wholesale,omitempty"`
	Cart           Cart     `json:"cart"`
}
