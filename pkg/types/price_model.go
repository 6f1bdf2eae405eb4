package types

import (
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
)

// StorePriceModel is the per-store pricing configuration the cart engine
// resolves before each recomputation pass.
type StorePriceModel struct {
	StoreID              string           `json:"store_id"`
	PriceModel           enums.PriceModel `json:"price_model"`
	WholesaleByCartTotal bool             `json:"simple_wholesale_by_cart_total"`
	CartTotalMinQty      int              `json:"simple_wholesale_cart_min_qty"`
	MinPurchaseEnabled   bool             `json:"min_purchase_enabled"`
	MinPurchaseAmount    decimal.Decimal  `json:"min_purchase_amount"`
	MinPurchaseMessage   string           `json:"min_purchase_message"`
}

// PriceTier is one quantity breakpoint of a product's gradual-wholesale
// ladder. Tiers are evaluated by MinQuantity; the highest satisfied wins.
type PriceTier struct {
	Name        string          `json:"tier_name"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
	Order       int             `json:"tier_order"`
	IsActive    bool            `json:"is_active"`
}
