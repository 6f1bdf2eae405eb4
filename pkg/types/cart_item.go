package types

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
)

// ProductSnapshot freezes the product attributes the pricing engine needs at
// the moment the line was added to the cart.
type ProductSnapshot struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	RetailPrice            decimal.Decimal  `json:"retail_price"`
	WholesalePrice         *decimal.Decimal `json:"wholesale_price,omitempty"`
	MinWholesaleQty        *int             `json:"min_wholesale_qty,omitempty"`
	Stock                  int              `json:"stock"`
	AllowNegativeStock     bool             `json:"allow_negative_stock,omitempty"`
	EnableGradualWholesale bool             `json:"enable_gradual_wholesale,omitempty"`
	PriceModelHint         enums.PriceModel `json:"price_model,omitempty"`
	StoreID                string           `json:"store_id"`
}

// VariationRef links a cart line to a specific product variation.
type VariationRef struct {
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// TierInfo describes the quantity tier applied (or reachable) for a line.
type TierInfo struct {
	Name        string          `json:"name"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
	Order       int             `json:"order"`
}

// CartItem is one purchasable line in a cart. Price always holds the output
// of the last recomputation pass; for grade lines it is the price of one
// grade unit and Quantity counts grades, not pairs.
type CartItem struct {
	ID                   string                  `json:"id"`
	Product              ProductSnapshot         `json:"product"`
	Quantity             int                     `json:"quantity"`
	Price                decimal.Decimal         `json:"price"`
	OriginalPrice        decimal.Decimal         `json:"original_price"`
	Variation            *VariationRef           `json:"variation,omitempty"`
	CatalogType          enums.CatalogType       `json:"catalog_type"`
	IsWholesalePrice     bool                    `json:"is_wholesale_price"`
	CurrentTier          *TierInfo               `json:"current_tier,omitempty"`
	NextTier             *TierInfo               `json:"next_tier,omitempty"`
	GradeInfo            *GradeInfo              `json:"grade_info,omitempty"`
	FlexibleGradeMode    enums.FlexibleGradeMode `json:"flexible_grade_mode,omitempty"`
	CustomGradeSelection *CustomGradeSelection   `json:"custom_grade_selection,omitempty"`
}

// IsGrade reports whether the line points at a grade-type variation.
func (c CartItem) IsGrade() bool {
	return c.GradeInfo != nil
}

// LineTotal multiplies the effective price by the line quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// MergeKey identifies lines that represent the same purchasable: product id,
// catalog type and variation signature (id, color, size).
func (c CartItem) MergeKey() string {
	varID, color, size := "", "", ""
	if c.Variation != nil {
		varID = c.Variation.ID
		color = c.Variation.Color
		size = c.Variation.Size
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", c.Product.ID, c.CatalogType, varID, color, size)
}
