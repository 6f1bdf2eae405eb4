package cart

import (
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/internal/pricing"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// ruleInput carries the per-item inputs a recomputation pass feeds into the
// rule chain.
type ruleInput struct {
	// model is the resolved store price model, nil when the lookup failed.
	model *types.StorePriceModel
	// priceModel is the effective model: store row, else product hint,
	// else retail only.
	priceModel enums.PriceModel
	// storeUnits is the aggregate unit count of the item's store across
	// the whole cart.
	storeUnits int
	// tiers holds the product's cached tier set; nil unless the product
	// has gradual wholesale enabled and the lookup succeeded.
	tiers []types.PriceTier
}

// pricingRule is one predicate/action pair of the ordered chain. Rules are
// evaluated top-down and exactly one fires per item per pass.
type pricingRule struct {
	name  string
	match func(item types.CartItem, in ruleInput) bool
	apply func(item *types.CartItem, in ruleInput)
}

// pricingRules is the fixed priority order of price resolution. Earlier
// entries win; the final fallback always matches.
var pricingRules = []pricingRule{
	{
		name: "grade_flexible_preserve",
		match: func(item types.CartItem, _ ruleInput) bool {
			return item.IsGrade() &&
				(item.FlexibleGradeMode == enums.FlexibleGradeModeHalf ||
					item.FlexibleGradeMode == enums.FlexibleGradeModeCustom)
		},
		apply: func(_ *types.CartItem, _ ruleInput) {},
	},
	{
		name: "grade_full_preserve",
		match: func(item types.CartItem, _ ruleInput) bool {
			return item.IsGrade()
		},
		apply: func(_ *types.CartItem, _ ruleInput) {},
	},
	{
		name: "wholesale_force",
		match: func(item types.CartItem, in ruleInput) bool {
			if item.Product.EnableGradualWholesale {
				return false
			}
			return item.CatalogType == enums.CatalogTypeWholesale ||
				in.priceModel == enums.PriceModelWholesaleOnly
		},
		apply: func(item *types.CartItem, _ ruleInput) {
			price := wholesaleOrRetail(item.Product)
			item.Price = price
			item.OriginalPrice = price
			item.IsWholesalePrice = item.Product.WholesalePrice != nil
			clearTiers(item)
		},
	},
	{
		name: "gradual_tier",
		match: func(item types.CartItem, in ruleInput) bool {
			return item.Product.EnableGradualWholesale && len(in.tiers) > 0
		},
		apply: func(item *types.CartItem, in ruleInput) {
			current, next := pricing.SelectTier(in.tiers, item.Quantity)
			item.CurrentTier = current
			item.NextTier = next
			if current != nil {
				item.Price = current.Price
				item.IsWholesalePrice = true
				return
			}
			item.Price = item.Product.RetailPrice
			item.IsWholesalePrice = false
		},
	},
	{
		name: "cart_total_wholesale",
		match: func(item types.CartItem, in ruleInput) bool {
			return in.model != nil && in.model.WholesaleByCartTotal &&
				in.storeUnits >= in.model.CartTotalMinQty &&
				item.Product.WholesalePrice != nil
		},
		apply: func(item *types.CartItem, _ ruleInput) {
			item.Price = *item.Product.WholesalePrice
			item.IsWholesalePrice = true
			clearTiers(item)
		},
	},
	{
		name: "simple_wholesale_min_qty",
		match: func(item types.CartItem, in ruleInput) bool {
			return in.priceModel == enums.PriceModelSimpleWholesale &&
				item.Product.WholesalePrice != nil &&
				item.Quantity >= minWholesaleQty(item.Product)
		},
		apply: func(item *types.CartItem, _ ruleInput) {
			item.Price = *item.Product.WholesalePrice
			item.IsWholesalePrice = true
			clearTiers(item)
		},
	},
	{
		name: "retail_force",
		match: func(item types.CartItem, in ruleInput) bool {
			return item.CatalogType == enums.CatalogTypeRetail &&
				in.priceModel != enums.PriceModelSimpleWholesale
		},
		apply: func(item *types.CartItem, _ ruleInput) {
			item.Price = item.Product.RetailPrice
			item.IsWholesalePrice = false
			clearTiers(item)
		},
	},
	{
		name: "wholesale_catalog_min_qty",
		match: func(item types.CartItem, in ruleInput) bool {
			return item.CatalogType == enums.CatalogTypeWholesale &&
				in.priceModel != enums.PriceModelWholesaleOnly &&
				item.Product.WholesalePrice != nil &&
				item.Quantity >= minWholesaleQty(item.Product)
		},
		apply: func(item *types.CartItem, _ ruleInput) {
			item.Price = *item.Product.WholesalePrice
			item.IsWholesalePrice = true
			clearTiers(item)
		},
	},
	{
		name: "wholesale_only_fallback",
		match: func(item types.CartItem, in ruleInput) bool {
			return in.priceModel == enums.PriceModelWholesaleOnly
		},
		apply: func(item *types.CartItem, _ ruleInput) {
			price := wholesaleOrRetail(item.Product)
			item.Price = price
			item.OriginalPrice = price
			item.IsWholesalePrice = item.Product.WholesalePrice != nil
			clearTiers(item)
		},
	},
	{
		name: "retail_fallback",
		match: func(_ types.CartItem, _ ruleInput) bool {
			return true
		},
		apply: func(item *types.CartItem, _ ruleInput) {
			item.Price = item.Product.RetailPrice
			item.IsWholesalePrice = false
			clearTiers(item)
		},
	},
}

// applyPricingRules runs the chain against one item and returns the name of
// the rule that fired.
func applyPricingRules(item *types.CartItem, in ruleInput) string {
	for _, rule := range pricingRules {
		if rule.match(*item, in) {
			rule.apply(item, in)
			return rule.name
		}
	}
	// unreachable: the fallback always matches
	return ""
}

// effectivePriceModel resolves the model the chain evaluates against: the
// store row when available, else the product-level hint, else retail only.
func effectivePriceModel(model *types.StorePriceModel, product types.ProductSnapshot) enums.PriceModel {
	if model != nil {
		return model.PriceModel
	}
	if product.PriceModelHint.IsValid() {
		return product.PriceModelHint
	}
	return enums.PriceModelRetailOnly
}

func wholesaleOrRetail(product types.ProductSnapshot) decimal.Decimal {
	if product.WholesalePrice != nil {
		return *product.WholesalePrice
	}
	return product.RetailPrice
}

func minWholesaleQty(product types.ProductSnapshot) int {
	if product.MinWholesaleQty != nil && *product.MinWholesaleQty > 0 {
		return *product.MinWholesaleQty
	}
	return 1
}

func clearTiers(item *types.CartItem) {
	item.CurrentTier = nil
	item.NextTier = nil
}
