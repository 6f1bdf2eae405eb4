package cart

import (
	"fmt"

	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// validateItem runs the structural checks an entry must pass before it can
// enter cart state, whether from an add operation or a rehydrated snapshot.
// Grade lines get a relaxed retail-price check: their retail price may
// legitimately be zero before the grade calculator has run.
func validateItem(item types.CartItem) error {
	if item.Product.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item is missing a product id")
	}
	if item.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cart item quantity must be at least 1, got %d", item.Quantity))
	}
	if item.Price.Sign() < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item price must not be negative")
	}
	if item.OriginalPrice.Sign() < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item original price must not be negative")
	}
	if !item.CatalogType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown catalog type %q", item.CatalogType))
	}
	if !item.IsGrade() && item.Product.RetailPrice.Sign() <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item needs a positive retail price")
	}
	if item.IsGrade() && item.Product.RetailPrice.Sign() < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "grade item retail price must not be negative")
	}
	if item.FlexibleGradeMode != "" && !item.FlexibleGradeMode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown flexible grade mode %q", item.FlexibleGradeMode))
	}
	return nil
}
