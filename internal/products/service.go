package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brunomacedo/vitrinezap-backend/internal/grade"
	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// LineInput is the raw add-to-cart intent coming off the storefront.
type LineInput struct {
	ProductID       uuid.UUID
	VariationID     *uuid.UUID
	Quantity        int
	GradeMode       enums.FlexibleGradeMode
	CustomSelection *types.CustomGradeSelection
}

type lineRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindVariation(ctx context.Context, productID, variationID uuid.UUID) (*models.ProductVariation, error)
}

// Service assembles cart lines from catalog records. The cart engine only
// reprices what it is handed, so the snapshot built here is the single
// place catalog data enters a cart.
type Service interface {
	BuildCartLine(ctx context.Context, input LineInput) (types.CartItem, enums.PriceModel, error)
}

type service struct {
	repo lineRepository
}

// NewService builds a product line service.
func NewService(repo lineRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) BuildCartLine(ctx context.Context, input LineInput) (types.CartItem, enums.PriceModel, error) {
	if input.ProductID == uuid.Nil {
		return types.CartItem{}, "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity <= 0 {
		return types.CartItem{}, "", pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return types.CartItem{}, "", err
	}
	if !product.IsActive {
		return types.CartItem{}, "", pkgerrors.New(pkgerrors.CodeNotFound, "product is not available")
	}

	var variation *models.ProductVariation
	if input.VariationID != nil && *input.VariationID != uuid.Nil {
		variation, err = s.repo.FindVariation(ctx, product.ID, *input.VariationID)
		if err != nil {
			return types.CartItem{}, "", err
		}
	}

	if !product.AllowNegativeStock && input.Quantity > product.Stock {
		return types.CartItem{}, "", pkgerrors.New(pkgerrors.CodeValidation, "not enough stock for the requested quantity").
			WithDetails(map[string]any{"available": product.Stock})
	}

	item := types.CartItem{
		Product:       snapshotOf(product),
		Quantity:      input.Quantity,
		Price:         product.RetailPrice,
		OriginalPrice: product.RetailPrice,
		CatalogType:   enums.CatalogTypeRetail,
	}
	hint := priceModelHint(product)
	item.Product.PriceModelHint = hint
	if hint == enums.PriceModelWholesaleOnly {
		item.CatalogType = enums.CatalogTypeWholesale
	}

	if variation != nil {
		item.Variation = &types.VariationRef{
			ID:    variation.ID.String(),
			Color: deref(variation.Color),
			Size:  deref(variation.Size),
		}
		if variation.IsGrade {
			if err := s.priceGradeLine(&item, product, variation, input); err != nil {
				return types.CartItem{}, "", err
			}
		}
	}

	return item, hint, nil
}

// priceGradeLine attaches the grade composition and prices one grade unit.
// Grade lines keep their quoted price through recomputation, so the quote
// here is final.
func (s *service) priceGradeLine(item *types.CartItem, product *models.Product, variation *models.ProductVariation, input LineInput) error {
	info := variation.GradeComposition()
	if info == nil || len(info.PairsPerSize) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "grade variation has no composition")
	}

	mode := input.GradeMode
	if mode == "" {
		mode = enums.FlexibleGradeModeFull
	}

	cfg := variation.FlexibleGrade
	if cfg == nil {
		cfg = &types.FlexibleGradeConfig{EnableFullGrade: true}
	}

	quote, err := grade.Price(product.RetailPrice, *info, cfg, mode, input.CustomSelection)
	if err != nil {
		return err
	}

	item.GradeInfo = info
	item.FlexibleGradeMode = mode
	item.Price = quote.TotalPrice
	item.OriginalPrice = quote.TotalPrice
	if mode == enums.FlexibleGradeModeCustom && input.CustomSelection != nil {
		selection := *input.CustomSelection
		selection.TotalPairs = selection.SumPairs()
		item.CustomGradeSelection = &selection
	}
	return nil
}

func snapshotOf(product *models.Product) types.ProductSnapshot {
	return types.ProductSnapshot{
		ID:                     product.ID.String(),
		Name:                   product.Name,
		RetailPrice:            product.RetailPrice,
		WholesalePrice:         product.WholesalePrice,
		MinWholesaleQty:        product.MinWholesaleQty,
		Stock:                  product.Stock,
		AllowNegativeStock:     product.AllowNegativeStock,
		EnableGradualWholesale: product.EnableGradualWholesale,
		StoreID:                product.StoreID.String(),
	}
}

func priceModelHint(product *models.Product) enums.PriceModel {
	if product.PriceModelOverride != nil {
		return *product.PriceModelOverride
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
