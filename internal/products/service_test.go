package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

type stubLineRepo struct {
	product   *models.Product
	variation *models.ProductVariation
}

func (s *stubLineRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.product, nil
}

func (s *stubLineRepo) FindVariation(ctx context.Context, productID, variationID uuid.UUID) (*models.ProductVariation, error) {
	if s.variation == nil || s.variation.ID != variationID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
	}
	return s.variation, nil
}

func strPtr(s string) *string { return &s }

func testProduct() *models.Product {
	return &models.Product{
		ID:          uuid.New(),
		StoreID:     uuid.New(),
		Name:        "Tenis Runner",
		RetailPrice: decimal.NewFromInt(20),
		Stock:       50,
		IsActive:    true,
	}
}

func newLineService(t *testing.T, repo lineRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestBuildCartLineRetail(t *testing.T) {
	product := testProduct()
	svc := newLineService(t, &stubLineRepo{product: product})

	item, hint, err := svc.BuildCartLine(context.Background(), LineInput{ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("BuildCartLine: %v", err)
	}
	if hint != "" {
		t.Errorf("hint = %q, want empty", hint)
	}
	if item.Product.ID != product.ID.String() {
		t.Errorf("snapshot id = %q", item.Product.ID)
	}
	if item.Product.StoreID != product.StoreID.String() {
		t.Errorf("snapshot store id = %q", item.Product.StoreID)
	}
	if !item.Price.Equal(decimal.NewFromInt(20)) {
		t.Errorf("price = %s, want 20", item.Price)
	}
	if item.CatalogType != enums.CatalogTypeRetail {
		t.Errorf("catalog type = %q", item.CatalogType)
	}
}

func TestBuildCartLineWholesaleOnlyOverride(t *testing.T) {
	product := testProduct()
	override := enums.PriceModelWholesaleOnly
	product.PriceModelOverride = &override
	svc := newLineService(t, &stubLineRepo{product: product})

	item, hint, err := svc.BuildCartLine(context.Background(), LineInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("BuildCartLine: %v", err)
	}
	if hint != enums.PriceModelWholesaleOnly {
		t.Errorf("hint = %q, want wholesale_only", hint)
	}
	if item.CatalogType != enums.CatalogTypeWholesale {
		t.Errorf("catalog type = %q, want wholesale", item.CatalogType)
	}
}

func TestBuildCartLineFullGrade(t *testing.T) {
	product := testProduct()
	variation := &models.ProductVariation{
		ID:                uuid.New(),
		ProductID:         product.ID,
		IsGrade:           true,
		GradeName:         strPtr("Grade 34-39"),
		GradeSizes:        []string{"34", "35", "36"},
		GradePairsPerSize: []int64{4, 5, 3},
		IsActive:          true,
	}
	svc := newLineService(t, &stubLineRepo{product: product, variation: variation})

	item, _, err := svc.BuildCartLine(context.Background(), LineInput{
		ProductID:   product.ID,
		VariationID: &variation.ID,
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("BuildCartLine: %v", err)
	}
	if item.GradeInfo == nil || item.GradeInfo.TotalPairs() != 12 {
		t.Fatalf("grade info = %+v, want 12 pairs", item.GradeInfo)
	}
	if !item.Price.Equal(decimal.NewFromInt(240)) {
		t.Errorf("grade unit price = %s, want 240", item.Price)
	}
	if item.FlexibleGradeMode != enums.FlexibleGradeModeFull {
		t.Errorf("mode = %q, want full", item.FlexibleGradeMode)
	}
}

func TestBuildCartLineCustomGrade(t *testing.T) {
	product := testProduct()
	variation := &models.ProductVariation{
		ID:                uuid.New(),
		ProductID:         product.ID,
		IsGrade:           true,
		GradeSizes:        []string{"34", "35"},
		GradePairsPerSize: []int64{6, 6},
		FlexibleGrade: &types.FlexibleGradeConfig{
			EnableFullGrade:          true,
			EnableCustomMix:          true,
			CustomMixMinPairs:        5,
			CustomMixMaxColors:       3,
			CustomMixPriceAdjustment: decimal.NewFromInt(2),
		},
		IsActive: true,
	}
	svc := newLineService(t, &stubLineRepo{product: product, variation: variation})

	selection := &types.CustomGradeSelection{
		Items: []types.CustomGradeItem{
			{Color: "black", Size: "34", Quantity: 4},
			{Color: "white", Size: "35", Quantity: 3},
		},
	}
	item, _, err := svc.BuildCartLine(context.Background(), LineInput{
		ProductID:       product.ID,
		VariationID:     &variation.ID,
		Quantity:        1,
		GradeMode:       enums.FlexibleGradeModeCustom,
		CustomSelection: selection,
	})
	if err != nil {
		t.Fatalf("BuildCartLine: %v", err)
	}
	if item.CustomGradeSelection == nil || item.CustomGradeSelection.TotalPairs != 7 {
		t.Fatalf("custom selection = %+v, want total pairs 7", item.CustomGradeSelection)
	}
	// unit 22 x 7 pairs
	if !item.Price.Equal(decimal.NewFromInt(154)) {
		t.Errorf("custom price = %s, want 154", item.Price)
	}
}

func TestBuildCartLineStockGuard(t *testing.T) {
	product := testProduct()
	product.Stock = 2
	svc := newLineService(t, &stubLineRepo{product: product})

	_, _, err := svc.BuildCartLine(context.Background(), LineInput{ProductID: product.ID, Quantity: 5})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	product.AllowNegativeStock = true
	if _, _, err := svc.BuildCartLine(context.Background(), LineInput{ProductID: product.ID, Quantity: 5}); err != nil {
		t.Fatalf("negative stock allowed: %v", err)
	}
}

func TestBuildCartLineInactiveProduct(t *testing.T) {
	product := testProduct()
	product.IsActive = false
	svc := newLineService(t, &stubLineRepo{product: product})

	_, _, err := svc.BuildCartLine(context.Background(), LineInput{ProductID: product.ID, Quantity: 1})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
