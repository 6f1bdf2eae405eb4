package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// Repository exposes persistence operations for product data.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads a product with its active variations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variations", "is_active = ?", true).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariation loads one variation of a product.
func (r *Repository) FindVariation(ctx context.Context, productID, variationID uuid.UUID) (*models.ProductVariation, error) {
	var variation models.ProductVariation
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variationID, productID).
		First(&variation).Error
	if err != nil {
		return nil, err
	}
	return &variation, nil
}

// ListActiveTiers returns a product's active price tiers ordered by
// tier_order descending.
func (r *Repository) ListActiveTiers(ctx context.Context, productID string) ([]types.PriceTier, error) {
	var rows []models.ProductPriceTier
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("tier_order DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	tiers := make([]types.PriceTier, 0, len(rows))
	for _, row := range rows {
		tiers = append(tiers, types.PriceTier{
			Name:        row.TierName,
			MinQuantity: row.MinQuantity,
			Price:       row.Price,
			Order:       row.TierOrder,
			IsActive:    row.IsActive,
		})
	}
	return tiers, nil
}

// ListByStore returns the active catalog of a store.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variations", "is_active = ?", true).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
