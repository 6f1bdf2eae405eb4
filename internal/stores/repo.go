package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// Repository exposes persistence operations for store data.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a store repository bound to the provided DB.
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

// FindByID loads a store by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindBySlug loads an active store by its public slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// FetchPriceModel returns the pricing configuration row for a store.
func (r *Repository) FetchPriceModel(ctx context.Context, storeID string) (*types.StorePriceModel, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Select("id", "price_model", "simple_wholesale_by_cart_total", "simple_wholesale_cart_min_qty",
			"min_purchase_enabled", "min_purchase_amount", "min_purchase_message").
		Where("id = ?", storeID).
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return priceModelFromStore(&store), nil
}

func priceModelFromStore(store *models.Store) *types.StorePriceModel {
	message := ""
	if store.MinPurchaseMessage != nil {
		message = *store.MinPurchaseMessage
	}
	return &types.StorePriceModel{
		StoreID:              store.ID.String(),
		PriceModel:           store.PriceModel,
		WholesaleByCartTotal: store.SimpleWholesaleByCartTotal,
		CartTotalMinQty:      store.SimpleWholesaleCartMinQty,
		MinPurchaseEnabled:   store.MinPurchaseEnabled,
		MinPurchaseAmount:    store.MinPurchaseAmount,
		MinPurchaseMessage:   message,
	}
}
