package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brunomacedo/vitrinezap-backend/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  retail_price TEXT NOT NULL,
  wholesale_price TEXT,
  min_wholesale_qty INTEGER,
  stock INTEGER NOT NULL DEFAULT 0,
  allow_negative_stock INTEGER NOT NULL DEFAULT 0,
  enable_gradual_wholesale INTEGER NOT NULL DEFAULT 0,
  price_model_override TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	variations := `
CREATE TABLE IF NOT EXISTS product_variations (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  color TEXT,
  size TEXT,
  is_grade INTEGER NOT NULL DEFAULT 0,
  grade_name TEXT,
  grade_sizes TEXT,
  grade_pairs_per_size TEXT,
  flexible_grade TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	tiers := `
CREATE TABLE IF NOT EXISTS product_price_tiers (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  tier_name TEXT NOT NULL,
  min_quantity INTEGER NOT NULL,
  price TEXT NOT NULL,
  tier_order INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(variations).Error)
	require.NoError(t, db.Exec(tiers).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		StoreID:     uuid.New(),
		Name:        "Tenis Runner",
		RetailPrice: decimal.NewFromInt(20),
		Stock:       100,
		IsActive:    true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedVariation(t *testing.T, db *gorm.DB, productID uuid.UUID, active bool) *models.ProductVariation {
	t.Helper()

	color := "preto"
	size := "38"
	variation := &models.ProductVariation{
		ID:        uuid.New(),
		ProductID: productID,
		Color:     &color,
		Size:      &size,
		IsActive:  active,
	}
	require.NoError(t, db.Create(variation).Error)
	return variation
}

func seedTier(t *testing.T, db *gorm.DB, productID uuid.UUID, name string, minQty, order int, price int64, active bool) {
	t.Helper()

	tier := &models.ProductPriceTier{
		ID:          uuid.New(),
		StoreID:     uuid.New(),
		ProductID:   productID,
		TierName:    name,
		MinQuantity: minQty,
		Price:       decimal.NewFromInt(price),
		TierOrder:   order,
		IsActive:    active,
	}
	require.NoError(t, db.Create(tier).Error)
}

func TestFindByIDPreloadsActiveVariations(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	product := seedProduct(t, db)
	kept := seedVariation(t, db, product.ID, true)
	seedVariation(t, db, product.ID, false)

	found, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)

	require.Len(t, found.Variations, 1)
	assert.Equal(t, kept.ID, found.Variations[0].ID)
}

func TestListActiveTiersOrderedDescending(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	product := seedProduct(t, db)
	seedTier(t, db, product.ID, "Atacado 10+", 10, 1, 15, true)
	seedTier(t, db, product.ID, "Atacado 50+", 50, 3, 10, true)
	seedTier(t, db, product.ID, "Atacado 20+", 20, 2, 12, true)
	seedTier(t, db, product.ID, "Desativado", 100, 4, 5, false)

	tiers, err := repo.ListActiveTiers(context.Background(), product.ID.String())
	require.NoError(t, err)

	require.Len(t, tiers, 3)
	assert.Equal(t, "Atacado 50+", tiers[0].Name)
	assert.Equal(t, "Atacado 20+", tiers[1].Name)
	assert.Equal(t, "Atacado 10+", tiers[2].Name)
}

func TestFindVariationScopedToProduct(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	product := seedProduct(t, db)
	other := seedProduct(t, db)
	variation := seedVariation(t, db, product.ID, true)

	found, err := repo.FindVariation(context.Background(), product.ID, variation.ID)
	require.NoError(t, err)
	assert.Equal(t, variation.ID, found.ID)

	_, err = repo.FindVariation(context.Background(), other.ID, variation.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
