package stores

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
	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
)

func setupStoresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	stores := `
CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  whatsapp_number TEXT,
  price_model TEXT NOT NULL DEFAULT 'retail_only',
  simple_wholesale_by_cart_total INTEGER NOT NULL DEFAULT 0,
  simple_wholesale_cart_min_qty INTEGER NOT NULL DEFAULT 0,
  min_purchase_enabled INTEGER NOT NULL DEFAULT 0,
  min_purchase_amount TEXT NOT NULL DEFAULT '0',
  min_purchase_message TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(stores).Error)
	return db
}

func seedStore(t *testing.T, db *gorm.DB, slug string, active bool) *models.Store {
	t.Helper()

	message := "Pedido minimo de R$ 100"
	store := &models.Store{
		ID:                         uuid.New(),
		Name:                       "Loja " + slug,
		Slug:                       slug,
		PriceModel:                 enums.PriceModelSimpleWholesale,
		SimpleWholesaleByCartTotal: true,
		SimpleWholesaleCartMinQty:  10,
		MinPurchaseEnabled:         true,
		MinPurchaseAmount:          decimal.NewFromInt(100),
		MinPurchaseMessage:         &message,
		IsActive:                   active,
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func TestFindBySlugSkipsInactive(t *testing.T) {
	db := setupStoresTestDB(t)
	repo := NewRepository(db)

	active := seedStore(t, db, "loja-ativa", true)
	seedStore(t, db, "loja-fechada", false)

	found, err := repo.FindBySlug(context.Background(), "loja-ativa")
	require.NoError(t, err)
	assert.Equal(t, active.ID, found.ID)

	_, err = repo.FindBySlug(context.Background(), "loja-fechada")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFetchPriceModel(t *testing.T) {
	db := setupStoresTestDB(t)
	repo := NewRepository(db)

	store := seedStore(t, db, "loja-precos", true)

	model, err := repo.FetchPriceModel(context.Background(), store.ID.String())
	require.NoError(t, err)

	assert.Equal(t, store.ID.String(), model.StoreID)
	assert.Equal(t, enums.PriceModelSimpleWholesale, model.PriceModel)
	assert.True(t, model.WholesaleByCartTotal)
	assert.Equal(t, 10, model.CartTotalMinQty)
	assert.True(t, model.MinPurchaseEnabled)
	assert.True(t, model.MinPurchaseAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Pedido minimo de R$ 100", model.MinPurchaseMessage)
}

func TestFetchPriceModelUnknownStore(t *testing.T) {
	db := setupStoresTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FetchPriceModel(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
