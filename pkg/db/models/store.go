package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
)

// Store represents the canonical tenant model: one storefront with its
// pricing configuration.
type Store struct {
	ID                         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                       string           `gorm:"column:name;not null"`
	Slug                       string           `gorm:"column:slug;not null;uniqueIndex"`
	WhatsAppNumber             *string          `gorm:"column:whatsapp_number"`
	PriceModel                 enums.PriceModel `gorm:"column:price_model;type:price_model;not null;default:'retail_only'"`
	SimpleWholesaleByCartTotal bool             `gorm:"column:simple_wholesale_by_cart_total;not null;default:false"`
	SimpleWholesaleCartMinQty  int              `gorm:"column:simple_wholesale_cart_min_qty;not null;default:0"`
	MinPurchaseEnabled         bool             `gorm:"column:min_purchase_enabled;not null;default:false"`
	MinPurchaseAmount          decimal.Decimal  `gorm:"column:min_purchase_amount;type:numeric(12,2);not null;default:0"`
	MinPurchaseMessage         *string          `gorm:"column:min_purchase_message"`
	IsActive                   bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt                  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
