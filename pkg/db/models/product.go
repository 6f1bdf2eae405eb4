package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brunomacedo/vitrinezap-backend/pkg/enums"
)

// Product represents the canonical store listing.
type Product struct {
	ID                     uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID                uuid.UUID          `gorm:"column:store_id;type:uuid;not null"`
	Name                   string             `gorm:"column:name;not null"`
	Description            *string            `gorm:"column:description"`
	RetailPrice            decimal.Decimal    `gorm:"column:retail_price;type:numeric(12,2);not null"`
	WholesalePrice         *decimal.Decimal   `gorm:"column:wholesale_price;type:numeric(12,2)"`
	MinWholesaleQty        *int               `gorm:"column:min_wholesale_qty"`
	Stock                  int                `gorm:"column:stock;not null;default:0"`
	AllowNegativeStock     bool               `gorm:"column:allow_negative_stock;not null;default:false"`
	EnableGradualWholesale bool               `gorm:"column:enable_gradual_wholesale;not null;default:false"`
	PriceModelOverride     *enums.PriceModel  `gorm:"column:price_model_override;type:price_model"`
	IsActive               bool               `gorm:"column:is_active;not null;default:true"`
	Variations             []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PriceTiers             []ProductPriceTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
