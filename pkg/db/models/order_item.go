package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem persists one resolved cart line on an order.
type OrderItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID      string          `gorm:"column:product_id;not null"`
	ProductName    string          `gorm:"column:product_name;not null"`
	VariationLabel *string         `gorm:"column:variation_label"`
	Quantity       int             `gorm:"column:quantity;not null"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	IsWholesale    bool            `gorm:"column:is_wholesale;not null;default:false"`
	GradeLabel     *string         `gorm:"column:grade_label"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
