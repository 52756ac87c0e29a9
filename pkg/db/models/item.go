package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oyehq/oye-backend/pkg/enums"
)

// Item is stock held by a shop. Quantity is a cached running total derived
// from the restock/sale ledger; the DB check keeps a sale from driving it
// negative even if the application guard is bypassed.
type Item struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ShopID       uuid.UUID          `gorm:"column:shop_id;type:uuid;not null;index"`
	ItemName     string             `gorm:"column:item_name;not null"`
	Category     enums.ItemCategory `gorm:"column:category;not null;default:other"`
	Description  *string            `gorm:"column:description"`
	CostPrice    decimal.Decimal    `gorm:"column:cost_price;type:numeric(10,2);not null;default:0"`
	SellingPrice decimal.Decimal    `gorm:"column:selling_price;type:numeric(10,2);not null;default:0"`
	Quantity     int                `gorm:"column:quantity;not null;default:0;check:quantity >= 0"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Profit returns the unit profit (selling price minus cost price).
func (i Item) Profit() decimal.Decimal {
	return i.SellingPrice.Sub(i.CostPrice)
}
