package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oyehq/oye-backend/pkg/enums"
)

// Sale is an append-only ledger entry. CostPrice captures the item's unit
// cost at sale time so profit stays correct after later cost changes.
type Sale struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	ShopID        uuid.UUID           `gorm:"column:shop_id;type:uuid;not null;index"`
	ItemID        uuid.UUID           `gorm:"column:item_id;type:uuid;not null;index"`
	Quantity      int                 `gorm:"column:quantity;not null;check:quantity > 0"`
	TotalPrice    decimal.Decimal     `gorm:"column:total_price;type:numeric(10,2);not null"`
	CostPrice     decimal.Decimal     `gorm:"column:cost_price;type:numeric(10,2);not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null;default:cash"`
	Customer      *string             `gorm:"column:customer"`
	SoldAt        time.Time           `gorm:"column:sold_at;autoCreateTime;index"`
}

// Profit returns the sale's realized profit against the captured cost basis.
func (s Sale) Profit() decimal.Decimal {
	return s.TotalPrice.Sub(s.CostPrice.Mul(decimal.NewFromInt(int64(s.Quantity))))
}
