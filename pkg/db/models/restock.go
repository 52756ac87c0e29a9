package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Restock is an append-only ledger entry. Rows are never updated or deleted.
type Restock struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ShopID      uuid.UUID       `gorm:"column:shop_id;type:uuid;not null;index"`
	ItemID      uuid.UUID       `gorm:"column:item_id;type:uuid;not null;index"`
	Quantity    int             `gorm:"column:quantity;not null;check:quantity > 0"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
	RestockedAt time.Time       `gorm:"column:restocked_at;autoCreateTime"`
}
