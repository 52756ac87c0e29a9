package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oyehq/oye-backend/pkg/db/models"
	"github.com/oyehq/oye-backend/pkg/enums"
)

// ItemDTO exposes stock data in API responses.
type ItemDTO struct {
	ID           uuid.UUID          `json:"id"`
	ShopID       uuid.UUID          `json:"shop_id"`
	ItemName     string             `json:"item_name"`
	Category     enums.ItemCategory `json:"category"`
	Description  *string            `json:"description,omitempty"`
	CostPrice    decimal.Decimal    `json:"cost_price"`
	SellingPrice decimal.Decimal    `json:"selling_price"`
	Quantity     int                `json:"quantity"`
	Profit       decimal.Decimal    `json:"profit"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RestockDTO is the transport shape for a restock ledger entry.
type RestockDTO struct {
	ID          uuid.UUID       `json:"id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	ItemID      uuid.UUID       `json:"item_id"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	RestockedAt time.Time       `json:"restocked_at"`
}

// SaleDTO is the transport shape for a sale ledger entry.
type SaleDTO struct {
	ID            uuid.UUID           `json:"id"`
	ShopID        uuid.UUID           `json:"shop_id"`
	ItemID        uuid.UUID           `json:"item_id"`
	Quantity      int                 `json:"quantity"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
	CostPrice     decimal.Decimal     `json:"cost_price"`
	Profit        decimal.Decimal     `json:"profit"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Customer      *string             `json:"customer,omitempty"`
	SoldAt        time.Time           `json:"sold_at"`
}

// ItemFromModel maps the persisted item into a DTO.
func ItemFromModel(m *models.Item) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:           m.ID,
		ShopID:       m.ShopID,
		ItemName:     m.ItemName,
		Category:     m.Category,
		Description:  m.Description,
		CostPrice:    m.CostPrice,
		SellingPrice: m.SellingPrice,
		Quantity:     m.Quantity,
		Profit:       m.Profit(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// RestockFromModel maps the persisted restock into a DTO.
func RestockFromModel(m *models.Restock) *RestockDTO {
	if m == nil {
		return nil
	}
	return &RestockDTO{
		ID:          m.ID,
		ShopID:      m.ShopID,
		ItemID:      m.ItemID,
		Quantity:    m.Quantity,
		TotalPrice:  m.TotalPrice,
		RestockedAt: m.RestockedAt,
	}
}

// SaleFromModel maps the persisted sale into a DTO.
func SaleFromModel(m *models.Sale) *SaleDTO {
	if m == nil {
		return nil
	}
	return &SaleDTO{
		ID:            m.ID,
		ShopID:        m.ShopID,
		ItemID:        m.ItemID,
		Quantity:      m.Quantity,
		TotalPrice:    m.TotalPrice,
		CostPrice:     m.CostPrice,
		Profit:        m.Profit(),
		PaymentMethod: m.PaymentMethod,
		Customer:      m.Customer,
		SoldAt:        m.SoldAt,
	}
}
