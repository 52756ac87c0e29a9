package shops

import (
	"time"

	"github.com/google/uuid"

	"github.com/oyehq/oye-backend/pkg/db/models"
	"github.com/oyehq/oye-backend/pkg/enums"
)

// ShopDTO exposes shop data in API responses.
type ShopDTO struct {
	ID                uuid.UUID          `json:"id"`
	OwnerID           uuid.UUID          `json:"owner"`
	ShopName          string             `json:"shop_name"`
	Location          *string            `json:"location,omitempty"`
	Landmark          *string            `json:"landmark,omitempty"`
	Description       *string            `json:"description,omitempty"`
	OperatingHours    *string            `json:"operating_hours,omitempty"`
	TaxIdentification *string            `json:"tax_identification,omitempty"`
	BusinessType      enums.BusinessType `json:"business_type"`
	NumberOfEmployees *int               `json:"number_of_employees,omitempty"`
	IsActive          bool               `json:"is_active"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// CreateShopDTO holds creation-time data for a new shop.
type CreateShopDTO struct {
	OwnerID           uuid.UUID
	ShopName          string
	Location          *string
	Landmark          *string
	Description       *string
	OperatingHours    *string
	TaxIdentification *string
	BusinessType      enums.BusinessType
	NumberOfEmployees *int
	IsActive          *bool
}

// FromModel maps the persisted shop into a DTO.
func FromModel(m *models.Shop) *ShopDTO {
	if m == nil {
		return nil
	}

	return &ShopDTO{
		ID:                m.ID,
		OwnerID:           m.OwnerID,
		ShopName:          m.ShopName,
		Location:          m.Location,
		Landmark:          m.Landmark,
		Description:       m.Description,
		OperatingHours:    m.OperatingHours,
		TaxIdentification: m.TaxIdentification,
		BusinessType:      m.BusinessType,
		NumberOfEmployees: m.NumberOfEmployees,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO, supplying defaults.
func (c CreateShopDTO) ToModel() *models.Shop {
	model := &models.Shop{
		OwnerID:           c.OwnerID,
		ShopName:          c.ShopName,
		Location:          c.Location,
		Landmark:          c.Landmark,
		Description:       c.Description,
		OperatingHours:    c.OperatingHours,
		TaxIdentification: c.TaxIdentification,
		BusinessType:      c.BusinessType,
		NumberOfEmployees: c.NumberOfEmployees,
		IsActive:          true,
	}

	if c.BusinessType == "" {
		model.BusinessType = enums.BusinessTypeRetail
	}
	if c.IsActive != nil {
		model.IsActive = *c.IsActive
	}

	return model
}
