package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oyehq/oye-backend/pkg/enums"
)

// Shop belongs to exactly one owner; the owner is the sole authorized
// actor for every mutation scoped to the shop.
type Shop struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID           uuid.UUID          `gorm:"column:owner_id;type:uuid;not null"`
	ShopName          string             `gorm:"column:shop_name;not null;uniqueIndex"`
	Location          *string            `gorm:"column:location"`
	Landmark          *string            `gorm:"column:landmark"`
	BusinessType      enums.BusinessType `gorm:"column:business_type;not null;default:retail"`
	Description       *string            `gorm:"column:description"`
	OperatingHours    *string            `gorm:"column:operating_hours"`
	NumberOfEmployees *int               `gorm:"column:number_of_employees"`
	TaxIdentification *string            `gorm:"column:tax_identification"`
	IsActive          bool               `gorm:"column:is_active;not null;default:false"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
