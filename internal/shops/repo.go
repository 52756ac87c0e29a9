package shops

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oyehq/oye-backend/pkg/db/models"
)

// Repository handles shop persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to shop operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new shop row.
func (r *Repository) Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error) {
	shop := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

// FindByID loads a shop by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// FindByName loads a shop by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).Where("shop_name = ?", name).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// ListByOwner returns all shops owned by the provided user, oldest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Update saves the provided shop.
func (r *Repository) Update(ctx context.Context, shop *models.Shop) error {
	if shop == nil {
		return fmt.Errorf("shop is required")
	}
	return r.db.WithContext(ctx).Save(shop).Error
}

// Delete removes the shop row. Dependent rows cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id).Error
}
