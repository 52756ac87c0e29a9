package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oyehq/oye-backend/pkg/db/models"
	"github.com/oyehq/oye-backend/pkg/pagination"
)

// Repository handles item, restock, and sale persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inventory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateItem persists a new item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindItemByID loads an item by its UUID.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByName resolves an item within a shop by case-insensitive name.
func (r *Repository) FindItemByName(ctx context.Context, shopID uuid.UUID, name string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND lower(item_name) = lower(?)", shopID, name).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns all items in a shop ordered by name.
func (r *Repository) ListItems(ctx context.Context, shopID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("item_name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem saves the provided item.
func (r *Repository) UpdateItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes the item row.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}

// IncrementQuantity adds the delta to the item's cached quantity.
func (r *Repository) IncrementQuantity(ctx context.Context, itemID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// DecrementQuantity subtracts the delta only when enough stock remains. The
// returned bool is false when the guarded update matched no row, which means
// a concurrent sale got there first or stock was already too low.
func (r *Repository) DecrementQuantity(ctx context.Context, itemID uuid.UUID, delta int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND quantity >= ?", itemID, delta).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateRestock appends a restock ledger entry.
func (r *Repository) CreateRestock(ctx context.Context, restock *models.Restock) error {
	return r.db.WithContext(ctx).Create(restock).Error
}

// CreateSale appends a sale ledger entry.
func (r *Repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// ListRestocks returns restock entries for a shop, newest first. A non-nil
// cursor resumes the keyset scan below the cursor row.
func (r *Repository) ListRestocks(ctx context.Context, shopID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Restock, error) {
	query := r.db.WithContext(ctx).Where("shop_id = ?", shopID)
	if cursor != nil {
		query = query.Where(
			"restocked_at < ? OR (restocked_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var restocks []models.Restock
	if err := query.Order("restocked_at DESC, id DESC").Limit(limit).Find(&restocks).Error; err != nil {
		return nil, err
	}
	return restocks, nil
}

// ListSales returns sale entries for a shop, newest first. A non-nil since
// bound restricts to sales at or after that instant.
func (r *Repository) ListSales(ctx context.Context, shopID uuid.UUID, since *time.Time, cursor *pagination.Cursor, limit int) ([]models.Sale, error) {
	query := r.db.WithContext(ctx).Where("shop_id = ?", shopID)
	return r.listSales(ctx, query, since, cursor, limit)
}

// ListSalesForItem returns sale entries for one item, newest first.
func (r *Repository) ListSalesForItem(ctx context.Context, itemID uuid.UUID, since *time.Time, cursor *pagination.Cursor, limit int) ([]models.Sale, error) {
	query := r.db.WithContext(ctx).Where("item_id = ?", itemID)
	return r.listSales(ctx, query, since, cursor, limit)
}

func (r *Repository) listSales(ctx context.Context, query *gorm.DB, since *time.Time, cursor *pagination.Cursor, limit int) ([]models.Sale, error) {
	if since != nil {
		query = query.Where("sold_at >= ?", *since)
	}
	if cursor != nil {
		query = query.Where(
			"sold_at < ? OR (sold_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var sales []models.Sale
	if err := query.Order("sold_at DESC, id DESC").Limit(limit).Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
