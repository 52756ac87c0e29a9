package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oyehq/oye-backend/pkg/db/models"
)

// Repository runs the read-only aggregate queries behind the analytics
// endpoints. It never mutates state.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to analytics queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TotalStock sums the cached quantity across a shop's items.
func (r *Repository) TotalStock(ctx context.Context, shopID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("shop_id = ?", shopID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

// TotalRestocked sums restock ledger quantities, optionally bounded to rows
// at or after since.
func (r *Repository) TotalRestocked(ctx context.Context, shopID uuid.UUID, since *time.Time) (int, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Restock{}).
		Where("shop_id = ?", shopID)
	if since != nil {
		query = query.Where("restocked_at >= ?", *since)
	}
	var total int64
	err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return int(total), err
}

// TotalSold sums sale ledger quantities, optionally bounded to rows at or
// after since.
func (r *Repository) TotalSold(ctx context.Context, shopID uuid.UUID, since *time.Time) (int, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("shop_id = ?", shopID)
	if since != nil {
		query = query.Where("sold_at >= ?", *since)
	}
	var total int64
	err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return int(total), err
}

// saleFigure carries just the columns profit needs.
type saleFigure struct {
	Quantity   int
	TotalPrice decimal.Decimal
	CostPrice  decimal.Decimal
}

// ListSaleFigures returns the pricing columns of the windowed sale set.
// Profit is summed in the service with exact decimal arithmetic rather than
// in SQL, where sqlite would fall back to floats.
func (r *Repository) ListSaleFigures(ctx context.Context, shopID uuid.UUID, since *time.Time) ([]saleFigure, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("shop_id = ?", shopID)
	if since != nil {
		query = query.Where("sold_at >= ?", *since)
	}
	var figures []saleFigure
	if err := query.Select("quantity, total_price, cost_price").Scan(&figures).Error; err != nil {
		return nil, err
	}
	return figures, nil
}

// LowStockCount counts items whose quantity sits below the threshold.
func (r *Repository) LowStockCount(ctx context.Context, shopID uuid.UUID, threshold int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("shop_id = ? AND quantity < ?", shopID, threshold).
		Count(&count).Error
	return int(count), err
}

// ItemSaleTotal is one row of the per-item sale rollup.
type ItemSaleTotal struct {
	ItemID       uuid.UUID `gorm:"column:item_id"`
	ItemName     string    `gorm:"column:item_name"`
	QuantitySold int       `gorm:"column:quantity_sold"`
}

// ItemSaleTotals groups windowed sales by item. Rows come back ordered by
// aggregate quantity, with ascending item id as the tie-break so results are
// deterministic.
func (r *Repository) ItemSaleTotals(ctx context.Context, shopID uuid.UUID, since *time.Time, ascending bool) ([]ItemSaleTotal, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	query := r.db.WithContext(ctx).
		Table("sales").
		Select("items.id AS item_id, items.item_name AS item_name, SUM(sales.quantity) AS quantity_sold").
		Joins("JOIN items ON items.id = sales.item_id").
		Where("sales.shop_id = ?", shopID)
	if since != nil {
		query = query.Where("sales.sold_at >= ?", *since)
	}

	var totals []ItemSaleTotal
	err := query.
		Group("items.id, items.item_name").
		Order("quantity_sold " + direction + ", items.id ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// ListItems returns a shop's items ordered by name, for category grouping.
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
