package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oyehq/oye-backend/internal/inventory"
	"github.com/oyehq/oye-backend/internal/shops"
	"github.com/oyehq/oye-backend/pkg/db"
	"github.com/oyehq/oye-backend/pkg/enums"
	pkgerrors "github.com/oyehq/oye-backend/pkg/errors"
)

// DefaultLowStockThreshold flags items as needing a restock below this
// quantity.
const DefaultLowStockThreshold = 10

// Service computes read-only rollups over a shop's items and ledger.
type Service interface {
	InventoryAnalysis(ctx context.Context, actorID, shopID uuid.UUID, window *enums.SalesWindow) (*Analysis, error)
	SalesSummary(ctx context.Context, actorID, shopID uuid.UUID, window *enums.SalesWindow) (*Summary, error)
	ItemsByCategory(ctx context.Context, actorID, shopID uuid.UUID) (map[enums.ItemCategory][]inventory.ItemDTO, error)
}

// Analysis is the full inventory rollup. MostBought and LeastBought are nil
// when the window holds no sales.
type Analysis struct {
	TotalItems     int                `json:"total_items"`
	TotalRestocked int                `json:"total_restocked"`
	TotalSold      int                `json:"total_sold"`
	TotalProfit    decimal.Decimal    `json:"total_profit"`
	ItemsToRestock int                `json:"items_to_restock"`
	MostBought     *ItemSales         `json:"most_bought_item"`
	LeastBought    *ItemSales         `json:"least_bought_item"`
	Window         *enums.SalesWindow `json:"window,omitempty"`
}

// Summary rolls up the sale ledger for a window: how many sales happened,
// how many units moved, and what they brought in.
type Summary struct {
	SaleCount     int                `json:"sale_count"`
	TotalQuantity int                `json:"total_quantity"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	TotalProfit   decimal.Decimal    `json:"total_profit"`
	Window        *enums.SalesWindow `json:"window,omitempty"`
}

// ItemSales summarizes one item's aggregate sale volume.
type ItemSales struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	QuantitySold int       `json:"quantity_sold"`
}

type service struct {
	db                *db.Client
	now               func() time.Time
	lowStockThreshold int
}

// ServiceParams holds the dependencies for the analytics service.
type ServiceParams struct {
	DB *db.Client
	// Now is overridable for deterministic window tests.
	Now func() time.Time
	// LowStockThreshold defaults to DefaultLowStockThreshold when zero.
	LowStockThreshold int
}

// NewService builds the analytics service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("analytics: database client is required")
	}
	svc := &service{
		db:                params.DB,
		now:               params.Now,
		lowStockThreshold: params.LowStockThreshold,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.lowStockThreshold <= 0 {
		svc.lowStockThreshold = DefaultLowStockThreshold
	}
	return svc, nil
}

func (s *service) InventoryAnalysis(ctx context.Context, actorID, shopID uuid.UUID, window *enums.SalesWindow) (*Analysis, error) {
	if err := s.ensureOwnership(ctx, actorID, shopID); err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	since := s.windowStart(window)

	totalItems, err := repo.TotalStock(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum stock")
	}
	totalRestocked, err := repo.TotalRestocked(ctx, shopID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum restocks")
	}
	totalSold, err := repo.TotalSold(ctx, shopID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum sales")
	}
	lowStock, err := repo.LowStockCount(ctx, shopID, s.lowStockThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count low stock")
	}

	// Profit uses the cost basis captured on each sale row, so later
	// cost-price edits never rewrite history.
	figures, err := repo.ListSaleFigures(ctx, shopID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale figures")
	}
	profit := decimal.Zero
	for _, f := range figures {
		cost := f.CostPrice.Mul(decimal.NewFromInt(int64(f.Quantity)))
		profit = profit.Add(f.TotalPrice.Sub(cost))
	}

	most, err := s.topSeller(ctx, repo, shopID, since, false)
	if err != nil {
		return nil, err
	}
	least, err := s.topSeller(ctx, repo, shopID, since, true)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		TotalItems:     totalItems,
		TotalRestocked: totalRestocked,
		TotalSold:      totalSold,
		TotalProfit:    profit,
		ItemsToRestock: lowStock,
		MostBought:     most,
		LeastBought:    least,
		Window:         window,
	}, nil
}

func (s *service) SalesSummary(ctx context.Context, actorID, shopID uuid.UUID, window *enums.SalesWindow) (*Summary, error) {
	if err := s.ensureOwnership(ctx, actorID, shopID); err != nil {
		return nil, err
	}

	figures, err := NewRepository(s.db.DB()).ListSaleFigures(ctx, shopID, s.windowStart(window))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale figures")
	}

	summary := &Summary{
		SaleCount:   len(figures),
		TotalAmount: decimal.Zero,
		TotalProfit: decimal.Zero,
		Window:      window,
	}
	for _, f := range figures {
		summary.TotalQuantity += f.Quantity
		cost := f.CostPrice.Mul(decimal.NewFromInt(int64(f.Quantity)))
		summary.TotalAmount = summary.TotalAmount.Add(f.TotalPrice)
		summary.TotalProfit = summary.TotalProfit.Add(f.TotalPrice.Sub(cost))
	}
	return summary, nil
}

func (s *service) ItemsByCategory(ctx context.Context, actorID, shopID uuid.UUID) (map[enums.ItemCategory][]inventory.ItemDTO, error) {
	if err := s.ensureOwnership(ctx, actorID, shopID); err != nil {
		return nil, err
	}

	items, err := NewRepository(s.db.DB()).ListItems(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	buckets := make(map[enums.ItemCategory][]inventory.ItemDTO)
	for i := range items {
		dto := inventory.ItemFromModel(&items[i])
		buckets[items[i].Category] = append(buckets[items[i].Category], *dto)
	}
	return buckets, nil
}

// topSeller returns the first row of the ordered per-item rollup, or nil when
// the window holds no sales.
func (s *service) topSeller(ctx context.Context, repo *Repository, shopID uuid.UUID, since *time.Time, ascending bool) (*ItemSales, error) {
	totals, err := repo.ItemSaleTotals(ctx, shopID, since, ascending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank item sales")
	}
	if len(totals) == 0 {
		return nil, nil
	}
	top := totals[0]
	return &ItemSales{
		ItemID:       top.ItemID,
		ItemName:     top.ItemName,
		QuantitySold: top.QuantitySold,
	}, nil
}

func (s *service) windowStart(window *enums.SalesWindow) *time.Time {
	if window == nil {
		return nil
	}
	start := s.now().Add(-window.Duration())
	return &start
}

func (s *service) ensureOwnership(ctx context.Context, actorID, shopID uuid.UUID) error {
	shop, err := shops.NewRepository(s.db.DB()).FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	if shop.OwnerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "you do not own this shop")
	}
	return nil
}
