package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oyehq/oye-backend/pkg/db"
	"github.com/oyehq/oye-backend/pkg/db/models"
	"github.com/oyehq/oye-backend/pkg/enums"
	pkgerrors "github.com/oyehq/oye-backend/pkg/errors"
)

func newTestDB(t *testing.T) *db.Client {
	t.Helper()
	dsn := "file:analytics_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Shop{}, &models.Item{}, &models.Restock{}, &models.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db.NewWithConn(conn)
}

func seedShop(t *testing.T, client *db.Client, ownerID uuid.UUID) *models.Shop {
	t.Helper()
	shop := &models.Shop{
		OwnerID:      ownerID,
		ShopName:     "Analytics Shop " + uuid.NewString()[:8],
		BusinessType: enums.BusinessTypeRetail,
		IsActive:     true,
	}
	if err := client.DB().Create(shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	return shop
}

func seedItem(t *testing.T, client *db.Client, shopID uuid.UUID, id uuid.UUID, name string, category enums.ItemCategory, quantity int) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:           id,
		ShopID:       shopID,
		ItemName:     name,
		Category:     category,
		CostPrice:    dec("1.00"),
		SellingPrice: dec("2.00"),
		Quantity:     quantity,
	}
	if err := client.DB().Create(item).Error; err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return item
}

func seedSale(t *testing.T, client *db.Client, shopID, itemID uuid.UUID, quantity int, total, cost string, soldAt time.Time) {
	t.Helper()
	sale := &models.Sale{
		ShopID:        shopID,
		ItemID:        itemID,
		Quantity:      quantity,
		TotalPrice:    dec(total),
		CostPrice:     dec(cost),
		PaymentMethod: enums.PaymentMethodCash,
		SoldAt:        soldAt,
	}
	if err := client.DB().Create(sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}

func seedRestock(t *testing.T, client *db.Client, shopID, itemID uuid.UUID, quantity int, restockedAt time.Time) {
	t.Helper()
	restock := &models.Restock{
		ShopID:      shopID,
		ItemID:      itemID,
		Quantity:    quantity,
		TotalPrice:  dec("1.00"),
		RestockedAt: restockedAt,
	}
	if err := client.DB().Create(restock).Error; err != nil {
		t.Fatalf("seed restock: %v", err)
	}
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestInventoryAnalysisTotalsAndProfit(t *testing.T) {
	client := newTestDB(t)
	ownerID := uuid.New()
	shop := seedShop(t, client, ownerID)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	bread := seedItem(t, client, shop.ID, uuid.New(), "Bread", enums.ItemCategoryGrocery, 12)
	milk := seedItem(t, client, shop.ID, uuid.New(), "Milk", enums.ItemCategoryGrocery, 4)

	seedRestock(t, client, shop.ID, bread.ID, 10, now.Add(-time.Hour))
	seedRestock(t, client, shop.ID, milk.ID, 5, now.Add(-2*time.Hour))

	// bread: 20.00 revenue against 6.00 cost basis, milk: 5.00 against 2.50
	seedSale(t, client, shop.ID, bread.ID, 2, "20.00", "3.00", now.Add(-time.Hour))
	seedSale(t, client, shop.ID, milk.ID, 1, "5.00", "2.50", now.Add(-time.Hour))

	svc, err := NewService(ServiceParams{DB: client, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	analysis, err := svc.InventoryAnalysis(context.Background(), ownerID, shop.ID, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if analysis.TotalItems != 16 {
		t.Fatalf("expected total stock 16, got %d", analysis.TotalItems)
	}
	if analysis.TotalRestocked != 15 {
		t.Fatalf("expected 15 restocked, got %d", analysis.TotalRestocked)
	}
	if analysis.TotalSold != 3 {
		t.Fatalf("expected 3 sold, got %d", analysis.TotalSold)
	}
	if !analysis.TotalProfit.Equal(dec("16.50")) {
		t.Fatalf("expected profit 16.50, got %s", analysis.TotalProfit)
	}
	if analysis.ItemsToRestock != 1 {
		t.Fatalf("expected 1 low-stock item, got %d", analysis.ItemsToRestock)
	}
	if analysis.MostBought == nil || analysis.MostBought.ItemID != bread.ID || analysis.MostBought.QuantitySold != 2 {
		t.Fatalf("unexpected most bought: %+v", analysis.MostBought)
	}
	if analysis.LeastBought == nil || analysis.LeastBought.ItemID != milk.ID || analysis.LeastBought.QuantitySold != 1 {
		t.Fatalf("unexpected least bought: %+v", analysis.LeastBought)
	}
}

func TestInventoryAnalysisEmptyWindowReportsNoData(t *testing.T) {
	client := newTestDB(t)
	ownerID := uuid.New()
	shop := seedShop(t, client, ownerID)
	seedItem(t, client, shop.ID, uuid.New(), "Bread", enums.ItemCategoryGrocery, 3)

	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	analysis, err := svc.InventoryAnalysis(context.Background(), ownerID, shop.ID, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if analysis.MostBought != nil || analysis.LeastBought != nil {
		t.Fatalf("expected no sale rankings, got %+v / %+v", analysis.MostBought, analysis.LeastBought)
	}
	if analysis.TotalSold != 0 || !analysis.TotalProfit.Equal(decimal.Zero) {
		t.Fatalf("expected zero sales, got sold=%d profit=%s", analysis.TotalSold, analysis.TotalProfit)
	}
}

func TestInventoryAnalysisSevenDayWindow(t *testing.T) {
	client := newTestDB(t)
	ownerID := uuid.New()
	shop := seedShop(t, client, ownerID)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	item := seedItem(t, client, shop.ID, uuid.New(), "Bread", enums.ItemCategoryGrocery, 50)

	seedSale(t, client, shop.ID, item.ID, 2, "4.00", "1.00", now.Add(-2*24*time.Hour))
	seedSale(t, client, shop.ID, item.ID, 7, "14.00", "1.00", now.Add(-40*24*time.Hour))
	seedRestock(t, client, shop.ID, item.ID, 9, now.Add(-40*24*time.Hour))

	svc, err := NewService(ServiceParams{DB: client, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	week := enums.SalesWindowWeek
	analysis, err := svc.InventoryAnalysis(context.Background(), ownerID, shop.ID, &week)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if analysis.TotalSold != 2 {
		t.Fatalf("expected only the recent sale, got %d", analysis.TotalSold)
	}
	if analysis.TotalRestocked != 0 {
		t.Fatalf("expected no windowed restocks, got %d", analysis.TotalRestocked)
	}
	if !analysis.TotalProfit.Equal(dec("2.00")) {
		t.Fatalf("expected windowed profit 2.00, got %s", analysis.TotalProfit)
	}
	if analysis.MostBought == nil || analysis.MostBought.QuantitySold != 2 {
		t.Fatalf("unexpected most bought: %+v", analysis.MostBought)
	}
}

func TestInventoryAnalysisTieBreaksByItemID(t *testing.T) {
	client := newTestDB(t)
	ownerID := uuid.New()
	shop := seedShop(t, client, ownerID)
	now := time.Now().UTC()

	lowID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	highID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	seedItem(t, client, shop.ID, highID, "Milk", enums.ItemCategoryGrocery, 20)
	seedItem(t, client, shop.ID, lowID, "Bread", enums.ItemCategoryGrocery, 20)

	seedSale(t, client, shop.ID, lowID, 3, "6.00", "1.00", now.Add(-time.Hour))
	seedSale(t, client, shop.ID, highID, 3, "6.00", "1.00", now.Add(-time.Hour))

	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	analysis, err := svc.InventoryAnalysis(context.Background(), ownerID, shop.ID, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if analysis.MostBought == nil || analysis.MostBought.ItemID != lowID {
		t.Fatalf("expected tie to resolve to lower item id, got %+v", analysis.MostBought)
	}
	if analysis.LeastBought == nil || analysis.LeastBought.ItemID != lowID {
		t.Fatalf("expected tie to resolve to lower item id, got %+v", analysis.LeastBought)
	}
}

func TestSalesSummaryWindowedTotals(t *testing.T) {
	client := newTestDB(t)
	ownerID := uuid.New()
	shop := seedShop(t, client, ownerID)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	item := seedItem(t, client, shop.ID, uuid.New(), "Bread", enums.ItemCategoryGrocery, 50)

	seedSale(t, client, shop.ID, item.ID, 2, "10.00", "2.00", now.Add(-time.Hour))
	seedSale(t, client, shop.ID, item.ID, 3, "15.00", "2.00", now.Add(-2*time.Hour))
	seedSale(t, client, shop.ID, item.ID, 4, "20.00", "2.00", now.Add(-10*24*time.Hour)) // outside the week

	svc, err := NewService(ServiceParams{DB: client, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	week := enums.SalesWindowWeek
	summary, err := svc.SalesSummary(context.Background(), ownerID, shop.ID, &week)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if summary.SaleCount != 2 || summary.TotalQuantity != 5 {
		t.Fatalf("expected 2 sales of 5 units, got %d/%d", summary.SaleCount, summary.TotalQuantity)
	}
	if !summary.TotalAmount.Equal(dec("25.00")) {
		t.Fatalf("expected amount 25.00, got %s", summary.TotalAmount)
	}
	// 25.00 revenue against 5 units at 2.00 cost
	if !summary.TotalProfit.Equal(dec("15.00")) {
		t.Fatalf("expected profit 15.00, got %s", summary.TotalProfit)
	}

	full, err := svc.SalesSummary(context.Background(), ownerID, shop.ID, nil)
	if err != nil {
		t.Fatalf("summarize all: %v", err)
	}
	if full.SaleCount != 3 || !full.TotalAmount.Equal(dec("45.00")) {
		t.Fatalf("expected full ledger totals, got %d sales amount %s", full.SaleCount, full.TotalAmount)
	}
}

func TestItemsByCategoryPartitionsEveryItem(t *testing.T) {
	client := newTestDB(t)
	ownerID := uuid.New()
	shop := seedShop(t, client, ownerID)

	seedItem(t, client, shop.ID, uuid.New(), "Bread", enums.ItemCategoryGrocery, 5)
	seedItem(t, client, shop.ID, uuid.New(), "Milk", enums.ItemCategoryGrocery, 7)
	seedItem(t, client, shop.ID, uuid.New(), "Charger", enums.ItemCategoryElectronics, 2)

	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	buckets, err := svc.ItemsByCategory(context.Background(), ownerID, shop.ID)
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	if len(buckets) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(buckets))
	}
	if len(buckets[enums.ItemCategoryGrocery]) != 2 || len(buckets[enums.ItemCategoryElectronics]) != 1 {
		t.Fatalf("unexpected partition: %+v", buckets)
	}

	total := 0
	for _, items := range buckets {
		total += len(items)
	}
	if total != 3 {
		t.Fatalf("partition must cover every item, got %d", total)
	}
}

func TestInventoryAnalysisRequiresOwnership(t *testing.T) {
	client := newTestDB(t)
	shop := seedShop(t, client, uuid.New())

	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.InventoryAnalysis(context.Background(), uuid.New(), shop.ID, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
