package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oyehq/oye-backend/internal/shops"
	"github.com/oyehq/oye-backend/pkg/db"
	"github.com/oyehq/oye-backend/pkg/db/models"
	"github.com/oyehq/oye-backend/pkg/enums"
	pkgerrors "github.com/oyehq/oye-backend/pkg/errors"
	"github.com/oyehq/oye-backend/pkg/pagination"
)

// Service exposes the stock mutation and ledger read operations.
type Service interface {
	CreateItem(ctx context.Context, actorID, shopID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, actorID, shopID, itemID uuid.UUID) (*ItemDTO, error)
	FindItem(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, itemName string) (*ItemDTO, error)
	ListItems(ctx context.Context, actorID, shopID uuid.UUID) ([]ItemDTO, error)
	UpdateItem(ctx context.Context, actorID, shopID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, actorID, shopID, itemID uuid.UUID) error

	Restock(ctx context.Context, actorID, shopID uuid.UUID, input RestockInput) (*RestockResult, error)
	Sell(ctx context.Context, actorID, shopID uuid.UUID, input SellInput) (*SaleResult, error)

	ListRestocks(ctx context.Context, actorID, shopID uuid.UUID, page pagination.Params) (*RestockPage, error)
	ListSales(ctx context.Context, actorID, shopID uuid.UUID, window *enums.SalesWindow, page pagination.Params) (*SalePage, error)
	ListItemSales(ctx context.Context, actorID, shopID, itemID uuid.UUID, window *enums.SalesWindow, page pagination.Params) (*SalePage, error)
}

type service struct {
	db  *db.Client
	now func() time.Time
}

// ServiceParams bundles the dependencies for the inventory service.
type ServiceParams struct {
	DB *db.Client

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewService builds an inventory service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{db: params.DB, now: now}, nil
}

// CreateItemInput captures the fields accepted when stocking a new product.
type CreateItemInput struct {
	ItemName     string
	Category     enums.ItemCategory
	Description  *string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Quantity     int
}

// UpdateItemInput captures the allowed item fields for mutation. Quantity is
// deliberately absent: stock level changes only through restocks and sales.
type UpdateItemInput struct {
	ItemName     *string
	Category     *enums.ItemCategory
	Description  *string
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
}

// RestockInput identifies the item by ID or by name and carries the delta.
type RestockInput struct {
	ItemID     *uuid.UUID
	ItemName   string
	Quantity   int
	TotalPrice *decimal.Decimal
}

// SellInput identifies the item by ID or by name and carries the sale data.
// The sale total is always derived from the item's selling price, so there is
// no caller-supplied price field.
type SellInput struct {
	ItemID        *uuid.UUID
	ItemName      string
	Quantity      int
	PaymentMethod enums.PaymentMethod
	Customer      *string
}

// RestockResult returns the ledger entry plus the refreshed item.
type RestockResult struct {
	Restock *RestockDTO `json:"restock"`
	Item    *ItemDTO    `json:"item"`
}

// SaleResult returns the ledger entry plus the refreshed item.
type SaleResult struct {
	Sale *SaleDTO `json:"sale"`
	Item *ItemDTO `json:"item"`
}

// RestockPage is one cursor page of the restock ledger.
type RestockPage struct {
	Restocks   []RestockDTO `json:"restocks"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// SalePage is one cursor page of the sale ledger.
type SalePage struct {
	Sales      []SaleDTO `json:"sales"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func (s *service) CreateItem(ctx context.Context, actorID, shopID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.ItemName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_name is required")
	}
	if input.Category != "" && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if input.CostPrice.IsNegative() || input.SellingPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	category := input.Category
	if category == "" {
		category = enums.ItemCategoryOther
	}

	var created *models.Item
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ensureOwnership(ctx, tx, actorID, shopID); err != nil {
			return err
		}
		repo := NewRepository(tx)

		if _, err := repo.FindItemByName(ctx, shopID, name); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "item already exists in this shop")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check item name")
		}

		item := &models.Item{
			ShopID:       shopID,
			ItemName:     name,
			Category:     category,
			Description:  input.Description,
			CostPrice:    input.CostPrice.Round(2),
			SellingPrice: input.SellingPrice.Round(2),
			Quantity:     input.Quantity,
		}
		if err := repo.CreateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
		}
		created = item
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return ItemFromModel(created), nil
}

func (s *service) GetItem(ctx context.Context, actorID, shopID, itemID uuid.UUID) (*ItemDTO, error) {
	if err := s.ensureOwnership(ctx, s.db.DB(), actorID, shopID); err != nil {
		return nil, err
	}
	item, err := s.loadShopItem(ctx, NewRepository(s.db.DB()), shopID, itemID)
	if err != nil {
		return nil, err
	}
	return ItemFromModel(item), nil
}

// FindItem resolves an item by ID when given one, otherwise by name. Chat
// commands carry item names, not identifiers.
func (s *service) FindItem(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, itemName string) (*ItemDTO, error) {
	if err := s.ensureOwnership(ctx, s.db.DB(), actorID, shopID); err != nil {
		return nil, err
	}
	item, err := s.resolveItem(ctx, NewRepository(s.db.DB()), shopID, itemID, itemName)
	if err != nil {
		return nil, err
	}
	return ItemFromModel(item), nil
}

func (s *service) ListItems(ctx context.Context, actorID, shopID uuid.UUID) ([]ItemDTO, error) {
	if err := s.ensureOwnership(ctx, s.db.DB(), actorID, shopID); err != nil {
		return nil, err
	}
	items, err := NewRepository(s.db.DB()).ListItems(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *ItemFromModel(&items[i]))
	}
	return out, nil
}

func (s *service) UpdateItem(ctx context.Context, actorID, shopID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	var updated *models.Item
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ensureOwnership(ctx, tx, actorID, shopID); err != nil {
			return err
		}
		repo := NewRepository(tx)
		item, err := s.loadShopItem(ctx, repo, shopID, itemID)
		if err != nil {
			return err
		}

		if input.ItemName != nil {
			name := strings.TrimSpace(*input.ItemName)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "item_name cannot be empty")
			}
			if !strings.EqualFold(name, item.ItemName) {
				if existing, err := repo.FindItemByName(ctx, shopID, name); err == nil && existing.ID != item.ID {
					return pkgerrors.New(pkgerrors.CodeConflict, "item already exists in this shop")
				} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check item name")
				}
			}
			item.ItemName = name
		}
		if input.Category != nil {
			if !input.Category.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
			}
			item.Category = *input.Category
		}
		if input.Description != nil {
			desc := *input.Description
			item.Description = &desc
		}
		if input.CostPrice != nil {
			if input.CostPrice.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "cost_price cannot be negative")
			}
			item.CostPrice = input.CostPrice.Round(2)
		}
		if input.SellingPrice != nil {
			if input.SellingPrice.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "selling_price cannot be negative")
			}
			item.SellingPrice = input.SellingPrice.Round(2)
		}

		if err := repo.UpdateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
		}
		updated = item
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return ItemFromModel(updated), nil
}

func (s *service) DeleteItem(ctx context.Context, actorID, shopID, itemID uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ensureOwnership(ctx, tx, actorID, shopID); err != nil {
			return err
		}
		repo := NewRepository(tx)
		if _, err := s.loadShopItem(ctx, repo, shopID, itemID); err != nil {
			return err
		}
		if err := repo.DeleteItem(ctx, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
		}
		return nil
	})
}

// Restock atomically appends a ledger entry and bumps the cached quantity.
func (s *service) Restock(ctx context.Context, actorID, shopID uuid.UUID, input RestockInput) (*RestockResult, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.TotalPrice != nil && input.TotalPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_price cannot be negative")
	}

	var result RestockResult
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ensureOwnership(ctx, tx, actorID, shopID); err != nil {
			return err
		}
		repo := NewRepository(tx)
		item, err := s.resolveItem(ctx, repo, shopID, input.ItemID, input.ItemName)
		if err != nil {
			return err
		}

		total := item.CostPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
		if input.TotalPrice != nil {
			total = input.TotalPrice.Round(2)
		}

		restock := &models.Restock{
			ShopID:     shopID,
			ItemID:     item.ID,
			Quantity:   input.Quantity,
			TotalPrice: total,
		}
		if err := repo.CreateRestock(ctx, restock); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record restock")
		}
		if err := repo.IncrementQuantity(ctx, item.ID, input.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment stock")
		}

		item.Quantity += input.Quantity
		result.Restock = RestockFromModel(restock)
		result.Item = ItemFromModel(item)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &result, nil
}

// Sell atomically decrements stock and appends a sale ledger entry. The
// decrement is guarded by the remaining quantity so two concurrent sales can
// never drive stock negative; the loser observes a no-op update and fails.
func (s *service) Sell(ctx context.Context, actorID, shopID uuid.UUID, input SellInput) (*SaleResult, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	payment := input.PaymentMethod
	if payment == "" {
		payment = enums.PaymentMethodCash
	}
	if !payment.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	var result SaleResult
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ensureOwnership(ctx, tx, actorID, shopID); err != nil {
			return err
		}
		repo := NewRepository(tx)
		item, err := s.resolveItem(ctx, repo, shopID, input.ItemID, input.ItemName)
		if err != nil {
			return err
		}

		ok, err := repo.DecrementQuantity(ctx, item.ID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock,
				fmt.Sprintf("only %d of %q in stock", item.Quantity, item.ItemName)).
				WithDetails(map[string]any{
					"item_id":   item.ID,
					"available": item.Quantity,
					"requested": input.Quantity,
				})
		}

		total := item.SellingPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))

		sale := &models.Sale{
			ShopID:        shopID,
			ItemID:        item.ID,
			Quantity:      input.Quantity,
			TotalPrice:    total,
			CostPrice:     item.CostPrice,
			PaymentMethod: payment,
			Customer:      input.Customer,
		}
		if err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
		}

		item.Quantity -= input.Quantity
		result.Sale = SaleFromModel(sale)
		result.Item = ItemFromModel(item)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &result, nil
}

func (s *service) ListRestocks(ctx context.Context, actorID, shopID uuid.UUID, page pagination.Params) (*RestockPage, error) {
	if err := s.ensureOwnership(ctx, s.db.DB(), actorID, shopID); err != nil {
		return nil, err
	}
	cursor, err := parsePageCursor(page.Cursor)
	if err != nil {
		return nil, err
	}
	limit := pagination.NormalizeLimit(page.Limit)
	restocks, err := NewRepository(s.db.DB()).ListRestocks(ctx, shopID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restocks")
	}

	result := &RestockPage{Restocks: make([]RestockDTO, 0, len(restocks))}
	if len(restocks) > limit {
		restocks = restocks[:limit]
		last := restocks[len(restocks)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.RestockedAt, ID: last.ID})
	}
	for i := range restocks {
		result.Restocks = append(result.Restocks, *RestockFromModel(&restocks[i]))
	}
	return result, nil
}

func (s *service) ListSales(ctx context.Context, actorID, shopID uuid.UUID, window *enums.SalesWindow, page pagination.Params) (*SalePage, error) {
	if err := s.ensureOwnership(ctx, s.db.DB(), actorID, shopID); err != nil {
		return nil, err
	}
	cursor, err := parsePageCursor(page.Cursor)
	if err != nil {
		return nil, err
	}
	limit := pagination.NormalizeLimit(page.Limit)
	sales, err := NewRepository(s.db.DB()).ListSales(ctx, shopID, s.windowStart(window), cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return salesPage(sales, limit), nil
}

func (s *service) ListItemSales(ctx context.Context, actorID, shopID, itemID uuid.UUID, window *enums.SalesWindow, page pagination.Params) (*SalePage, error) {
	if err := s.ensureOwnership(ctx, s.db.DB(), actorID, shopID); err != nil {
		return nil, err
	}
	repo := NewRepository(s.db.DB())
	if _, err := s.loadShopItem(ctx, repo, shopID, itemID); err != nil {
		return nil, err
	}
	cursor, err := parsePageCursor(page.Cursor)
	if err != nil {
		return nil, err
	}
	limit := pagination.NormalizeLimit(page.Limit)
	sales, err := repo.ListSalesForItem(ctx, itemID, s.windowStart(window), cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list item sales")
	}
	return salesPage(sales, limit), nil
}

// windowStart converts the named window to an inclusive lower bound.
func (s *service) windowStart(window *enums.SalesWindow) *time.Time {
	if window == nil {
		return nil
	}
	start := s.now().Add(-window.Duration())
	return &start
}

func (s *service) ensureOwnership(ctx context.Context, tx *gorm.DB, actorID, shopID uuid.UUID) error {
	shop, err := shops.NewRepository(tx).FindByID(ctx, shopID)
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

func (s *service) resolveItem(ctx context.Context, repo *Repository, shopID uuid.UUID, itemID *uuid.UUID, itemName string) (*models.Item, error) {
	if itemID != nil {
		return s.loadShopItem(ctx, repo, shopID, *itemID)
	}
	name := strings.TrimSpace(itemName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item reference is required")
	}
	item, err := repo.FindItemByName(ctx, shopID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %q not found", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func (s *service) loadShopItem(ctx context.Context, repo *Repository, shopID, itemID uuid.UUID) (*models.Item, error) {
	item, err := repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item.ShopID != shopID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return item, nil
}

func parsePageCursor(raw string) (*pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	return cursor, nil
}

func salesPage(sales []models.Sale, limit int) *SalePage {
	page := &SalePage{Sales: make([]SaleDTO, 0, len(sales))}
	if len(sales) > limit {
		sales = sales[:limit]
		last := sales[len(sales)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.SoldAt, ID: last.ID})
	}
	for i := range sales {
		page.Sales = append(page.Sales, *SaleFromModel(&sales[i]))
	}
	return page
}
