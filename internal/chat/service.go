package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oyehq/oye-backend/internal/inventory"
)

// inventoryService is the slice of the stock API chat commands dispatch to.
type inventoryService interface {
	CreateItem(ctx context.Context, actorID, shopID uuid.UUID, input inventory.CreateItemInput) (*inventory.ItemDTO, error)
	FindItem(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, itemName string) (*inventory.ItemDTO, error)
	Restock(ctx context.Context, actorID, shopID uuid.UUID, input inventory.RestockInput) (*inventory.RestockResult, error)
	Sell(ctx context.Context, actorID, shopID uuid.UUID, input inventory.SellInput) (*inventory.SaleResult, error)
}

// Service turns chat lines into inventory operations.
type Service interface {
	// Handle parses one chat line and executes it against the shop. When
	// itemID is set (item-scoped chat) it overrides the product token as
	// the transaction target.
	Handle(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, message string) (*Reply, error)
}

// Reply carries the human-readable outcome plus the structured records the
// command produced, when any.
type Reply struct {
	Message string                `json:"message"`
	Item    *inventory.ItemDTO    `json:"item,omitempty"`
	Sale    *inventory.SaleDTO    `json:"sale,omitempty"`
	Restock *inventory.RestockDTO `json:"restock,omitempty"`
}

type service struct {
	inventory inventoryService
}

// ServiceParams holds the dependencies for the chat service.
type ServiceParams struct {
	Inventory inventoryService
}

// NewService builds the chat command service.
func NewService(params ServiceParams) (Service, error) {
	if params.Inventory == nil {
		return nil, fmt.Errorf("chat: inventory service is required")
	}
	return &service{inventory: params.Inventory}, nil
}

func (s *service) Handle(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, message string) (*Reply, error) {
	cmd, err := Parse(message)
	if err != nil {
		return nil, err
	}

	switch cmd.Intent {
	case IntentSale:
		return s.handleSale(ctx, actorID, shopID, itemID, cmd)
	case IntentRestock:
		return s.handleRestock(ctx, actorID, shopID, itemID, cmd)
	case IntentInventory:
		return s.handleStockQuery(ctx, actorID, shopID, itemID, cmd)
	case IntentNew:
		return s.handleNewItem(ctx, actorID, shopID, cmd)
	default:
		return nil, invalidCommand(message)
	}
}

func (s *service) handleSale(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, cmd *Command) (*Reply, error) {
	result, err := s.inventory.Sell(ctx, actorID, shopID, inventory.SellInput{
		ItemID:        itemID,
		ItemName:      cmd.Product,
		Quantity:      cmd.Quantity,
		PaymentMethod: cmd.PaymentMethod,
		Customer:      cmd.Customer,
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("✅ Sold %d %s.", cmd.Quantity, result.Item.ItemName)
	if cmd.Customer != nil {
		msg = fmt.Sprintf("✅ Sold %d %s to %s.", cmd.Quantity, result.Item.ItemName, *cmd.Customer)
	}
	return &Reply{Message: msg, Item: result.Item, Sale: result.Sale}, nil
}

func (s *service) handleRestock(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, cmd *Command) (*Reply, error) {
	result, err := s.inventory.Restock(ctx, actorID, shopID, inventory.RestockInput{
		ItemID:   itemID,
		ItemName: cmd.Product,
		Quantity: cmd.Quantity,
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("✅ Added %d %s to inventory.", cmd.Quantity, result.Item.ItemName)
	return &Reply{Message: msg, Item: result.Item, Restock: result.Restock}, nil
}

func (s *service) handleStockQuery(ctx context.Context, actorID, shopID uuid.UUID, itemID *uuid.UUID, cmd *Command) (*Reply, error) {
	item, err := s.inventory.FindItem(ctx, actorID, shopID, itemID, cmd.Product)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("📊 %s stock: %d left", item.ItemName, item.Quantity)
	return &Reply{Message: msg, Item: item}, nil
}

func (s *service) handleNewItem(ctx context.Context, actorID, shopID uuid.UUID, cmd *Command) (*Reply, error) {
	var description *string
	if cmd.Description != "" {
		description = &cmd.Description
	}
	item, err := s.inventory.CreateItem(ctx, actorID, shopID, inventory.CreateItemInput{
		ItemName:     cmd.Product,
		Category:     cmd.Category,
		Description:  description,
		CostPrice:    cmd.CostPrice,
		SellingPrice: cmd.SellingPrice,
		Quantity:     cmd.Quantity,
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("✅ Added new product %s to the shop.", item.ItemName)
	return &Reply{Message: msg, Item: item}, nil
}
