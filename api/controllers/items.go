package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/oyehq/oye-backend/api/responses"
	"github.com/oyehq/oye-backend/api/validators"
	"github.com/oyehq/oye-backend/internal/inventory"
	"github.com/oyehq/oye-backend/pkg/enums"
	"github.com/oyehq/oye-backend/pkg/logger"
)

type createItemRequest struct {
	ItemName     string          `json:"item_name" validate:"required,min=1,max=120"`
	Category     string          `json:"category,omitempty"`
	Description  *string         `json:"description,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
}

type updateItemRequest struct {
	ItemName     *string          `json:"item_name,omitempty" validate:"omitempty,min=1,max=120"`
	Category     *string          `json:"category,omitempty"`
	Description  *string          `json:"description,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
}

// ItemCreate adds an item to the shop's catalog.
func ItemCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), owner, shopID, inventory.CreateItemInput{
			ItemName:     validators.SanitizeString(req.ItemName, 120),
			Category:     enums.ItemCategory(req.Category),
			Description:  req.Description,
			CostPrice:    req.CostPrice,
			SellingPrice: req.SellingPrice,
			Quantity:     req.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ItemList returns the shop's items.
func ItemList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListItems(r.Context(), owner, shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ItemDetail returns one item.
func ItemDetail(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), owner, shopID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ItemUpdate edits item metadata and pricing. Quantity moves only through
// restock and sale endpoints.
func ItemUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventory.UpdateItemInput{
			ItemName:     req.ItemName,
			Description:  req.Description,
			CostPrice:    req.CostPrice,
			SellingPrice: req.SellingPrice,
		}
		if req.Category != nil {
			category := enums.ItemCategory(*req.Category)
			input.Category = &category
		}

		item, err := svc.UpdateItem(r.Context(), owner, shopID, itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ItemDelete removes an item.
func ItemDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), owner, shopID, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
