package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oyehq/oye-backend/api/responses"
	"github.com/oyehq/oye-backend/api/validators"
	"github.com/oyehq/oye-backend/internal/inventory"
	"github.com/oyehq/oye-backend/pkg/enums"
	"github.com/oyehq/oye-backend/pkg/logger"
	"github.com/oyehq/oye-backend/pkg/pagination"
)

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}, nil
}

type restockRequest struct {
	ItemID     *uuid.UUID       `json:"item_id,omitempty"`
	ItemName   string           `json:"item_name,omitempty"`
	Quantity   int              `json:"quantity" validate:"required,gt=0"`
	TotalPrice *decimal.Decimal `json:"total_price,omitempty"`
}

type saleRequest struct {
	ItemID        *uuid.UUID `json:"item_id,omitempty"`
	ItemName      string     `json:"item_name,omitempty"`
	Quantity      int        `json:"quantity" validate:"required,gt=0"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Customer      *string    `json:"customer,omitempty"`
}

// RestockCreate adds stock and appends a restock ledger entry.
func RestockCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req restockRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Restock(r.Context(), owner, shopID, inventory.RestockInput{
			ItemID:     req.ItemID,
			ItemName:   req.ItemName,
			Quantity:   req.Quantity,
			TotalPrice: req.TotalPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// RestockList returns the shop's restock ledger, newest first.
func RestockList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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

		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restocks, err := svc.ListRestocks(r.Context(), owner, shopID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, restocks)
	}
}

// SaleCreate decrements stock and appends a sale ledger entry.
func SaleCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req saleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Sell(r.Context(), owner, shopID, inventory.SellInput{
			ItemID:        req.ItemID,
			ItemName:      req.ItemName,
			Quantity:      req.Quantity,
			PaymentMethod: enums.PaymentMethod(req.PaymentMethod),
			Customer:      req.Customer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// SaleList returns the shop's sale ledger, optionally windowed.
func SaleList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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
		window, err := validators.ParseSalesWindow(r, "window")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sales, err := svc.ListSales(r.Context(), owner, shopID, window, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sales)
	}
}

// ItemSaleList returns one item's sale ledger, optionally windowed.
func ItemSaleList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
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
		window, err := validators.ParseSalesWindow(r, "window")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sales, err := svc.ListItemSales(r.Context(), owner, shopID, itemID, window, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sales)
	}
}
