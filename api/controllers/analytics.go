package controllers

import (
	"net/http"

	"github.com/oyehq/oye-backend/api/responses"
	"github.com/oyehq/oye-backend/api/validators"
	"github.com/oyehq/oye-backend/internal/analytics"
	"github.com/oyehq/oye-backend/pkg/logger"
)

// InventoryAnalysis returns the shop's stock and ledger rollup, optionally
// restricted to a trailing window.
func InventoryAnalysis(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
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

		analysis, err := svc.InventoryAnalysis(r.Context(), owner, shopID, window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, analysis)
	}
}

// SalesSummary returns windowed sale totals for the shop.
func SalesSummary(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
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

		summary, err := svc.SalesSummary(r.Context(), owner, shopID, window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ItemsByCategory groups the shop's items by category.
func ItemsByCategory(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
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

		buckets, err := svc.ItemsByCategory(r.Context(), owner, shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buckets)
	}
}
