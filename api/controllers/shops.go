package controllers

import (
	"net/http"

	"github.com/oyehq/oye-backend/api/responses"
	"github.com/oyehq/oye-backend/api/validators"
	"github.com/oyehq/oye-backend/internal/shops"
	"github.com/oyehq/oye-backend/pkg/enums"
	"github.com/oyehq/oye-backend/pkg/logger"
)

type createShopRequest struct {
	ShopName          string  `json:"shop_name" validate:"required,min=2,max=120"`
	Location          *string `json:"location,omitempty"`
	Landmark          *string `json:"landmark,omitempty"`
	Description       *string `json:"description,omitempty"`
	OperatingHours    *string `json:"operating_hours,omitempty"`
	TaxIdentification *string `json:"tax_identification,omitempty"`
	BusinessType      string  `json:"business_type,omitempty"`
	NumberOfEmployees *int    `json:"number_of_employees,omitempty" validate:"omitempty,gte=0"`
}

type updateShopRequest struct {
	ShopName          *string `json:"shop_name,omitempty" validate:"omitempty,min=2,max=120"`
	Location          *string `json:"location,omitempty"`
	Landmark          *string `json:"landmark,omitempty"`
	Description       *string `json:"description,omitempty"`
	OperatingHours    *string `json:"operating_hours,omitempty"`
	TaxIdentification *string `json:"tax_identification,omitempty"`
	BusinessType      *string `json:"business_type,omitempty"`
	NumberOfEmployees *int    `json:"number_of_employees,omitempty" validate:"omitempty,gte=0"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// ShopCreate opens a new shop owned by the caller.
func ShopCreate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createShopRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.Create(r.Context(), owner, shops.CreateShopInput{
			ShopName:          validators.SanitizeString(req.ShopName, 120),
			Location:          req.Location,
			Landmark:          req.Landmark,
			Description:       req.Description,
			OperatingHours:    req.OperatingHours,
			TaxIdentification: req.TaxIdentification,
			BusinessType:      enums.BusinessType(req.BusinessType),
			NumberOfEmployees: req.NumberOfEmployees,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, shop)
	}
}

// ShopList returns the caller's shops.
func ShopList(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListOwned(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ShopDetail returns one shop the caller owns.
func ShopDetail(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
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

		shop, err := svc.GetByID(r.Context(), owner, shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

// ShopUpdate modifies a shop the caller owns.
func ShopUpdate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req updateShopRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := shops.UpdateShopInput{
			ShopName:          req.ShopName,
			Location:          req.Location,
			Landmark:          req.Landmark,
			Description:       req.Description,
			OperatingHours:    req.OperatingHours,
			TaxIdentification: req.TaxIdentification,
			NumberOfEmployees: req.NumberOfEmployees,
			IsActive:          req.IsActive,
		}
		if req.BusinessType != nil {
			businessType := enums.BusinessType(*req.BusinessType)
			input.BusinessType = &businessType
		}

		shop, err := svc.Update(r.Context(), owner, shopID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

// ShopDelete removes a shop and its dependent rows.
func ShopDelete(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), owner, shopID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
