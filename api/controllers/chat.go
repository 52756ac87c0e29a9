package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/oyehq/oye-backend/api/responses"
	"github.com/oyehq/oye-backend/api/validators"
	"github.com/oyehq/oye-backend/internal/chat"
	"github.com/oyehq/oye-backend/pkg/logger"
)

type chatRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

// ShopChat executes a chat command against the shop, resolving the item by
// the product token in the message.
func ShopChat(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return chatHandler(svc, logg, false)
}

// ItemChat executes a chat command with the item fixed by the route, so the
// product token in the message is informational only.
func ItemChat(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return chatHandler(svc, logg, true)
}

func chatHandler(svc chat.Service, logg *logger.Logger, itemScoped bool) http.HandlerFunc {
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

		var itemID *uuid.UUID
		if itemScoped {
			id, err := pathUUID(r, "itemId")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			itemID = &id
		}

		var req chatRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Handle(r.Context(), owner, shopID, itemID, req.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reply)
	}
}
