package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	ActiveShopID *uuid.UUID
	JTI          string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID       uuid.UUID  `json:"user_id"`
	ActiveShopID *uuid.UUID `json:"active_shop_id,omitempty"`
	jwt.RegisteredClaims
}
