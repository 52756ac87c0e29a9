package auth

import (
	"github.com/google/uuid"

	"github.com/oyehq/oye-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint. Identifier
// accepts either a username or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// ShopSummary describes the shop metadata returned after login.
type ShopSummary struct {
	ID       uuid.UUID `json:"id"`
	ShopName string    `json:"shop_name"`
	IsActive bool      `json:"is_active"`
}

// LoginResponse contains the tokens, user, and shop list produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Shops        []ShopSummary  `json:"shops"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token plus the refresh token to rotate.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// RegisterResponse returns the created account.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}
