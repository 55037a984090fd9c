package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the typed JWT issued by the identity provider.
// Admin is carried for the fulfillment/inventory surfaces.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}
