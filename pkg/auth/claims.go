package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the only actor role the API issues tokens for.
const AdminRole = "admin"

// SessionClaims represents the typed JWT handed to the admin panel
// after a successful credential check.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
