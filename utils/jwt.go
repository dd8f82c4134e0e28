package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yeremiapane/tableservice-client/models"
)

// TokenSubject is the subject claim the backend embeds in access tokens.
type TokenSubject struct {
	UserID string          `json:"userId"`
	Role   models.UserRole `json:"role"`
}

type CustomClaims struct {
	Subject TokenSubject `json:"subject"`
	jwt.RegisteredClaims
}

// DecodeClaims reads the claims out of a backend-issued access token without
// verifying the signature. The backend holds the signing secret; the client
// only needs the role claim for route and view gating, and every call the
// token authorizes is still verified server-side.
func DecodeClaims(tokenString string) (*CustomClaims, error) {
	parser := jwt.NewParser()
	claims := &CustomClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.New("malformed access token")
	}
	if !claims.Subject.Role.Valid() {
		return nil, errors.New("access token carries no known role")
	}
	return claims, nil
}
