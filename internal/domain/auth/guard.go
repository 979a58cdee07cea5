package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldmart/fieldmart-client/internal/api"
)

const (
	RoleCustomer   = "customer"
	RoleFieldOwner = "field_owner"
	RoleAdmin      = "admin"
)

// Claims represents the token claims the guards care about. The token is
// issued and verified by the backend; the client only decodes it to gate
// views, so the signature is not checked here.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Guard gates authenticated and role-restricted views based on the stored
// token's claims, mirroring the backend's own checks for a faster UX. The
// backend remains the authority on every request.
type Guard struct {
	tokens api.TokenStore
	parser *jwt.Parser
	now    func() time.Time
}

// NewGuard creates a guard over the given token store.
func NewGuard(tokens api.TokenStore) *Guard {
	return &Guard{
		tokens: tokens,
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Claims decodes the stored token. Returns ErrNotAuthenticated when no token
// is stored, ErrInvalidToken when it does not parse, ErrExpiredToken when it
// carries an exp in the past.
func (g *Guard) Claims() (*Claims, error) {
	token := g.tokens.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	claims := &Claims{}
	if _, _, err := g.parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(g.now()) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}

// Authenticated reports whether a usable token is stored.
func (g *Guard) Authenticated() bool {
	_, err := g.Claims()
	return err == nil
}

// HasRole reports whether the stored token carries one of the given roles.
func (g *Guard) HasRole(roles ...string) bool {
	claims, err := g.Claims()
	if err != nil {
		return false
	}
	for _, role := range roles {
		if claims.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin gates the admin back-office.
func (g *Guard) IsAdmin() bool {
	return g.HasRole(RoleAdmin)
}

// IsFieldOwner gates the field-owner back-office.
func (g *Guard) IsFieldOwner() bool {
	return g.HasRole(RoleFieldOwner, RoleAdmin)
}
