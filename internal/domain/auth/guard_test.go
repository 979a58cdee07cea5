package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/domain/auth"
)

func signToken(t *testing.T, role string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "user-1",
		"role":    role,
		"exp":     expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func guardWithToken(token string) *auth.Guard {
	tokens := api.NewMemoryTokenStore()
	tokens.SetToken(token)
	return auth.NewGuard(tokens)
}

func TestGuardWithoutToken(t *testing.T) {
	guard := auth.NewGuard(api.NewMemoryTokenStore())

	if guard.Authenticated() {
		t.Fatal("expected unauthenticated without token")
	}
	if _, err := guard.Claims(); !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestGuardAcceptsValidToken(t *testing.T) {
	guard := guardWithToken(signToken(t, auth.RoleCustomer, time.Now().Add(time.Hour)))

	if !guard.Authenticated() {
		t.Fatal("expected authenticated")
	}
	claims, err := guard.Claims()
	if err != nil {
		t.Fatalf("expected claims, got %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != auth.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	guard := guardWithToken(signToken(t, auth.RoleCustomer, time.Now().Add(-time.Minute)))

	if guard.Authenticated() {
		t.Fatal("expected expired token rejected")
	}
	if _, err := guard.Claims(); !errors.Is(err, auth.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestGuardRejectsMalformedToken(t *testing.T) {
	guard := guardWithToken("not-a-jwt")

	if guard.Authenticated() {
		t.Fatal("expected malformed token rejected")
	}
	if _, err := guard.Claims(); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRoleGates(t *testing.T) {
	cases := []struct {
		role       string
		admin      bool
		fieldOwner bool
	}{
		{auth.RoleCustomer, false, false},
		{auth.RoleFieldOwner, false, true},
		{auth.RoleAdmin, true, true},
	}

	for _, tc := range cases {
		guard := guardWithToken(signToken(t, tc.role, time.Now().Add(time.Hour)))
		if guard.IsAdmin() != tc.admin {
			t.Errorf("role %s: IsAdmin=%v, expected %v", tc.role, guard.IsAdmin(), tc.admin)
		}
		if guard.IsFieldOwner() != tc.fieldOwner {
			t.Errorf("role %s: IsFieldOwner=%v, expected %v", tc.role, guard.IsFieldOwner(), tc.fieldOwner)
		}
	}
}
