package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/domain/auth"
)

func newAuthService(t *testing.T, handler http.HandlerFunc) (*auth.Service, *api.MemoryTokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := api.NewMemoryTokenStore()
	client := api.NewClient(server.URL, tokens, time.Second, "FieldMart/1.0 test")
	return auth.NewService(client, tokens), tokens
}

func TestLoginStoresToken(t *testing.T) {
	svc, tokens := newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok-1","user":{"id":"u1","name":"Ann","role":"customer"}}}`))
	})

	session, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.User.ID != "u1" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if tokens.Token() != "tok-1" {
		t.Fatalf("expected token stored, got %q", tokens.Token())
	}
}

func TestLoginRejectedByServer(t *testing.T) {
	svc, tokens := newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"wrong password"}`))
	})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Message != "wrong password" {
		t.Fatalf("expected server message surfaced, got %q", apiErr.Message)
	}
	if tokens.Token() != "" {
		t.Fatal("expected no token stored on failure")
	}
}

func TestLoginValidatesInput(t *testing.T) {
	svc, _ := newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", Password: "x"})
	if !errors.Is(err, auth.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	svc, _ := newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	})

	if _, err := svc.Profile(context.Background()); !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLogoutClearsToken(t *testing.T) {
	svc, tokens := newAuthService(t, func(w http.ResponseWriter, r *http.Request) {})
	tokens.SetToken("tok-1")

	svc.Logout()
	if tokens.Token() != "" {
		t.Fatal("expected token cleared")
	}
}
