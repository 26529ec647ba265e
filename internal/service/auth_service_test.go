package service

import (
	"errors"
	"testing"
	"time"

	"surveytoolkit/internal/config"
)

func TestLogin(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{
		HostUsername: "admin",
		HostPassword: "secret",
		JWTSecret:    "jwt-secret",
		TokenTTL:     time.Hour,
	})

	resp, err := svc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.HostID != HostID("admin") {
		t.Errorf("expected stable host id, got %s", resp.HostID)
	}

	claims, err := svc.ValidateHostToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateHostToken failed: %v", err)
	}
	if claims.HostID != resp.HostID {
		t.Errorf("expected %s, got %s", resp.HostID, claims.HostID)
	}

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateHostTokenRejectsForeignTokens(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{HostUsername: "admin", HostPassword: "secret", JWTSecret: "a"})
	other := NewAuthService(config.AuthConfig{HostUsername: "admin", HostPassword: "secret", JWTSecret: "b"})

	resp, err := other.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := svc.ValidateHostToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.ValidateHostToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenWithoutExpiry(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{HostUsername: "admin", HostPassword: "secret", JWTSecret: "a", TokenTTL: -time.Minute})
	// TTL <= 0 issues tokens without exp
	resp, _ := svc.Login("admin", "secret")
	if _, err := svc.ValidateHostToken(resp.Token); err != nil {
		t.Errorf("expected token without expiry to validate, got %v", err)
	}
}
