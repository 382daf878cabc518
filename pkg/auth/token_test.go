package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nairmotors/dealerbook-backend/pkg/config"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "dealerbook",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, now, userID, "owner@dealerbook.in", "admin")
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "owner@dealerbook.in" {
		t.Fatalf("unexpected email %s", claims.Email)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "dealerbook", ExpirationMinutes: 30}
	token, err := MintAccessToken(cfg, time.Now(), uuid.New(), "a@b.c", "staff")
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature validation to fail")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "dealerbook", ExpirationMinutes: 30}
	token, err := MintAccessToken(cfg, time.Now(), uuid.New(), "a@b.c", "staff")
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer validation to fail")
	}
}

func TestMintAccessTokenRequiresConfig(t *testing.T) {
	if _, err := MintAccessToken(config.JWTConfig{}, time.Now(), uuid.New(), "a@b.c", "staff"); err == nil {
		t.Fatal("expected missing secret to fail")
	}
	if _, err := MintAccessToken(config.JWTConfig{Secret: "s"}, time.Now(), uuid.New(), "a@b.c", "staff"); err == nil {
		t.Fatal("expected missing issuer to fail")
	}
}
