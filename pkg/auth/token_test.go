package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kingcapco/salesops-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret: "test-secret",
		Issuer: "kingcap-identity",
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), time.Hour, AccessTokenPayload{
		UserID: userID,
		Email:  "rep@kingcap.example",
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "rep@kingcap.example" {
		t.Fatalf("Email = %q", claims.Email)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	minted, err := MintAccessToken(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"}, time.Now(), time.Hour, AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := ParseAccessToken(testJWTConfig(), minted); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	minted, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), time.Hour, AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := ParseAccessToken(cfg, minted); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestMintAccessToken_Validation(t *testing.T) {
	if _, err := MintAccessToken(config.JWTConfig{Issuer: "x"}, time.Now(), time.Hour, AccessTokenPayload{}); err == nil {
		t.Fatal("expected missing secret to fail")
	}
	if _, err := MintAccessToken(config.JWTConfig{Secret: "x"}, time.Now(), time.Hour, AccessTokenPayload{}); err == nil {
		t.Fatal("expected missing issuer to fail")
	}
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), 0, AccessTokenPayload{}); err == nil {
		t.Fatal("expected non-positive ttl to fail")
	}
}
