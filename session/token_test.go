package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMintAndParseToken(t *testing.T) {
	raw, err := MintToken("test-secret", "backend-token", "john@roe.dev", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseToken("test-secret", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.BearerToken != "backend-token" {
		t.Fatalf("unexpected bearer token: %q", claims.BearerToken)
	}
	if claims.Email != "john@roe.dev" {
		t.Fatalf("unexpected email: %q", claims.Email)
	}
}

func TestMintToken_RequiresBearer(t *testing.T) {
	if _, err := MintToken("test-secret", "  ", "john@roe.dev", time.Hour); err == nil {
		t.Fatal("expected error for empty bearer token")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	raw, err := MintToken("test-secret", "backend-token", "", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseToken("other-secret", raw); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	claims := Claims{
		BearerToken: "backend-token",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken("test-secret", raw); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestMintToken_NonPositiveTTLDefaults(t *testing.T) {
	raw, err := MintToken("test-secret", "backend-token", "", 0)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseToken("test-secret", raw); err != nil {
		t.Fatalf("parse: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("test-secret", "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
