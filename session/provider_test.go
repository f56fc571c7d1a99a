package session

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"movie-booking-cli/store"
)

func TestCacheProvider_ReturnsBearerFromSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw, err := MintToken("test-secret", "backend-token", "john@roe.dev", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := store.SaveSession(path, store.SessionRecord{Token: raw, Email: "john@roe.dev"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	provider := NewCacheProvider("test-secret", path)
	token, ok := provider.CurrentToken()
	if !ok {
		t.Fatal("expected a token")
	}
	if token != "backend-token" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestCacheProvider_MissingFile(t *testing.T) {
	provider := NewCacheProvider("test-secret", filepath.Join(t.TempDir(), "absent.json"))
	if _, ok := provider.CurrentToken(); ok {
		t.Fatal("expected no token for missing session file")
	}
}

func TestCacheProvider_WrongSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw, err := MintToken("test-secret", "backend-token", "", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := store.SaveSession(path, store.SessionRecord{Token: raw}); err != nil {
		t.Fatalf("save: %v", err)
	}

	provider := NewCacheProvider("other-secret", path)
	if _, ok := provider.CurrentToken(); ok {
		t.Fatal("expected no token when the signature does not verify")
	}
}

func TestRequestProvider_ReadsCookie(t *testing.T) {
	raw, err := MintToken("test-secret", "backend-token", "", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	req, err := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: CookieName, Value: raw})

	provider := NewRequestProvider("test-secret", req)
	token, ok := provider.CurrentToken()
	if !ok || token != "backend-token" {
		t.Fatalf("unexpected result: %q %v", token, ok)
	}
}

func TestRequestProvider_NoCookie(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	provider := NewRequestProvider("test-secret", req)
	if _, ok := provider.CurrentToken(); ok {
		t.Fatal("expected no token without the session cookie")
	}
}

func TestRequestProvider_NilRequest(t *testing.T) {
	provider := NewRequestProvider("test-secret", nil)
	if _, ok := provider.CurrentToken(); ok {
		t.Fatal("expected no token for nil request")
	}
}
