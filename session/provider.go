package session

import (
	"net/http"
	"strings"

	"movie-booking-cli/store"
)

// TokenSource yields the bearer token to attach to outbound API calls.
// Absence is not an error: callers proceed unauthenticated.
type TokenSource interface {
	CurrentToken() (string, bool)
}

// CacheProvider resolves the session from the local session file. This is
// the client-context strategy: the file is written at login and read on
// every call.
type CacheProvider struct {
	secret string
	path   string
}

func NewCacheProvider(secret string, path string) *CacheProvider {
	return &CacheProvider{secret: secret, path: path}
}

func (p *CacheProvider) CurrentToken() (string, bool) {
	record, ok, err := store.LoadSession(p.path)
	if err != nil || !ok {
		return "", false
	}
	claims, err := ParseToken(p.secret, record.Token)
	if err != nil {
		return "", false
	}
	return claims.BearerToken, true
}

// RequestProvider resolves the session from a request-scoped cookie. This
// is the server-rendering strategy: one provider per inbound request,
// never derived from ambient globals.
type RequestProvider struct {
	secret string
	req    *http.Request
}

func NewRequestProvider(secret string, r *http.Request) *RequestProvider {
	return &RequestProvider{secret: secret, req: r}
}

func (p *RequestProvider) CurrentToken() (string, bool) {
	if p.req == nil {
		return "", false
	}
	cookie, err := p.req.Cookie(CookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	claims, err := ParseToken(p.secret, cookie.Value)
	if err != nil {
		return "", false
	}
	return claims.BearerToken, true
}
