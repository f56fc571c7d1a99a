package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the request cookie carrying the signed session token on the
// server-rendering path.
const CookieName = "movie_session"

// DefaultTTL is how long a minted session stays valid.
const DefaultTTL = 24 * time.Hour

// Claims wraps the backend bearer token in a locally signed session token,
// so both lookup strategies validate the same thing: signature and expiry.
type Claims struct {
	BearerToken string `json:"bearer"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

func MintToken(secret string, bearer string, email string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(bearer) == "" {
		return "", errors.New("bearer token is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := Claims{
		BearerToken: bearer,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the embedded
// claims. Any invalid token is an error; callers treat that as "absent".
func ParseToken(secret string, raw string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !parsed.Valid {
		return Claims{}, errors.New("invalid session token")
	}
	return claims, nil
}
