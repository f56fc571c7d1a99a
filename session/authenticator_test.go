package session

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"movie-booking-cli/model"
	"movie-booking-cli/store"
)

type fakeLoginAPI struct {
	token string
	err   error
	calls int
}

func (f *fakeLoginAPI) Login(ctx context.Context, req model.LoginRequest) (model.Envelope[model.TokenPayload], error) {
	f.calls++
	if f.err != nil {
		return model.Envelope[model.TokenPayload]{}, f.err
	}
	return model.Envelope[model.TokenPayload]{
		Payload: model.TokenPayload{Token: f.token},
		Status:  model.StatusOK,
	}, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string   { return http.StatusText(e.code) }
func (e *statusError) HTTPStatus() int { return e.code }

func TestAuthenticator_LoginSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	api := &fakeLoginAPI{token: "backend-token"}
	auth := NewAuthenticator(api, "test-secret", path)

	if auth.State() != Anonymous {
		t.Fatalf("unexpected initial state: %s", auth.State())
	}

	if err := auth.Login(context.Background(), "john@roe.dev", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.State() != Authenticated {
		t.Fatalf("unexpected state: %s", auth.State())
	}
	if auth.Email() != "john@roe.dev" {
		t.Fatalf("unexpected email: %q", auth.Email())
	}

	// The persisted session must carry the signed wrapper, which the cache
	// provider unwraps back to the backend bearer token.
	provider := NewCacheProvider("test-secret", path)
	token, ok := provider.CurrentToken()
	if !ok || token != "backend-token" {
		t.Fatalf("unexpected provider result: %q %v", token, ok)
	}
}

func TestAuthenticator_InvalidCredentialFormat(t *testing.T) {
	api := &fakeLoginAPI{token: "backend-token"}
	auth := NewAuthenticator(api, "test-secret", filepath.Join(t.TempDir(), "session.json"))

	err := auth.Login(context.Background(), "not-an-email", "secret1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if auth.State() != Failed {
		t.Fatalf("unexpected state: %s", auth.State())
	}
	if api.calls != 0 {
		t.Fatalf("expected no API call for malformed credentials, got %d", api.calls)
	}
}

func TestAuthenticator_RejectedCredentials(t *testing.T) {
	api := &fakeLoginAPI{err: &statusError{code: http.StatusUnauthorized}}
	auth := NewAuthenticator(api, "test-secret", filepath.Join(t.TempDir(), "session.json"))

	err := auth.Login(context.Background(), "john@roe.dev", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if auth.State() != Failed {
		t.Fatalf("unexpected state: %s", auth.State())
	}
}

func TestAuthenticator_RetryAfterFailure(t *testing.T) {
	api := &fakeLoginAPI{err: &statusError{code: http.StatusUnauthorized}}
	auth := NewAuthenticator(api, "test-secret", filepath.Join(t.TempDir(), "session.json"))

	if err := auth.Login(context.Background(), "john@roe.dev", "wrong"); err == nil {
		t.Fatal("expected first login to fail")
	}

	api.err = nil
	api.token = "backend-token"
	if err := auth.Login(context.Background(), "john@roe.dev", "secret1"); err != nil {
		t.Fatalf("retry login: %v", err)
	}
	if auth.State() != Authenticated {
		t.Fatalf("unexpected state: %s", auth.State())
	}
}

func TestAuthenticator_TransportErrorIsNotCredentialError(t *testing.T) {
	api := &fakeLoginAPI{err: errors.New("connection refused")}
	auth := NewAuthenticator(api, "test-secret", filepath.Join(t.TempDir(), "session.json"))

	err := auth.Login(context.Background(), "john@roe.dev", "secret1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if auth.State() != Failed {
		t.Fatalf("unexpected state: %s", auth.State())
	}
}

func TestAuthenticator_EmptyTokenResponse(t *testing.T) {
	api := &fakeLoginAPI{token: "  "}
	auth := NewAuthenticator(api, "test-secret", filepath.Join(t.TempDir(), "session.json"))

	if err := auth.Login(context.Background(), "john@roe.dev", "secret1"); err == nil {
		t.Fatal("expected error for empty token response")
	}
	if auth.State() != Failed {
		t.Fatalf("unexpected state: %s", auth.State())
	}
}

func TestAuthenticator_ResumeFromSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw, err := MintToken("test-secret", "backend-token", "john@roe.dev", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := store.SaveSession(path, store.SessionRecord{Token: raw, Email: "john@roe.dev"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	auth := NewAuthenticator(&fakeLoginAPI{}, "test-secret", path)
	if !auth.Resume() {
		t.Fatal("expected resume to succeed")
	}
	if auth.State() != Authenticated || auth.Email() != "john@roe.dev" {
		t.Fatalf("unexpected state after resume: %s %q", auth.State(), auth.Email())
	}
}

func TestAuthenticator_ResumeWithoutSession(t *testing.T) {
	auth := NewAuthenticator(&fakeLoginAPI{}, "test-secret", filepath.Join(t.TempDir(), "absent.json"))
	if auth.Resume() {
		t.Fatal("expected resume to fail without a session file")
	}
	if auth.State() != Anonymous {
		t.Fatalf("unexpected state: %s", auth.State())
	}
}

func TestAuthenticator_Logout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	api := &fakeLoginAPI{token: "backend-token"}
	auth := NewAuthenticator(api, "test-secret", path)

	if err := auth.Login(context.Background(), "john@roe.dev", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := auth.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if auth.State() != Anonymous || auth.Email() != "" {
		t.Fatalf("unexpected state after logout: %s %q", auth.State(), auth.Email())
	}
	if _, ok, _ := store.LoadSession(path); ok {
		t.Fatal("expected session file to be cleared")
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Anonymous:      "anonymous",
		Authenticating: "authenticating",
		Authenticated:  "authenticated",
		Failed:         "failed",
		State(99):      "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
