package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"movie-booking-cli/model"
	"movie-booking-cli/store"
)

// State is the authentication lifecycle state.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	Failed
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrInvalidCredentials distinguishes a rejected login from transport or
// backend failures.
var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginAPI is the slice of the service facade the authenticator needs.
type LoginAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.Envelope[model.TokenPayload], error)
}

// Authenticator runs the credential login flow: validate, exchange
// credentials for a bearer token, mint and persist the signed session.
type Authenticator struct {
	api         LoginAPI
	secret      string
	sessionPath string
	validate    *validator.Validate

	state State
	email string
}

func NewAuthenticator(api LoginAPI, secret string, sessionPath string) *Authenticator {
	return &Authenticator{
		api:         api,
		secret:      secret,
		sessionPath: sessionPath,
		validate:    validator.New(),
		state:       Anonymous,
	}
}

func (a *Authenticator) State() State { return a.state }

func (a *Authenticator) Email() string { return a.email }

// Resume restores an existing session from the session file, if one is
// present and still valid.
func (a *Authenticator) Resume() bool {
	record, ok, err := store.LoadSession(a.sessionPath)
	if err != nil || !ok {
		return false
	}
	claims, err := ParseToken(a.secret, record.Token)
	if err != nil {
		return false
	}
	a.state = Authenticated
	a.email = claims.Email
	return true
}

// Login drives Anonymous/Failed -> Authenticating -> Authenticated|Failed.
// A previous failure does not block a new attempt.
func (a *Authenticator) Login(ctx context.Context, email string, password string) error {
	if a.state == Authenticating {
		return errors.New("login already in progress")
	}
	a.state = Authenticating

	creds := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := a.validate.Struct(creds); err != nil {
		a.state = Failed
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, credentialProblem(err))
	}

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		a.state = Failed
		if IsUnauthorized(err) {
			return ErrInvalidCredentials
		}
		return err
	}
	if strings.TrimSpace(resp.Payload.Token) == "" {
		a.state = Failed
		return errors.New("login response carried no token")
	}

	token, err := MintToken(a.secret, resp.Payload.Token, creds.Email, DefaultTTL)
	if err != nil {
		a.state = Failed
		return err
	}
	if err := store.SaveSession(a.sessionPath, store.SessionRecord{Token: token, Email: creds.Email}); err != nil {
		a.state = Failed
		return err
	}

	a.state = Authenticated
	a.email = creds.Email
	return nil
}

// Logout clears the persisted session and returns to Anonymous.
func (a *Authenticator) Logout() error {
	if err := store.ClearSession(a.sessionPath); err != nil {
		return err
	}
	a.state = Anonymous
	a.email = ""
	return nil
}

func credentialProblem(err error) string {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		field := fields[0]
		if field.Tag() == "email" {
			return "email address is malformed"
		}
		return strings.ToLower(field.Field()) + " is required"
	}
	return "missing email or password"
}

// IsUnauthorized reports whether err is a 401 from the API. Declared here
// via a narrow interface so session does not import service.
func IsUnauthorized(err error) bool {
	var coded interface{ HTTPStatus() int }
	if errors.As(err, &coded) {
		return coded.HTTPStatus() == 401
	}
	return false
}
