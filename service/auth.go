package service

import (
	"context"
	"net/http"

	"movie-booking-cli/model"
)

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.Envelope[model.RegisterRequest], error) {
	var out model.Envelope[model.RegisterRequest]
	if err := c.do(ctx, http.MethodPost, "/auths/register", req, &out); err != nil {
		return model.Envelope[model.RegisterRequest]{}, err
	}
	return out, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.Envelope[model.TokenPayload], error) {
	var out model.Envelope[model.TokenPayload]
	if err := c.do(ctx, http.MethodPost, "/auths/login", req, &out); err != nil {
		return model.Envelope[model.TokenPayload]{}, err
	}
	return out, nil
}
