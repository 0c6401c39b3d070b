package crmapi

import (
	"context"
	"net/http"

	"github.com/softnova/crm-console/session"
)

var _ session.Authenticator = (*Client)(nil)

// Login exchanges credentials for a token with POST /login. It never sends a bearer
// token.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (session.LoginResponse, error) {
	var resp session.LoginResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/login",
		body:   creds,
		out:    &resp,
	})
	if err != nil {
		return session.LoginResponse{}, err
	}
	return resp, nil
}
