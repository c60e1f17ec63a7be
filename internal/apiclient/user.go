package apiclient

import (
	"context"
	"net/http"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/transport"
)

// Profile fetches the authenticated user's profile. When bearerToken is
// non-empty it is sent as an explicit Authorization header; when empty the
// call relies on whatever credentials the decoration layer attaches
// (cookie-based recognition on the backend).
func (c *Client) Profile(ctx context.Context, bearerToken string) (*dto.ProfileResponse, error) {
	var creds *transport.Credentials
	if bearerToken != "" {
		creds = &transport.Credentials{Mode: transport.ModeBearer, Value: bearerToken}
	}

	var profile dto.ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, creds, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (c *Client) Login(ctx context.Context, email string, password string) (*dto.LoginResponse, error) {
	body := dto.LoginRequest{Email: email, Password: password}

	var resp dto.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/login", body, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Logout tells the backend to drop the server-side session. The bearer
// token rides along from the decoration layer.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/user/logout", struct{}{}, nil, nil)
}

func (c *Client) Subscribe(ctx context.Context, email string) error {
	body := dto.SubscribeRequest{Email: email}
	return c.doEnveloped(ctx, http.MethodPost, "/api/subscribe", body, nil, nil)
}
