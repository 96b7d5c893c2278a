package api

import (
	"context"
	"fmt"

	"github.com/chargehive/chargehive-client/internal/models"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// The backend names the token field differently on the two auth
// endpoints: login sends access_token, register sends accessToken.
type loginData struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

type registerData struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

// Login authenticates and returns the user with their bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var data loginData
	if err := c.post(ctx, "/user/login", body, &data); err != nil {
		return nil, "", err
	}
	if data.AccessToken == "" {
		return nil, "", fmt.Errorf("%w: missing access token", ErrMalformedResponse)
	}
	return &data.User, data.AccessToken, nil
}

// Register creates an account and returns the user with their bearer token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	var data registerData
	if err := c.post(ctx, "/user/register", req, &data); err != nil {
		return nil, "", err
	}
	if data.AccessToken == "" {
		return nil, "", fmt.Errorf("%w: missing access token", ErrMalformedResponse)
	}
	return &data.User, data.AccessToken, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/user/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
