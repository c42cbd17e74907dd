package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

// LoginResult is the flat (non-enveloped) login response.
type LoginResult struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login exchanges credentials for a bearer token. Unlike the rest of the API
// the auth login endpoint replies without the success/data envelope.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	decodeErr := json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && result.Message != "" {
			return nil, errors.New(result.Message)
		}
		return nil, errors.New("Login failed")
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode login response: %w", decodeErr)
	}
	if result.Token == "" {
		return nil, errors.New("Login failed")
	}
	return &result, nil
}

// Profile validates a stored token against the platform and returns the
// current user. Callers drop the token when this fails.
func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &user, "Failed to fetch profile"); err != nil {
		return nil, err
	}
	return &user, nil
}
