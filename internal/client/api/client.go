// Package api implements the HTTP client for the authkeeper server API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dsemenov/authkeeper/internal/common"
)

// ErrUnavailable indicates the server could not be reached or answered with
// an unexpected status.
var ErrUnavailable = errors.New("server unavailable")

// Session is the client-side view of an authenticated session.
type Session struct {
	UserID   int64
	Username string
	Token    string
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type checkAuthResponse struct {
	IsLoggedIn bool        `json:"isLoggedIn"`
	User       userPayload `json:"user"`
}

// Register creates an account and returns the issued session. The password
// is accepted as a byte slice so the caller can wipe it after the call.
func (c *Client) Register(ctx context.Context, username string, password []byte) (*Session, error) {
	return c.authCall(ctx, "/api/register", username, password, http.StatusCreated)
}

// Login verifies credentials and returns the issued session.
func (c *Client) Login(ctx context.Context, username string, password []byte) (*Session, error) {
	return c.authCall(ctx, "/api/login", username, password, http.StatusOK)
}

// CheckAuth asks the server whether the token still names a live session.
// A logged-out outcome is reported as (nil, nil): it is not an error.
func (c *Client) CheckAuth(ctx context.Context, token string) (*Session, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/check-auth", nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var out checkAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if !out.IsLoggedIn {
		return nil, nil
	}
	return &Session{UserID: out.User.ID, Username: out.User.Username, Token: token}, nil
}

func (c *Client) authCall(ctx context.Context, path, username string, password []byte, wantStatus int) (*Session, error) {

	body, err := json.Marshal(credentialsRequest{Username: username, Password: string(password)})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case wantStatus:
		var out authResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return &Session{UserID: out.User.ID, Username: out.User.Username, Token: out.Token}, nil

	case http.StatusBadRequest:
		var out errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Error == "" {
			return nil, common.ErrValidation
		}
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, out.Error)

	case http.StatusUnauthorized:
		return nil, common.ErrInvalidCredentials

	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
}
