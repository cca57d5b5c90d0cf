// Package api is the Go SDK for the Sathee backend. It wraps the REST
// surface, drives the session guard on login/logout, and attaches the
// stored access token to protected calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"sathee-backend/internal/client/session"
)

// ErrUnauthorized reports a 401 from a protected call. Consumers must
// treat the session as invalid and re-prompt; the SDK does not
// refresh-and-retry automatically.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the {status, message} failure payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	guard      *session.Guard
}

// New creates a client against baseURL. Requests abort after 8s so a
// dead server surfaces as an error rather than a hang.
func New(baseURL string, guard *session.Guard) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 8 * time.Second},
		guard:      guard,
	}
}

type authPayload struct {
	Status       string          `json:"status"`
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         session.Profile `json:"user"`
}

type messagePayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ChatReply is a single answer from the chat endpoint.
type ChatReply struct {
	BotResponse    string `json:"botResponse"`
	RiskAssessment string `json:"riskAssessment"`
}

func (c *Client) Signup(ctx context.Context, fullName, email, password, confirmPassword string) (*session.Profile, error) {
	body := map[string]string{
		"fullName":        fullName,
		"email":           email,
		"password":        password,
		"confirmPassword": confirmPassword,
	}

	var out authPayload
	if err := c.post(ctx, "/api/v1/auth/signup", body, false, &out); err != nil {
		return nil, err
	}

	if err := c.guard.Login(out.User, out.Token, out.RefreshToken); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*session.Profile, error) {
	body := map[string]string{"email": email, "password": password}

	var out authPayload
	if err := c.post(ctx, "/api/v1/auth/login", body, false, &out); err != nil {
		return nil, err
	}

	if err := c.guard.Login(out.User, out.Token, out.RefreshToken); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Refresh exchanges the stored refresh token for a new access token
// and persists it. The refresh token itself never changes.
func (c *Client) Refresh(ctx context.Context) error {
	refreshToken := c.guard.RefreshToken()
	if refreshToken == "" {
		return ErrUnauthorized
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/api/v1/auth/refresh", map[string]string{"refreshToken": refreshToken}, false, &out); err != nil {
		return err
	}
	return c.guard.SetAccessToken(out.Token)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	var out messagePayload
	return c.post(ctx, "/api/v1/auth/forgot-password", map[string]string{"email": email}, false, &out)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	body := map[string]string{
		"token":           token,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	var out messagePayload
	return c.post(ctx, "/api/v1/auth/reset-password", body, false, &out)
}

// DeleteAccount removes the account matching the supplied credentials
// and drops the local session.
func (c *Client) DeleteAccount(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var out messagePayload
	if err := c.do(ctx, http.MethodDelete, "/api/v1/users/me", body, false, &out); err != nil {
		return err
	}
	return c.guard.Logout()
}

// Chat sends one message. Works for guests; when the guard holds a
// session the request is attributed to the account.
func (c *Client) Chat(ctx context.Context, userInput string) (*ChatReply, error) {
	var out ChatReply
	if err := c.post(ctx, "/api/v1/chat", map[string]string{"user_input": userInput}, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body any, withAuth bool, out any) error {
	return c.do(ctx, http.MethodPost, path, body, withAuth, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if withAuth {
		if token := c.guard.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var failure messagePayload
		_ = json.Unmarshal(data, &failure)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: failure.Message}
		if resp.StatusCode == http.StatusUnauthorized {
			return errors.Join(ErrUnauthorized, apiErr)
		}
		return apiErr
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
