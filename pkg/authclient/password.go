package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/authclient/pkg/httpx"
	"github.com/aussiebroadwan/authclient/pkg/slogx"
	"github.com/aussiebroadwan/authclient/pkg/validatex"
)

// knownError pairs a structured error message with the sentinel it maps to.
type knownError struct {
	msg string
	err error
}

// Checked in order, the first match wins.
var passwordErrors = []knownError{
	{MsgUserNotFound, ErrUserNotFound},
	{MsgUserNotActive, ErrUserNotActive},
	{MsgInvalidPassword, ErrInvalidPassword},
}

// Password exchanges credentials for a token using the service's default
// token lifetime.
func (c *Client) Password(ctx context.Context, email, password string) (string, error) {
	return c.password(ctx, email, password, nil)
}

// PasswordWithExpiry exchanges credentials for a token that expires after
// expiresIn seconds (0 to MaxExpiresIn).
func (c *Client) PasswordWithExpiry(ctx context.Context, email, password string, expiresIn int) (string, error) {
	return c.password(ctx, email, password, &expiresIn)
}

func (c *Client) password(ctx context.Context, email, password string, expiresIn *int) (string, error) {
	cfg := c.snapshot()
	slogx.Debug(cfg.logger, "Password", "email", email)

	payload, err := PasswordInput.Validate(NewPasswordInput(email, password, expiresIn), validatex.Options{})
	if err != nil {
		return "", err
	}

	resp, err := cfg.transport.Do(ctx, httpx.RequestConfig{
		URL:     cfg.url("password"),
		Method:  http.MethodPost,
		Headers: cfg.headers,
		Data:    map[string]any(payload),
	})
	if err != nil {
		slogx.Error(cfg.logger, "Password", err, "email", email)
		return "", classify(err, passwordErrors)
	}

	token, ok := tokenFromResponse(resp)
	if !ok {
		slogx.Error(cfg.logger, "Password", ErrUnexpectedResponse, "email", email)
		return "", ErrUnexpectedResponse
	}
	slogx.Debug(cfg.logger, "Password", "status", resp.Status)

	return token, nil
}

// tokenFromResponse extracts a non-empty string from the envelope's data.
func tokenFromResponse(resp *httpx.Response) (string, bool) {
	data, err := responseData(resp)
	if err != nil {
		return "", false
	}

	var token string
	if err := json.Unmarshal(data, &token); err != nil || token == "" {
		return "", false
	}

	return token, true
}

// responseData returns the non-null data member of a successful response.
// Other envelope members are ignored on success.
func responseData(resp *httpx.Response) (json.RawMessage, error) {
	if resp == nil {
		return nil, errors.New("no response")
	}

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		return nil, errors.New("response has no data")
	}

	return body.Data, nil
}
