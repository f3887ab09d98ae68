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

var verifyErrors = []knownError{
	{MsgTokenExpired, ErrTokenExpired},
	{MsgInvalidToken, ErrInvalidToken},
}

// Verify asks the service to decode token. The token is opaque to the client
// and is not validated locally.
func (c *Client) Verify(ctx context.Context, token string) (*DecodedToken, error) {
	cfg := c.snapshot()
	slogx.Debug(cfg.logger, "Verifying token")

	resp, err := cfg.transport.Do(ctx, httpx.RequestConfig{
		URL:     cfg.url("verify"),
		Method:  http.MethodPost,
		Headers: cfg.headers,
		Data:    map[string]any{"token": token},
	})
	if err != nil {
		slogx.Error(cfg.logger, "Token validation failed", err)
		return nil, classify(err, verifyErrors)
	}

	decoded, err := decodedTokenFromResponse(resp)
	if err != nil {
		// The detail stays in the log, callers only see ErrUnexpectedResponse.
		slogx.Debug(cfg.logger, "Unexpected verify response", "reason", err.Error())
		slogx.Error(cfg.logger, "Token validation failed", ErrUnexpectedResponse)
		return nil, ErrUnexpectedResponse
	}
	slogx.Debug(cfg.logger, "Client responded", "status", resp.Status)

	return decoded, nil
}

func decodedTokenFromResponse(resp *httpx.Response) (*DecodedToken, error) {
	data, err := responseData(resp)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("data is not an object: %w", err)
	}

	payload, err := DecodedTokenInput.Validate(DecodedTokenInput.Build(raw), validatex.Options{})
	if err != nil {
		return nil, err
	}

	decoded, err := decodedToken(payload)
	if err != nil {
		return nil, err
	}
	return &decoded, nil
}

// classify maps a transport failure onto the first matching known error, or
// ErrUnknownClientError. Errors that are not transport failures pass through.
func classify(err error, known []knownError) error {
	var terr *httpx.TransportError
	if !errors.As(err, &terr) {
		return err
	}

	for _, k := range known {
		if terr.HasError(k.msg) {
			return k.err
		}
	}

	return ErrUnknownClientError
}
