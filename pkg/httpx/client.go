package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/authclient/pkg/idx"
	"github.com/aussiebroadwan/authclient/pkg/slogx"
)

// DefaultTimeout applies when neither the request nor the transport sets one.
const DefaultTimeout = 10 * time.Second

// HTTPTransport is the default Transport backed by net/http.
type HTTPTransport struct {
	Client *http.Client
	Logger slogx.Logger

	// Timeout is used for requests whose config has no timeout.
	Timeout time.Duration
}

// NewHTTPTransport creates a transport with a fresh http.Client and the
// default timeout. logger may be nil.
func NewHTTPTransport(logger slogx.Logger) *HTTPTransport {
	return &HTTPTransport{
		Client:  &http.Client{},
		Logger:  logger,
		Timeout: DefaultTimeout,
	}
}

// Do sends the request. Every failure is returned as a *TransportError.
func (t *HTTPTransport) Do(ctx context.Context, cfg RequestConfig) (*Response, error) {
	slogx.Debug(t.Logger, "Requesting.", "method", cfg.Method, "url", cfg.URL)

	resp, err := t.do(ctx, cfg)
	if err != nil {
		slogx.Error(t.Logger, "Request failed.", err, "method", cfg.Method, "url", cfg.URL)
		return nil, err
	}

	return resp, nil
}

func (t *HTTPTransport) do(ctx context.Context, cfg RequestConfig) (*Response, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = t.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := newRequest(ctx, cfg)
	if err != nil {
		return nil, NewTransportError(cfg, CodeInvalidRequest, nil, nil, err)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	httpResp, err := client.Do(req)
	if err != nil {
		return nil, NewTransportError(cfg, failureCode(err), req, nil, err)
	}
	defer httpResp.Body.Close()

	resp := &Response{
		Status:     httpResp.StatusCode,
		StatusText: http.StatusText(httpResp.StatusCode),
		Headers:    httpResp.Header,
		Config:     cfg,
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewTransportError(cfg, failureCode(err), req, resp, fmt.Errorf("failed to read response body: %w", err))
	}
	resp.Body = body

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, NewTransportError(
			cfg,
			StatusCode(httpResp.StatusCode),
			req,
			resp,
			fmt.Errorf("request failed with status code %d", httpResp.StatusCode),
		)
	}

	return resp, nil
}

func newRequest(ctx context.Context, cfg RequestConfig) (*http.Request, error) {
	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if len(cfg.Params) > 0 {
		q := target.Query()
		for key, values := range cfg.Params {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	if cfg.Data != nil {
		raw, err := json.Marshal(cfg.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range cfg.Headers {
		req.Header.Set(key, value)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get(slogx.RequestIDHeader) == "" {
		req.Header.Set(slogx.RequestIDHeader, idx.New().String())
	}

	return req, nil
}

func failureCode(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeout
	}

	return CodeNetwork
}
