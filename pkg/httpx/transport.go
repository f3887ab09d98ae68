package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// RequestConfig describes a single outbound request.
type RequestConfig struct {
	URL     string
	Method  string
	Headers map[string]string

	// Data is encoded as the JSON request body when non-nil.
	Data any

	// Params are appended to the URL query string.
	Params url.Values

	// Timeout bounds the whole round trip. Zero uses the transport default.
	Timeout time.Duration
}

// Response is a completed round trip with a 2xx status. Transports return
// non-2xx outcomes as a *TransportError instead.
type Response struct {
	Status     int
	StatusText string
	Headers    http.Header
	Body       []byte
	Config     RequestConfig
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return errors.New("httpx: empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// Transport performs requests on behalf of the SDK. Implementations must
// report every failure, including non-2xx statuses, as a *TransportError.
type Transport interface {
	Do(ctx context.Context, cfg RequestConfig) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, cfg RequestConfig) (*Response, error)

func (f TransportFunc) Do(ctx context.Context, cfg RequestConfig) (*Response, error) {
	return f(ctx, cfg)
}
