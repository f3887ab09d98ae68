package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
)

// Transport error codes.
const (
	CodeBadRequest     = "ERR_BAD_REQUEST"     // 4xx response
	CodeBadResponse    = "ERR_BAD_RESPONSE"    // 5xx or other non-2xx response
	CodeNetwork        = "ERR_NETWORK"         // no response received
	CodeTimeout        = "ECONNABORTED"        // deadline exceeded
	CodeInvalidRequest = "ERR_INVALID_REQUEST" // request could not be built
	CodeRateLimited    = "ERR_RATE_LIMITED"    // client-side limiter refused to wait
)

// TransportError is the normalized form of every transport failure.
// Status and Data are zero when the failure happened before a response.
type TransportError struct {
	Config   RequestConfig
	Code     string
	Request  *http.Request
	Response *Response

	Status int
	Data   json.RawMessage
	Errors []FieldError

	// Err is the underlying cause.
	Err error
}

// NewTransportError builds a TransportError, decoding the envelope of resp
// when one is present.
func NewTransportError(
	cfg RequestConfig,
	code string,
	req *http.Request,
	resp *Response,
	cause error,
) *TransportError {
	e := &TransportError{
		Config:   cfg,
		Code:     code,
		Request:  req,
		Response: resp,
		Err:      cause,
	}

	if resp != nil {
		e.Status = resp.Status

		var env Envelope
		if err := resp.Decode(&env); err == nil {
			if env.HasData() {
				e.Data = env.Data
			}
			e.Errors = env.Errors
		}
	}

	return e
}

// StatusCode maps a non-2xx status onto a transport error code.
func StatusCode(status int) string {
	if status >= 400 && status < 500 {
		return CodeBadRequest
	}
	return CodeBadResponse
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("httpx: %s %s failed", e.Config.Method, e.Config.URL)
	if e.Status != 0 {
		msg += fmt.Sprintf(" with status %d", e.Status)
	}
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HasErrors reports whether the server returned structured errors.
func (e *TransportError) HasErrors() bool {
	return len(e.Errors) > 0
}

// HasError reports whether a structured error with the given msg is present.
func (e *TransportError) HasError(msg string) bool {
	return slices.ContainsFunc(e.Errors, func(fe FieldError) bool {
		return fe.Msg == msg
	})
}
