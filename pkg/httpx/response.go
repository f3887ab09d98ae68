package httpx

import (
	"encoding/json"
	"net/http"
)

// FieldError is a structured, server-reported failure entry.
type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Msg      string `json:"msg"`
}

// Envelope is the body shape shared by every authentication service
// response: {"data": <payload>, "errors": [...]}.
type Envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []FieldError    `json:"errors,omitempty"`
}

// HasData reports whether the envelope carries a non-null data member.
func (e Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteEnvelope writes data wrapped in an Envelope.
func WriteEnvelope(w http.ResponseWriter, code int, data any, errs ...FieldError) {
	WriteJSON(w, code, struct {
		Data   any          `json:"data"`
		Errors []FieldError `json:"errors,omitempty"`
	}{Data: data, Errors: errs})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Token responses must never be cached.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
