package authclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/aussiebroadwan/authclient/pkg/authclient"
	"github.com/aussiebroadwan/authclient/pkg/httpx"
	"github.com/stretchr/testify/require"
)

// mockTransport records every request and answers with respond.
type mockTransport struct {
	mu      sync.Mutex
	calls   []httpx.RequestConfig
	respond func(cfg httpx.RequestConfig) (*httpx.Response, error)
}

func (m *mockTransport) Do(_ context.Context, cfg httpx.RequestConfig) (*httpx.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cfg)
	m.mu.Unlock()
	return m.respond(cfg)
}

func (m *mockTransport) Calls() []httpx.RequestConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]httpx.RequestConfig(nil), m.calls...)
}

// replyData answers 200 with data wrapped in an envelope.
func replyData(t *testing.T, data any) *mockTransport {
	t.Helper()

	body, err := json.Marshal(map[string]any{"data": data})
	require.NoError(t, err)
	return replyBody(body)
}

func replyBody(body []byte) *mockTransport {
	return &mockTransport{respond: func(cfg httpx.RequestConfig) (*httpx.Response, error) {
		return &httpx.Response{Status: http.StatusOK, StatusText: "OK", Body: body, Config: cfg}, nil
	}}
}

// replyErrors fails with a 400 TransportError carrying msgs as structured errors.
func replyErrors(t *testing.T, msgs ...string) *mockTransport {
	t.Helper()

	errs := make([]httpx.FieldError, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, httpx.FieldError{Location: "body", Param: "email", Msg: m})
	}
	body, err := json.Marshal(map[string]any{"data": nil, "errors": errs})
	require.NoError(t, err)

	return &mockTransport{respond: func(cfg httpx.RequestConfig) (*httpx.Response, error) {
		resp := &httpx.Response{Status: http.StatusBadRequest, Body: body, Config: cfg}
		return nil, httpx.NewTransportError(cfg, httpx.CodeBadRequest, nil, resp, nil)
	}}
}

func replyErr(err error) *mockTransport {
	return &mockTransport{respond: func(httpx.RequestConfig) (*httpx.Response, error) {
		return nil, err
	}}
}

type logEntry struct {
	level string
	msg   string
	err   error
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) Debug(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: "debug", msg: msg, args: args})
}

func (l *recordingLogger) Error(msg string, err error, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: "error", msg: msg, err: err, args: args})
}

func (l *recordingLogger) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for _, e := range l.entries {
		if e.level == "error" {
			errs = append(errs, e.err)
		}
	}
	return errs
}

const testAuthorization = "Basic username:password"

func newTestClient(tr httpx.Transport, logger *recordingLogger) *authclient.Client {
	opts := authclient.Options{
		Endpoint:  "http://localhost",
		Transport: tr,
		Headers:   map[string]string{"Authorization": testAuthorization},
	}
	if logger != nil {
		opts.Logger = logger
	}
	return authclient.New(opts)
}
