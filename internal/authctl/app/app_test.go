package app

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/authclient/internal/authtest"
	"github.com/aussiebroadwan/authclient/pkg/authclient"
)

const userID = "5c8a1d5b0190b214360dc031"

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)
	require.Equal(t, Config{
		Endpoint:   "http://localhost:3000/auth",
		Timeout:    10 * time.Second,
		RateBurst:  1,
		Env:        "dev",
		LogLevel:   "info",
		LogFormat:  "text",
		LogBackend: "slog",
	}, cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_ENDPOINT":      "https://auth.example.com",
		"AUTH_TIMEOUT":       "2s",
		"AUTH_AUTHORIZATION": "Basic abc",
		"AUTH_RATE_LIMIT":    "2.5",
		"AUTH_RATE_BURST":    "4",
		"LOG_BACKEND":        "zerolog",
	}))
	require.NoError(t, err)
	require.Equal(t, "https://auth.example.com", cfg.Endpoint)
	require.Equal(t, 2*time.Second, cfg.Timeout)
	require.Equal(t, "Basic abc", cfg.Authorization)
	require.InDelta(t, 2.5, cfg.RateLimit, 0.0001)
	require.Equal(t, 4, cfg.RateBurst)
	require.Equal(t, "zerolog", cfg.LogBackend)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()

	for name, env := range map[string]map[string]string{
		"backend":  {"LOG_BACKEND": "logrus"},
		"timeout":  {"AUTH_TIMEOUT": "soon"},
		"negative": {"AUTH_RATE_LIMIT": "-1"},
	} {
		_, err := loadConfig(context.Background(), envconfig.MapLookuper(env))
		require.Error(t, err, name)
	}
}

func newTestApp(t *testing.T, backend string) (*Application, *bytes.Buffer) {
	t.Helper()

	srv := authtest.NewServer(t, nil, authtest.User{
		ID:       userID,
		Email:    "mail@mail.com",
		Password: "s3cret-pass",
		Role:     authclient.RoleManager,
		Active:   true,
	})

	var stderr bytes.Buffer
	return New(Config{
		Endpoint:      srv.URL,
		Timeout:       5 * time.Second,
		Authorization: "Basic abc",
		RateLimit:     100,
		RateBurst:     10,
		Env:           "test",
		LogLevel:      "debug",
		LogFormat:     "json",
		LogBackend:    backend,
	}, &stderr), &stderr
}

func TestRunPasswordAndVerify(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{"slog", "zerolog"} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			app, stderr := newTestApp(t, backend)
			ctx := context.Background()

			var out bytes.Buffer
			require.NoError(t, app.Run(ctx, []string{"password", "-email", "mail@mail.com", "-password", "s3cret-pass", "-expires-in", "90"}, &out))
			token := strings.TrimSpace(out.String())
			require.NotEmpty(t, token)

			out.Reset()
			require.NoError(t, app.Run(ctx, []string{"verify", token}, &out))

			var decoded authclient.DecodedToken
			require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
			require.Equal(t, userID, decoded.ID)
			require.Equal(t, authclient.RoleManager, decoded.Role)
			require.Equal(t, int64(90), decoded.Exp-decoded.Iat)

			require.Contains(t, stderr.String(), "Requesting.")
			require.NotContains(t, stderr.String(), "s3cret-pass")
		})
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "slog")
	ctx := context.Background()

	tests := []struct {
		name  string
		args  []string
		want  error
		usage bool
	}{
		{name: "no command", args: nil, usage: true},
		{name: "unknown command", args: []string{"refresh"}, usage: true},
		{name: "bad flag", args: []string{"password", "-nope"}, usage: true},
		{name: "verify without token", args: []string{"verify"}, usage: true},
		{name: "unknown user", args: []string{"password", "-email", "x@mail.com", "-password", "12345678"}, want: authclient.ErrUserNotFound},
		{name: "wrong password", args: []string{"password", "-email", "mail@mail.com", "-password", "00000000"}, want: authclient.ErrInvalidPassword},
		{name: "bad token", args: []string{"verify", "abc"}, want: authclient.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := app.Run(ctx, tt.args, &out)
			require.Error(t, err)
			require.Empty(t, out.String())

			if tt.usage {
				require.ErrorIs(t, err, ErrUsage)
			} else {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRunValidationError(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "slog")

	err := app.Run(context.Background(), []string{"password", "-email", "bad", "-password", "short"}, &bytes.Buffer{})

	var verr *authclient.ArgumentValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, err.Error(), "email(isEmail)")
	require.Contains(t, err.Error(), "password(length)")
}
