package zlog_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/authclient/pkg/zlog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, zerolog.TraceLevel, zlog.ParseLevel("trace"))
	require.Equal(t, zerolog.DebugLevel, zlog.ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, zlog.ParseLevel("warning"))
	require.Equal(t, zerolog.ErrorLevel, zlog.ParseLevel("error"))
	require.Equal(t, zerolog.InfoLevel, zlog.ParseLevel(""))
}

func TestAdapt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zlog.Adapt(zlog.New(zlog.Options{Level: "debug", Output: &buf}))

	logger.Error("Token validation failed", errors.New("expired"), "path", "verify")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "error", entry["level"])
	require.Equal(t, "Token validation failed", entry["message"])
	require.Equal(t, "expired", entry["error"])
	require.Equal(t, "verify", entry["path"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zlog.Adapt(zlog.New(zlog.Options{Level: "error", Output: &buf}))

	logger.Debug("Requesting.", "url", "http://h/password")
	require.Empty(t, buf.String())
}
