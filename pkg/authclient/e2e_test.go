package authclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/authclient/internal/authtest"
	"github.com/aussiebroadwan/authclient/pkg/authclient"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd(t *testing.T) {
	t.Parallel()

	srv := authtest.NewServer(t, nil,
		authtest.User{ID: testUserID, Email: "mail@mail.com", Password: "12345678", Role: authclient.RoleInstructor, Active: true},
		authtest.User{ID: "000000000000000000000000", Email: "off@mail.com", Password: "12345678", Role: authclient.RoleParent},
	)

	logger := &recordingLogger{}
	c := authclient.New(authclient.Options{Endpoint: srv.URL + "/", Logger: logger})
	ctx := context.Background()

	t.Run("issue and verify", func(t *testing.T) {
		before := time.Now().Unix()

		token, err := c.Password(ctx, "mail@mail.com", "12345678")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		decoded, err := c.Verify(ctx, token)
		require.NoError(t, err)
		require.Equal(t, testUserID, decoded.ID)
		require.Equal(t, "mail@mail.com", decoded.Email)
		require.Equal(t, authclient.RoleInstructor, decoded.Role)
		require.GreaterOrEqual(t, decoded.Iat, before)
		require.Equal(t, int64(authtest.DefaultExpiresIn), decoded.Exp-decoded.Iat)
	})

	t.Run("custom expiry", func(t *testing.T) {
		token, err := c.PasswordWithExpiry(ctx, "mail@mail.com", "12345678", 120)
		require.NoError(t, err)

		decoded, err := c.Verify(ctx, token)
		require.NoError(t, err)
		require.Equal(t, int64(120), decoded.Exp-decoded.Iat)
	})

	t.Run("service errors", func(t *testing.T) {
		_, err := c.Password(ctx, "nobody@mail.com", "12345678")
		require.ErrorIs(t, err, authclient.ErrUserNotFound)

		_, err = c.Password(ctx, "off@mail.com", "12345678")
		require.ErrorIs(t, err, authclient.ErrUserNotActive)

		_, err = c.Password(ctx, "mail@mail.com", "wrong-password")
		require.ErrorIs(t, err, authclient.ErrInvalidPassword)

		_, err = c.Verify(ctx, "garbage")
		require.ErrorIs(t, err, authclient.ErrInvalidToken)
	})

	t.Run("unreachable service", func(t *testing.T) {
		down := authclient.New(authclient.Options{Endpoint: "http://127.0.0.1:1"})

		_, err := down.Verify(ctx, "tok")
		require.ErrorIs(t, err, authclient.ErrUnknownClientError)
	})

	require.NotEmpty(t, logger.Errors())
}

func TestEndToEndExpiredToken(t *testing.T) {
	t.Parallel()

	srv := authtest.NewServer(t, nil,
		authtest.User{ID: testUserID, Email: "mail@mail.com", Password: "12345678", Role: authclient.RoleStudent, Active: true},
	)
	c := authclient.New(authclient.Options{Endpoint: srv.URL})
	ctx := context.Background()

	token, err := c.PasswordWithExpiry(ctx, "mail@mail.com", "12345678", 60)
	require.NoError(t, err)

	srv.Advance(time.Hour)

	decoded, err := c.Verify(ctx, token)
	require.ErrorIs(t, err, authclient.ErrTokenExpired)
	require.Nil(t, decoded)
}
