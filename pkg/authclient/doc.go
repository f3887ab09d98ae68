/*
Package authclient is a client SDK for the remote authentication service.

# Overview

The service exposes two operations and the Client mirrors them:

  - Password exchanges an email and password for a signed token.
  - Verify asks the service to decode a token and returns its claims.

Both calls validate what they can locally, perform exactly one HTTP round trip
and translate failures into a small set of sentinel errors. Nothing is retried.

	client := authclient.New(authclient.Options{
		Endpoint: "https://auth.example.com/auth",
		Logger:   slogx.Adapt(slog.Default()),
	})

	token, err := client.Password(ctx, "mail@mail.com", "12345678")
	switch {
	case errors.Is(err, authclient.ErrUserNotFound):
		// ...
	case errors.Is(err, authclient.ErrInvalidPassword):
		// ...
	}

	decoded, err := client.Verify(ctx, token)

# Error Handling

Callers observe one of these outcomes per call:

  - *ArgumentValidationError: the input broke a local rule, no request was sent
  - ErrUnexpectedResponse: the service answered 2xx with a malformed body
  - ErrUserNotFound, ErrUserNotActive, ErrInvalidPassword: Password rejections
  - ErrTokenExpired, ErrInvalidToken: Verify rejections
  - ErrUnknownClientError: any other transport failure

Errors that are neither validation nor transport failures, such as a broken
custom Transport returning its own error type, are returned unchanged.

# Configuration

Options fields left at their zero value are treated as absent. New fills
absent fields with defaults; Configure only overwrites the present ones:

	client.Configure(authclient.Options{Headers: map[string]string{"Authorization": "Basic ..."}})

Configuration is read once at the start of each call, so calls already in
flight keep the settings they started with.

# Transport

Requests go through an httpx.Transport. The default is httpx.HTTPTransport;
tests and callers with special needs can inject their own, for example a
rate-limited one:

	client.Configure(authclient.Options{
		Transport: httpx.RateLimited(httpx.NewHTTPTransport(nil), rate.Limit(5), 5),
	})
*/
package authclient
