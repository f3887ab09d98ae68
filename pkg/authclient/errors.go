package authclient

import (
	"errors"

	"github.com/aussiebroadwan/authclient/pkg/validatex"
)

// Structured error messages reported by the authentication service.
const (
	MsgUserNotFound    = "UserNotFound"
	MsgUserNotActive   = "UserNotActive"
	MsgInvalidPassword = "InvalidPassword"
	MsgTokenExpired    = "TokenExpired"
	MsgInvalidToken    = "InvalidToken"
)

var (
	// ErrUnexpectedResponse is returned when the service answered 2xx but the
	// body does not have the expected shape.
	ErrUnexpectedResponse = errors.New("authclient: unexpected response")

	// ErrUserNotFound is returned when no user matches the email.
	ErrUserNotFound = errors.New("authclient: user not found")

	// ErrUserNotActive is returned when the user exists but is disabled.
	ErrUserNotActive = errors.New("authclient: user not active")

	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("authclient: invalid password")

	// ErrTokenExpired is returned when the verified token is past its expiry.
	ErrTokenExpired = errors.New("authclient: token expired")

	// ErrInvalidToken is returned when the token is malformed or its signature is wrong.
	ErrInvalidToken = errors.New("authclient: invalid token")

	// ErrUnknownClientError is returned for every transport failure that does
	// not carry a recognised structured error.
	ErrUnknownClientError = errors.New("authclient: unknown client error")
)

// ArgumentValidationError is returned when input fails local validation.
type ArgumentValidationError = validatex.ArgumentValidationError
