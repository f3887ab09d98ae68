// Package authtest runs an in-process authentication service that speaks the
// same wire protocol as the real one, for exercising clients end to end.
package authtest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/authclient/pkg/authclient"
	"github.com/aussiebroadwan/authclient/pkg/httpx"
	"github.com/aussiebroadwan/authclient/pkg/slogx"
)

// DefaultExpiresIn is the token lifetime in seconds when a request omits expiresIn.
const DefaultExpiresIn = 3600

// User is an account known to the server.
type User struct {
	ID       string
	Email    string
	Password string
	Role     authclient.Role
	Active   bool
}

type account struct {
	User
	hash []byte
}

// Server is a running fake authentication service.
type Server struct {
	*httptest.Server

	secret   []byte
	accounts map[string]account

	mu     sync.Mutex
	offset time.Duration
}

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewServer starts a server holding users. It is closed when the test ends.
// Output of the request middleware goes to logOutput, which may be nil.
func NewServer(tb testing.TB, logOutput io.Writer, users ...User) *Server {
	tb.Helper()

	s := &Server{
		secret:   []byte("authtest-signing-secret"),
		accounts: make(map[string]account, len(users)),
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
		if err != nil {
			tb.Fatalf("authtest: hash password for %s: %v", u.Email, err)
		}
		s.accounts[u.Email] = account{User: u, hash: hash}
	}

	if logOutput == nil {
		logOutput = io.Discard
	}
	logger := slogx.New(slogx.Config{
		Service: "authtest",
		Env:     "test",
		Level:   "debug",
		Output:  logOutput,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /password", s.handlePassword)
	mux.HandleFunc("POST /verify", s.handleVerify)

	s.Server = httptest.NewServer(slogx.HTTPMiddleware(logger)(mux))
	tb.Cleanup(s.Close)

	return s
}

// Advance moves the server clock forward by d.
func (s *Server) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset += d
}

func (s *Server) now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().Add(s.offset)
}

type passwordRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ExpiresIn *int   `json:"expiresIn"`
}

func (s *Server) handlePassword(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "body", "InvalidBody")
		return
	}

	acc, ok := s.accounts[req.Email]
	switch {
	case !ok:
		fail(w, "email", authclient.MsgUserNotFound)
		return
	case !acc.Active:
		fail(w, "email", authclient.MsgUserNotActive)
		return
	case bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil:
		fail(w, "password", authclient.MsgInvalidPassword)
		return
	}

	expiresIn := DefaultExpiresIn
	if req.ExpiresIn != nil {
		expiresIn = *req.ExpiresIn
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ID:    acc.ID,
		Email: acc.Email,
		Role:  string(acc.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresIn) * time.Second)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		log.Error("failed to sign token", "error", err)
		httpx.WriteEnvelope(w, http.StatusInternalServerError, nil)
		return
	}

	log.Debug("token issued", "user_id", acc.ID, "expires_in", expiresIn)
	httpx.WriteEnvelope(w, http.StatusOK, signed)
}

type verifyRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "body", "InvalidBody")
		return
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(req.Token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		fail(w, "token", authclient.MsgTokenExpired)
		return
	case err != nil:
		fail(w, "token", authclient.MsgInvalidToken)
		return
	}

	httpx.WriteEnvelope(w, http.StatusOK, map[string]any{
		"id":    claims.ID,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   claims.IssuedAt.Unix(),
		"exp":   claims.ExpiresAt.Unix(),
	})
}

func fail(w http.ResponseWriter, param, msg string) {
	httpx.WriteEnvelope(w, http.StatusBadRequest, nil, httpx.FieldError{
		Location: "body",
		Param:    param,
		Msg:      msg,
	})
}
