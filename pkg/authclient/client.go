package authclient

import (
	"maps"
	"strings"
	"sync"

	"github.com/aussiebroadwan/authclient/pkg/httpx"
	"github.com/aussiebroadwan/authclient/pkg/slogx"
)

// Options configures a Client. Zero-valued fields are absent: New replaces
// them with defaults and Configure leaves the current value in place.
type Options struct {
	// Endpoint is the base URL of the authentication API, e.g.
	// "https://auth.example.com/auth". Operation paths are appended to it.
	Endpoint string

	// Logger receives debug and error output. Nil disables logging.
	Logger slogx.Logger

	// Transport performs the HTTP requests.
	Transport httpx.Transport

	// Headers are sent with every request. A non-nil empty map is present
	// and clears the headers.
	Headers map[string]string
}

// Client talks to the authentication service.
type Client struct {
	mu        sync.RWMutex
	endpoint  string
	logger    slogx.Logger
	transport httpx.Transport
	headers   map[string]string
}

// DefaultHeaders returns the headers a Client sends when none are configured.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

// New creates a client from opts, filling absent fields with defaults.
func New(opts Options) *Client {
	c := &Client{
		headers: DefaultHeaders(),
	}
	c.Configure(opts)

	if c.transport == nil {
		c.transport = httpx.NewHTTPTransport(c.logger)
	}

	return c
}

// Configure overwrites the fields present in opts and keeps the rest.
func (c *Client) Configure(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if opts.Endpoint != "" {
		c.endpoint = opts.Endpoint
	}
	if opts.Logger != nil {
		c.logger = opts.Logger
	}
	if opts.Transport != nil {
		c.transport = opts.Transport
	}
	if opts.Headers != nil {
		c.headers = maps.Clone(opts.Headers)
	}
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// Headers returns a copy of the configured headers.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.headers)
}

// Logger returns the configured logger, which may be nil.
func (c *Client) Logger() slogx.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logger
}

// Transport returns the configured transport.
func (c *Client) Transport() httpx.Transport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transport
}

// snapshot is the configuration a single call runs with.
type snapshot struct {
	endpoint  string
	logger    slogx.Logger
	transport httpx.Transport
	headers   map[string]string
}

func (c *Client) snapshot() snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return snapshot{
		endpoint:  c.endpoint,
		logger:    c.logger,
		transport: c.transport,
		headers:   maps.Clone(c.headers),
	}
}

// url appends path to the endpoint with exactly one separating slash.
func (s snapshot) url(path string) string {
	if strings.HasSuffix(s.endpoint, "/") {
		return s.endpoint + path
	}
	return s.endpoint + "/" + path
}
