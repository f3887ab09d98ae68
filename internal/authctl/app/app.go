package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/authclient/pkg/authclient"
	"github.com/aussiebroadwan/authclient/pkg/httpx"
	"github.com/aussiebroadwan/authclient/pkg/slogx"
	"github.com/aussiebroadwan/authclient/pkg/zlog"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// ErrUsage is returned when the command line cannot be understood.
var ErrUsage = errors.New("usage: authctl password -email EMAIL -password PASSWORD [-expires-in SECONDS] | authctl verify TOKEN")

// Application wires configuration, logging and the authentication client
// behind the authctl commands.
type Application struct {
	cfg    Config
	stderr io.Writer
	logger slogx.Logger
	client *authclient.Client
}

// New creates an Application. Logs and flag errors go to stderr.
func New(cfg Config, stderr io.Writer) *Application {
	app := &Application{
		cfg:    cfg,
		stderr: stderr,
		logger: newLogger(cfg, stderr),
	}

	var transport httpx.Transport = &httpx.HTTPTransport{
		Client:  &http.Client{},
		Logger:  app.logger,
		Timeout: cfg.Timeout,
	}
	if cfg.RateLimit > 0 {
		transport = httpx.RateLimited(transport, rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	headers := authclient.DefaultHeaders()
	if cfg.Authorization != "" {
		headers["Authorization"] = cfg.Authorization
	}

	app.client = authclient.New(authclient.Options{
		Endpoint:  cfg.Endpoint,
		Logger:    app.logger,
		Transport: transport,
		Headers:   headers,
	})

	return app
}

func newLogger(cfg Config, out io.Writer) slogx.Logger {
	if cfg.LogBackend == "zerolog" {
		return zlog.Adapt(zlog.New(zlog.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.LogFormat == "text",
			Output: out,
		}))
	}

	return slogx.Adapt(slogx.New(slogx.Config{
		Service: "authctl",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  out,
	}))
}

// Run executes the command named by args[0] and writes its result to stdout.
func (app *Application) Run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "password":
		return app.runPassword(ctx, args[1:], stdout)
	case "verify":
		return app.runVerify(ctx, args[1:], stdout)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

func (app *Application) runPassword(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("password", flag.ContinueOnError)
	fs.SetOutput(app.stderr)

	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	expiresIn := fs.Int("expires-in", 0, "token lifetime in seconds (default: service default)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, ErrUsage)
	}

	withExpiry := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "expires-in" {
			withExpiry = true
		}
	})

	var (
		token string
		err   error
	)
	if withExpiry {
		token, err = app.client.PasswordWithExpiry(ctx, *email, *password, *expiresIn)
	} else {
		token, err = app.client.Password(ctx, *email, *password)
	}
	if err != nil {
		return fmt.Errorf("password: %w", err)
	}

	_, err = fmt.Fprintln(stdout, token)
	return err
}

func (app *Application) runVerify(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(app.stderr)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, ErrUsage)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("verify takes exactly one token: %w", ErrUsage)
	}

	decoded, err := app.client.Verify(ctx, fs.Arg(0))
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(decoded)
}
