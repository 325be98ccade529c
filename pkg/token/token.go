// Package token obtains and caches the bearer credential for the Sheets API.
//
// Credentials are a Google service account (client_email + RSA private key).
// The OAuth JWT-bearer grant (RS256-signed assertion exchanged at the token
// endpoint) is performed by golang.org/x/oauth2/google; this package owns the
// cache on top of it: the token is reused until one minute before its real
// expiry, and a refresh is a single attempt with no retry.
package token

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// SecretMountPath is tried first (privileged secret mount).
	SecretMountPath = "/etc/secrets/credentials.json"
	// LocalPath is the working-directory fallback.
	LocalPath = "credentials.json"

	// expiryMargin is how long before the real expiry a token is refreshed.
	expiryMargin = time.Minute
)

// Cache caches a service-account access token. It implements
// oauth2.TokenSource so it plugs directly into option.WithTokenSource.
type Cache struct {
	mu     sync.Mutex
	fresh  func(ctx context.Context) (*oauth2.Token, error)
	tok    *oauth2.Token
	margin time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewCache loads service-account credentials and returns an empty cache.
// The first Token call performs the initial exchange.
func NewCache(logger *slog.Logger, scopes ...string) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, path, err := readCredentials()
	if err != nil {
		return nil, err
	}

	cfg, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	logger.Info("service account credentials loaded", "path", path, "client_email", cfg.Email)

	return &Cache{
		// A fresh TokenSource per refresh forces a full sign-and-exchange
		// instead of the library's own reuse wrapper.
		fresh: func(ctx context.Context) (*oauth2.Token, error) {
			return cfg.TokenSource(ctx).Token()
		},
		margin: expiryMargin,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Token returns the cached token, refreshing it when it is within the expiry
// margin. A refresh failure is returned to the caller; the stale token is not
// served.
func (c *Cache) Token() (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid(c.now()) {
		return c.tok, nil
	}

	tok, err := c.fresh(context.Background())
	if err != nil {
		return nil, fmt.Errorf("exchanging service account assertion: %w", err)
	}

	c.tok = tok
	c.logger.Debug("access token refreshed", "expiry", tok.Expiry)
	return tok, nil
}

// valid reports whether the cached token is still usable at the given instant.
// Callers must hold c.mu.
func (c *Cache) valid(now time.Time) bool {
	return c.tok != nil && c.tok.AccessToken != "" && now.Before(c.tok.Expiry.Add(-c.margin))
}

// readCredentials loads the credential JSON, trying the secret mount path
// first and falling back to the working directory.
func readCredentials() ([]byte, string, error) {
	for _, path := range []string{SecretMountPath, LocalPath} {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("reading credentials file %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("no credentials file found at %s or %s", SecretMountPath, LocalPath)
}
