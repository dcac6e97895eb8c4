package earthel

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gnicod/earthel/store"
)

// Option configures a Client.
type Option func(*Client) error

// DefaultCacheDir returns the cache root used when WithCacheDir is not
// given: an "hgt" directory under the system temp directory.
//
// The cache root must stay stable across process restarts for caching to
// be effective; services should pass an explicit directory instead.
func DefaultCacheDir() string {
	return filepath.Join(os.TempDir(), "hgt")
}

// WithCacheDir sets the tile cache root directory.
func WithCacheDir(dir string) Option {
	return func(c *Client) error {
		if dir == "" {
			return errors.New("cache dir is empty")
		}
		c.cacheDir = dir
		return nil
	}
}

// WithBaseURL sets the tile mirror base URL.
// Defaults to the public Skadi mirror, store.DefaultBaseURL.
func WithBaseURL(url string) Option {
	return func(c *Client) error {
		if url == "" {
			return errors.New("base URL is empty")
		}
		c.storeOpts = append(c.storeOpts, store.WithBaseURL(url))
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for tile downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		c.storeOpts = append(c.storeOpts, store.WithHTTPClient(client))
		return nil
	}
}

// WithTimeout bounds each tile download. Defaults to store.DefaultTimeout.
// Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.storeOpts = append(c.storeOpts, store.WithTimeout(d))
		return nil
	}
}

// WithLogger sets a logger for the client and its tile store.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}
