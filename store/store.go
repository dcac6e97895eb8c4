// Package store materializes SRTM tiles in a local disk cache.
//
// A Store guarantees that a fully decompressed tile file exists at the
// canonical cache path for a tile identity, downloading and gunzipping
// the remote archive on first access. Tiles already on disk are trusted
// as-is; the cache is unbounded and never evicted.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/singleflight"

	"github.com/gnicod/earthel/tile"
)

const (
	// DefaultBaseURL is the public Skadi tile mirror.
	DefaultBaseURL = "https://elevation-tiles-prod.s3.amazonaws.com/skadi"

	// DefaultTimeout bounds a single tile fetch, headers to body.
	DefaultTimeout = 30 * time.Second

	defaultDirPerm = 0o755
)

var (
	// ErrNetwork is returned when fetching a tile archive fails, either at
	// the transport level or with a non-success HTTP status.
	ErrNetwork = errors.New("tile fetch failed")

	// ErrIO is returned when a local filesystem operation on the cache fails.
	ErrIO = errors.New("tile cache I/O failed")

	// ErrDecode is returned when a downloaded archive is not valid gzip.
	ErrDecode = errors.New("malformed tile archive")
)

// Store is a disk-backed tile cache fed from a remote archive mirror.
//
// Concurrent Ensure calls for the same tile are collapsed into a single
// download, and a tile only ever appears at its final path via an atomic
// rename of a fully written file, so callers never observe a partial tile.
type Store struct {
	root    string
	baseURL string
	client  *http.Client
	timeout time.Duration
	dirPerm os.FileMode
	logger  *slog.Logger

	fetches singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithBaseURL sets the tile mirror base URL. Defaults to DefaultBaseURL.
func WithBaseURL(url string) Option {
	return func(s *Store) {
		s.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for downloads. It overrides
// WithTimeout; callers supplying a client configure its timeout themselves.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		s.client = client
	}
}

// WithTimeout sets the per-fetch timeout for the default HTTP client.
// Zero or negative means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// WithDirPerm sets the permissions used for cache directories.
func WithDirPerm(mode os.FileMode) Option {
	return func(s *Store) {
		s.dirPerm = mode
	}
}

// WithLogger sets a logger for download and cleanup events.
// If nil, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store rooted at dir, creating it if necessary.
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache root is empty")
	}
	s := &Store{
		root:    dir,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		dirPerm: defaultDirPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		client := &http.Client{}
		if s.timeout > 0 {
			client.Timeout = s.timeout
		}
		s.client = client
	}
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return s, nil
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Store) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.logger
}

// Ensure returns an open handle to the cached tile for id, downloading
// and decompressing the remote archive on cache miss.
//
// An existing file at the cache path is returned without validating its
// contents; integrity is guaranteed at write time, not read time.
func (s *Store) Ensure(ctx context.Context, id tile.Identity) (*os.File, error) {
	path := id.Path(s.root)
	if f, err := os.Open(path); err == nil {
		return f, nil
	}

	if _, err, _ := s.fetches.Do(id.Name(), func() (any, error) {
		return nil, s.download(ctx, id, path)
	}); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return f, nil
}

func (s *Store) download(ctx context.Context, id tile.Identity, path string) error {
	// A fetch that joined the singleflight late, or another process, may
	// already have materialized the tile.
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	url := s.baseURL + "/" + id.Object()
	s.log().Debug("fetching tile", "tile", id.Name(), "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: http %d fetching %s", ErrNetwork, resp.StatusCode, url)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	archive, err := s.saveArchive(resp.Body, dir, id)
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(archive); err != nil {
			s.log().Warn("removing tile archive", "path", archive, "error", err)
		}
	}()

	return s.extract(archive, path)
}

// saveArchive streams the response body to a temp file unique to this
// fetch, so concurrent downloads of different tiles never collide.
func (s *Store) saveArchive(body io.Reader, dir string, id tile.Identity) (string, error) {
	tmp, err := os.CreateTemp(dir, id.Name()+"-*.gz")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	return tmpPath, nil
}

// extract gunzips archive into a temp file beside path and renames it
// into place only on full success. The final path never holds a partial
// tile, so the existence check in Ensure can trust whatever it finds.
func (s *Store) extract(archive, path string) error {
	gz, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer gz.Close()

	dec, err := gzip.NewReader(gz)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer dec.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, dec); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// A concurrent fetch may have won the rename.
		if _, statErr := os.Stat(path); statErr == nil {
			_ = os.Remove(tmpPath)
			return nil
		}
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
