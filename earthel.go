package earthel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gnicod/earthel/hgt"
	"github.com/gnicod/earthel/store"
	"github.com/gnicod/earthel/tile"
)

// Client resolves ground elevations from locally cached SRTM tiles.
//
// A Client is safe for concurrent use. Every resolution re-reads a single
// sample from the cached tile file; there is no in-memory sample cache.
type Client struct {
	store  *store.Store
	logger *slog.Logger

	cacheDir  string
	storeOpts []store.Option
}

// NewClient creates a Client with the given options.
//
// Without options, tiles are cached under DefaultCacheDir and fetched
// from the public Skadi mirror.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{cacheDir: DefaultCacheDir()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.logger != nil {
		c.storeOpts = append(c.storeOpts, store.WithLogger(c.logger))
	}
	st, err := store.New(c.cacheDir, c.storeOpts...)
	if err != nil {
		return nil, err
	}
	c.store = st
	return c, nil
}

// CacheDir returns the tile cache root this client reads and writes.
func (c *Client) CacheDir() string {
	return c.store.Root()
}

// Elevation returns the ground elevation in meters at (lat, lon).
//
// Latitude and longitude are decimal degrees. The result is the grid
// sample nearest the coordinate, not an interpolation; a value of
// hgt.Void means the source tile has no data there. The tile covering
// the coordinate is downloaded on first access and served from the
// local cache afterwards.
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (int16, error) {
	id := tile.Locate(lat, lon)

	f, err := c.store.Ensure(ctx, id)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	n, err := hgt.Resolution(fi.Size())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", id.Name(), err)
	}

	elev, err := hgt.Sample(f, n, lat, lon)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", id.Name(), err)
	}
	return elev, nil
}

var (
	defaultClient *Client
	defaultErr    error
	defaultOnce   sync.Once
)

// GetElevation resolves an elevation using a shared default client.
//
// The default client is created on first use with default options and
// kept for the life of the process.
func GetElevation(ctx context.Context, lat, lon float64) (int16, error) {
	defaultOnce.Do(func() {
		defaultClient, defaultErr = NewClient()
	})
	if defaultErr != nil {
		return 0, defaultErr
	}
	return defaultClient.Elevation(ctx, lat, lon)
}
