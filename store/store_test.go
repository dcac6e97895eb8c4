package store

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/gnicod/earthel/tile"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// tileServer serves the given tile bodies, gzipped, keyed by object path
// (e.g. "/N47/N47E005.hgt.gz"), and counts requests.
func tileServer(t *testing.T, tiles map[string][]byte) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	archives := make(map[string][]byte, len(tiles))
	for path, body := range tiles {
		archives[path] = gzipBytes(t, body)
	}
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body, ok := archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestEnsureDownloadsAndCaches(t *testing.T) {
	t.Parallel()

	content := []byte("tile-bytes")
	srv, requests := tileServer(t, map[string][]byte{
		"/N47/N47E005.hgt.gz": content,
	})

	root := t.TempDir()
	s, err := New(root, WithBaseURL(srv.URL))
	require.NoError(t, err)

	id := tile.Locate(47.0592, 5.7181)
	f, err := s.Ensure(context.Background(), id)
	require.NoError(t, err)
	defer f.Close()

	got, err := os.ReadFile(id.Path(root))
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, int64(1), requests.Load())

	// Second call for the same cell is served from disk.
	f2, err := s.Ensure(context.Background(), id)
	require.NoError(t, err)
	defer f2.Close()
	assert.Equal(t, int64(1), requests.Load())
}

func TestEnsureTrustsExistingFile(t *testing.T) {
	t.Parallel()

	// A failing mirror must not matter when the tile is already cached.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	root := t.TempDir()
	id := tile.Locate(47.5, 5.5)
	require.NoError(t, os.MkdirAll(filepath.Dir(id.Path(root)), 0o755))
	require.NoError(t, os.WriteFile(id.Path(root), []byte("cached"), 0o644))

	s, err := New(root, WithBaseURL(srv.URL))
	require.NoError(t, err)

	f, err := s.Ensure(context.Background(), id)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 6)
	_, err = f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(buf))
}

func TestEnsureHTTPError(t *testing.T) {
	t.Parallel()

	srv, _ := tileServer(t, nil) // every path 404s

	root := t.TempDir()
	s, err := New(root, WithBaseURL(srv.URL))
	require.NoError(t, err)

	id := tile.Locate(47.5, 5.5)
	_, err = s.Ensure(context.Background(), id)
	require.ErrorIs(t, err, ErrNetwork)

	_, statErr := os.Stat(id.Path(root))
	assert.True(t, os.IsNotExist(statErr), "failed fetch must not leave a cache file")
}

func TestEnsureMalformedArchive(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("this is not gzip"))
	}))
	t.Cleanup(srv.Close)

	root := t.TempDir()
	s, err := New(root, WithBaseURL(srv.URL))
	require.NoError(t, err)

	id := tile.Locate(47.5, 5.5)
	_, err = s.Ensure(context.Background(), id)
	require.ErrorIs(t, err, ErrDecode)

	// Neither the final path nor any temp leftovers may remain.
	_, statErr := os.Stat(id.Path(root))
	assert.True(t, os.IsNotExist(statErr))
	leftovers, err := filepath.Glob(filepath.Join(root, id.Folder(), "*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestEnsureTruncatedArchive(t *testing.T) {
	t.Parallel()

	// Valid gzip header, body cut off mid-stream.
	full := gzipBytes(t, bytes.Repeat([]byte("elevation"), 1000))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(full[:len(full)/2])
	}))
	t.Cleanup(srv.Close)

	root := t.TempDir()
	s, err := New(root, WithBaseURL(srv.URL))
	require.NoError(t, err)

	id := tile.Locate(47.5, 5.5)
	_, err = s.Ensure(context.Background(), id)
	require.ErrorIs(t, err, ErrDecode)

	_, statErr := os.Stat(id.Path(root))
	assert.True(t, os.IsNotExist(statErr), "truncated fetch must not leave a cache file")
}

func TestEnsureConcurrentSingleFetch(t *testing.T) {
	t.Parallel()

	archive := gzipBytes(t, []byte("tile-bytes"))
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		time.Sleep(50 * time.Millisecond) // widen the race window
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	root := t.TempDir()
	s, err := New(root, WithBaseURL(srv.URL))
	require.NoError(t, err)

	id := tile.Locate(47.5, 5.5)
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			f, err := s.Ensure(context.Background(), id)
			if err != nil {
				return err
			}
			return f.Close()
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int64(1), requests.Load(), "concurrent misses must share one download")
}

func TestEnsureContextCanceled(t *testing.T) {
	t.Parallel()

	srv, _ := tileServer(t, map[string][]byte{
		"/N47/N47E005.hgt.gz": []byte("tile-bytes"),
	})

	s, err := New(t.TempDir(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Ensure(ctx, tile.Locate(47.0592, 5.7181))
	require.ErrorIs(t, err, ErrNetwork)
}

func TestNewRejectsEmptyRoot(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.Error(t, err)
}
