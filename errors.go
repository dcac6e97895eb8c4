package earthel

import (
	"github.com/gnicod/earthel/hgt"
	"github.com/gnicod/earthel/store"
)

// Errors re-exported from store.
var (
	// ErrNetwork is returned when fetching a tile archive fails, either at
	// the transport level or with a non-success HTTP status.
	ErrNetwork = store.ErrNetwork

	// ErrIO is returned when a local filesystem operation on the tile
	// cache fails.
	ErrIO = store.ErrIO

	// ErrDecode is returned when a downloaded tile archive is not valid gzip.
	ErrDecode = store.ErrDecode
)

// Errors re-exported from hgt.
var (
	// ErrInvalidResolution is returned when a tile's byte size matches
	// neither known grid layout.
	ErrInvalidResolution = hgt.ErrInvalidResolution

	// ErrTruncated is returned when a tile ends before the requested sample.
	ErrTruncated = hgt.ErrTruncated
)
