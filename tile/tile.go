// Package tile maps geographic coordinates to SRTM tile identities.
//
// The world is divided into 1°×1° cells, each covered by one tile named
// after its southwest corner, e.g. N47E005.hgt for the cell spanning
// 47°–48°N, 5°–6°E.
package tile

import (
	"fmt"
	"math"
	"path/filepath"
)

// Identity names the 1°×1° tile covering a coordinate.
//
// An Identity is a pure value: two coordinates in the same cell always
// produce the same Identity, and no range validation is performed —
// out-of-range coordinates map to a well-defined (if nonexistent) tile.
type Identity struct {
	latBand   int
	lonBand   int
	latPrefix byte
	lonPrefix byte
}

// Locate returns the Identity of the tile covering (lat, lon).
//
// Bands are floor(abs(degrees)) with a hemisphere prefix from the sign of
// the original value, so -0.5° latitude falls in band S0, not S1, and a
// coordinate exactly on an integer degree belongs to the band it equals.
func Locate(lat, lon float64) Identity {
	id := Identity{
		latBand:   int(math.Floor(math.Abs(lat))),
		lonBand:   int(math.Floor(math.Abs(lon))),
		latPrefix: 'N',
		lonPrefix: 'E',
	}
	if lat < 0 {
		id.latPrefix = 'S'
	}
	if lon < 0 {
		id.lonPrefix = 'W'
	}
	return id
}

// Name returns the tile file name, e.g. "N47E005.hgt".
func (id Identity) Name() string {
	return fmt.Sprintf("%c%02d%c%03d.hgt", id.latPrefix, id.latBand, id.lonPrefix, id.lonBand)
}

// Folder returns the latitude-band directory name, e.g. "N47".
// Unlike Name, the band is not zero-padded.
func (id Identity) Folder() string {
	return fmt.Sprintf("%c%d", id.latPrefix, id.latBand)
}

// Path returns the canonical cache location of the tile under root.
func (id Identity) Path(root string) string {
	return filepath.Join(root, id.Folder(), id.Name())
}

// Object returns the remote object key of the compressed tile archive,
// relative to the mirror base URL.
func (id Identity) Object() string {
	return id.Folder() + "/" + id.Name() + ".gz"
}

func (id Identity) String() string {
	return id.Name()
}
