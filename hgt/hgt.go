// Package hgt decodes the SRTM "Skadi" binary elevation format.
//
// A tile is a square grid of N×N big-endian signed 16-bit samples in
// meters, row-major, with row 0 the northernmost row and column 0 the
// westernmost column. The grid resolution N is not stored in the file;
// it is inferred from the total byte size.
package hgt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Grid resolutions distinguishable by file size.
const (
	// SRTM1 is the side length of a 1 arc-second tile.
	SRTM1 = 3601
	// SRTM3 is the side length of a 3 arc-second tile.
	SRTM3 = 1201
)

// Void is the sentinel sample marking missing data.
const Void int16 = -32768

const (
	srtm1Size = SRTM1 * SRTM1 * 2
	srtm3Size = SRTM3 * SRTM3 * 2
)

var (
	// ErrInvalidResolution is returned when a tile's byte size matches
	// neither known grid layout.
	ErrInvalidResolution = errors.New("unrecognized tile size")

	// ErrTruncated is returned when a tile ends before the requested sample.
	ErrTruncated = errors.New("truncated tile")
)

// Resolution infers the grid side length from a tile's byte size.
//
// Only the two standard layouts are accepted; any other size returns
// ErrInvalidResolution rather than guessing a default, so a corrupt or
// partial download is never decoded as plausible elevations.
func Resolution(size int64) (int, error) {
	switch size {
	case srtm1Size:
		return SRTM1, nil
	case srtm3Size:
		return SRTM3, nil
	}
	return 0, fmt.Errorf("%w: %d bytes", ErrInvalidResolution, size)
}

// Offset returns the byte offset of the sample nearest (lat, lon) within
// an n×n tile.
//
// The fractional degree is converted to whole arc-seconds in [0, 3600) and
// floored onto the grid; there is no interpolation. Row indices grow
// southward, so larger in-cell latitudes map to smaller rows.
func Offset(n int, lat, lon float64) int64 {
	latSeconds := int((lat - math.Floor(lat)) * 3600)
	lonSeconds := int((lon - math.Floor(lon)) * 3600)
	row := (n - 1) - latSeconds*(n-1)/3600
	col := lonSeconds * (n - 1) / 3600
	return int64(2 * (row*n + col))
}

// Sample reads the elevation in meters nearest (lat, lon) from an n×n tile.
func Sample(r io.ReadSeeker, n int, lat, lon float64) (int16, error) {
	off := Offset(n, lat, lon)
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek sample at %d: %w", off, err)
	}
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: no sample at offset %d", ErrTruncated, off)
		}
		return 0, fmt.Errorf("read sample at %d: %w", off, err)
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}
