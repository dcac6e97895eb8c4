// Package earthel answers "what is the ground elevation at (lat, lon)?"
// using SRTM elevation tiles in the Skadi HGT layout.
//
// A coordinate is mapped to its 1°×1° tile, the tile is downloaded from a
// public mirror and cached on disk on first access, and the elevation is
// decoded as the grid sample nearest the coordinate. There is no
// interpolation between samples and no eviction of cached tiles.
//
// # Quick Start
//
// Resolve an elevation with the shared default client:
//
//	elev, err := earthel.GetElevation(ctx, 45.833641, 6.864594)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Mont Blanc: %d m\n", elev)
//
// Services should construct their own [Client] with an explicit cache
// directory so the cache survives restarts:
//
//	c, err := earthel.NewClient(
//	    earthel.WithCacheDir("/var/cache/hgt"),
//	    earthel.WithLogger(logger),
//	)
//
// # Errors
//
// Failures are classified by sentinel: [ErrNetwork] for fetch failures,
// [ErrIO] for local filesystem failures, [ErrDecode] for malformed
// archives, [ErrInvalidResolution] for tiles whose size matches no known
// grid layout, and [ErrTruncated] for tiles that end before the requested
// sample. Test with errors.Is; nothing is retried internally.
package earthel
