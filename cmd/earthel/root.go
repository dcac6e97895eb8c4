package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "earthel",
	Short: "Ground elevation lookups from SRTM tiles",
	Long: `Earthel resolves ground elevations from SRTM "Skadi" elevation tiles.

Tiles are downloaded from a public mirror on first access and cached on
disk, so repeated lookups in the same one-degree cell never touch the
network again.

Configuration can be set via environment variables or command-line flags.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("cache-dir", "c", "", "Cache directory for HGT tiles (default: $TMPDIR/hgt)")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL of the Skadi tile mirror")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Tile download timeout (default 30s)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log tile fetches to stderr")
}
