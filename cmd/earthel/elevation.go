package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/gnicod/earthel/hgt"
)

// elevationCmd represents the elevation command
var elevationCmd = &cobra.Command{
	Use:   "elevation",
	Short: "Get ground elevation at a location",
	Long: `Get ground elevation at a specific geographic coordinate.

Examples:
  earthel elevation --lat 45.833641 --lon 6.864594
  earthel elevation --lat 47.0592 --lon 5.7181 --cache-dir /var/cache/hgt

The command outputs the elevation in meters.`,
	Run: func(cmd *cobra.Command, args []string) {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")

		if lat < -90 || lat > 90 {
			log.Fatal("Latitude must be between -90 and 90")
		}
		if lon < -180 || lon > 180 {
			log.Fatal("Longitude must be between -180 and 180")
		}

		client, err := newClient(cmd)
		if err != nil {
			log.Fatalf("Failed to create client: %v", err)
		}

		elev, err := client.Elevation(context.Background(), lat, lon)
		if err != nil {
			log.Fatalf("Failed to resolve elevation: %v", err)
		}
		if elev == hgt.Void {
			log.Fatalf("No elevation data at (%v, %v)", lat, lon)
		}

		fmt.Printf("%d\n", elev)
	},
}

func init() {
	rootCmd.AddCommand(elevationCmd)

	elevationCmd.Flags().Float64("lat", 0, "Latitude in decimal degrees (required)")
	elevationCmd.Flags().Float64("lon", 0, "Longitude in decimal degrees (required)")
	_ = elevationCmd.MarkFlagRequired("lat")
	_ = elevationCmd.MarkFlagRequired("lon")
}
