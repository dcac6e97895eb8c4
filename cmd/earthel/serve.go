package main

import (
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnicod/earthel/internal/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the elevation HTTP API",
	Long: `Run an HTTP server exposing elevation lookups.

Endpoints:
  GET /elevation?lat=..&lon=..   elevation at a coordinate, as JSON
  GET /healthz                   liveness probe

Example:
  earthel serve --listen :8080 --cache-dir /var/cache/hgt`,
	Run: func(cmd *cobra.Command, args []string) {
		listen, _ := cmd.Flags().GetString("listen")

		client, err := newClient(cmd)
		if err != nil {
			log.Fatalf("Failed to create client: %v", err)
		}

		server := &api.Server{Resolver: client}
		httpServer := &http.Server{
			Addr:              listen,
			Handler:           server.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		log.Printf("Listening on %s (cache: %s)", listen, client.CacheDir())
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", ":8080", "Listen address")
}
