package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnicod/earthel"
)

// newClient builds an earthel.Client from command flags and environment
// variables. Flags take precedence over environment variables.
func newClient(cmd *cobra.Command) (*earthel.Client, error) {
	var opts []earthel.Option

	if dir := getConfigString(cmd, "cache-dir", "EARTHEL_CACHE_DIR"); dir != "" {
		opts = append(opts, earthel.WithCacheDir(dir))
	}
	if url := getConfigString(cmd, "base-url", "EARTHEL_BASE_URL"); url != "" {
		opts = append(opts, earthel.WithBaseURL(url))
	}
	if d := getConfigDuration(cmd, "timeout", "EARTHEL_TIMEOUT"); d > 0 {
		opts = append(opts, earthel.WithTimeout(d))
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, earthel.WithLogger(logger))
	}

	return earthel.NewClient(opts...)
}

func getConfigString(cmd *cobra.Command, flag, env string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func getConfigDuration(cmd *cobra.Command, flag, env string) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	if v := os.Getenv(env); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	v, _ := cmd.Flags().GetDuration(flag)
	return v
}
