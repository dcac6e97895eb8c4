// Package api exposes elevation lookups over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Resolver resolves ground elevations; satisfied by *earthel.Client.
type Resolver interface {
	Elevation(ctx context.Context, lat, lon float64) (int16, error)
}

// Server serves elevation lookups.
type Server struct {
	Resolver Resolver
	Timeout  time.Duration // per-request budget; defaults to 30s
}

// Routes returns a mux with all endpoints registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/elevation", s.HandleElevation)
	mux.HandleFunc("/healthz", s.HandleHealth)
	return mux
}

// HandleElevation answers GET /elevation?lat=..&lon=.. with a JSON body.
func (s *Server) HandleElevation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		http.Error(w, "invalid lat", http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		http.Error(w, "invalid lon", http.StatusBadRequest)
		return
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	elev, err := s.Resolver.Elevation(ctx, lat, lon)
	if err != nil {
		http.Error(w, "elevation lookup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"lat":       lat,
		"lon":       lon,
		"elevation": elev,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleHealth answers liveness probes.
func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
