package worker

import (
	"encoding/json"
	"net/http"
)

// HealthHandler serves the worker's /health endpoint with its job statistics.
func HealthHandler(runner *Runner, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(struct {
			Status  string `json:"status"`
			Version string `json:"version"`
			Stats   Stats  `json:"stats"`
		}{
			Status:  "healthy",
			Version: version,
			Stats:   runner.Stats(),
		})
	})
}
