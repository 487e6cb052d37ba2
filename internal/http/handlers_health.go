package httpx

import (
	"fmt"
	"net/http"
)

// healthHandler answers load balancer probes. Liveness only: it never
// touches the database or redis.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	// A gone client is not actionable here.
	_, _ = fmt.Fprint(w, `{"status":"ok"}`)
}
