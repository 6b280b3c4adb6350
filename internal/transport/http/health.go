package httptransport

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"greenpass/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc returns nil when a dependency is healthy.
type CheckFunc func(ctx context.Context) error

// Health serves liveness and readiness probes.
type Health struct {
	startTime time.Time
	ready     func() bool
	timeout   time.Duration

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewHealth creates a health handler. ready reports whether the trust store
// can serve validations.
func NewHealth(ready func() bool) *Health {
	return &Health{
		startTime: time.Now(),
		ready:     ready,
		timeout:   3 * time.Second,
		checks:    make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a named dependency check to /healthz.
func (h *Health) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Checks        map[string]string `json:"checks,omitempty"`
}

// HandleHealth runs every registered check and returns 503 if any fails.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := maps.Clone(h.checks)
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:        "ok",
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        make(map[string]string, len(checks)),
	}
	status := http.StatusOK
	for name, check := range checks {
		if err := check(ctx); err != nil {
			resp.Checks[name] = "down: " + err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	httputil.WriteJSON(w, status, resp)
}

// ReadinessResponse is returned by /readyz.
type ReadinessResponse struct {
	Status string `json:"status"`
}

// HandleReady returns 200 once rules and signer certificates are loaded.
func (h *Health) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.ready == nil || !h.ready() {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, ReadinessResponse{Status: "not_ready"})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReadinessResponse{Status: "ready"})
}
