package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker reports whether a study is making progress
type HealthChecker struct {
	mu        sync.RWMutex
	lastPull  time.Time
	bestMean  float64
	running   bool
	stallTime time.Duration
	errors    []string
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	LastPull  time.Time `json:"last_pull"`
	BestMean  float64   `json:"best_mean"`
	Running   bool      `json:"running"`
	Uptime    string    `json:"uptime"`
	Errors    []string  `json:"errors,omitempty"`
}

// NewHealthChecker creates a checker that reports degraded once no progress
// was recorded for stallTime while a study is running
func NewHealthChecker(stallTime time.Duration) *HealthChecker {
	return &HealthChecker{
		stallTime: stallTime,
		errors:    make([]string, 0),
	}
}

// SetRunning marks the study as started or finished
func (h *HealthChecker) SetRunning(running bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = running
}

// RecordProgress notes that the study advanced and its current best mean
func (h *HealthChecker) RecordProgress(bestMean float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastPull = time.Now()
	h.bestMean = bestMean
}

// RecordError stores an error message for the health report
func (h *HealthChecker) RecordError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, err.Error())
}

// Status builds the current health status
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.running && h.stallTime > 0 && time.Since(h.lastPull) > h.stallTime {
		status = "degraded"
	}
	if len(h.errors) > 0 {
		status = "unhealthy"
	}

	errs := make([]string, len(h.errors))
	copy(errs, h.errors)

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		LastPull:  h.lastPull,
		BestMean:  h.bestMean,
		Running:   h.running,
		Uptime:    time.Since(startTime).String(),
		Errors:    errs,
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	switch health.Status {
	case "degraded":
		w.WriteHeader(http.StatusServiceUnavailable)
	case "unhealthy":
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(health)
}
