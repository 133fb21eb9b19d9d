package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker is implemented by infrastructure components that can report
// whether they are reachable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a plain function to HealthChecker.
type CheckerFunc struct {
	CheckerName string
	Fn          func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                    { return c.CheckerName }
func (c CheckerFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	startAt  time.Time
}

// NewHealthHandler builds the handler over the given dependency checkers.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
	}
}

type componentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz: the process is up, nothing else.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startAt).Round(time.Second).String(),
	})
}

// Readiness handles GET /readyz: every registered dependency must answer
// within the probe deadline or the service reports 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]componentCheck, len(h.checkers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	ready := true

	for _, checker := range h.checkers {
		wg.Add(1)
		go func(ck HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := ck.Check(ctx)
			check := componentCheck{
				Status:  "ok",
				Latency: time.Since(start).Round(time.Millisecond).String(),
			}
			if err != nil {
				check.Status = "down"
				check.Error = err.Error()
			}
			mu.Lock()
			components[ck.Name()] = check
			if err != nil {
				ready = false
			}
			mu.Unlock()
		}(checker)
	}
	wg.Wait()

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "components": components})
}
