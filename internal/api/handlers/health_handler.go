package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthHandler serves the liveness and info endpoints. It never touches the
// database.
type HealthHandler struct {
	projectName string
	apiPrefix   string
	startedAt   time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(projectName, apiPrefix string) *HealthHandler {
	return &HealthHandler{projectName: projectName, apiPrefix: apiPrefix, startedAt: time.Now()}
}

type healthResponse struct {
	Status        string      `json:"status"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	System        *systemInfo `json:"system,omitempty"`
}

type systemInfo struct {
	Hostname          string  `json:"hostname,omitempty"`
	HostUptimeSeconds uint64  `json:"host_uptime_seconds,omitempty"`
	MemoryUsedPercent float64 `json:"memory_used_percent,omitempty"`
	Goroutines        int     `json:"goroutines"`
}

// Root returns a short welcome message.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Welcome to %s. Resources are served under %s.", h.projectName, h.apiPrefix),
	})
}

// Health reports liveness plus best-effort host statistics.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	info := &systemInfo{Goroutines: runtime.NumGoroutine()}

	if hi, err := host.InfoWithContext(r.Context()); err == nil {
		info.Hostname = hi.Hostname
		info.HostUptimeSeconds = hi.Uptime
	} else {
		log.Debug().Err(err).Msg("Host info unavailable")
	}
	if vm, err := mem.VirtualMemoryWithContext(r.Context()); err == nil {
		info.MemoryUsedPercent = vm.UsedPercent
	} else {
		log.Debug().Err(err).Msg("Memory stats unavailable")
	}

	respondJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		System:        info,
	})
}
