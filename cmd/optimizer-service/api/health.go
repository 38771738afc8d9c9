package api

import (
	"net/http"
	"runtime"
	"time"
)

// HealthHandler reports liveness, grounded on the game server's
// HealthHandler but without a connected-users gauge (no persistent
// connection count for this request/response service).
type HealthHandler struct {
	startTime time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startTime: time.Now()}
}

type healthResponse struct {
	Status     string  `json:"status"`
	Uptime     string  `json:"uptime"`
	Goroutines int     `json:"goroutines"`
	MemoryMB   float64 `json:"memoryMb"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	respondJSON(w, http.StatusOK, healthResponse{
		Status:     "healthy",
		Uptime:     time.Since(h.startTime).String(),
		Goroutines: runtime.NumGoroutine(),
		MemoryMB:   float64(m.Alloc) / 1024 / 1024,
	})
}
