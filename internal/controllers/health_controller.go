package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hnblocks/internal/refresh"
	"hnblocks/internal/timeblocks"
)

type HealthController struct {
	scheduler refresh.SchedulerInterface
	startTime time.Time
	now       func() time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	LatestBlock   int64   `json:"latest_block"`
	LastRefresh   string  `json:"last_refresh,omitempty"`
	RefreshAge    float64 `json:"refresh_age_seconds,omitempty"`
}

// Health reports liveness plus how fresh the recent blocks are.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	now := hc.now()
	uptime := now.Sub(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		LatestBlock:   timeblocks.Latest(now).Unix(),
	}
	if last := hc.scheduler.LastRefresh(); !last.IsZero() {
		resp.LastRefresh = last.UTC().Format(time.RFC3339)
		resp.RefreshAge = now.Sub(last).Seconds()
	}
	writeJSON(w, http.StatusOK, resp)
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%dh%dm%ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

func NewHealthController(scheduler refresh.SchedulerInterface) *HealthController {
	return &HealthController{
		scheduler: scheduler,
		startTime: time.Now(),
		now:       time.Now,
	}
}
