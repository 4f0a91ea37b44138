package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"jobtrack-engine/internal/followup"
	"jobtrack-engine/internal/tracker"
)

type FollowUpHandler struct {
	Tracker     *tracker.Tracker
	SweepStatus *atomic.Value // followup.SweepStatus

	// RunSweep performs one sweep and returns how many items were due.
	RunSweep func(ctx context.Context, reqID string) int
}

// Due lists everything currently due, with rendered email templates.
// Read-only: nothing is recorded.
func (h FollowUpHandler) Due(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, followup.Preview(h.Tracker, timeNow()))
}

func (h FollowUpHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.SweepStatus.Load().(followup.SweepStatus)
	writeJSON(w, st)
}

func (h FollowUpHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.SweepStatus.Load().(followup.SweepStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.SweepStatus.Store(followup.SweepStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())
	go func() {
		due := h.RunSweep(context.Background(), reqID)

		now := time.Now().Format(time.RFC3339)
		next := h.SweepStatus.Load().(followup.SweepStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastOkAt = now
		next.LastDue = due
		h.SweepStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
