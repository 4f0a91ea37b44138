package followup

import (
	"log"
	"time"

	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/tracker"
)

// SweepStatus mirrors the last sweep for the HTTP status endpoint. Stored
// in an atomic.Value by the owner.
type SweepStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastDue   int    `json:"last_due"`
	Running   bool   `json:"running"`
}

// Item is one surfaced follow-up: the due entry plus its rendered email.
type Item struct {
	tracker.Due
	Email Email `json:"email"`
}

// Sweep runs one follow-up pass: collect everything due now, log a
// follow-up against each application, and publish an event per item. It
// does not refresh contact times, so an application stays due until real
// contact happens; the follow-up count tells callers how often it has
// already been nudged.
func Sweep(trk *tracker.Tracker, hub *events.Hub, reqID string, now time.Time) []Item {
	due := trk.DueFollowUps(now)

	items := make([]Item, 0, len(due))
	for _, d := range due {
		app, err := trk.RecordFollowUp(d.Application.ID, d.Action, now)
		if err != nil {
			// the application vanished between snapshot and record; skip
			log.Printf("[sweep] record id=%d: %v", d.Application.ID, err)
			continue
		}
		d.Application = app

		items = append(items, Item{Due: d, Email: RenderEmail(d.Action, app)})

		if hub != nil {
			hub.Publish(events.MakeEvent(reqID, events.TypeFollowUpDue, 1, map[string]any{
				"id":               app.ID,
				"company":          app.Company,
				"title":            app.Title,
				"daysSinceContact": d.DaysSince,
				"action":           d.Action,
			}))
		}
	}
	return items
}

// Preview is the read-only half of Sweep: the due list with rendered
// emails, nothing recorded and nothing published.
func Preview(trk *tracker.Tracker, now time.Time) []Item {
	due := trk.DueFollowUps(now)
	items := make([]Item, 0, len(due))
	for _, d := range due {
		items = append(items, Item{Due: d, Email: RenderEmail(d.Action, d.Application)})
	}
	return items
}
