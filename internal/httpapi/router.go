package httpapi

import (
	"net/http"
	"strings"
)

// NewMux wires every route over the injected deps and returns the raw mux
// so main() can wrap it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Applications
	ah := ApplicationsHandler{Tracker: d.Tracker, Hub: d.Hub}
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ah.List,
		http.MethodPost: ah.Add,
	}))
	mux.HandleFunc("/applications/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Stats,
	}))
	mux.HandleFunc("/applications/", func(w http.ResponseWriter, r *http.Request) {
		// expects /applications/{id}/{status|followups|notes}
		switch {
		case strings.HasSuffix(r.URL.Path, "/status"):
			methodMux(map[string]http.HandlerFunc{
				http.MethodPut: ah.UpdateStatus,
			})(w, r)
		case strings.HasSuffix(r.URL.Path, "/followups"):
			methodMux(map[string]http.HandlerFunc{
				http.MethodPost: ah.RecordFollowUp,
			})(w, r)
		case strings.HasSuffix(r.URL.Path, "/notes"):
			methodMux(map[string]http.HandlerFunc{
				http.MethodPost: ah.AddNote,
			})(w, r)
		default:
			WriteError(w, r, http.StatusNotFound, "not_found", "unknown applications route")
		}
	})

	// Follow-ups
	fh := FollowUpHandler{Tracker: d.Tracker, SweepStatus: d.SweepStatus, RunSweep: d.RunSweep}
	mux.HandleFunc("/followups/due", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Due,
	}))
	mux.HandleFunc("/sweep/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Status,
	}))
	mux.HandleFunc("/sweep/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Run,
	}))

	// Postings / matching
	ph := PostingsHandler{DB: d.DB, Engine: d.Engine, CfgVal: d.CfgVal, Hub: d.Hub}
	mux.HandleFunc("/postings", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.List,
	}))
	mux.HandleFunc("/postings/rank", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Rank,
	}))
	mux.HandleFunc("/seed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Seed,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// DB maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", dbh.Checkpoint)

	return mux
}
