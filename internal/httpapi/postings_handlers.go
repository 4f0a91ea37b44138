package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/match"
	"jobtrack-engine/internal/store"
)

type PostingsHandler struct {
	DB     *sql.DB
	Engine match.Engine
	CfgVal *atomic.Value // config.Config
	Hub    *events.Hub
}

type rankRequest struct {
	Postings    []domain.Posting    `json:"postings"`
	Preferences *domain.Preferences `json:"preferences"`
}

func (h PostingsHandler) List(w http.ResponseWriter, r *http.Request) {
	postings, err := store.ListPostings(r.Context(), h.DB, store.ListPostingsOpts{Limit: 500})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, postings)
}

// Rank scores and ranks postings against a preference profile. Both sides
// of the request are optional: missing postings fall back to the stored
// set, missing preferences to the configured profile.
func (h PostingsHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
	}

	postings := req.Postings
	if len(postings) == 0 {
		var err error
		postings, err = store.ListPostings(r.Context(), h.DB, store.ListPostingsOpts{Limit: 500})
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
			return
		}
	}

	prefs := h.CfgVal.Load().(config.Config).Prefs()
	if req.Preferences != nil {
		prefs = *req.Preferences
	}

	results := h.Engine.FilterAndRank(postings, prefs)
	writeJSON(w, results)
}

func (h PostingsHandler) Seed(w http.ResponseWriter, r *http.Request) {
	added, err := store.SeedPostings(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypePostingsSeeded, 1, map[string]any{"added": added}))
	writeJSON(w, map[string]any{"ok": true, "added": added})
}
