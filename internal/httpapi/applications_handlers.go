package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/tracker"
)

type ApplicationsHandler struct {
	Tracker *tracker.Tracker
	Hub     *events.Hub
}

type addApplicationRequest struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Status  string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type addNoteRequest struct {
	Text string `json:"text"`
}

type recordFollowUpRequest struct {
	Action string `json:"action"`
}

func (h ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Tracker.List())
}

func (h ApplicationsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_fields", "title and company are required")
		return
	}

	status := tracker.StatusApplied
	if req.Status != "" {
		s, err := tracker.ParseStatus(req.Status)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_status", err.Error())
			return
		}
		status = s
	}

	app := h.Tracker.Add(req.Title, req.Company, status)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationAdded, 1, map[string]any{"id": app.ID}))
	WriteJSON(w, http.StatusCreated, app)
}

// UpdateStatus handles PUT /applications/{id}/status.
func (h ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r, "/applications/", "/status")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	status, err := tracker.ParseStatus(req.Status)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	app, err := h.Tracker.UpdateStatus(id, status, req.Note)
	if err != nil {
		writeTrackerError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeStatusChanged, 1, map[string]any{
		"id":     app.ID,
		"status": string(app.Status),
	}))
	writeJSON(w, app)
}

// RecordFollowUp handles POST /applications/{id}/followups.
func (h ApplicationsHandler) RecordFollowUp(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r, "/applications/", "/followups")
	if !ok {
		return
	}

	var req recordFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(req.Action) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_fields", "action is required")
		return
	}

	app, err := h.Tracker.RecordFollowUp(id, req.Action, timeNow())
	if err != nil {
		writeTrackerError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeFollowUpRecorded, 1, map[string]any{
		"id":     app.ID,
		"action": req.Action,
	}))
	writeJSON(w, app)
}

// AddNote handles POST /applications/{id}/notes.
func (h ApplicationsHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r, "/applications/", "/notes")
	if !ok {
		return
	}

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_fields", "text is required")
		return
	}

	app, err := h.Tracker.AddNote(id, req.Text)
	if err != nil {
		writeTrackerError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeNoteAdded, 1, map[string]any{"id": app.ID}))
	writeJSON(w, app)
}

func (h ApplicationsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Tracker.Stats())
}

func writeTrackerError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, tracker.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}
	WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
}

// idFromPath extracts the numeric id between prefix and suffix, e.g.
// /applications/42/status -> 42.
func idFromPath(w http.ResponseWriter, r *http.Request, prefix, suffix string) (int64, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rest = strings.TrimSuffix(rest, suffix)
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid application id")
		return 0, false
	}
	return id, true
}
