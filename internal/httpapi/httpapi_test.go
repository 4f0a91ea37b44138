package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/followup"
	"jobtrack-engine/internal/match"
	"jobtrack-engine/internal/store"
	"jobtrack-engine/internal/tracker"
)

func newTestServer(t *testing.T) (*httptest.Server, Deps) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	var cfgVal atomic.Value
	var cfg config.Config
	cfg.Preferences = domain.Preferences{
		RequiredSkills: []string{"python", "aws"},
		RemoteOnly:     true,
	}
	cfgVal.Store(cfg)

	var sweepStatus atomic.Value
	sweepStatus.Store(followup.SweepStatus{})

	trk := tracker.New(nil)
	hub := events.NewHub()

	d := Deps{
		Tracker:     trk,
		Engine:      match.NewEngine(match.Weights{}),
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		SweepStatus: &sweepStatus,
		RunSweep: func(ctx context.Context, reqID string) int {
			return len(followup.Sweep(trk, hub, reqID, time.Now()))
		},
	}

	srv := httptest.NewServer(Chain(NewMux(d), RequestID, Recover))
	t.Cleanup(srv.Close)
	return srv, d
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestApplications_AddAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/applications", map[string]string{
		"title": "ML Engineer", "company": "Google",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	app := decode[tracker.Application](t, resp)
	assert.Equal(t, int64(1), app.ID)
	assert.Equal(t, tracker.StatusApplied, app.Status)

	resp2, err := http.Get(srv.URL + "/applications")
	require.NoError(t, err)
	apps := decode[[]tracker.Application](t, resp2)
	require.Len(t, apps, 1)
	assert.Equal(t, "ML Engineer", apps[0].Title)
}

func TestApplications_AddValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/applications", map[string]string{"title": "X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/applications", map[string]string{
		"title": "X", "company": "Y", "status": "ghosted",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestApplications_UpdateStatus(t *testing.T) {
	srv, d := newTestServer(t)
	app := d.Tracker.Add("X", "Y", "")

	resp := putJSON(t, fmt.Sprintf("%s/applications/%d/status", srv.URL, app.ID), map[string]string{
		"status": "phone_screen", "note": "recruiter called",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[tracker.Application](t, resp)
	assert.Equal(t, tracker.StatusPhoneScreen, updated.Status)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, "recruiter called", updated.Notes[0].Text)
}

func TestApplications_UpdateStatus_NotFoundEnvelope(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := putJSON(t, srv.URL+"/applications/999/status", map[string]string{"status": "Offer"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	e := decode[APIError](t, resp)
	assert.Equal(t, "not_found", e.Error.Code)
	assert.NotEmpty(t, e.Error.RequestID)
}

func TestApplications_RecordFollowUpAndNotes(t *testing.T) {
	srv, d := newTestServer(t)
	app := d.Tracker.Add("X", "Y", "")

	resp := postJSON(t, fmt.Sprintf("%s/applications/%d/followups", srv.URL, app.ID), map[string]string{
		"action": "Send initial follow-up",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[tracker.Application](t, resp)
	require.Len(t, got.FollowUps, 1)

	resp = postJSON(t, fmt.Sprintf("%s/applications/%d/notes", srv.URL, app.ID), map[string]string{
		"text": "sent thank-you email",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[tracker.Application](t, resp)
	require.Len(t, got.Notes, 1)
}

func TestApplications_Stats(t *testing.T) {
	srv, d := newTestServer(t)
	d.Tracker.Add("A", "CoA", "")
	b := d.Tracker.Add("B", "CoB", "")
	_, err := d.Tracker.UpdateStatus(b.ID, tracker.StatusOffer, "")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/applications/stats")
	require.NoError(t, err)
	st := decode[tracker.Stats](t, resp)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, "50.0%", st.ResponseRate)
}

func TestFollowUps_Due(t *testing.T) {
	srv, d := newTestServer(t)

	old := time.Now().Add(-10 * 24 * time.Hour)
	d.Tracker.Restore([]tracker.Application{
		{ID: 1, Title: "A", Company: "CoA", Status: tracker.StatusApplied, CreatedAt: old, LastContact: old},
	})

	resp, err := http.Get(srv.URL + "/followups/due")
	require.NoError(t, err)
	items := decode[[]followup.Item](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, "Send initial follow-up", items[0].Action)
	assert.NotEmpty(t, items[0].Email.Subject)

	// preview endpoint records nothing
	app, err := d.Tracker.Get(1)
	require.NoError(t, err)
	assert.Empty(t, app.FollowUps)
}

func TestPostings_SeedListRank(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/seed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	seeded := decode[map[string]any](t, resp)
	assert.Equal(t, float64(len(store.SamplePostings())), seeded["added"])

	resp2, err := http.Get(srv.URL + "/postings")
	require.NoError(t, err)
	postings := decode[[]domain.Posting](t, resp2)
	assert.Len(t, postings, len(store.SamplePostings()))

	// rank with no body: stored postings + configured preferences
	resp3 := postJSON(t, srv.URL+"/postings/rank", nil)
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	results := decode[[]match.Result](t, resp3)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestPostings_RankWithExplicitBody(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]any{
		"postings": []domain.Posting{
			{Title: "Python Engineer", Company: "Amazon", Location: "Remote",
				Description: "AWS and Python required", Compensation: "$150k"},
			{Title: "Mason", Company: "Bricks Inc", Location: "Onsite"},
		},
		"preferences": domain.Preferences{
			RequiredSkills:     []string{"Python", "AWS"},
			RemoteOnly:         true,
			PreferredCompanies: []string{"Amazon"},
		},
	}

	resp := postJSON(t, srv.URL+"/postings/rank", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := decode[[]match.Result](t, resp)
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Score)
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/applications/stats", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	limiter := NewClientLimiter(1, 2)
	handler := limiter.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	limited := httptest.NewServer(handler)
	defer limited.Close()

	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		resp, err := http.Get(limited.URL)
		require.NoError(t, err)
		resp.Body.Close()
		codes[resp.StatusCode]++
	}
	assert.Positive(t, codes[http.StatusOK])
	assert.Positive(t, codes[http.StatusTooManyRequests])
}
