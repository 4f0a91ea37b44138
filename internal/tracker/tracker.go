package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned when an application id does not exist.
var ErrNotFound = errors.New("application not found")

// FollowUp is one outbound nudge logged against an application.
type FollowUp struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
}

// Note is a dated free-text annotation.
type Note struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Application is a tracked job application. It is a plain serializable
// record: everything the store needs round-trips through these fields.
type Application struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastContact time.Time  `json:"lastContact"`
	FollowUps   []FollowUp `json:"followUps"`
	Notes       []Note     `json:"notes"`
}

// Due is one entry of a follow-up check: the application, how many whole
// days have passed since last contact, and the rule's action label.
type Due struct {
	Application Application `json:"application"`
	DaysSince   int         `json:"daysSinceContact"`
	Action      string      `json:"action"`
}

// Stats summarizes the tracked collection.
type Stats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	ResponseRate string         `json:"responseRate"`
}

// Tracker owns the application collection. All methods are safe for
// concurrent use; a single mutex serializes mutation so id assignment and
// field updates never interleave.
type Tracker struct {
	mu     sync.Mutex
	apps   []*Application
	byID   map[int64]*Application
	nextID int64
	rules  Rules

	now func() time.Time // injectable for tests
}

// New builds a tracker over the given rule table. nil rules means the
// defaults.
func New(rules Rules) *Tracker {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Tracker{
		byID:   make(map[int64]*Application),
		nextID: 1,
		rules:  rules,
		now:    time.Now,
	}
}

// Add starts tracking a new application. Empty status means Applied.
// Always succeeds; the returned record is a copy.
func (t *Tracker) Add(title, company string, status Status) Application {
	if status == "" {
		status = StatusApplied
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	app := &Application{
		ID:          t.nextID,
		Title:       title,
		Company:     company,
		Status:      status,
		CreatedAt:   now,
		LastContact: now,
	}
	t.nextID++
	t.apps = append(t.apps, app)
	t.byID[app.ID] = app
	return copyApp(app)
}

// UpdateStatus moves an application to a new status and resets its
// follow-up clock. Any transition is allowed, including out of a terminal
// status; real processes get reopened and corrected, so legality is the
// caller's business. A non-empty note is appended to the audit trail.
func (t *Tracker) UpdateStatus(id int64, status Status, note string) (Application, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	app, ok := t.byID[id]
	if !ok {
		return Application{}, fmt.Errorf("update status id=%d: %w", id, ErrNotFound)
	}

	now := t.now()
	app.Status = status
	app.LastContact = now
	if note != "" {
		app.Notes = append(app.Notes, Note{At: now, Text: note})
	}
	return copyApp(app), nil
}

// AddNote appends a dated note without touching status or contact time.
func (t *Tracker) AddNote(id int64, text string) (Application, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	app, ok := t.byID[id]
	if !ok {
		return Application{}, fmt.Errorf("add note id=%d: %w", id, ErrNotFound)
	}
	app.Notes = append(app.Notes, Note{At: t.now(), Text: text})
	return copyApp(app), nil
}

// RecordFollowUp logs an outbound follow-up. It deliberately does NOT
// refresh LastContact: a nudge is not inbound contact, so the application
// stays due until a real status update or contact refresh happens.
func (t *Tracker) RecordFollowUp(id int64, action string, now time.Time) (Application, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	app, ok := t.byID[id]
	if !ok {
		return Application{}, fmt.Errorf("record follow-up id=%d: %w", id, ErrNotFound)
	}
	app.FollowUps = append(app.FollowUps, FollowUp{At: now, Action: action})
	return copyApp(app), nil
}

// DueFollowUps reports every non-terminal application whose elapsed days
// since last contact meet its status rule (boundary inclusive). Output is
// in insertion order. Pure: mutates nothing.
func (t *Tracker) DueFollowUps(now time.Time) []Due {
	t.mu.Lock()
	defer t.mu.Unlock()

	var due []Due
	for _, app := range t.apps {
		if app.Status.Terminal() {
			continue
		}
		rule, ok := t.rules[app.Status]
		if !ok {
			continue
		}
		days := int(now.Sub(app.LastContact).Hours() / 24)
		if days >= rule.Days {
			due = append(due, Due{
				Application: copyApp(app),
				DaysSince:   days,
				Action:      rule.Action,
			})
		}
	}
	return due
}

// Rule exposes the follow-up rule for a status, if any.
func (t *Tracker) Rule(s Status) (Rule, bool) {
	r, ok := t.rules[s]
	return r, ok
}

// Stats summarizes the collection. ResponseRate is the percentage of
// applications that progressed past Applied; "0%" on an empty tracker.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := Stats{
		Total:        len(t.apps),
		ByStatus:     make(map[string]int),
		ResponseRate: "0%",
	}
	responded := 0
	for _, app := range t.apps {
		st.ByStatus[string(app.Status)]++
		if app.Status != StatusApplied {
			responded++
		}
	}
	if st.Total > 0 {
		st.ResponseRate = fmt.Sprintf("%.1f%%", float64(responded)/float64(st.Total)*100)
	}
	return st
}

// Get returns a copy of one application.
func (t *Tracker) Get(id int64) (Application, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	app, ok := t.byID[id]
	if !ok {
		return Application{}, fmt.Errorf("get id=%d: %w", id, ErrNotFound)
	}
	return copyApp(app), nil
}

// List returns copies of every application in insertion order.
func (t *Tracker) List() []Application {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Application, 0, len(t.apps))
	for _, app := range t.apps {
		out = append(out, copyApp(app))
	}
	return out
}

// Snapshot is the persistence contract: a deep copy of the collection in
// insertion order, safe to serialize while the tracker keeps running.
func (t *Tracker) Snapshot() []Application {
	return t.List()
}

// Restore replaces the collection with a previously snapshotted one and
// bumps the id counter past the highest restored id so new ids never
// collide with old ones.
func (t *Tracker) Restore(apps []Application) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.apps = t.apps[:0]
	t.byID = make(map[int64]*Application, len(apps))
	maxID := int64(0)
	for i := range apps {
		app := apps[i] // copy
		app.FollowUps = append([]FollowUp(nil), app.FollowUps...)
		app.Notes = append([]Note(nil), app.Notes...)
		p := &app
		t.apps = append(t.apps, p)
		t.byID[app.ID] = p
		if app.ID > maxID {
			maxID = app.ID
		}
	}
	if t.nextID <= maxID {
		t.nextID = maxID + 1
	}
}

func copyApp(a *Application) Application {
	out := *a
	out.FollowUps = append([]FollowUp(nil), a.FollowUps...)
	out.Notes = append([]Note(nil), a.Notes...)
	return out
}
