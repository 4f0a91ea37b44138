package match

import (
	"sort"
	"strings"

	"jobtrack-engine/internal/domain"
)

// Weights is the additive point model. Zero values in a custom Weights
// fall back to the defaults via Engine construction, not here.
type Weights struct {
	Skill        int `json:"skill" yaml:"skill_points"`
	Remote       int `json:"remote" yaml:"remote_points"`
	Compensation int `json:"compensation" yaml:"compensation_points"`
	Company      int `json:"company" yaml:"company_points"`
	MinScore     int `json:"minScore" yaml:"min_score"`
}

// DefaultWeights is the stock point model: per matched skill, remote
// match, stated compensation, preferred company; keep at >= 50.
func DefaultWeights() Weights {
	return Weights{
		Skill:        20,
		Remote:       30,
		Compensation: 10,
		Company:      20,
		MinScore:     50,
	}
}

// Result pairs a posting with its match score. Transient: recomputed on
// every call, never stored.
type Result struct {
	Posting domain.Posting `json:"posting"`
	Score   int            `json:"score"`
}

// Engine is a stateless match scorer. Safe for any number of concurrent
// callers; it only reads its arguments.
type Engine struct {
	W Weights
}

// NewEngine builds an engine, defaulting any unset weights.
func NewEngine(w Weights) Engine {
	d := DefaultWeights()
	if w.Skill == 0 {
		w.Skill = d.Skill
	}
	if w.Remote == 0 {
		w.Remote = d.Remote
	}
	if w.Compensation == 0 {
		w.Compensation = d.Compensation
	}
	if w.Company == 0 {
		w.Company = d.Company
	}
	if w.MinScore == 0 {
		w.MinScore = d.MinScore
	}
	return Engine{W: w}
}

// Score computes the bounded 0..100 match score. Matching is
// case-insensitive substring search over free text; crude but it keeps
// recall high on unstructured descriptions.
func (e Engine) Score(p domain.Posting, prefs domain.Preferences) int {
	score := 0
	text := strings.ToLower(p.Title + " " + p.Description)

	for _, skill := range prefs.RequiredSkills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" {
			continue
		}
		if strings.Contains(text, s) {
			score += e.W.Skill
		}
	}

	if prefs.RemoteOnly && strings.Contains(strings.ToLower(p.Location), "remote") {
		score += e.W.Remote
	}

	if hasCompensation(p.Compensation) {
		score += e.W.Compensation
	}

	company := strings.ToLower(p.Company)
	for _, pref := range prefs.PreferredCompanies {
		c := strings.ToLower(strings.TrimSpace(pref))
		if c == "" {
			continue
		}
		if strings.Contains(company, c) {
			score += e.W.Company
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// FilterAndRank scores every posting, keeps those at or above the minimum
// score, and orders them descending. The sort is stable so equal scores
// keep their input order and identical input gives identical output.
func (e Engine) FilterAndRank(postings []domain.Posting, prefs domain.Preferences) []Result {
	min := prefs.MinScore
	if min == 0 {
		min = e.W.MinScore
	}

	var out []Result
	for _, p := range postings {
		score := e.Score(p, prefs)
		if score >= min {
			out = append(out, Result{Posting: p, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

var compensationPlaceholders = []string{"n/a", "unknown", "tbd"}

func hasCompensation(raw string) bool {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" || strings.Contains(c, "not specified") {
		return false
	}
	for _, ph := range compensationPlaceholders {
		if c == ph {
			return false
		}
	}
	return true
}
