package config

import (
	"fmt"
	"strings"

	"jobtrack-engine/internal/tracker"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy of cfg plus everything wrong
// or suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Preferences.RequiredSkills = trimList(out.Preferences.RequiredSkills)
	out.Preferences.PreferredCompanies = trimList(out.Preferences.PreferredCompanies)

	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 0..65535")
	}

	if out.Polling.FollowUpCheckSeconds < 0 {
		res.addErr("polling.follow_up_check_seconds must be >= 0")
	} else if out.Polling.FollowUpCheckSeconds > 0 && out.Polling.FollowUpCheckSeconds < 10 {
		res.addWarn("polling.follow_up_check_seconds is very low (%d); the sweeper will spin.", out.Polling.FollowUpCheckSeconds)
	}
	if out.Polling.SnapshotSeconds < 0 {
		res.addErr("polling.snapshot_seconds must be >= 0")
	}

	// follow-up rule table
	seenStatus := map[tracker.Status]bool{}
	for i, r := range out.FollowUp.Rules {
		s, err := tracker.ParseStatus(r.Status)
		if err != nil {
			res.addErr("follow_up.rules[%d]: %v", i, err)
			continue
		}
		if s.Terminal() {
			res.addErr("follow_up.rules[%d]: %s is terminal and cannot have a follow-up rule", i, s)
		}
		if seenStatus[s] {
			res.addWarn("follow_up.rules[%d]: duplicate rule for %s; the last one wins", i, s)
		}
		seenStatus[s] = true
		if r.Days <= 0 {
			res.addErr("follow_up.rules[%d].days must be > 0", i)
		}
		if strings.TrimSpace(r.Action) == "" {
			res.addErr("follow_up.rules[%d].action is required", i)
		}
	}

	// scoring sanity
	if out.Scoring.Skill < 0 || out.Scoring.Remote < 0 || out.Scoring.Compensation < 0 || out.Scoring.Company < 0 {
		res.addErr("scoring weights must be >= 0")
	}
	if out.Scoring.MinScore < 0 || out.Scoring.MinScore > 100 {
		res.addErr("scoring.min_score must be 0..100")
	}
	if out.Preferences.MinScore < 0 || out.Preferences.MinScore > 100 {
		res.addErr("preferences.min_score must be 0..100")
	}

	if len(out.Preferences.RequiredSkills) == 0 {
		res.addWarn("preferences.required_skills is empty; most postings will score near zero.")
	}

	return out, res
}
