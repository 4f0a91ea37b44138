package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/match"
	"jobtrack-engine/internal/tracker"
)

// FollowUpRule is one row of the follow-up cadence table as it appears in
// YAML. Status is free-form here and parsed on conversion.
type FollowUpRule struct {
	Status string `yaml:"status" json:"status"`
	Days   int    `yaml:"days" json:"days"`
	Action string `yaml:"action" json:"action"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Polling struct {
		FollowUpCheckSeconds int `yaml:"follow_up_check_seconds" json:"follow_up_check_seconds"`
		SnapshotSeconds      int `yaml:"snapshot_seconds" json:"snapshot_seconds"`
	} `yaml:"polling" json:"polling"`

	FollowUp struct {
		Rules []FollowUpRule `yaml:"rules" json:"rules"`
	} `yaml:"follow_up" json:"follow_up"`

	Scoring match.Weights `yaml:"scoring" json:"scoring"`

	Preferences domain.Preferences `yaml:"preferences" json:"preferences"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// FollowUpRules converts the YAML rule table to the tracker's form. An
// empty table means the stock cadence; rows with unknown statuses were
// already rejected by validation.
func (c Config) FollowUpRules() tracker.Rules {
	if len(c.FollowUp.Rules) == 0 {
		return tracker.DefaultRules()
	}
	rules := make(tracker.Rules, len(c.FollowUp.Rules))
	for _, r := range c.FollowUp.Rules {
		s, err := tracker.ParseStatus(r.Status)
		if err != nil {
			continue
		}
		rules[s] = tracker.Rule{Days: r.Days, Action: r.Action}
	}
	return rules
}

// MatchWeights returns the scoring weights with defaults applied for any
// field left at zero.
func (c Config) MatchWeights() match.Weights {
	return match.NewEngine(c.Scoring).W
}

// Prefs returns the configured preference profile.
func (c Config) Prefs() domain.Preferences {
	return c.Preferences
}
