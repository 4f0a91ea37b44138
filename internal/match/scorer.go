package match

import "jobtrack-engine/internal/domain"

// Scorer scores a posting against a preference profile.
type Scorer interface {
	Score(p domain.Posting, prefs domain.Preferences) int
}
