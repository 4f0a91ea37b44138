package domain

// Preferences is the job seeker's stated profile used for match scoring.
type Preferences struct {
	RequiredSkills     []string `json:"requiredSkills" yaml:"required_skills"`
	RemoteOnly         bool     `json:"remoteOnly" yaml:"remote_only"`
	PreferredCompanies []string `json:"preferredCompanies" yaml:"preferred_companies"`

	// MinScore is the lowest match score worth keeping. Zero means
	// "use the engine default".
	MinScore int `json:"minScore" yaml:"min_score"`
}
