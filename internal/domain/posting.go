package domain

// Posting is a job posting as retrieved from any source. The engine only
// reads its fields; missing values are just empty strings.
type Posting struct {
	Company      string `json:"company"`
	Title        string `json:"title"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Compensation string `json:"compensation"`
	Source       string `json:"source"`
	PostedAt     string `json:"postedAt"`
	URL          string `json:"url"`
}
