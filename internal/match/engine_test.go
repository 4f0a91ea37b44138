package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/domain"
)

func TestScore_FullHouse(t *testing.T) {
	e := NewEngine(Weights{})

	prefs := domain.Preferences{
		RequiredSkills:     []string{"Python", "AWS"},
		RemoteOnly:         true,
		PreferredCompanies: []string{"Amazon"},
	}
	p := domain.Posting{
		Title:        "Python Engineer",
		Company:      "Amazon",
		Location:     "Remote",
		Description:  "AWS and Python required",
		Compensation: "$150k",
	}

	// 20 (Python) + 20 (AWS) + 30 (remote) + 10 (comp) + 20 (Amazon) = 100
	assert.Equal(t, 100, e.Score(p, prefs))
}

func TestScore_ClampedAt100(t *testing.T) {
	e := NewEngine(Weights{})

	prefs := domain.Preferences{
		RequiredSkills: []string{"go", "python", "aws", "kubernetes", "terraform", "linux"},
	}
	p := domain.Posting{
		Title:       "Platform Engineer",
		Description: "go python aws kubernetes terraform linux",
	}

	// six skills alone would be 120
	assert.Equal(t, 100, e.Score(p, prefs))
}

func TestScore_EmptyPreferences(t *testing.T) {
	e := NewEngine(Weights{})

	// nothing to match: only compensation can contribute
	assert.Equal(t, 0, e.Score(domain.Posting{Title: "X"}, domain.Preferences{}))
	assert.Equal(t, 10, e.Score(domain.Posting{Title: "X", Compensation: "$90k"}, domain.Preferences{}))
}

func TestScore_CaseInsensitiveSubstrings(t *testing.T) {
	e := NewEngine(Weights{})

	prefs := domain.Preferences{
		RequiredSkills:     []string{"PYTHON"},
		PreferredCompanies: []string{"amazon"},
	}
	p := domain.Posting{
		Title:   "Senior python Developer",
		Company: "Amazon Web Services",
	}

	assert.Equal(t, 40, e.Score(p, prefs))
}

func TestScore_RemoteRequiresRemoteOnly(t *testing.T) {
	e := NewEngine(Weights{})

	p := domain.Posting{Location: "Remote"}
	assert.Equal(t, 0, e.Score(p, domain.Preferences{RemoteOnly: false}))
	assert.Equal(t, 30, e.Score(p, domain.Preferences{RemoteOnly: true}))

	onsite := domain.Posting{Location: "New York, NY"}
	assert.Equal(t, 0, e.Score(onsite, domain.Preferences{RemoteOnly: true}))
}

func TestScore_CompensationPlaceholders(t *testing.T) {
	e := NewEngine(Weights{})

	for _, comp := range []string{"", "  ", "Not specified", "not specified", "N/A", "TBD", "unknown"} {
		assert.Equal(t, 0, e.Score(domain.Posting{Compensation: comp}, domain.Preferences{}), "comp=%q", comp)
	}
	assert.Equal(t, 10, e.Score(domain.Posting{Compensation: "$100k-$120k"}, domain.Preferences{}))
}

func TestScore_PreferredCompanyCountsOnce(t *testing.T) {
	e := NewEngine(Weights{})

	prefs := domain.Preferences{PreferredCompanies: []string{"Amazon", "amazon web"}}
	p := domain.Posting{Company: "Amazon Web Services"}

	// both entries match, points awarded once
	assert.Equal(t, 20, e.Score(p, prefs))
}

func TestFilterAndRank_FiltersAndSortsDescending(t *testing.T) {
	e := NewEngine(Weights{})

	prefs := domain.Preferences{
		RequiredSkills: []string{"python", "aws", "ml"},
		RemoteOnly:     true,
	}
	postings := []domain.Posting{
		{Title: "A", Description: "python", Location: "Onsite"},                            // 20: filtered out
		{Title: "B", Description: "python aws ml", Location: "Remote", Compensation: "$1"}, // 100
		{Title: "C", Description: "python aws", Location: "Remote"},                        // 70
		{Title: "D", Description: "python", Location: "Remote"},                            // 50
	}

	results := e.FilterAndRank(postings, prefs)
	require.Len(t, results, 3)
	assert.Equal(t, []int{100, 70, 50}, []int{results[0].Score, results[1].Score, results[2].Score})
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 50)
	}
}

func TestFilterAndRank_StableTieBreak(t *testing.T) {
	e := NewEngine(Weights{})

	prefs := domain.Preferences{RequiredSkills: []string{"go"}, RemoteOnly: true}
	postings := []domain.Posting{
		{Title: "First", Description: "go", Location: "Remote"},
		{Title: "Second", Description: "go", Location: "Remote"},
		{Title: "Third", Description: "go", Location: "Remote"},
	}

	results := e.FilterAndRank(postings, prefs)
	require.Len(t, results, 3)
	assert.Equal(t, "First", results[0].Posting.Title)
	assert.Equal(t, "Second", results[1].Posting.Title)
	assert.Equal(t, "Third", results[2].Posting.Title)

	// identical inputs give identical output
	assert.Equal(t, results, e.FilterAndRank(postings, prefs))
}

func TestFilterAndRank_CustomMinScore(t *testing.T) {
	e := NewEngine(Weights{})

	prefs := domain.Preferences{
		RequiredSkills: []string{"go"},
		MinScore:       20,
	}
	postings := []domain.Posting{
		{Title: "A", Description: "go"},   // 20
		{Title: "B", Description: "rust"}, // 0
	}

	results := e.FilterAndRank(postings, prefs)
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Posting.Title)
}

func TestFilterAndRank_DoesNotMutateInput(t *testing.T) {
	e := NewEngine(Weights{})

	postings := []domain.Posting{{Title: "A", Description: "go", Location: "Remote"}}
	orig := postings[0]
	_ = e.FilterAndRank(postings, domain.Preferences{RequiredSkills: []string{"go"}})
	assert.Equal(t, orig, postings[0])
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(Weights{})
	assert.Equal(t, DefaultWeights(), e.W)

	custom := NewEngine(Weights{Skill: 5})
	assert.Equal(t, 5, custom.W.Skill)
	assert.Equal(t, 30, custom.W.Remote)
	assert.Equal(t, 50, custom.W.MinScore)
}
