package store

import (
	"context"
	"database/sql"

	"jobtrack-engine/internal/domain"
)

// SamplePostings is the demo dataset used when no real source is wired up.
func SamplePostings() []domain.Posting {
	return []domain.Posting{
		{
			Title:        "Senior Python AI Engineer",
			Company:      "Amazon Web Services",
			Location:     "Remote",
			Description:  "Build AI/ML solutions using Python, AWS, and machine learning frameworks",
			URL:          "https://amazon.jobs/example1",
			Compensation: "$150k-$200k",
			Source:       "LinkedIn",
			PostedAt:     "2024-01-10",
		},
		{
			Title:        "Machine Learning Engineer",
			Company:      "Google",
			Location:     "Remote",
			Description:  "Develop ML models with Python, TensorFlow, and cloud infrastructure",
			URL:          "https://careers.google.com/example2",
			Compensation: "$160k-$210k",
			Source:       "Indeed",
			PostedAt:     "2024-01-12",
		},
		{
			Title:        "AI Research Scientist",
			Company:      "Microsoft",
			Location:     "Remote",
			Description:  "Research and implement cutting-edge AI algorithms using Python and Azure",
			URL:          "https://careers.microsoft.com/example3",
			Compensation: "$170k-$220k",
			Source:       "Glassdoor",
			PostedAt:     "2024-01-11",
		},
		{
			Title:        "Full Stack Developer",
			Company:      "Startup Inc",
			Location:     "San Francisco, CA",
			Description:  "Build web applications with React and Node.js",
			URL:          "https://startup.com/jobs/example4",
			Compensation: "$120k-$150k",
			Source:       "AngelList",
			PostedAt:     "2024-01-13",
		},
		{
			Title:        "Python Backend Engineer",
			Company:      "TechCorp",
			Location:     "Remote",
			Description:  "Develop scalable backend services with Python, Django, and PostgreSQL",
			URL:          "https://techcorp.com/careers/example5",
			Compensation: "$130k-$170k",
			Source:       "LinkedIn",
			PostedAt:     "2024-01-09",
		},
		{
			Title:        "Data Scientist - AI/ML",
			Company:      "DataCo",
			Location:     "Remote",
			Description:  "Apply machine learning and AI to solve business problems with Python",
			URL:          "https://dataco.com/jobs/example6",
			Compensation: "$140k-$180k",
			Source:       "Indeed",
			PostedAt:     "2024-01-14",
		},
		{
			Title:        "DevOps Engineer",
			Company:      "CloudTech",
			Location:     "New York, NY",
			Description:  "Manage AWS infrastructure and CI/CD pipelines",
			URL:          "https://cloudtech.com/careers/example7",
			Compensation: "$135k-$175k",
			Source:       "LinkedIn",
			PostedAt:     "2024-01-08",
		},
		{
			Title:        "AI Engineer - NLP",
			Company:      "Amazon",
			Location:     "Remote",
			Description:  "Build NLP models using Python, transformers, and AWS services",
			URL:          "https://amazon.jobs/example8",
			Compensation: "$155k-$195k",
			Source:       "Amazon Jobs",
			PostedAt:     "2024-01-15",
		},
	}
}

// SeedPostings loads the sample dataset, skipping URLs already present.
func SeedPostings(ctx context.Context, db *sql.DB) (added int, err error) {
	for _, p := range SamplePostings() {
		ok, err := InsertPostingIgnore(db, p)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
