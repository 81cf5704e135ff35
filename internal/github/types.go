package github

import (
	"time"

	gh "github.com/google/go-github/v68/github"
)

// Record is a repository as listed by GitHub. Empty Language and Description
// mean the upstream value was null; a zero UpdatedAt means it was missing.
type Record struct {
	Name        string    `json:"name"`
	URL         string    `json:"html_url"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stargazers_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Archived    bool      `json:"archived"`
	Private     bool      `json:"private"`
	Description string    `json:"description,omitempty"`
}

// HasLanguage reports whether GitHub detected a language for the repository.
func (r Record) HasLanguage() bool {
	return r.Language != ""
}

// FromGitHub converts a go-github repository into a Record.
func FromGitHub(repo *gh.Repository) Record {
	return Record{
		Name:        repo.GetName(),
		URL:         repo.GetHTMLURL(),
		Language:    repo.GetLanguage(),
		Stars:       repo.GetStargazersCount(),
		UpdatedAt:   repo.GetUpdatedAt().Time,
		Archived:    repo.GetArchived(),
		Private:     repo.GetPrivate(),
		Description: repo.GetDescription(),
	}
}
