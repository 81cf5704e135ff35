package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// PageSize is the number of most recently updated repositories requested.
const PageSize = 20

// FetchRepositories lists the PageSize most recently updated repositories of
// user, dropping archived ones.
func FetchRepositories(ctx context.Context, client Client, user string) ([]Record, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: PageSize},
	}
	repos, resp, err := client.ListUserRepos(ctx, user, opts)
	if err != nil {
		return nil, classify(resp, err)
	}
	if resp != nil && resp.Response != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, classify(resp, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if len(repos) > PageSize {
		repos = repos[:PageSize]
	}
	records := make([]Record, 0, len(repos))
	for _, repo := range repos {
		if repo == nil || repo.GetArchived() {
			continue
		}
		records = append(records, FromGitHub(repo))
	}
	return records, nil
}

// Fetcher adapts a Client to the panel's single-method fetch dependency.
type Fetcher struct {
	Client Client
}

// Fetch implements panel.Fetcher.
func (f Fetcher) Fetch(ctx context.Context, handle string) ([]Record, error) {
	return FetchRepositories(ctx, f.Client, handle)
}
