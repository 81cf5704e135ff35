package github

import (
	"context"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v68/github"
)

// mockClient implements Client for testing.
type mockClient struct {
	listUserReposFn func(ctx context.Context, user string, opts *gh.RepositoryListByUserOptions) ([]*gh.Repository, *gh.Response, error)
}

func (m *mockClient) ListUserRepos(ctx context.Context, user string, opts *gh.RepositoryListByUserOptions) ([]*gh.Repository, *gh.Response, error) {
	return m.listUserReposFn(ctx, user, opts)
}

// okResponse returns a *gh.Response that signals success.
func okResponse() *gh.Response {
	return &gh.Response{
		Response: &http.Response{StatusCode: 200},
	}
}

// statusResponse returns a *gh.Response carrying the given status code.
func statusResponse(code int) *gh.Response {
	return &gh.Response{
		Response: &http.Response{StatusCode: code},
	}
}

// makeRepo builds a Repository with the fields the listing uses.
func makeRepo(name, language string, stars int, archived bool) *gh.Repository {
	repo := &gh.Repository{
		Name:            gh.Ptr(name),
		HTMLURL:         gh.Ptr("https://github.com/octocat/" + name),
		StargazersCount: gh.Ptr(stars),
		Archived:        gh.Ptr(archived),
		Private:         gh.Ptr(false),
		UpdatedAt:       &gh.Timestamp{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	if language != "" {
		repo.Language = gh.Ptr(language)
	}
	return repo
}

// httpResponse builds an *http.Response with a request attached, as go-github
// error types format the request method and URL.
func httpResponse(code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Request: &http.Request{
			Method: http.MethodGet,
			URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/users/octocat/repos"},
		},
	}
}
