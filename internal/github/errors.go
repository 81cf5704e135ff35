package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

// Sentinel errors returned by FetchRepositories.
var (
	// ErrNotFound indicates the account does not exist (HTTP 404).
	ErrNotFound = errors.New("account not found")

	// ErrRateLimited indicates GitHub refused the request (HTTP 403 or a rate limit error).
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates any other non-success response.
	ErrUnavailable = errors.New("listing service unavailable")
)

// classify maps a failed call onto the sentinel errors. Transport and decode
// failures are returned unchanged.
func classify(resp *gh.Response, err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		status = errResp.Response.StatusCode
	}

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case status != 0 && (status < 200 || status > 299):
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, status)
	}
	return err
}
