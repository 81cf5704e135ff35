package panel

import (
	"errors"

	"github.com/stahnma/gh-repopanel/internal/github"
)

// Kind classifies a failed load.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindRateLimited
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindService:
		return "service"
	}
	return "unknown"
}

// User-facing messages shown in the panel's error region.
const (
	MsgEmptyHandle = "Please enter a GitHub username."
	MsgNotFound    = "GitHub user not found."
	MsgRateLimited = "Rate limit reached. Please try again later."
	MsgUnavailable = "Unable to load repositories right now."
	MsgFallback    = "Unable to load repositories."
)

var (
	// ErrEmptyHandle is wrapped by the validation error for blank input.
	ErrEmptyHandle = errors.New("empty handle")

	// ErrSuperseded is returned by Load when a newer load was issued before
	// this one completed; its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer load")

	// ErrUnknownFacet and ErrUnknownSort reject selections outside the offered options.
	ErrUnknownFacet = errors.New("unknown language filter")
	ErrUnknownSort  = errors.New("unknown sort key")
)

// LoadError is returned by Load for every failure the user can see.
type LoadError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a *LoadError in err's chain, or 0.
func KindOf(err error) Kind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

func classify(err error) *LoadError {
	switch {
	case errors.Is(err, github.ErrNotFound):
		return &LoadError{Kind: KindNotFound, Message: MsgNotFound, Err: err}
	case errors.Is(err, github.ErrRateLimited):
		return &LoadError{Kind: KindRateLimited, Message: MsgRateLimited, Err: err}
	case errors.Is(err, github.ErrUnavailable):
		return &LoadError{Kind: KindService, Message: MsgUnavailable, Err: err}
	}
	msg := err.Error()
	if msg == "" {
		msg = MsgFallback
	}
	return &LoadError{Kind: KindService, Message: msg, Err: err}
}
