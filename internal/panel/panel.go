// Package panel holds the repository panel: it loads an account's repository
// listing, keeps it in memory and renders a filtered, sorted view of it.
//
// All state lives behind the Panel's methods. Load, OnSubmit, OnFacetChange
// and OnSortChange are the only mutation entry points, and each of them leaves
// the panel in a state that Render can present.
package panel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/stahnma/gh-repopanel/internal/github"
)

// Status texts.
const (
	StatusLoading = "Loading repositories..."
	StatusFailed  = "Could not load repositories."
)

// EmptyIndicator is shown in place of cards when none are visible.
const EmptyIndicator = "No repositories to show."

// Fetcher obtains the repository listing of an account.
type Fetcher interface {
	Fetch(ctx context.Context, handle string) ([]github.Record, error)
}

// Preferences persists the last successfully loaded handle.
type Preferences interface {
	SetLastHandle(handle string)
}

// Recorder is notified of every successful load.
type Recorder interface {
	Record(ctx context.Context, handle string, records []github.Record) error
}

// View is everything a surface needs to draw the panel.
type View struct {
	Handle  string   `json:"handle"`
	Facet   string   `json:"facet"`
	Sort    string   `json:"sort"`
	Options []string `json:"options"`
	Cards   []Card   `json:"cards"`
	Empty   bool     `json:"empty"`
	Loading bool     `json:"loading"`
	Status  string   `json:"status"`
	Error   string   `json:"error,omitempty"`
}

// Option configures a Panel.
type Option func(*Panel)

// WithPreferences persists the handle of each successful load.
func WithPreferences(p Preferences) Option {
	return func(pn *Panel) { pn.prefs = p }
}

// WithRecorder records each successful load.
func WithRecorder(r Recorder) Option {
	return func(pn *Panel) { pn.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(pn *Panel) {
		if l != nil {
			pn.logger = l
		}
	}
}

// Panel owns the cached listing and the current facet and sort selection.
type Panel struct {
	fetcher  Fetcher
	prefs    Preferences
	recorder Recorder
	logger   *zap.Logger

	mu      sync.Mutex
	cache   []github.Record
	handle  string
	facet   string
	sortKey string
	options []string
	errMsg  string
	cleared bool
	loading bool
	seq     uint64
}

// New creates an empty panel that loads listings through fetcher.
func New(fetcher Fetcher, opts ...Option) *Panel {
	p := &Panel{
		fetcher: fetcher,
		logger:  zap.NewNop(),
		facet:   FacetAll,
		sortKey: SortUpdated,
		options: []string{FacetAll},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load fetches the listing for handle and, on success, replaces the cache,
// rebuilds the facet options and resets the facet to "all". On failure the
// cache and options are kept but the card list is cleared until the next
// successful load or selection change.
//
// Each call takes a sequence number; if a newer Load is issued before this
// one completes, this call's outcome is discarded and ErrSuperseded returned.
func (p *Panel) Load(ctx context.Context, handle string) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		p.mu.Lock()
		p.errMsg = MsgEmptyHandle
		p.mu.Unlock()
		return &LoadError{Kind: KindValidation, Message: MsgEmptyHandle, Err: ErrEmptyHandle}
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.loading = true
	p.errMsg = ""
	p.mu.Unlock()

	p.logger.Debug("loading repositories", zap.String("handle", handle), zap.Uint64("seq", seq))
	records, err := p.fetcher.Fetch(ctx, handle)

	p.mu.Lock()
	if seq != p.seq {
		latest := p.seq
		p.mu.Unlock()
		p.logger.Debug("discarding stale response",
			zap.String("handle", handle), zap.Uint64("seq", seq), zap.Uint64("latest", latest))
		return fmt.Errorf("load %q: %w", handle, ErrSuperseded)
	}
	p.loading = false

	if err != nil {
		loadErr := classify(err)
		p.errMsg = loadErr.Message
		p.cleared = true
		p.mu.Unlock()
		p.logger.Debug("load failed",
			zap.String("handle", handle), zap.Stringer("kind", loadErr.Kind), zap.Error(err))
		return loadErr
	}

	p.cache = ingest(records)
	p.handle = handle
	p.options = FacetOptions(p.cache)
	p.facet = FacetAll
	p.cleared = false
	if p.prefs != nil {
		p.prefs.SetLastHandle(handle)
	}
	cached := append([]github.Record(nil), p.cache...)
	p.mu.Unlock()

	p.logger.Debug("loaded repositories", zap.String("handle", handle), zap.Int("count", len(cached)))
	if p.recorder != nil {
		if err := p.recorder.Record(ctx, handle, cached); err != nil {
			p.logger.Warn("recording load history failed", zap.String("handle", handle), zap.Error(err))
		}
	}
	return nil
}

// OnSubmit handles a submitted handle and returns the resulting view.
func (p *Panel) OnSubmit(ctx context.Context, handle string) (View, error) {
	err := p.Load(ctx, handle)
	return p.Render(), err
}

// OnFacetChange selects a language facet. value must be one of Options.
func (p *Panel) OnFacetChange(value string) (View, error) {
	p.mu.Lock()
	if !contains(p.options, value) {
		p.mu.Unlock()
		return p.Render(), fmt.Errorf("%w: %q", ErrUnknownFacet, value)
	}
	p.facet = value
	p.cleared = false
	p.mu.Unlock()
	return p.Render(), nil
}

// OnSortChange selects the sort key.
func (p *Panel) OnSortChange(value string) (View, error) {
	if !ValidSort(value) {
		return p.Render(), fmt.Errorf("%w: %q", ErrUnknownSort, value)
	}
	p.mu.Lock()
	p.sortKey = value
	p.cleared = false
	p.mu.Unlock()
	return p.Render(), nil
}

// Options returns the current facet options.
func (p *Panel) Options() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.options...)
}

// Handle returns the most recently loaded handle.
func (p *Panel) Handle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// Render returns the current view. It never modifies the cache.
func (p *Panel) Render() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := View{
		Handle:  p.handle,
		Facet:   p.facet,
		Sort:    p.sortKey,
		Options: append([]string(nil), p.options...),
		Cards:   []Card{},
		Error:   p.errMsg,
	}
	switch {
	case p.loading:
		v.Loading = true
		v.Status = StatusLoading
	case p.cleared:
		v.Status = StatusFailed
	case p.handle != "":
		v.Cards = Cards(p.cache, p.facet, p.sortKey)
		v.Empty = len(v.Cards) == 0
		if v.Empty && len(p.cache) > 0 {
			v.Status = fmt.Sprintf("No repos match the filters for %s.", p.handle)
		} else {
			v.Status = fmt.Sprintf("Showing %d repos for %s.", len(v.Cards), p.handle)
		}
	}
	return v
}

// ingest copies at most github.PageSize records, dropping archived ones.
func ingest(records []github.Record) []github.Record {
	if len(records) > github.PageSize {
		records = records[:github.PageSize]
	}
	out := make([]github.Record, 0, len(records))
	for _, r := range records {
		if !r.Archived {
			out = append(out, r)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
