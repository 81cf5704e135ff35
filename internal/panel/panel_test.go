package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/stahnma/gh-repopanel/internal/github"
)

// fakeFetcher implements Fetcher for testing.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	fetchFn func(ctx context.Context, handle string) ([]github.Record, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, handle string) ([]github.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, handle)
	f.mu.Unlock()
	return f.fetchFn(ctx, handle)
}

func returning(records []github.Record) *fakeFetcher {
	return &fakeFetcher{
		fetchFn: func(_ context.Context, _ string) ([]github.Record, error) {
			return records, nil
		},
	}
}

func failing(err error) *fakeFetcher {
	return &fakeFetcher{
		fetchFn: func(_ context.Context, _ string) ([]github.Record, error) {
			return nil, err
		},
	}
}

type memPrefs struct{ last string }

func (m *memPrefs) SetLastHandle(h string) { m.last = h }

type recorderFunc func(ctx context.Context, handle string, records []github.Record) error

func (f recorderFunc) Record(ctx context.Context, handle string, records []github.Record) error {
	return f(ctx, handle, records)
}

var day = func(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func sampleRecords() []github.Record {
	return []github.Record{
		{Name: "alpha", Language: "Go", Stars: 5, UpdatedAt: day(2)},
		{Name: "beta", Stars: 20, UpdatedAt: day(3)},
		{Name: "gamma", Language: "Go", Stars: 1, UpdatedAt: day(1)},
		{Name: "delta", Language: "Rust", Stars: 7, UpdatedAt: day(4)},
	}
}

func names(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestLoad_EndToEnd(t *testing.T) {
	records := []github.Record{
		{Name: "a", Language: "Go", UpdatedAt: day(1)},
		{Name: "b", Language: "Go", UpdatedAt: day(2)},
		{Name: "c", UpdatedAt: day(3)},
		{Name: "archived", Language: "C", Archived: true, UpdatedAt: day(4)},
	}
	p := New(returning(records))

	if err := p.Load(context.Background(), "octocat"); err != nil {
		t.Fatal(err)
	}
	if len(p.cache) != 3 {
		t.Errorf("cache length = %d, want 3", len(p.cache))
	}
	v := p.Render()
	if len(v.Cards) != 3 {
		t.Errorf("rendered %d cards, want 3", len(v.Cards))
	}
	if v.Status != "Showing 3 repos for octocat." {
		t.Errorf("status = %q", v.Status)
	}
	for _, c := range v.Cards {
		if c.Name == "archived" {
			t.Error("archived record rendered")
		}
	}
}

func TestLoad_EmptyHandle(t *testing.T) {
	for _, handle := range []string{"", "   ", "\t\n"} {
		f := returning(sampleRecords())
		p := New(f)

		err := p.Load(context.Background(), handle)
		if KindOf(err) != KindValidation {
			t.Errorf("Load(%q): kind = %v, want validation", handle, KindOf(err))
		}
		if !errors.Is(err, ErrEmptyHandle) {
			t.Errorf("Load(%q): expected ErrEmptyHandle in chain", handle)
		}
		if len(f.calls) != 0 {
			t.Errorf("Load(%q) issued %d requests, want 0", handle, len(f.calls))
		}
		if got := p.Render().Error; got != MsgEmptyHandle {
			t.Errorf("error text = %q", got)
		}
	}
}

func TestLoad_TrimsHandle(t *testing.T) {
	f := returning(sampleRecords())
	prefs := &memPrefs{}
	p := New(f, WithPreferences(prefs))

	if err := p.Load(context.Background(), "  octocat \n"); err != nil {
		t.Fatal(err)
	}
	if f.calls[0] != "octocat" {
		t.Errorf("fetched %q, want trimmed handle", f.calls[0])
	}
	if prefs.last != "octocat" {
		t.Errorf("persisted %q, want octocat", prefs.last)
	}
}

func TestLoad_NotFoundKeepsCache(t *testing.T) {
	f := returning(sampleRecords())
	prefs := &memPrefs{}
	p := New(f, WithPreferences(prefs))
	if err := p.Load(context.Background(), "octocat"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.OnFacetChange("Go"); err != nil {
		t.Fatal(err)
	}
	before := append([]github.Record(nil), p.cache...)
	optionsBefore := p.Options()

	f.fetchFn = func(_ context.Context, _ string) ([]github.Record, error) {
		return nil, fmt.Errorf("%w: 404", github.ErrNotFound)
	}
	err := p.Load(context.Background(), "ghost")
	if KindOf(err) != KindNotFound {
		t.Fatalf("kind = %v, want not_found", KindOf(err))
	}
	if !errors.Is(err, github.ErrNotFound) {
		t.Error("expected github.ErrNotFound in chain")
	}

	if diff := cmp.Diff(before, p.cache); diff != "" {
		t.Errorf("cache changed on failure (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(optionsBefore, p.Options()); diff != "" {
		t.Errorf("options changed on failure (-before +after):\n%s", diff)
	}
	if prefs.last != "octocat" {
		t.Errorf("failed load persisted handle %q", prefs.last)
	}

	v := p.Render()
	if len(v.Cards) != 0 {
		t.Errorf("expected cleared card list, got %d cards", len(v.Cards))
	}
	if v.Empty {
		t.Error("empty indicator should be hidden on error")
	}
	if v.Status != StatusFailed || v.Error != MsgNotFound {
		t.Errorf("status=%q error=%q", v.Status, v.Error)
	}
	if v.Facet != "Go" || v.Handle != "octocat" {
		t.Errorf("facet=%q handle=%q should be untouched", v.Facet, v.Handle)
	}

	// A selection change re-renders from the kept cache.
	v, err = p.OnSortChange(SortStars)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"alpha", "gamma"}, names(v.Cards)); diff != "" {
		t.Errorf("cards after sort change (-want +got):\n%s", diff)
	}
}

func TestLoad_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		msg  string
	}{
		{"not found", fmt.Errorf("%w: x", github.ErrNotFound), KindNotFound, MsgNotFound},
		{"rate limited", fmt.Errorf("%w: x", github.ErrRateLimited), KindRateLimited, MsgRateLimited},
		{"bad status", fmt.Errorf("%w: HTTP 500", github.ErrUnavailable), KindService, MsgUnavailable},
		{"transport", errors.New("dial tcp: connection refused"), KindService, "dial tcp: connection refused"},
		{"empty message", errors.New(""), KindService, MsgFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(failing(tt.err))
			err := p.Load(context.Background(), "octocat")
			if KindOf(err) != tt.kind {
				t.Errorf("kind = %v, want %v", KindOf(err), tt.kind)
			}
			if err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", err.Error(), tt.msg)
			}
			if got := p.Render().Error; got != tt.msg {
				t.Errorf("view error = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestLoad_ResetsFacetKeepsSort(t *testing.T) {
	p := New(returning(sampleRecords()))
	ctx := context.Background()
	if err := p.Load(ctx, "octocat"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.OnFacetChange("Rust"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.OnSortChange(SortName); err != nil {
		t.Fatal(err)
	}

	if err := p.Load(ctx, "octocat"); err != nil {
		t.Fatal(err)
	}
	v := p.Render()
	if v.Facet != FacetAll {
		t.Errorf("facet = %q, want all after reload", v.Facet)
	}
	if v.Sort != SortName {
		t.Errorf("sort = %q, want name to survive reload", v.Sort)
	}
}

func TestLoad_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := &fakeFetcher{
		fetchFn: func(_ context.Context, handle string) ([]github.Record, error) {
			if handle == "slow" {
				close(started)
				<-release
				return []github.Record{{Name: "from-slow", UpdatedAt: day(1)}}, nil
			}
			return []github.Record{{Name: "from-fast", UpdatedAt: day(1)}}, nil
		},
	}
	p := New(f)
	ctx := context.Background()

	slowErr := make(chan error, 1)
	go func() { slowErr <- p.Load(ctx, "slow") }()
	<-started

	if err := p.Load(ctx, "fast"); err != nil {
		t.Fatal(err)
	}
	close(release)

	if err := <-slowErr; !errors.Is(err, ErrSuperseded) {
		t.Errorf("slow load returned %v, want ErrSuperseded", err)
	}
	v := p.Render()
	if v.Handle != "fast" {
		t.Errorf("handle = %q, want fast", v.Handle)
	}
	if diff := cmp.Diff([]string{"from-fast"}, names(v.Cards)); diff != "" {
		t.Errorf("cards (-want +got):\n%s", diff)
	}
}

func TestRender_LoadingState(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := &fakeFetcher{
		fetchFn: func(_ context.Context, _ string) ([]github.Record, error) {
			close(started)
			<-release
			return sampleRecords(), nil
		},
	}
	p := New(f)

	done := make(chan error, 1)
	go func() { done <- p.Load(context.Background(), "octocat") }()
	<-started

	v := p.Render()
	if !v.Loading || v.Status != StatusLoading {
		t.Errorf("loading=%v status=%q during fetch", v.Loading, v.Status)
	}
	if len(v.Cards) != 0 {
		t.Error("expected no cards while loading")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if p.Render().Loading {
		t.Error("still loading after completion")
	}
}

func TestLoad_RecorderFailureDoesNotFailLoad(t *testing.T) {
	var gotHandle string
	var gotCount int
	rec := recorderFunc(func(_ context.Context, handle string, records []github.Record) error {
		gotHandle, gotCount = handle, len(records)
		return errors.New("disk full")
	})
	p := New(returning(sampleRecords()), WithRecorder(rec))

	if err := p.Load(context.Background(), "octocat"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotHandle != "octocat" || gotCount != 4 {
		t.Errorf("recorder saw handle=%q count=%d", gotHandle, gotCount)
	}
}

func TestOnFacetChange(t *testing.T) {
	p := New(returning(sampleRecords()))
	if err := p.Load(context.Background(), "octocat"); err != nil {
		t.Fatal(err)
	}

	v, err := p.OnFacetChange("Go")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"alpha", "gamma"}, names(v.Cards)); diff != "" {
		t.Errorf("Go facet (-want +got):\n%s", diff)
	}

	v, err = p.OnFacetChange(FacetOther)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"beta"}, names(v.Cards)); diff != "" {
		t.Errorf("Other facet (-want +got):\n%s", diff)
	}

	if _, err := p.OnFacetChange("COBOL"); !errors.Is(err, ErrUnknownFacet) {
		t.Errorf("got %v, want ErrUnknownFacet", err)
	}
	if p.Render().Facet != FacetOther {
		t.Error("rejected facet should not change selection")
	}
}

func TestOnSortChange_Unknown(t *testing.T) {
	p := New(returning(sampleRecords()))
	if _, err := p.OnSortChange("forks"); !errors.Is(err, ErrUnknownSort) {
		t.Errorf("got %v, want ErrUnknownSort", err)
	}
	if p.Render().Sort != SortUpdated {
		t.Error("default sort should be kept")
	}
}

func TestOnSubmit(t *testing.T) {
	p := New(returning(sampleRecords()))

	v, err := p.OnSubmit(context.Background(), "octocat")
	if err != nil {
		t.Fatal(err)
	}
	if v.Handle != "octocat" || len(v.Cards) != 4 {
		t.Errorf("view handle=%q cards=%d", v.Handle, len(v.Cards))
	}

	v, err = p.OnSubmit(context.Background(), "")
	if KindOf(err) != KindValidation {
		t.Errorf("kind = %v, want validation", KindOf(err))
	}
	if v.Error != MsgEmptyHandle {
		t.Errorf("view error = %q", v.Error)
	}
}

func TestRender_BeforeFirstLoad(t *testing.T) {
	p := New(returning(nil))
	v := p.Render()
	if v.Empty || v.Status != "" || len(v.Cards) != 0 {
		t.Errorf("unexpected initial view: %+v", v)
	}
	if diff := cmp.Diff([]string{FacetAll}, v.Options); diff != "" {
		t.Errorf("initial options (-want +got):\n%s", diff)
	}
}

func TestRender_EmptyListing(t *testing.T) {
	p := New(returning(nil))
	if err := p.Load(context.Background(), "newbie"); err != nil {
		t.Fatal(err)
	}
	v := p.Render()
	if !v.Empty {
		t.Error("expected empty indicator")
	}
	if v.Status != "Showing 0 repos for newbie." {
		t.Errorf("status = %q", v.Status)
	}
}

func TestRender_AllArchivedReportsZero(t *testing.T) {
	p := New(returning([]github.Record{{Name: "old", Archived: true, UpdatedAt: day(1)}}))
	if err := p.Load(context.Background(), "retired"); err != nil {
		t.Fatal(err)
	}
	if v := p.Render(); !v.Empty || v.Status != "Showing 0 repos for retired." {
		t.Errorf("view = %+v", v)
	}
}

func TestRender_FacetFiltersToEmpty(t *testing.T) {
	p := New(returning(sampleRecords()))
	if err := p.Load(context.Background(), "octocat"); err != nil {
		t.Fatal(err)
	}
	v, err := p.OnFacetChange("Rust")
	if err != nil {
		t.Fatal(err)
	}
	if v.Empty || len(v.Cards) != 1 {
		t.Fatalf("Rust facet = %+v", v)
	}

	p.mu.Lock()
	p.cache = p.cache[:1] // alpha only
	p.mu.Unlock()
	v = p.Render()
	if !v.Empty || len(v.Cards) != 0 {
		t.Fatalf("expected no cards, got %+v", v.Cards)
	}
	if v.Status != "No repos match the filters for octocat." {
		t.Errorf("status = %q", v.Status)
	}
}

func TestLoad_CapsAtPageSize(t *testing.T) {
	records := make([]github.Record, github.PageSize+5)
	for i := range records {
		records[i] = github.Record{Name: fmt.Sprintf("repo-%02d", i), UpdatedAt: day(1)}
	}
	records[github.PageSize+1].Archived = true

	p := New(returning(records))
	if err := p.Load(context.Background(), "prolific"); err != nil {
		t.Fatal(err)
	}
	v := p.Render()
	if len(v.Cards) != github.PageSize {
		t.Fatalf("got %d cards, want %d", len(v.Cards), github.PageSize)
	}
	for _, c := range v.Cards {
		if c.Name >= fmt.Sprintf("repo-%02d", github.PageSize) {
			t.Errorf("card %q is beyond the first page", c.Name)
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	p := New(returning(sampleRecords()))
	if err := p.Load(context.Background(), "octocat"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.OnSortChange(SortStars); err != nil {
		t.Fatal(err)
	}
	first := p.Render()
	second := p.Render()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Render not idempotent (-first +second):\n%s", diff)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindValidation:  "validation",
		KindNotFound:    "not_found",
		KindRateLimited: "rate_limited",
		KindService:     "service",
		Kind(0):         "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("KindOf(non-LoadError) should be 0")
	}
}
