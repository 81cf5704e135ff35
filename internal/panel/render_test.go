package panel

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/stahnma/gh-repopanel/internal/github"
)

func TestCards_SortByStars(t *testing.T) {
	records := []github.Record{
		{Name: "five", Stars: 5},
		{Name: "twenty", Stars: 20},
		{Name: "one", Stars: 1},
	}
	got := Cards(records, FacetAll, SortStars)
	if diff := cmp.Diff([]string{"twenty", "five", "one"}, names(got)); diff != "" {
		t.Errorf("stars order (-want +got):\n%s", diff)
	}
}

func TestCards_SortByUpdated(t *testing.T) {
	records := []github.Record{
		{Name: "old", UpdatedAt: day(1)},
		{Name: "new", UpdatedAt: day(9)},
		{Name: "mid", UpdatedAt: day(5)},
	}
	got := Cards(records, FacetAll, SortUpdated)
	if diff := cmp.Diff([]string{"new", "mid", "old"}, names(got)); diff != "" {
		t.Errorf("updated order (-want +got):\n%s", diff)
	}
}

func TestCards_SortByNameCollates(t *testing.T) {
	records := []github.Record{
		{Name: "zeta"},
		{Name: "Alpha"},
		{Name: "beta"},
		{Name: "alpha-2"},
	}
	got := Cards(records, FacetAll, SortName)
	if diff := cmp.Diff([]string{"Alpha", "alpha-2", "beta", "zeta"}, names(got)); diff != "" {
		t.Errorf("name order (-want +got):\n%s", diff)
	}
}

func TestCards_StableForEqualKeys(t *testing.T) {
	records := []github.Record{
		{Name: "first", Stars: 3},
		{Name: "second", Stars: 3},
		{Name: "third", Stars: 3},
	}
	got := Cards(records, FacetAll, SortStars)
	if diff := cmp.Diff([]string{"first", "second", "third"}, names(got)); diff != "" {
		t.Errorf("equal keys reordered (-want +got):\n%s", diff)
	}
}

func TestCards_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := append([]github.Record(nil), records...)
	Cards(records, FacetAll, SortStars)
	Cards(records, "Go", SortName)
	if diff := cmp.Diff(before, records); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestCards_CountBounds(t *testing.T) {
	records := sampleRecords()
	for _, facet := range FacetOptions(records) {
		for _, key := range SortKeys {
			got := Cards(records, facet, key)
			if len(got) > len(records) {
				t.Errorf("facet=%s sort=%s: %d cards from %d records", facet, key, len(got), len(records))
			}
			if facet == FacetAll && len(got) != len(records) {
				t.Errorf("sort=%s: all facet returned %d of %d", key, len(got), len(records))
			}
		}
	}
}

func TestCards_PermutationOfFiltered(t *testing.T) {
	records := sampleRecords()
	base := Cards(records, "Go", SortUpdated)
	for _, key := range SortKeys {
		got := Cards(records, "Go", key)
		want := map[string]bool{}
		for _, c := range base {
			want[c.Name] = true
		}
		if len(got) != len(base) {
			t.Fatalf("sort=%s: %d cards, want %d", key, len(got), len(base))
		}
		for _, c := range got {
			if !want[c.Name] {
				t.Errorf("sort=%s: unexpected card %q", key, c.Name)
			}
			delete(want, c.Name)
		}
	}
}

func TestCards_Projection(t *testing.T) {
	records := []github.Record{
		{
			Name:        "panel",
			URL:         "https://github.com/octocat/panel",
			Language:    "Go",
			Stars:       12,
			UpdatedAt:   time.Date(2024, 3, 7, 18, 30, 0, 0, time.UTC),
			Private:     true,
			Description: "Repository panel",
		},
		{Name: "bare", URL: "https://github.com/octocat/bare"},
	}
	want := []Card{
		{
			Name:        "panel",
			URL:         "https://github.com/octocat/panel",
			Visibility:  "Private",
			Description: "Repository panel",
			Language:    "Go",
			Stars:       12,
			Updated:     "Mar 7, 2024",
		},
		{
			Name:        "bare",
			URL:         "https://github.com/octocat/bare",
			Visibility:  "Public",
			Description: "No description provided.",
			Language:    "Other",
			Stars:       0,
			Updated:     "Unknown",
		},
	}
	got := Cards(records, FacetAll, SortStars)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestFacetOptions(t *testing.T) {
	tests := []struct {
		name  string
		langs []string
		want  []string
	}{
		{"mixed", []string{"Go", "", "Go", "Rust"}, []string{"all", "Go", "Rust", "Other"}},
		{"none", nil, []string{"all"}},
		{"only missing", []string{"", ""}, []string{"all", "Other"}},
		{"collation order", []string{"TypeScript", "c", "Assembly", "Go"}, []string{"all", "Assembly", "c", "Go", "TypeScript"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []github.Record
			for i, l := range tt.langs {
				records = append(records, github.Record{Name: string(rune('a' + i)), Language: l})
			}
			if diff := cmp.Diff(tt.want, FacetOptions(records)); diff != "" {
				t.Errorf("FacetOptions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidSort(t *testing.T) {
	for _, k := range []string{"updated", "stars", "name"} {
		if !ValidSort(k) {
			t.Errorf("ValidSort(%q) = false", k)
		}
	}
	for _, k := range []string{"", "Stars", "forks"} {
		if ValidSort(k) {
			t.Errorf("ValidSort(%q) = true", k)
		}
	}
}
