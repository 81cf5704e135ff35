package panel

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stahnma/gh-repopanel/internal/github"
)

// Facet values with special meaning.
const (
	FacetAll   = "all"
	FacetOther = "Other"
)

// Sort keys.
const (
	SortUpdated = "updated"
	SortStars   = "stars"
	SortName    = "name"
)

// SortKeys lists the accepted sort keys, default first.
var SortKeys = []string{SortUpdated, SortStars, SortName}

const (
	noDescription = "No description provided."
	unknownDate   = "Unknown"
	dateLayout    = "Jan 2, 2006"
)

// Card is the render-ready projection of one repository.
type Card struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Visibility  string `json:"visibility"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	Updated     string `json:"updated"`
}

// Cards filters records by facet, orders them by sortKey and projects them
// into cards. It does not modify records.
func Cards(records []github.Record, facet, sortKey string) []Card {
	filtered := make([]github.Record, 0, len(records))
	for _, r := range records {
		if facet == FacetAll || languageOf(r) == facet {
			filtered = append(filtered, r)
		}
	}
	sortRecords(filtered, sortKey)

	cards := make([]Card, 0, len(filtered))
	for _, r := range filtered {
		cards = append(cards, toCard(r))
	}
	return cards
}

// FacetOptions returns "all", the distinct languages in collation order, and
// "Other" when any record has no language.
func FacetOptions(records []github.Record) []string {
	seen := make(map[string]bool)
	var langs []string
	hasOther := false
	for _, r := range records {
		if !r.HasLanguage() {
			hasOther = true
			continue
		}
		if !seen[r.Language] {
			seen[r.Language] = true
			langs = append(langs, r.Language)
		}
	}

	col := newCollator()
	sort.Slice(langs, func(i, j int) bool {
		if c := col.CompareString(langs[i], langs[j]); c != 0 {
			return c < 0
		}
		return langs[i] < langs[j]
	})

	options := make([]string, 0, len(langs)+2)
	options = append(options, FacetAll)
	options = append(options, langs...)
	if hasOther {
		options = append(options, FacetOther)
	}
	return options
}

// ValidSort reports whether key is an accepted sort key.
func ValidSort(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

func sortRecords(records []github.Record, sortKey string) {
	switch sortKey {
	case SortStars:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Stars > records[j].Stars
		})
	case SortName:
		col := newCollator()
		sort.SliceStable(records, func(i, j int) bool {
			return col.CompareString(records[i].Name, records[j].Name) < 0
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].UpdatedAt.After(records[j].UpdatedAt)
		})
	}
}

// newCollator returns a fresh collator; collate.Collator is not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

func languageOf(r github.Record) string {
	if r.HasLanguage() {
		return r.Language
	}
	return FacetOther
}

func toCard(r github.Record) Card {
	visibility := "Public"
	if r.Private {
		visibility = "Private"
	}
	desc := r.Description
	if desc == "" {
		desc = noDescription
	}
	return Card{
		Name:        r.Name,
		URL:         r.URL,
		Visibility:  visibility,
		Description: desc,
		Language:    languageOf(r),
		Stars:       r.Stars,
		Updated:     formatDate(r.UpdatedAt),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	return t.Format(dateLayout)
}
