// Package projects filters, searches and sorts the portfolio project catalog.
package projects

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Category value matching every project.
const CategoryAll = "all"

// Sort keys.
const (
	SortNewest     = "newest"
	SortTitle      = "title"
	SortComplexity = "complexity"
)

// SortKeys lists the accepted sort keys, default first.
var SortKeys = []string{SortNewest, SortTitle, SortComplexity}

var complexityRank = map[string]int{
	"advanced":     3,
	"intermediate": 2,
	"beginner":     1,
}

// Project is one catalog entry.
type Project struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Level    string   `json:"level"`
	Year     int      `json:"year"`
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
}

// Query selects and orders projects. Zero values mean "all", no search and newest first.
type Query struct {
	Category string
	Search   string
	Sort     string
}

// Catalog is an immutable list of projects.
type Catalog struct {
	projects []Project
}

// NewCatalog returns a catalog of a copy of projects.
func NewCatalog(projects []Project) *Catalog {
	return &Catalog{projects: append([]Project(nil), projects...)}
}

// Parse decodes a JSON array of projects.
func Parse(data []byte) (*Catalog, error) {
	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parsing project catalog: %w", err)
	}
	return NewCatalog(projects), nil
}

// Len returns the number of projects in the catalog.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.projects {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Find returns the projects matching q, ordered by q.Sort.
func (c *Catalog) Find(q Query) ([]Project, error) {
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	if !ValidSort(q.Sort) {
		return nil, fmt.Errorf("unknown project sort %q", q.Sort)
	}
	category := q.Category
	if category == "" {
		category = CategoryAll
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	matches := make([]Project, 0, len(c.projects))
	for _, p := range c.projects {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(searchText(p), needle) {
			continue
		}
		matches = append(matches, p)
	}

	switch q.Sort {
	case SortTitle:
		col := collate.New(language.English)
		sort.SliceStable(matches, func(i, j int) bool {
			return col.CompareString(matches[i].Title, matches[j].Title) < 0
		})
	case SortComplexity:
		sort.SliceStable(matches, func(i, j int) bool {
			return complexityRank[matches[i].Level] > complexityRank[matches[j].Level]
		})
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Year > matches[j].Year
		})
	}
	return matches, nil
}

// ValidSort reports whether key is an accepted project sort key.
func ValidSort(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

func searchText(p Project) string {
	parts := []string{p.Title, p.Summary, p.Category, p.Level}
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
