package mapper

import (
	"strings"

	"github.com/rail-service/postman-gen/core/ir"
)

// Mapper assigns endpoints to categories by lowercased path substring,
// first match wins.
type Mapper struct {
	categories []Category
	fallback   *Category
}

// NewMapper builds a mapper over the given ordered categories. An empty list
// selects DefaultTaxonomy.
func NewMapper(categories []Category) *Mapper {
	if len(categories) == 0 {
		categories = DefaultTaxonomy()
	}
	clone := make([]Category, len(categories))
	copy(clone, categories)
	return &Mapper{
		categories: clone,
	}
}

// WithFallback routes endpoints that match no category into the given
// category instead of dropping them.
func (m *Mapper) WithFallback(category Category) *Mapper {
	m.fallback = &category
	return m
}

// Categories returns the taxonomy in matching order.
func (m *Mapper) Categories() []Category {
	clone := make([]Category, len(m.categories))
	copy(clone, m.categories)
	return clone
}

// Match reports the category claiming the path, if any.
func (m *Mapper) Match(path string) (Category, bool) {
	idx := m.match(path)
	if idx < 0 {
		return Category{}, false
	}
	return m.categories[idx], true
}

func (m *Mapper) match(path string) int {
	lowered := strings.ToLower(path)
	for idx, category := range m.categories {
		for _, substring := range category.Substrings {
			if strings.Contains(lowered, substring) {
				return idx
			}
		}
	}
	return -1
}

// Group is one populated category: the folder name, its glyph, and the
// endpoints it claimed in input order.
type Group struct {
	Name      string
	Glyph     string
	Endpoints []ir.Endpoint
}

// GroupStats counts classification outcomes across one Group call.
type GroupStats struct {
	Categorized int `json:"categorized"`
	Dropped     int `json:"dropped"`
}

// Group buckets endpoints by category. Output follows taxonomy order, empty
// categories are elided, and endpoints matching nothing are dropped unless a
// fallback is set.
func (m *Mapper) Group(endpoints []ir.Endpoint) ([]Group, GroupStats) {
	var stats GroupStats
	buckets := make([][]ir.Endpoint, len(m.categories))
	var fallbackBucket []ir.Endpoint

	for _, endpoint := range endpoints {
		idx := m.match(endpoint.Path)
		if idx < 0 {
			if m.fallback == nil {
				stats.Dropped++
				continue
			}
			fallbackBucket = append(fallbackBucket, endpoint)
			stats.Categorized++
			continue
		}
		buckets[idx] = append(buckets[idx], endpoint)
		stats.Categorized++
	}

	var groups []Group
	for idx, category := range m.categories {
		if len(buckets[idx]) == 0 {
			continue
		}
		groups = append(groups, Group{
			Name:      category.Name,
			Glyph:     category.Glyph,
			Endpoints: buckets[idx],
		})
	}
	if len(fallbackBucket) > 0 {
		groups = append(groups, Group{
			Name:      m.fallback.Name,
			Glyph:     m.fallback.Glyph,
			Endpoints: fallbackBucket,
		})
	}

	return groups, stats
}
