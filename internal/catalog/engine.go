// Package catalog implements the in-memory query engine shared by the four
// catalog variants (tours, hotels, vehicles, destinations). A Schema declares
// the filterable facets, searchable fields and sort keys of one variant; a
// Query carries a free-text term, a facet->value map and a sort key; Evaluate
// applies the conjunction of all facet predicates plus the text predicate and
// then a stable sort.
//
// The engine is fail-open on bad input: a malformed filter value or an
// unknown facet name drops that single constraint instead of erroring, and
// an unknown sort key keeps input order. Filtering a UI catalog should
// degrade to "fewer filters applied", never to a broken page.
package catalog

import (
	"sort"
	"strconv"
	"strings"
)

type SortKey string

const (
	SortRecommended  SortKey = "recommended"
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortRatingDesc   SortKey = "rating-desc"
	SortCapacityDesc SortKey = "capacity-desc"
	SortDurationDesc SortKey = "duration-desc"
)

// ParseSortKey normalizes a raw sort parameter. The legacy UI sent
// "price-low"/"price-high"; anything unrecognized maps to recommended
// (identity order).
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SortPriceAsc), "price-low":
		return SortPriceAsc
	case string(SortPriceDesc), "price-high":
		return SortPriceDesc
	case string(SortRatingDesc), "rating":
		return SortRatingDesc
	case string(SortCapacityDesc), "capacity":
		return SortCapacityDesc
	case string(SortDurationDesc), "duration":
		return SortDurationDesc
	default:
		return SortRecommended
	}
}

// Query is an immutable value object; construct a fresh one per interaction.
// Empty Term and empty Filters mean "match all".
type Query struct {
	Term    string
	Filters map[string]string
	Sort    SortKey
}

type predicate[T any] func(rec T, want string) bool

type sortRule[T any] struct {
	key  func(T) (float64, bool)
	desc bool
}

// Schema is the facet-predicate registry for one record variant. Adding a
// filterable field is a registration, not new branching logic.
type Schema[T any] struct {
	facets map[string]predicate[T]
	search func(T) []string
	sorts  map[SortKey]sortRule[T]
}

func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		facets: map[string]predicate[T]{},
		sorts:  map[SortKey]sortRule[T]{},
	}
}

// Equality registers a case-sensitive exact-match facet. The sentinel values
// "" and "all" match every record; a record whose field is empty never
// matches a concrete filter value.
func (s *Schema[T]) Equality(name string, get func(T) string) *Schema[T] {
	s.facets[name] = func(rec T, want string) bool {
		if want == "" || want == "all" {
			return true
		}
		got := get(rec)
		return got != "" && got == want
	}
	return s
}

// Threshold registers a minimum-value facet (record field >= filter value).
// A non-numeric filter value is skipped; a record without the field (ok ==
// false) does not match.
func (s *Schema[T]) Threshold(name string, get func(T) (float64, bool)) *Schema[T] {
	s.facets[name] = func(rec T, want string) bool {
		min, err := strconv.ParseFloat(strings.TrimSpace(want), 64)
		if err != nil {
			return true
		}
		v, ok := get(rec)
		return ok && v >= min
	}
	return s
}

// Range registers an inclusive "min-max" facet. A value that does not parse
// as two numbers is skipped.
func (s *Schema[T]) Range(name string, get func(T) (float64, bool)) *Schema[T] {
	s.facets[name] = func(rec T, want string) bool {
		lo, hi, ok := parseRange(want)
		if !ok {
			return true
		}
		v, has := get(rec)
		return has && v >= lo && v <= hi
	}
	return s
}

// Contains registers a case-insensitive substring facet over one or more
// string fields (list fields are tested element-wise).
func (s *Schema[T]) Contains(name string, get func(T) []string) *Schema[T] {
	s.facets[name] = func(rec T, want string) bool {
		w := strings.ToLower(strings.TrimSpace(want))
		if w == "" || w == "all" {
			return true
		}
		for _, f := range get(rec) {
			if strings.Contains(strings.ToLower(f), w) {
				return true
			}
		}
		return false
	}
	return s
}

// Searchable declares the fields the free-text term is matched against.
func (s *Schema[T]) Searchable(get func(T) []string) *Schema[T] {
	s.search = get
	return s
}

// Sortable registers a numeric sort key. Records missing the key (ok ==
// false) sort after those that have it; ties keep input order.
func (s *Schema[T]) Sortable(k SortKey, desc bool, key func(T) (float64, bool)) *Schema[T] {
	s.sorts[k] = sortRule[T]{key: key, desc: desc}
	return s
}

// Evaluate returns the ordered subset of records matching q. It never
// mutates records and always returns a fresh slice.
func Evaluate[T any](s *Schema[T], records []T, q Query) []T {
	out := make([]T, 0, len(records))
	term := strings.ToLower(strings.TrimSpace(q.Term))
	for _, rec := range records {
		if !s.matchFilters(rec, q.Filters) {
			continue
		}
		if term != "" && !s.matchTerm(rec, term) {
			continue
		}
		out = append(out, rec)
	}

	if rule, ok := s.sorts[q.Sort]; ok {
		sort.SliceStable(out, func(i, j int) bool {
			a, aok := rule.key(out[i])
			b, bok := rule.key(out[j])
			if aok != bok {
				return aok
			}
			if !aok {
				return false
			}
			if rule.desc {
				return a > b
			}
			return a < b
		})
	}
	return out
}

func (s *Schema[T]) matchFilters(rec T, filters map[string]string) bool {
	for name, want := range filters {
		p, ok := s.facets[name]
		if !ok {
			continue // unknown facet: fail-open
		}
		if !p(rec, want) {
			return false
		}
	}
	return true
}

func (s *Schema[T]) matchTerm(rec T, term string) bool {
	if s.search == nil {
		return true
	}
	for _, f := range s.search(rec) {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// parseRange parses "min-max" into two floats. Both bounds are required.
func parseRange(s string) (lo, hi float64, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// firstInt returns the first unsigned integer embedded in s ("7 Days" -> 7).
func firstInt(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}
