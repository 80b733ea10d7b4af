package view

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/paulmach/orb"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/joeblew999/plat-bridges/internal/bridge"
)

// AttributeFilter is an externally defined test over a bridge.
type AttributeFilter func(bridge.Bridge) bool

// PropertyEquals matches bridges whose property prop renders as value.
// Comparison is case-insensitive on the string form.
func PropertyEquals(prop, value string) AttributeFilter {
	want := normalize(value)
	return func(b bridge.Bridge) bool {
		v, ok := b.Properties[prop]
		if !ok || v == nil {
			return false
		}
		return normalize(fmt.Sprint(v)) == want
	}
}

// All combines filters; every one must pass. Nil filters are ignored.
func All(filters ...AttributeFilter) AttributeFilter {
	return func(b bridge.Bridge) bool {
		for _, f := range filters {
			if f != nil && !f(b) {
				return false
			}
		}
		return true
	}
}

var upper = cases.Upper(language.Und)

// normalize trims, NFKC-normalizes and uppercases text for matching.
func normalize(s string) string {
	return upper.String(norm.NFKC.String(strings.TrimSpace(s)))
}

// SetQuery stores the search text in its normalized form.
func (s *State) SetQuery(q string) {
	s.Query = normalize(q)
}

// Searching reports whether a search query is active.
func (s *State) Searching() bool {
	return s.Query != ""
}

// MatchesQuery reports whether a bridge passes the search. A query that
// starts with a digit must prefix the identifier or name; any other query
// may appear anywhere in either.
func (s *State) MatchesQuery(b bridge.Bridge) bool {
	return Match(s.Query, b.ID, b.Name)
}

// Match applies the search rule to a normalized query and candidate fields.
func Match(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	prefix := unicode.IsDigit([]rune(query)[0])
	for _, f := range fields {
		if f == "" {
			continue
		}
		f = normalize(f)
		if prefix && strings.HasPrefix(f, query) {
			return true
		}
		if !prefix && strings.Contains(f, query) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether the bridge was opted out by box exclusion.
func (s *State) IsExcluded(id string) bool {
	return s.Excluded[id]
}

// ToggleExcluded opts a single bridge out, or back in.
func (s *State) ToggleExcluded(id string) {
	if s.Excluded[id] {
		delete(s.Excluded, id)
		return
	}
	if s.Excluded == nil {
		s.Excluded = make(map[string]bool)
	}
	s.Excluded[id] = true
}

// ClearExcluded empties the exclusion set.
func (s *State) ClearExcluded() {
	s.Excluded = nil
}

// Projector maps a geo-coordinate to a screen point.
type Projector func(orb.Point) orb.Point

// ExcludeBox adds every bridge whose projected point falls inside box to
// the exclusion set and returns how many were added. A nil projector
// treats box as geo-coordinates.
func (s *State) ExcludeBox(bridges []bridge.Bridge, box orb.Bound, project Projector) int {
	added := 0
	for _, b := range bridges {
		if !b.Renderable() || s.Excluded[b.ID] {
			continue
		}
		pt := *b.Location
		if project != nil {
			pt = project(pt)
		}
		if !box.Contains(pt) {
			continue
		}
		if s.Excluded == nil {
			s.Excluded = make(map[string]bool)
		}
		s.Excluded[b.ID] = true
		added++
	}
	return added
}
