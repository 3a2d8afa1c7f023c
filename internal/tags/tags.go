// Package tags parses the allergen and dietary preference strings attached to
// food items and user profiles into sets with exact, case-insensitive membership.
package tags

import (
	"sort"
	"strings"
)

// Tag is a normalized (lower case, single spaced) allergen or preference name.
type Tag string

// Allergen tags published by the dining service.
const (
	Milk      Tag = "milk"
	Eggs      Tag = "eggs"
	Peanuts   Tag = "peanuts"
	TreeNuts  Tag = "tree nuts"
	Soy       Tag = "soy"
	Wheat     Tag = "wheat"
	Fish      Tag = "fish"
	Shellfish Tag = "shellfish"
	Sesame    Tag = "sesame"
	Gluten    Tag = "gluten"
	Alcohol   Tag = "alcohol"
	Coconut   Tag = "coconut"
	Corn      Tag = "corn"
	Gelatin   Tag = "gelatin"
	MSG       Tag = "msg"
	Pork      Tag = "pork"
	RedDye    Tag = "red dye"
	Sulfites  Tag = "sulfites"
)

// Preference tags.
const (
	Vegetarian Tag = "vegetarian"
	Vegan      Tag = "vegan"
	Kosher     Tag = "kosher"
	Halal      Tag = "halal"
)

// Allergens lists every allergen tag in display order.
var Allergens = []Tag{
	Milk, Eggs, Peanuts, TreeNuts, Soy, Wheat, Fish, Shellfish, Sesame,
	Gluten, Alcohol, Coconut, Corn, Gelatin, MSG, Pork, RedDye, Sulfites,
}

// Preferences lists every preference tag in display order.
var Preferences = []Tag{Vegetarian, Vegan, Kosher, Halal}

// Normalize lower-cases s and collapses internal whitespace.
func Normalize(s string) Tag {
	return Tag(strings.Join(strings.Fields(strings.ToLower(s)), " "))
}

// IsAllergen reports whether t is a known allergen tag.
func IsAllergen(t Tag) bool {
	for _, a := range Allergens {
		if a == t {
			return true
		}
	}
	return false
}

// IsPreference reports whether t is a known preference tag.
func IsPreference(t Tag) bool {
	for _, p := range Preferences {
		if p == t {
			return true
		}
	}
	return false
}

// Set is an unordered collection of tags.
type Set map[Tag]struct{}

// NewSet builds a set from already normalized tags.
func NewSet(ts ...Tag) Set {
	s := make(Set, len(ts))
	for _, t := range ts {
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// ParseList splits a comma separated list ("Milk, Tree Nuts, Soy").
// Multi-word tags keep their inner space.
func ParseList(raw string) Set {
	s := make(Set)
	for _, part := range strings.Split(raw, ",") {
		if t := Normalize(part); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// ParseWords splits on commas and whitespace ("Vegetarian Vegan", "halal, kosher").
// Use it for preference strings, whose tags are single words.
func ParseWords(raw string) Set {
	s := make(Set)
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for _, f := range fields {
		if t := Normalize(f); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Has reports whether t (normalized on the way in) is in the set.
func (s Set) Has(t Tag) bool {
	_, ok := s[Normalize(string(t))]
	return ok
}

// HasAny reports whether the two sets share at least one tag.
func (s Set) HasAny(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if _, ok := large[t]; ok {
			return true
		}
	}
	return false
}

// Intersect returns the number of tags present in both sets.
func (s Set) Intersect(other Set) int {
	n := 0
	for t := range s {
		if _, ok := other[t]; ok {
			n++
		}
	}
	return n
}

// Len returns the number of tags.
func (s Set) Len() int { return len(s) }

// Sorted returns the tags in lexical order.
func (s Set) Sorted() []Tag {
	out := make([]Tag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String joins the tags with ", ".
func (s Set) String() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, t := range sorted {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
