// Package bridge contains the immutable records the map engine works on.
package bridge

import (
	"math"

	"github.com/paulmach/orb"
)

// DistrictCount is the number of administrative districts.
const DistrictCount = 10

// Category identifies one of the five condition rating fields.
type Category int

const (
	Deck Category = iota
	Superstructure
	Substructure
	Bearings
	Joints
)

// Categories lists every rating category in field order.
var Categories = [...]Category{Deck, Superstructure, Substructure, Bearings, Joints}

var categoryNames = [...]string{"deck", "superstructure", "substructure", "bearings", "joints"}

// String returns the snapshot property name for the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory maps a property name back to its category.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// Ratings holds the five condition ratings indexed by Category.
type Ratings [len(categoryNames)]Rating

// Get returns the rating for a category.
func (r Ratings) Get(c Category) Rating {
	return r[c]
}

// Bridge is one physical structure.
type Bridge struct {
	ID         string         `json:"bars_number" yaml:"bars_number"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	District   int            `json:"district" yaml:"district"`
	Location   *orb.Point     `json:"location,omitempty" yaml:"location,omitempty"`
	Ratings    Ratings        `json:"ratings" yaml:"ratings"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Renderable reports whether the bridge has a usable coordinate.
func (b Bridge) Renderable() bool {
	if b.Location == nil {
		return false
	}
	lon, lat := b.Location.Lon(), b.Location.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// Inspection is a completed inspection. Due holds when the next inspection
// of the same type is required.
type Inspection struct {
	Type string `json:"type" yaml:"type"`
	Due  string `json:"due" yaml:"due"`
}

// Project is an opaque funding/work record shown in the detail panel.
type Project map[string]any

// Record joins a bridge with everything loaded for it.
type Record struct {
	Bridge
	Inspections []Inspection `json:"inspections,omitempty" yaml:"inspections,omitempty"`
	// Sufficiency is the 0-100 score; nil when unknown.
	Sufficiency *float64  `json:"sufficiency,omitempty" yaml:"sufficiency,omitempty"`
	Projects    []Project `json:"projects,omitempty" yaml:"projects,omitempty"`
}
