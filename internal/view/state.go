// Package view holds the mutable UI state a recomputation pass reads:
// the mode, the filter selections and the slider positions.
package view

import (
	"time"

	"github.com/joeblew999/plat-bridges/internal/bridge"
	"github.com/joeblew999/plat-bridges/internal/condition"
	"github.com/joeblew999/plat-bridges/internal/urgency"
)

// Mode selects how bridges are colored.
type Mode string

const (
	// Default colors by district.
	Default Mode = "default"
	// Evaluation colors by condition severity.
	Evaluation Mode = "evaluation"
	// Inspection colors by inspection urgency.
	Inspection Mode = "inspection"
)

// ParseMode accepts the mode names, plus the "district" and "maintenance"
// tab aliases.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "default", "district":
		return Default, true
	case "evaluation", "maintenance":
		return Evaluation, true
	case "inspection":
		return Inspection, true
	}
	return "", false
}

// Comparison is how the sufficiency threshold is applied.
type Comparison string

const (
	AtMost  Comparison = "at-most"
	AtLeast Comparison = "at-least"
)

// NoThreshold is the sufficiency slider position that disables filtering.
const NoThreshold = 100.0

// State is the full view state. Everything except Attribute serializes.
type State struct {
	Mode      Mode                       `json:"mode" yaml:"mode"`
	Districts [bridge.DistrictCount]bool `json:"districts" yaml:"districts"`
	Query     string                     `json:"query,omitempty" yaml:"query,omitempty"`
	Excluded  map[string]bool            `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Attribute AttributeFilter            `json:"-" yaml:"-"`
	Types     map[string]bool            `json:"inspectionTypes,omitempty" yaml:"inspectionTypes,omitempty"`
	Months    map[time.Month]bool        `json:"inspectionMonths,omitempty" yaml:"inspectionMonths,omitempty"`
	Weights   condition.Weights          `json:"weights" yaml:"weights"`
	Threshold float64                    `json:"sufficiencyThreshold" yaml:"sufficiencyThreshold"`
	Compare   Comparison                 `json:"sufficiencyCompare" yaml:"sufficiencyCompare"`
	ShowNA    bool                       `json:"showNA" yaml:"showNA"`
	Zoom      float64                    `json:"zoom" yaml:"zoom"`
}

// New returns the startup state: default mode, every district on, no
// filters engaged.
func New() *State {
	s := &State{
		Mode:      Default,
		Threshold: NoThreshold,
		Compare:   AtMost,
	}
	for i := range s.Districts {
		s.Districts[i] = true
	}
	return s
}

// SetMode switches modes. Leaving Evaluation resets the sliders; leaving
// Inspection clears the inspection filters.
func (s *State) SetMode(m Mode) {
	if s.Mode == m {
		return
	}
	switch s.Mode {
	case Evaluation:
		s.Weights = condition.Weights{}
		s.Threshold = NoThreshold
	case Inspection:
		s.Types = nil
		s.Months = nil
	}
	s.Mode = m
}

// SetWeight sets a severity slider, clamped to [0,100].
func (s *State) SetWeight(c bridge.Category, w float64) {
	s.Weights[c] = clamp(w)
}

// SetThreshold sets the sufficiency slider, clamped to [0,100].
func (s *State) SetThreshold(v float64, cmp Comparison) {
	s.Threshold = clamp(v)
	if cmp != "" {
		s.Compare = cmp
	}
}

// ThresholdEngaged reports whether the sufficiency slider filters.
func (s *State) ThresholdEngaged() bool {
	return s.Threshold < NoThreshold
}

// PassesSufficiency applies the threshold to a 0-100 score. Unknown scores
// fail whenever the threshold is engaged.
func (s *State) PassesSufficiency(score *float64) bool {
	if !s.ThresholdEngaged() {
		return true
	}
	v, ok := condition.NineScale(score)
	if !ok {
		return false
	}
	limit := s.Threshold / 100 * 9
	if s.Compare == AtLeast {
		return v >= limit
	}
	return v <= limit
}

// SetDistrict turns a district (1-based) on or off.
func (s *State) SetDistrict(district int, on bool) {
	if district < 1 || district > bridge.DistrictCount {
		return
	}
	s.Districts[district-1] = on
}

// ToggleDistrict flips a district (1-based).
func (s *State) ToggleDistrict(district int) {
	if district < 1 || district > bridge.DistrictCount {
		return
	}
	s.Districts[district-1] = !s.Districts[district-1]
}

// DistrictActive reports whether bridges of the district may show. Bridges
// with a district outside 1-10 never show.
func (s *State) DistrictActive(district int) bool {
	if district < 1 || district > bridge.DistrictCount {
		return false
	}
	return s.Districts[district-1]
}

// SetInspectionFilter replaces the inspection type and month selections.
func (s *State) SetInspectionFilter(types []string, months []time.Month) {
	s.Types = nil
	s.Months = nil
	for _, t := range types {
		if s.Types == nil {
			s.Types = make(map[string]bool)
		}
		s.Types[t] = true
	}
	for _, m := range months {
		if s.Months == nil {
			s.Months = make(map[time.Month]bool)
		}
		s.Months[m] = true
	}
}

// UrgencyFilter returns the inspection selections for the urgency scorer.
func (s *State) UrgencyFilter() urgency.Filter {
	return urgency.Filter{Types: s.Types, Months: s.Months}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
