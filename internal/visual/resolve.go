// Package visual resolves each bridge to the style directives the map
// applies to its marker, and orders markers for drawing.
package visual

import (
	"math"
	"time"

	"github.com/joeblew999/plat-bridges/internal/bridge"
	"github.com/joeblew999/plat-bridges/internal/condition"
	"github.com/joeblew999/plat-bridges/internal/urgency"
	"github.com/joeblew999/plat-bridges/internal/view"
)

// DistrictColors are the Default-mode colors for districts 1-10.
var DistrictColors = [bridge.DistrictCount]string{
	"#1F77B4",
	"#FF7F0E",
	"#2CA02C",
	"#D62728",
	"#9467BD",
	"#8C564B",
	"#E377C2",
	"#7F7F7F",
	"#BCBD22",
	"#17BECF",
}

// DistrictColor returns the color for a 1-based district.
func DistrictColor(district int) string {
	if district < 1 || district > bridge.DistrictCount {
		return condition.NoDataColor
	}
	return DistrictColors[district-1]
}

// Sizing derives the base marker radius from the map zoom.
type Sizing struct {
	MinRadius float64 `json:"minRadius" yaml:"minRadius" mapstructure:"min_radius"`
	MaxRadius float64 `json:"maxRadius" yaml:"maxRadius" mapstructure:"max_radius"`
	MinZoom   float64 `json:"minZoom" yaml:"minZoom" mapstructure:"min_zoom"`
	PerZoom   float64 `json:"perZoom" yaml:"perZoom" mapstructure:"per_zoom"`
}

// DefaultSizing grows markers one pixel per zoom level from 3px at zoom 7,
// up to 10px.
var DefaultSizing = Sizing{MinRadius: 3, MaxRadius: 10, MinZoom: 7, PerZoom: 1}

// Base returns the base radius at a zoom level.
func (s Sizing) Base(zoom float64) float64 {
	r := s.MinRadius + (zoom-s.MinZoom)*s.PerZoom
	return math.Max(s.MinRadius, math.Min(s.MaxRadius, r))
}

// Marker is the style directive for one bridge.
type Marker struct {
	ID      string  `json:"id" yaml:"id"`
	Color   string  `json:"color" yaml:"color"`
	Radius  float64 `json:"radius" yaml:"radius"`
	Opacity int     `json:"opacity" yaml:"opacity"`
	// ZRank is the draw position among visible markers; -1 when hidden.
	ZRank int `json:"zRank" yaml:"zRank"`
	// Worst is the worst valid rating, used for draw order.
	Worst bridge.Rating `json:"worst" yaml:"worst"`
}

// Visible reports whether the marker shows and takes pointer events.
func (m Marker) Visible() bool {
	return m.Opacity == 1
}

// Env carries what a pass needs beyond the view state.
type Env struct {
	Today  time.Time
	Sizing Sizing
}

// Resolve computes the marker for one record. The returned marker has no
// draw rank; Pass assigns it.
func Resolve(rec bridge.Record, s *view.State, env Env) Marker {
	base := env.Sizing.Base(s.Zoom)
	m := Marker{
		ID:     rec.ID,
		Color:  condition.NoDataColor,
		Radius: base,
		ZRank:  -1,
		Worst:  condition.WorstRating(rec.Ratings),
	}

	switch s.Mode {
	case view.Evaluation:
		m.Color = evaluationColor(rec.Ratings, s.Weights)
		m.Radius = condition.SeveritySize(rec.Ratings, base, s.Weights)
	case view.Inspection:
		m.Color = urgency.Score(rec.Inspections, s.UrgencyFilter(), env.Today).Color
	default:
		m.Color = DistrictColor(rec.District)
	}

	if visible(rec, s, m.Color) {
		m.Opacity = 1
	}
	return m
}

// evaluationColor picks the condition color. With no slider engaged every
// present rating counts, 0 included; otherwise only the engaged categories
// with a valid rating do.
func evaluationColor(r bridge.Ratings, w condition.Weights) string {
	if !w.Engaged() {
		return condition.Color(condition.DirectRating(r))
	}
	return condition.Color(condition.WorstOf(r, w.Active()))
}

// visible applies the filters in order, stopping at the first failure.
func visible(rec bridge.Record, s *view.State, color string) bool {
	if !s.DistrictActive(rec.District) {
		return false
	}
	if s.Attribute != nil && !s.Attribute(rec.Bridge) {
		return false
	}
	if s.Searching() && !s.MatchesQuery(rec.Bridge) {
		return false
	}
	if s.IsExcluded(rec.ID) {
		return false
	}
	if s.Mode != view.Evaluation {
		return true
	}
	if color == condition.NoDataColor && !s.ShowNA && !s.Searching() {
		return false
	}
	return s.PassesSufficiency(rec.Sufficiency)
}
