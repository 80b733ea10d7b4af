package visual

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-bridges/internal/bridge"
	"github.com/joeblew999/plat-bridges/internal/condition"
	"github.com/joeblew999/plat-bridges/internal/urgency"
	"github.com/joeblew999/plat-bridges/internal/view"
)

var env = Env{
	Today:  time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC),
	Sizing: DefaultSizing,
}

func score(v float64) *float64 { return &v }

func record(id string, district int, suff *float64, r ...any) bridge.Record {
	p := orb.Point{-72.5, 44.2}
	var ratings bridge.Ratings
	for i, v := range r {
		ratings[i] = bridge.ParseRating(v)
	}
	return bridge.Record{
		Bridge: bridge.Bridge{
			ID:       id,
			Name:     "Bridge " + id,
			District: district,
			Location: &p,
			Ratings:  ratings,
		},
		Sufficiency: suff,
	}
}

func TestSizingBase(t *testing.T) {
	assert.Equal(t, 3.0, DefaultSizing.Base(2))
	assert.Equal(t, 3.0, DefaultSizing.Base(7))
	assert.Equal(t, 6.0, DefaultSizing.Base(10))
	assert.Equal(t, 10.0, DefaultSizing.Base(18))
}

func TestResolveDeckSliderScenario(t *testing.T) {
	a := record("A", 1, score(40), 3)
	s := view.New()
	s.Zoom = 10
	s.SetMode(view.Evaluation)
	s.SetWeight(bridge.Deck, 100)

	m := Resolve(a, s, env)
	base := DefaultSizing.Base(10)
	assert.Equal(t, condition.Color(bridge.RatingOf(3)), m.Color)
	assert.Equal(t, 1, m.Opacity)
	assert.InDelta(t, base+base*2.1*((9.0-3)/8), m.Radius, 1e-9)
}

func TestResolveDefaultMode(t *testing.T) {
	s := view.New()
	m := Resolve(record("A", 4, nil), s, env)
	assert.Equal(t, DistrictColors[3], m.Color)
	assert.Equal(t, 1, m.Opacity)
	assert.Equal(t, DefaultSizing.Base(0), m.Radius)

	s.ToggleDistrict(4)
	assert.Equal(t, 0, Resolve(record("A", 4, nil), s, env).Opacity)

	assert.Equal(t, 0, Resolve(record("B", 0, nil), view.New(), env).Opacity)
}

func TestResolveEvaluationColors(t *testing.T) {
	tests := []struct {
		name    string
		rec     bridge.Record
		weights condition.Weights
		color   string
	}{
		{
			name:  "no slider uses direct worst, zero is failed red",
			rec:   record("A", 1, nil, 0, 7),
			color: condition.FailedColor,
		},
		{
			name:  "no slider all nines",
			rec:   record("A", 1, nil, 9, 9, 9, 9, 9),
			color: condition.Color(bridge.RatingOf(9)),
		},
		{
			name:    "only engaged sliders count",
			rec:     record("A", 1, nil, 8, 2),
			weights: condition.Weights{bridge.Deck: 50},
			color:   condition.Color(bridge.RatingOf(8)),
		},
		{
			name:    "engaged slider on zero rating gives no data",
			rec:     record("A", 1, nil, 0),
			weights: condition.Weights{bridge.Deck: 50},
			color:   condition.NoDataColor,
		},
		{
			name:  "no ratings gives no data",
			rec:   record("A", 1, nil),
			color: condition.NoDataColor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := view.New()
			s.SetMode(view.Evaluation)
			s.Weights = tt.weights
			assert.Equal(t, tt.color, Resolve(tt.rec, s, env).Color)
		})
	}
}

func TestResolveNoDataVisibility(t *testing.T) {
	rec := record("77-01-02", 1, nil)
	s := view.New()
	s.SetMode(view.Evaluation)

	assert.Equal(t, 0, Resolve(rec, s, env).Opacity)

	s.ShowNA = true
	assert.Equal(t, 1, Resolve(rec, s, env).Opacity)

	s.ShowNA = false
	s.SetQuery("77")
	assert.Equal(t, 1, Resolve(rec, s, env).Opacity)

	s.SetQuery("88")
	assert.Equal(t, 0, Resolve(rec, s, env).Opacity)
}

func TestResolveFilterOrder(t *testing.T) {
	calls := 0
	s := view.New()
	s.Attribute = func(b bridge.Bridge) bool {
		calls++
		return b.District != 2
	}

	s.SetDistrict(1, false)
	assert.Equal(t, 0, Resolve(record("A", 1, nil), s, env).Opacity)
	assert.Equal(t, 0, calls)

	assert.Equal(t, 0, Resolve(record("B", 2, nil), s, env).Opacity)
	assert.Equal(t, 1, calls)

	s.ToggleExcluded("C")
	assert.Equal(t, 0, Resolve(record("C", 3, nil), s, env).Opacity)
	assert.Equal(t, 1, Resolve(record("D", 3, nil), s, env).Opacity)
}

func TestSufficiencyRoundTrip(t *testing.T) {
	records := []bridge.Record{
		record("low", 1, score(30), 5),
		record("edge", 1, score(70), 5),
		record("high", 1, score(90), 5),
		record("unknown", 1, nil, 5),
	}
	s := view.New()
	s.SetMode(view.Evaluation)
	s.SetThreshold(70, view.AtMost)

	shown := func() map[string]bool {
		out := map[string]bool{}
		for _, m := range Pass(records, s, env).Markers {
			out[m.ID] = m.Visible()
		}
		return out
	}

	assert.Equal(t, map[string]bool{"low": true, "edge": true, "high": false, "unknown": false}, shown())

	s.SetThreshold(70, view.AtLeast)
	assert.Equal(t, map[string]bool{"low": false, "edge": true, "high": true, "unknown": false}, shown())

	s.SetThreshold(100, view.AtLeast)
	assert.Equal(t, map[string]bool{"low": true, "edge": true, "high": true, "unknown": true}, shown())
}

func TestResolveInspectionMode(t *testing.T) {
	rec := record("A", 1, nil)
	rec.Inspections = []bridge.Inspection{{Type: "routine", Due: "2026-10-01"}}

	s := view.New()
	s.SetMode(view.Inspection)
	m := Resolve(rec, s, env)
	assert.Equal(t, urgency.Score(rec.Inspections, urgency.Filter{}, env.Today).Color, m.Color)
	assert.Equal(t, 1, m.Opacity)

	s.SetInspectionFilter([]string{"underwater"}, nil)
	m = Resolve(rec, s, env)
	assert.Equal(t, urgency.UnknownColor, m.Color)
	assert.Equal(t, 1, m.Opacity)
}

func TestSortForDraw(t *testing.T) {
	markers := []Marker{
		{ID: "one", Opacity: 1, Worst: bridge.RatingOf(1)},
		{ID: "hidden", Opacity: 0, Worst: bridge.RatingOf(2)},
		{ID: "none", Opacity: 1, Worst: bridge.NoRating},
		{ID: "nine", Opacity: 1, Worst: bridge.RatingOf(9)},
		{ID: "five-a", Opacity: 1, Worst: bridge.RatingOf(5)},
		{ID: "five-b", Opacity: 1, Worst: bridge.RatingOf(5)},
	}
	SortForDraw(markers)

	var ids []string
	var ranks []int
	for _, m := range markers {
		ids = append(ids, m.ID)
		ranks = append(ranks, m.ZRank)
	}
	assert.Equal(t, []string{"none", "nine", "five-a", "five-b", "one", "hidden"}, ids)
	assert.Equal(t, []int{0, 1, 2, 3, 4, -1}, ranks)
}

func TestPassIdempotent(t *testing.T) {
	records := []bridge.Record{
		record("A", 1, score(40), 3),
		record("B", 2, score(80), 7, 6),
		record("C", 3, nil, 0),
		record("D", 1, score(55)),
		record("E", 5, score(10), 2, 2, 2),
	}
	s := view.New()
	s.SetMode(view.Evaluation)
	s.SetWeight(bridge.Deck, 60)
	s.SetWeight(bridge.Superstructure, 100)
	s.SetThreshold(80, view.AtMost)
	s.Zoom = 11

	first := Pass(records, s, env)
	second := Pass(records, s, env)
	require.Equal(t, first, second)

	assert.Equal(t, view.Evaluation, first.Mode)
	last := first.Markers[first.Visible-1]
	assert.Equal(t, "E", last.ID)
}

func TestFrameMarker(t *testing.T) {
	f := Pass([]bridge.Record{record("A", 1, nil, 5)}, view.New(), env)
	m, ok := f.Marker("A")
	require.True(t, ok)
	assert.Equal(t, 0, m.ZRank)
	_, ok = f.Marker("Z")
	assert.False(t, ok)
}
