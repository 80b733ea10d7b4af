// Package session drives the engine from UI events. Each event mutates the
// view state and then runs a full recomputation pass whose frame is fanned
// out to subscribers.
//
// A Session is owned by the single UI thread and is not safe for concurrent
// use. Subscribers run inline, in subscription order.
package session

import (
	"errors"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-bridges/internal/bridge"
	"github.com/joeblew999/plat-bridges/internal/condition"
	"github.com/joeblew999/plat-bridges/internal/urgency"
	"github.com/joeblew999/plat-bridges/internal/view"
	"github.com/joeblew999/plat-bridges/internal/visual"
)

// ErrNotFound is returned for an unknown bridge identifier.
var ErrNotFound = errors.New("session: bridge not found")

// Event names the UI action that triggered a pass.
type Event string

const (
	EventLoad       Event = "load"
	EventZoom       Event = "zoom"
	EventSlider     Event = "slider"
	EventSearch     Event = "search"
	EventDistrict   Event = "district"
	EventMode       Event = "mode"
	EventExclusion  Event = "exclusion"
	EventInspection Event = "inspection"
	EventAttribute  Event = "attribute"
	EventShowNA     Event = "show_na"
)

// Listener receives each frame along with the event that produced it.
type Listener func(Event, visual.Frame)

// Session holds the loaded records and the current view.
type Session struct {
	records []bridge.Record
	byID    map[string]int
	state   *view.State
	sizing  visual.Sizing
	now     func() time.Time

	frame     visual.Frame
	markerIdx map[string]int
	subs      []Listener
}

// Option configures a Session.
type Option func(*Session)

// WithSizing overrides the marker sizing.
func WithSizing(s visual.Sizing) Option {
	return func(sess *Session) { sess.sizing = s }
}

// WithClock overrides the clock used for inspection urgency.
func WithClock(now func() time.Time) Option {
	return func(sess *Session) { sess.now = now }
}

// WithState starts from a prepared view state.
func WithState(s *view.State) Option {
	return func(sess *Session) { sess.state = s }
}

// New creates a session over records and runs the initial pass.
func New(records []bridge.Record, opts ...Option) *Session {
	s := &Session{
		records: records,
		byID:    make(map[string]int, len(records)),
		state:   view.New(),
		sizing:  visual.DefaultSizing,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, r := range records {
		s.byID[r.ID] = i
	}
	s.recompute(EventLoad)
	return s
}

// Subscribe registers a listener for future frames.
func (s *Session) Subscribe(l Listener) {
	s.subs = append(s.subs, l)
}

// State returns the live view state. Callers that mutate it directly must
// call Refresh afterwards.
func (s *Session) State() *view.State {
	return s.state
}

// Frame returns the latest frame.
func (s *Session) Frame() visual.Frame {
	return s.frame
}

// Refresh reruns the pass without changing state.
func (s *Session) Refresh() visual.Frame {
	return s.recompute(EventLoad)
}

// SetZoom records the map zoom level.
func (s *Session) SetZoom(zoom float64) visual.Frame {
	s.state.Zoom = zoom
	return s.recompute(EventZoom)
}

// SetWeight moves a severity slider.
func (s *Session) SetWeight(c bridge.Category, w float64) visual.Frame {
	s.state.SetWeight(c, w)
	return s.recompute(EventSlider)
}

// SetSufficiency moves the sufficiency slider and sets its comparison.
func (s *Session) SetSufficiency(threshold float64, cmp view.Comparison) visual.Frame {
	s.state.SetThreshold(threshold, cmp)
	return s.recompute(EventSlider)
}

// SetQuery updates the search text.
func (s *Session) SetQuery(q string) visual.Frame {
	s.state.SetQuery(q)
	return s.recompute(EventSearch)
}

// ToggleDistrict flips a district on the legend.
func (s *Session) ToggleDistrict(district int) visual.Frame {
	s.state.ToggleDistrict(district)
	return s.recompute(EventDistrict)
}

// SwitchMode changes the coloring mode.
func (s *Session) SwitchMode(m view.Mode) visual.Frame {
	s.state.SetMode(m)
	return s.recompute(EventMode)
}

// ExcludeBox opts out every bridge inside a dragged box.
func (s *Session) ExcludeBox(box orb.Bound, project view.Projector) visual.Frame {
	bridges := make([]bridge.Bridge, len(s.records))
	for i, r := range s.records {
		bridges[i] = r.Bridge
	}
	n := s.state.ExcludeBox(bridges, box, project)
	zap.L().Debug("session: box exclusion", zap.Int("added", n))
	return s.recompute(EventExclusion)
}

// ToggleExcluded opts a single bridge out or back in.
func (s *Session) ToggleExcluded(id string) visual.Frame {
	s.state.ToggleExcluded(id)
	return s.recompute(EventExclusion)
}

// ClearExcluded brings back every excluded bridge.
func (s *Session) ClearExcluded() visual.Frame {
	s.state.ClearExcluded()
	return s.recompute(EventExclusion)
}

// SetInspectionFilter selects inspection types and due months.
func (s *Session) SetInspectionFilter(types []string, months []time.Month) visual.Frame {
	s.state.SetInspectionFilter(types, months)
	return s.recompute(EventInspection)
}

// SetAttributeFilter installs an attribute predicate; nil removes it.
func (s *Session) SetAttributeFilter(f view.AttributeFilter) visual.Frame {
	s.state.Attribute = f
	return s.recompute(EventAttribute)
}

// SetShowNA toggles showing bridges without data in Evaluation mode.
func (s *Session) SetShowNA(on bool) visual.Frame {
	s.state.ShowNA = on
	return s.recompute(EventShowNA)
}

// Hoverable reports whether pointer interaction with a bridge is allowed:
// it must be in the latest frame and visible.
func (s *Session) Hoverable(id string) bool {
	i, ok := s.markerIdx[id]
	return ok && s.frame.Markers[i].Visible()
}

// Detail is the data behind a bridge's detail panel.
type Detail struct {
	Record    bridge.Record  `json:"record" yaml:"record"`
	Worst     bridge.Rating  `json:"worstRating" yaml:"worstRating"`
	NineScale *float64       `json:"sufficiencyNineScale,omitempty" yaml:"sufficiencyNineScale,omitempty"`
	Urgency   urgency.Result `json:"urgency" yaml:"urgency"`
	Marker    visual.Marker  `json:"marker" yaml:"marker"`
}

// Detail assembles the panel data for one bridge.
func (s *Session) Detail(id string) (Detail, error) {
	i, ok := s.byID[id]
	if !ok {
		return Detail{}, ErrNotFound
	}
	rec := s.records[i]
	d := Detail{
		Record:  rec,
		Worst:   condition.WorstRating(rec.Ratings),
		Urgency: urgency.Score(rec.Inspections, s.state.UrgencyFilter(), s.now()),
	}
	if v, ok := condition.NineScale(rec.Sufficiency); ok {
		d.NineScale = &v
	}
	if mi, ok := s.markerIdx[id]; ok {
		d.Marker = s.frame.Markers[mi]
	}
	return d, nil
}

func (s *Session) recompute(ev Event) visual.Frame {
	start := time.Now()
	s.frame = visual.Pass(s.records, s.state, visual.Env{Today: s.now(), Sizing: s.sizing})
	s.markerIdx = make(map[string]int, len(s.frame.Markers))
	for i, m := range s.frame.Markers {
		s.markerIdx[m.ID] = i
	}
	zap.L().Debug("session: recomputed",
		zap.String("event", string(ev)),
		zap.String("mode", string(s.state.Mode)),
		zap.Int("markers", len(s.frame.Markers)),
		zap.Int("visible", s.frame.Visible),
		zap.Duration("took", time.Since(start)),
	)
	for _, l := range s.subs {
		l(ev, s.frame)
	}
	return s.frame
}
