package visual

import (
	"github.com/joeblew999/plat-bridges/internal/bridge"
	"github.com/joeblew999/plat-bridges/internal/view"
)

// Frame is the result of one full recomputation pass.
type Frame struct {
	Mode    view.Mode `json:"mode" yaml:"mode"`
	Visible int       `json:"visible" yaml:"visible"`
	Markers []Marker  `json:"markers" yaml:"markers"`
}

// Pass resolves every record and orders the result for drawing. It reads
// the state and never writes it, so repeated passes over the same state
// give the same frame.
func Pass(records []bridge.Record, s *view.State, env Env) Frame {
	markers := make([]Marker, len(records))
	visible := 0
	for i, rec := range records {
		markers[i] = Resolve(rec, s, env)
		if markers[i].Visible() {
			visible++
		}
	}
	SortForDraw(markers)
	return Frame{Mode: s.Mode, Visible: visible, Markers: markers}
}

// Marker looks up a bridge's marker in the frame.
func (f Frame) Marker(id string) (Marker, bool) {
	for _, m := range f.Markers {
		if m.ID == id {
			return m, true
		}
	}
	return Marker{}, false
}
