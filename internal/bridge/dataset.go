package bridge

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Dataset is the materialized snapshot: bridges plus the per-bridge maps
// loaded alongside them.
type Dataset struct {
	Bridges     []Bridge
	Inspections map[string][]Inspection
	Sufficiency map[string]float64
	Projects    map[string][]Project
}

// Validate checks the load-time preconditions. Every bridge needs an
// identifier and identifiers must be unique.
func (d *Dataset) Validate() error {
	seen := make(map[string]struct{}, len(d.Bridges))
	for i, b := range d.Bridges {
		if b.ID == "" {
			return eris.Errorf("bridge: record %d has no bars_number", i)
		}
		if _, dup := seen[b.ID]; dup {
			return eris.Errorf("bridge: duplicate bars_number %q", b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// Records joins the dataset into renderable records, in bridge order.
// Bridges without a usable coordinate are skipped.
func (d *Dataset) Records() []Record {
	out := make([]Record, 0, len(d.Bridges))
	skipped := 0
	for _, b := range d.Bridges {
		if !b.Renderable() {
			zap.L().Debug("bridge: skipping bridge without coordinate", zap.String("bars_number", b.ID))
			skipped++
			continue
		}
		rec := Record{
			Bridge:      b,
			Inspections: d.Inspections[b.ID],
			Projects:    d.Projects[b.ID],
		}
		if s, ok := d.Sufficiency[b.ID]; ok {
			rec.Sufficiency = &s
		}
		out = append(out, rec)
	}
	if skipped > 0 {
		zap.L().Info("bridge: skipped non-renderable bridges", zap.Int("count", skipped))
	}
	return out
}
