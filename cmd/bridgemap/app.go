package main

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-bridges/internal/bridge"
	"github.com/joeblew999/plat-bridges/internal/config"
	"github.com/joeblew999/plat-bridges/internal/session"
	"github.com/joeblew999/plat-bridges/internal/snapshot"
	"github.com/joeblew999/plat-bridges/internal/urgency"
	"github.com/joeblew999/plat-bridges/internal/view"
	"github.com/joeblew999/plat-bridges/internal/visual"
)

type app struct {
	cfg  *config.Config
	sess *session.Session
}

func newApp(opts *Options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, eris.Wrap(err, "load config")
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return nil, eris.Wrap(err, "init logger")
	}
	if opts.DataDir != "" {
		cfg.Data.Dir = opts.DataDir
	}

	today := time.Now()
	if opts.Today != "" {
		t, ok := urgency.ParseDue(opts.Today)
		if !ok {
			return nil, eris.Errorf("invalid --today %q", opts.Today)
		}
		today = t
	}

	loader := snapshot.Loader{DataDir: cfg.Data.Dir, Files: cfg.Data.Files}
	ds, err := loader.Load(context.Background())
	if err != nil {
		return nil, err
	}

	sess := session.New(ds.Records(),
		session.WithSizing(cfg.Marker),
		session.WithClock(func() time.Time { return today }),
	)
	return &app{cfg: cfg, sess: sess}, nil
}

func (a *app) close() {
	_ = zap.L().Sync()
}

// pass replays the options onto the session the way the UI would fire
// events, and returns the resulting frame.
func (a *app) pass(opts *Options) (visual.Frame, error) {
	mode, ok := view.ParseMode(opts.Mode)
	if !ok {
		return visual.Frame{}, eris.Errorf("unknown mode %q", opts.Mode)
	}
	districts, err := parseDistricts(opts.Districts)
	if err != nil {
		return visual.Frame{}, err
	}
	months, err := parseMonths(opts.Months)
	if err != nil {
		return visual.Frame{}, err
	}
	cmp := view.Comparison(opts.Compare)
	if cmp != view.AtMost && cmp != view.AtLeast {
		return visual.Frame{}, eris.Errorf("unknown comparison %q", opts.Compare)
	}

	s := a.sess
	s.SetZoom(float64(opts.Zoom))
	s.SwitchMode(mode)
	if districts != nil {
		for d := 1; d <= bridge.DistrictCount; d++ {
			if !districts[d] {
				s.ToggleDistrict(d)
			}
		}
	}
	if opts.Query != "" {
		s.SetQuery(opts.Query)
	}

	switch mode {
	case view.Evaluation:
		weights := map[bridge.Category]int{
			bridge.Deck:           opts.Deck,
			bridge.Superstructure: opts.Superstructure,
			bridge.Substructure:   opts.Substructure,
			bridge.Bearings:       opts.Bearings,
			bridge.Joints:         opts.Joints,
		}
		for _, c := range bridge.Categories {
			if weights[c] != 0 {
				s.SetWeight(c, float64(weights[c]))
			}
		}
		s.SetSufficiency(float64(opts.Sufficiency), cmp)
		if opts.ShowNA {
			s.SetShowNA(true)
		}
	case view.Inspection:
		types := splitList(opts.Types)
		if len(types) > 0 || len(months) > 0 {
			s.SetInspectionFilter(types, months)
		}
	}
	return s.Frame(), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDistricts returns the selected districts, or nil for all.
func parseDistricts(s string) (map[int]bool, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make(map[int]bool, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil || d < 1 || d > bridge.DistrictCount {
			return nil, eris.Errorf("invalid district %q", p)
		}
		out[d] = true
	}
	return out, nil
}

// parseMonths accepts month numbers and English names or abbreviations.
func parseMonths(s string) ([]time.Month, error) {
	var out []time.Month
	for _, p := range splitList(s) {
		if n, err := strconv.Atoi(p); err == nil {
			if n < 1 || n > 12 {
				return nil, eris.Errorf("invalid month %q", p)
			}
			out = append(out, time.Month(n))
			continue
		}
		m, ok := monthByName(p)
		if !ok {
			return nil, eris.Errorf("invalid month %q", p)
		}
		out = append(out, m)
	}
	return out, nil
}

func monthByName(s string) (time.Month, bool) {
	s = strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return m, true
		}
	}
	return 0, false
}

func write(w io.Writer, v any, useYAML bool) error {
	if useYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
