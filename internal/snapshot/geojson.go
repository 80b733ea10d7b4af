// Package snapshot materializes the static data files the dashboard ships
// with: bridges as GeoJSON, and inspections, sufficiency scores and projects
// as JSON tables read through DuckDB.
package snapshot

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/joeblew999/plat-bridges/internal/bridge"
)

// Property names read from each bridge feature.
const (
	propID       = "bars_number"
	propName     = "name"
	propDistrict = "district"
)

// ReadBridges parses a GeoJSON FeatureCollection of bridges.
func ReadBridges(path string) ([]bridge.Bridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: read bridges %s", path)
	}
	return ParseBridges(data)
}

// ParseBridges decodes bridge features. A feature without geometry keeps a
// nil location unless lat/lon properties are present; such bridges load but
// are not renderable.
func ParseBridges(data []byte) ([]bridge.Bridge, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, eris.Wrap(err, "snapshot: parse bridges geojson")
	}

	out := make([]bridge.Bridge, 0, len(fc.Features))
	for _, f := range fc.Features {
		b := bridge.Bridge{
			ID:         idString(f.Properties[propID]),
			Name:       f.Properties.MustString(propName, ""),
			District:   parseDistrict(f.Properties[propDistrict]),
			Location:   location(f),
			Properties: map[string]any(f.Properties),
		}
		if b.ID == "" {
			b.ID = idString(f.ID)
		}
		for _, c := range bridge.Categories {
			b.Ratings[c] = bridge.ParseRating(f.Properties[c.String()])
		}
		out = append(out, b)
	}
	zap.L().Debug("snapshot: parsed bridges", zap.Int("count", len(out)))
	return out, nil
}

func location(f *geojson.Feature) *orb.Point {
	if pt, ok := f.Geometry.(orb.Point); ok {
		return &pt
	}
	if f.Geometry != nil {
		// Use the center of anything else so lines and polygons still map.
		c := f.Geometry.Bound().Center()
		return &c
	}
	lat, okLat := number(f.Properties["lat"], f.Properties["latitude"])
	lon, okLon := number(f.Properties["lon"], f.Properties["longitude"])
	if !okLat || !okLon {
		return nil
	}
	return &orb.Point{lon, lat}
}

func number(candidates ...any) (float64, bool) {
	for _, v := range candidates {
		switch n := v.(type) {
		case float64:
			return n, !math.IsNaN(n)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// idString renders identifiers that may arrive as strings or numbers.
func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// parseDistrict accepts 3, "3" and "District 3". Unknown districts are 0.
func parseDistrict(v any) int {
	switch d := v.(type) {
	case float64:
		return int(d)
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "district"))
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}
