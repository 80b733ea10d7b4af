// Package legend lists the color keys the map shows for each mode.
package legend

import (
	"fmt"
	"time"

	"github.com/joeblew999/plat-bridges/internal/bridge"
	"github.com/joeblew999/plat-bridges/internal/condition"
	"github.com/joeblew999/plat-bridges/internal/urgency"
	"github.com/joeblew999/plat-bridges/internal/view"
	"github.com/joeblew999/plat-bridges/internal/visual"
)

// Item defines a legend entry.
type Item struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// Legend is the titled list of entries for one mode.
type Legend struct {
	Mode  view.Mode `json:"mode" yaml:"mode"`
	Title string    `json:"title" yaml:"title"`
	Items []Item    `json:"items" yaml:"items"`
}

// For returns the legend shown in a mode.
func For(m view.Mode) Legend {
	switch m {
	case view.Evaluation:
		return Legend{Mode: m, Title: "Condition rating", Items: conditionItems()}
	case view.Inspection:
		return Legend{Mode: m, Title: "Inspection status", Items: urgencyItems()}
	}
	return Legend{Mode: view.Default, Title: "District", Items: districtItems()}
}

func districtItems() []Item {
	items := make([]Item, 0, bridge.DistrictCount)
	for d := 1; d <= bridge.DistrictCount; d++ {
		items = append(items, Item{Label: fmt.Sprintf("District %d", d), Color: visual.DistrictColor(d)})
	}
	return items
}

func conditionItems() []Item {
	items := make([]Item, 0, bridge.MaxRating+2)
	for v := bridge.MaxRating; v >= 0; v-- {
		label := fmt.Sprintf("%d", v)
		if v == 0 {
			label = "0 (failed)"
		}
		items = append(items, Item{Label: label, Color: condition.Color(bridge.RatingOf(v))})
	}
	return append(items, Item{Label: "N/A", Color: condition.NoDataColor})
}

func urgencyItems() []Item {
	// Sample midpoints of both gradients: 30 days out and half a year late.
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	soon := urgency.Score([]bridge.Inspection{{Due: "2000-01-31"}}, urgency.Filter{}, ref)
	overdue := urgency.Score([]bridge.Inspection{{Due: "1999-07-02"}}, urgency.Filter{}, ref)
	return []Item{
		{Label: "Current", Color: urgency.CurrentColor},
		{Label: fmt.Sprintf("Due within %d days", urgency.Window), Color: soon.Color},
		{Label: "Overdue", Color: overdue.Color},
		{Label: "No inspection data", Color: urgency.UnknownColor},
	}
}
