// Package urgency turns inspection due dates into a status and a color on
// the urgency gradient.
package urgency

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/joeblew999/plat-bridges/internal/bridge"
)

// Status is the inspection urgency of a bridge.
type Status string

const (
	Unknown Status = "unknown"
	Overdue Status = "overdue"
	DueSoon Status = "due_soon"
	Current Status = "current"
)

// Fixed colors.
const (
	UnknownColor = "#888"
	CurrentColor = "#10B981"
)

const (
	// Window is how many days ahead an inspection counts as upcoming.
	Window = 60
	// overdueSpan is the number of days overdue that reaches the darkest red.
	overdueSpan = 365
)

// dueLayouts are the accepted due-date layouts, tried in order.
var dueLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// HSL is a color in CSS hsl() terms. Saturation and Lightness are percents.
type HSL struct {
	Hue        float64 `json:"hue" yaml:"hue"`
	Saturation float64 `json:"saturation" yaml:"saturation"`
	Lightness  float64 `json:"lightness" yaml:"lightness"`
}

// CSS renders the color as an hsl() string rounded to one decimal.
func (c HSL) CSS() string {
	return "hsl(" + trim(c.Hue) + ", " + trim(c.Saturation) + "%, " + trim(c.Lightness) + "%)"
}

func trim(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

// Filter restricts which inspections count. Empty sets do not restrict.
type Filter struct {
	Types  map[string]bool
	Months map[time.Month]bool
}

// Result is the scored urgency of one bridge.
type Result struct {
	Status Status `json:"status" yaml:"status"`
	Color  string `json:"color" yaml:"color"`
	// Days is days overdue for Overdue and days until due for DueSoon.
	Days int `json:"days" yaml:"days"`
	// HSL is set for the gradient statuses.
	HSL *HSL `json:"hsl,omitempty" yaml:"hsl,omitempty"`
}

// ParseDue parses a due date into a calendar day in UTC.
func ParseDue(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return day(t), true
		}
	}
	return time.Time{}, false
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// Score classifies a bridge's inspections against today.
func Score(inspections []bridge.Inspection, f Filter, today time.Time) Result {
	today = day(today)

	relevant := 0
	parsed := 0
	maxOverdue := -1
	minUntil := -1
	for _, insp := range inspections {
		if len(f.Types) > 0 && !f.Types[insp.Type] {
			continue
		}
		due, ok := ParseDue(insp.Due)
		if len(f.Months) > 0 && (!ok || !f.Months[due.Month()]) {
			continue
		}
		relevant++
		if !ok {
			continue
		}
		parsed++

		diff := daysBetween(today, due)
		switch {
		case diff < 0:
			if -diff > maxOverdue {
				maxOverdue = -diff
			}
		case diff <= Window:
			if minUntil < 0 || diff < minUntil {
				minUntil = diff
			}
		}
	}

	switch {
	case relevant == 0 || parsed == 0:
		return Result{Status: Unknown, Color: UnknownColor}
	case maxOverdue >= 0:
		return overdue(maxOverdue)
	case minUntil >= 0:
		return dueSoon(minUntil)
	}
	return Result{Status: Current, Color: CurrentColor}
}

func overdue(days int) Result {
	t := math.Min(float64(days)/overdueSpan, 1)
	c := HSL{Hue: 0, Saturation: 80, Lightness: lerp(50, 12, t)}
	return Result{Status: Overdue, Color: c.CSS(), Days: days, HSL: &c}
}

func dueSoon(days int) Result {
	t := 1 - float64(days)/Window
	c := HSL{Hue: lerp(30, 20, t), Saturation: 90, Lightness: lerp(60, 30, t)}
	return Result{Status: DueSoon, Color: c.CSS(), Days: days, HSL: &c}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
