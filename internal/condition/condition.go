// Package condition scores bridge condition ratings for display.
//
// Two paths read the same ratings differently. Severity scoring
// (WorstRating, SeveritySize) only counts ratings 1-9 and treats a 0 as
// "no valid rating". Direct display (DirectRating, Color) keeps 0 as the
// failed/closed key, drawn bright red.
package condition

import "github.com/joeblew999/plat-bridges/internal/bridge"

// NoDataColor is the gray used for bridges without usable data.
const NoDataColor = "#888"

// FailedColor is the color of a 0 (failed/closed) rating.
const FailedColor = "#FF0000"

// ratingColors maps ratings 0-9 to CSS colors.
var ratingColors = [...]string{
	0: FailedColor,
	1: "#7F1D1D",
	2: "#B91C1C",
	3: "#DC2626",
	4: "#EA580C",
	5: "#F59E0B",
	6: "#FACC15",
	7: "#A3E635",
	8: "#4ADE80",
	9: "#15803D",
}

const (
	// maxBadness is 9 minus the lowest valid rating.
	maxBadness = 8.0
	// growth scales the radius up to (1+growth) times base at max severity.
	growth = 2.1
)

// Color returns the display color for a present rating and NoDataColor
// otherwise.
func Color(r bridge.Rating) string {
	v, ok := r.Get()
	if !ok {
		return NoDataColor
	}
	return ratingColors[v]
}

// WorstRating returns the lowest rating in [1,9]. It returns NoRating when
// no rating is valid.
func WorstRating(ratings bridge.Ratings) bridge.Rating {
	return worstOf(ratings, bridge.Categories[:], true)
}

// WorstOf is WorstRating restricted to the given categories.
func WorstOf(ratings bridge.Ratings, cats []bridge.Category) bridge.Rating {
	return worstOf(ratings, cats, true)
}

// DirectRating returns the lowest present rating, 0 included.
func DirectRating(ratings bridge.Ratings) bridge.Rating {
	return worstOf(ratings, bridge.Categories[:], false)
}

func worstOf(ratings bridge.Ratings, cats []bridge.Category, scoredOnly bool) bridge.Rating {
	worst := bridge.NoRating
	for _, c := range cats {
		r := ratings.Get(c)
		if !r.Present() || (scoredOnly && !r.Valid()) {
			continue
		}
		v, _ := r.Get()
		if w, ok := worst.Get(); !ok || v < w {
			worst = r
		}
	}
	return worst
}

// NineScale converts a 0-100 sufficiency score to the 0-9 rating scale.
// A nil score stays unknown.
func NineScale(score *float64) (float64, bool) {
	if score == nil {
		return 0, false
	}
	return *score / 100 * 9, true
}

// Weights holds a severity slider weight in [0,100] per category.
type Weights [len(bridge.Categories)]float64

// Engaged reports whether any weight is above zero.
func (w Weights) Engaged() bool {
	for _, v := range w {
		if v > 0 {
			return true
		}
	}
	return false
}

// Active returns the categories whose weight is above zero.
func (w Weights) Active() []bridge.Category {
	var cats []bridge.Category
	for _, c := range bridge.Categories {
		if w[c] > 0 {
			cats = append(cats, c)
		}
	}
	return cats
}

// Severity returns the weighted mean badness (9 - rating) over engaged
// categories that have a valid rating, and whether any contributed.
func Severity(ratings bridge.Ratings, weights Weights) (float64, bool) {
	var sum float64
	n := 0
	for _, c := range bridge.Categories {
		w := weights[c]
		if w <= 0 || w > 100 {
			continue
		}
		r := ratings.Get(c)
		if !r.Valid() {
			continue
		}
		v, _ := r.Get()
		sum += float64(bridge.MaxRating-v) * (w / 100)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// SeveritySize grows base by up to 3.1x as severity approaches its maximum.
func SeveritySize(ratings bridge.Ratings, base float64, weights Weights) float64 {
	avg, ok := Severity(ratings, weights)
	if !ok {
		return base
	}
	return base + base*growth*(avg/maxBadness)
}
