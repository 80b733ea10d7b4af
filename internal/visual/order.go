package visual

import (
	"slices"

	"github.com/joeblew999/plat-bridges/internal/bridge"
)

// drawKey sorts bridges with no valid rating first, then from the best
// rating down, so the worst bridges are drawn last and sit on top.
func drawKey(r bridge.Rating) int {
	v, ok := r.Get()
	if !ok || !r.Valid() {
		return 0
	}
	return bridge.MaxRating + 1 - v
}

// SortForDraw orders markers bottom to top. Visible markers come first in
// draw order and get ranks 0..n-1; hidden markers follow with rank -1.
// The sort is stable so equal markers keep their input order.
func SortForDraw(markers []Marker) {
	slices.SortStableFunc(markers, func(a, b Marker) int {
		if a.Visible() != b.Visible() {
			if a.Visible() {
				return -1
			}
			return 1
		}
		return drawKey(a.Worst) - drawKey(b.Worst)
	})
	rank := 0
	for i := range markers {
		if !markers[i].Visible() {
			markers[i].ZRank = -1
			continue
		}
		markers[i].ZRank = rank
		rank++
	}
}
