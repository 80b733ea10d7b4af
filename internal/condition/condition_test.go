package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joeblew999/plat-bridges/internal/bridge"
)

func ratings(deck, sup, sub, bear, joint any) bridge.Ratings {
	return bridge.Ratings{
		bridge.ParseRating(deck),
		bridge.ParseRating(sup),
		bridge.ParseRating(sub),
		bridge.ParseRating(bear),
		bridge.ParseRating(joint),
	}
}

func TestWorstRating(t *testing.T) {
	tests := []struct {
		name    string
		r       bridge.Ratings
		want    int
		present bool
	}{
		{"all absent", ratings(nil, nil, nil, nil, nil), 0, false},
		{"all nine", ratings(9, 9, 9, 9, 9), 9, true},
		{"minimum wins", ratings(7, 4, 6, nil, 5), 4, true},
		{"zero is excluded", ratings(0, nil, nil, nil, nil), 0, false},
		{"zero beside valid", ratings(0, 6, nil, nil, nil), 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WorstRating(tt.r).Get()
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZeroAsymmetry(t *testing.T) {
	r := ratings(0, nil, nil, nil, nil)

	assert.False(t, WorstRating(r).Present())
	assert.Equal(t, FailedColor, Color(DirectRating(r)))
	assert.Equal(t, NoDataColor, Color(WorstRating(r)))
}

func TestColor(t *testing.T) {
	assert.Equal(t, ratingColors[9], Color(WorstRating(ratings(9, 9, 9, 9, 9))))
	assert.Equal(t, ratingColors[3], Color(bridge.RatingOf(3)))
	assert.Equal(t, NoDataColor, Color(bridge.NoRating))
	assert.Equal(t, "#FF0000", Color(bridge.RatingOf(0)))
}

func TestWorstOf(t *testing.T) {
	r := ratings(8, 2, nil, 5, nil)
	got, ok := WorstOf(r, []bridge.Category{bridge.Deck, bridge.Bearings}).Get()
	assert.True(t, ok)
	assert.Equal(t, 5, got)

	assert.False(t, WorstOf(r, []bridge.Category{bridge.Joints}).Present())
}

func TestNineScale(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	got, ok := NineScale(score(50))
	assert.True(t, ok)
	assert.Equal(t, 4.5, got)

	got, _ = NineScale(score(0))
	assert.Equal(t, 0.0, got)

	got, _ = NineScale(score(100))
	assert.Equal(t, 9.0, got)

	_, ok = NineScale(nil)
	assert.False(t, ok)
}

func TestSeveritySize(t *testing.T) {
	const base = 4.0
	tests := []struct {
		name    string
		r       bridge.Ratings
		weights Weights
		want    float64
	}{
		{
			name:    "no weights",
			r:       ratings(3, nil, nil, nil, nil),
			weights: Weights{},
			want:    base,
		},
		{
			name:    "deck at full weight",
			r:       ratings(3, nil, nil, nil, nil),
			weights: Weights{bridge.Deck: 100},
			want:    base + base*2.1*(6.0/8),
		},
		{
			name:    "maximum severity",
			r:       ratings(1, nil, nil, nil, nil),
			weights: Weights{bridge.Deck: 100},
			want:    base * 3.1,
		},
		{
			name:    "half weight",
			r:       ratings(1, nil, nil, nil, nil),
			weights: Weights{bridge.Deck: 50},
			want:    base + base*2.1*(4.0/8),
		},
		{
			name:    "averaged over contributing sliders",
			r:       ratings(1, 9, nil, nil, nil),
			weights: Weights{bridge.Deck: 100, bridge.Superstructure: 100, bridge.Joints: 100},
			want:    base + base*2.1*(4.0/8),
		},
		{
			name:    "zero rating does not contribute",
			r:       ratings(0, nil, nil, nil, nil),
			weights: Weights{bridge.Deck: 100},
			want:    base,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SeveritySize(tt.r, base, tt.weights), 1e-9)
		})
	}
}

func TestWeights(t *testing.T) {
	var w Weights
	assert.False(t, w.Engaged())
	assert.Empty(t, w.Active())

	w[bridge.Joints] = 10
	assert.True(t, w.Engaged())
	assert.Equal(t, []bridge.Category{bridge.Joints}, w.Active())
}
