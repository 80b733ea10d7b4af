package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-bridges/internal/condition"
	"github.com/joeblew999/plat-bridges/internal/urgency"
	"github.com/joeblew999/plat-bridges/internal/view"
)

func TestForDefault(t *testing.T) {
	l := For(view.Default)
	assert.Equal(t, "District", l.Title)
	require.Len(t, l.Items, 10)
	assert.Equal(t, "District 1", l.Items[0].Label)
}

func TestForEvaluation(t *testing.T) {
	l := For(view.Evaluation)
	require.Len(t, l.Items, 11)
	assert.Equal(t, "9", l.Items[0].Label)
	assert.Equal(t, condition.FailedColor, l.Items[9].Color)
	assert.Equal(t, condition.NoDataColor, l.Items[10].Color)
}

func TestForInspection(t *testing.T) {
	l := For(view.Inspection)
	require.Len(t, l.Items, 4)
	assert.Equal(t, urgency.CurrentColor, l.Items[0].Color)
	assert.Equal(t, "hsl(25, 90%, 45%)", l.Items[1].Color)
	assert.Equal(t, "hsl(0, 80%, 30.9%)", l.Items[2].Color)
	assert.Equal(t, urgency.UnknownColor, l.Items[3].Color)
}

func TestForUnknownModeFallsBack(t *testing.T) {
	assert.Equal(t, view.Default, For(view.Mode("bogus")).Mode)
}
