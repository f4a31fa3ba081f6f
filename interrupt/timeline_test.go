package interrupt

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineEvents(t *testing.T) {
	tl := Timeline{
		{{0, 0, 50}, {3, 51, 191}},
		{{1, 0, 191}},
		{{2, 0, 10}, {4, 20, 30}, {2, 40, 191}},
	}

	assert.Equal(t, 3, tl.Interrupts())
	assert.Equal(t, []int{0, 1, 2}, tl.Initial())
	assert.Equal(t, []Event{
		{Line: 19, Slot: 2, Color: 4},
		{Line: 39, Slot: 2, Color: 2},
		{Line: 50, Slot: 0, Color: 3},
	}, tl.Events())
}

func TestTimelineEventsSameLine(t *testing.T) {
	tl := Timeline{
		{{0, 0, 9}, {2, 10, 191}},
		{{1, 0, 9}, {3, 10, 191}},
	}

	assert.Equal(t, []Event{
		{Line: 9, Slot: 0, Color: 2},
		{Line: 9, Slot: 1, Color: 3},
	}, tl.Events())
}

func TestAnalyzeAndNormalize(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 4, 4), greys(3))
	copy(m.Pix, []uint8{
		0, 1, 0, 1,
		1, 0, 1, 0,
		2, 1, 2, 1,
		1, 2, 1, 2,
	})

	tl, err := Analyze(m, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, Timeline{
		{{0, 0, 1}, {2, 2, 3}},
		{{1, 0, 3}},
	}, tl)
	assert.Equal(t, []Event{{Line: 1, Slot: 0, Color: 2}}, tl.Events())

	assert.Equal(t, []uint8{
		0, 1, 0, 1,
		1, 0, 1, 0,
		0, 1, 0, 1,
		1, 0, 1, 0,
	}, tl.Normalize(m))
}

func TestNormalizeSplitColor(t *testing.T) {
	// Color 1 ends up in both slots, each pixel takes whichever slot
	// holds it on that line
	m := image.NewPaletted(image.Rect(0, 0, 2, 6), greys(3))
	copy(m.Pix, []uint8{
		0, 1,
		0, 1,
		0, 2,
		1, 2,
		1, 2,
		0, 2,
	})

	tl := Timeline{
		{{0, 0, 2}, {1, 3, 4}, {0, 5, 5}},
		{{1, 0, 1}, {2, 2, 5}},
	}

	assert.Equal(t, []uint8{
		0, 1,
		0, 1,
		0, 1,
		0, 1,
		0, 1,
		0, 1,
	}, tl.Normalize(m))
}
