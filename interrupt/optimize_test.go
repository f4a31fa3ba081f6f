package interrupt

import (
	"bytes"
	"errors"
	"image"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripes quantizes to horizontal stripes, one per color, up to count colors
type stripes struct {
	count int
}

func (s stripes) Quantize(_ image.Image, colors int) (*image.Paletted, error) {
	n := colors
	if n > s.count {
		n = s.count
	}
	m := newImage(colors)
	for y := 0; y < testHeight; y++ {
		fillRows(m, uint8(y*n/testHeight), y, y)
	}
	return m, nil
}

// columns quantizes to full height vertical stripes, one per color, up to
// count colors
type columns struct {
	count int
}

func (c columns) Quantize(_ image.Image, colors int) (*image.Paletted, error) {
	n := colors
	if n > c.count {
		n = c.count
	}
	m := newImage(colors)
	for y := 0; y < testHeight; y++ {
		for x := 0; x < testWidth; x++ {
			m.SetColorIndex(x, y, uint8(x*n/testWidth))
		}
	}
	return m, nil
}

// halves quantizes to two flat colors, top and bottom half of the screen
type halves struct{}

func (halves) Quantize(_ image.Image, colors int) (*image.Paletted, error) {
	m := newImage(colors)
	fillRows(m, 0, 0, 95)
	fillRows(m, 1, 96, testHeight-1)
	return m, nil
}

type broken struct {
	err error
}

func (b broken) Quantize(_ image.Image, colors int) (*image.Paletted, error) {
	if b.err != nil {
		return nil, b.err
	}
	m := newImage(colors + 1)
	m.SetColorIndex(0, 0, uint8(colors))
	return m, nil
}

func TestOptimizeTwoBands(t *testing.T) {
	o := Optimizer{Quantizer: halves{}}

	r, err := o.Optimize(nil, 2)
	require.NoError(t, err)

	assert.Equal(t, MaxSlots, r.Colors)
	assert.Equal(t, 2, r.Slots())
	assert.Equal(t, 0, r.Interrupts)
	assert.Empty(t, r.Timeline.Events())
}

func TestOptimizeColumns(t *testing.T) {
	o := Optimizer{Quantizer: columns{20}}

	r, err := o.Optimize(nil, 20)
	require.NoError(t, err)

	assert.Equal(t, MaxSlots, r.Colors)
	assert.Equal(t, MaxSlots, r.Slots())
	assert.Equal(t, 0, r.Interrupts)
}

func TestOptimizeStripes(t *testing.T) {
	var buf bytes.Buffer
	o := Optimizer{
		Quantizer: stripes{80},
		Logger:    log.New(&buf, "", 0),
	}

	r, err := o.Optimize(nil, 80)
	require.NoError(t, err)

	// Every color past the slot count needs one interrupt
	assert.Equal(t, MaxSlots+MaxInterrupts, r.Colors)
	assert.Equal(t, MaxSlots, r.Slots())
	assert.Equal(t, MaxInterrupts, r.Interrupts)
	assert.Len(t, r.Timeline.Events(), MaxInterrupts)
	assert.Contains(t, buf.String(), "Optimized to 66 colors with 50 interrupts using 16 slots")

	// More colors than the result never fit
	for n := r.Colors + 1; n <= r.Colors+5; n++ {
		q, err := o.Quantizer.Quantize(nil, n)
		require.NoError(t, err)
		tl, err := Analyze(q, n, MaxSlots)
		require.NoError(t, err)
		assert.True(t, len(tl) > MaxSlots || tl.Interrupts() > MaxInterrupts, "%d colors fit", n)
	}
}

func TestOptimizeBudget(t *testing.T) {
	o := Optimizer{
		Quantizer:     stripes{80},
		MaxSlots:      8,
		MaxInterrupts: 10,
	}

	r, err := o.Optimize(nil, 80)
	require.NoError(t, err)

	assert.Equal(t, 18, r.Colors)
	assert.Equal(t, 8, r.Slots())
	assert.Equal(t, 10, r.Interrupts)
}

func TestOptimizeStopsAtTotal(t *testing.T) {
	o := Optimizer{Quantizer: stripes{80}}

	r, err := o.Optimize(nil, 20)
	require.NoError(t, err)

	assert.Equal(t, 20, r.Colors)
	assert.Equal(t, 4, r.Interrupts)
}

func TestOptimizeErrors(t *testing.T) {
	errQuantizer := errors.New("quantizer failed")

	_, err := (&Optimizer{Quantizer: broken{errQuantizer}}).Optimize(nil, 20)
	assert.Equal(t, errQuantizer, err)

	_, err = (&Optimizer{Quantizer: broken{}}).Optimize(nil, 20)
	assert.True(t, errors.Is(err, ErrQuantization))
}
