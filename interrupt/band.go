package interrupt

import (
	"fmt"
	"image"
)

// Band is a run of lines, Start to Stop inclusive, where Color appears.
type Band struct {
	Color int
	Start int
	Stop  int
}

// Lines returns the number of lines covered by the band
func (b Band) Lines() int {
	return b.Stop - b.Start + 1
}

// Overlaps reports whether the two bands share at least one line. Bands
// that merely touch end to start do not overlap, bands ending and starting
// on the same line do.
func (b Band) Overlaps(o Band) bool {
	return b.Start <= o.Stop && o.Start <= b.Stop
}

func (b Band) String() string {
	return fmt.Sprintf("%d[%d-%d]", b.Color, b.Start, b.Stop)
}

// Bands is a list of bands
type Bands []Band

// Lines returns the total number of lines covered by all bands
func (bs Bands) Lines() (n int) {
	for _, b := range bs {
		n += b.Lines()
	}
	return
}

// Clashes reports whether any band in bs overlaps any band in o
func (bs Bands) Clashes(o Bands) bool {
	for _, a := range bs {
		for _, b := range o {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

func (bs Bands) without(b Band) Bands {
	for i := range bs {
		if bs[i] == b {
			return append(bs[:i:i], bs[i+1:]...)
		}
	}
	return bs
}

func rowColors(m *image.Paletted, y, colors int) ([]bool, error) {
	present := make([]bool, colors)
	row := m.Pix[(y-m.Rect.Min.Y)*m.Stride:]
	for x := 0; x < m.Rect.Dx(); x++ {
		c := int(row[x])
		if c >= colors {
			return nil, fmt.Errorf("%w: index %d, expected fewer than %d", ErrQuantization, c, colors)
		}
		present[c] = true
	}
	return present, nil
}

// Regions returns, for each color index less than colors, the bands of lines
// where that color appears in m. The bands of each color are in line order.
// A color that never appears has no bands.
func Regions(m *image.Paletted, colors int) ([]Bands, error) {
	regions := make([]Bands, colors)
	open := make([]int, colors)
	for c := range open {
		open[c] = -1
	}

	b := m.Bounds()
	last := b.Dy() - 1
	for y := 0; y < b.Dy(); y++ {
		present, err := rowColors(m, b.Min.Y+y, colors)
		if err != nil {
			return nil, err
		}
		for c := 0; c < colors; c++ {
			if present[c] && open[c] < 0 {
				open[c] = y
			}
			if open[c] < 0 {
				continue
			}
			switch {
			case !present[c]:
				regions[c] = append(regions[c], Band{c, open[c], y - 1})
				open[c] = -1
			case y == last:
				regions[c] = append(regions[c], Band{c, open[c], y})
				open[c] = -1
			}
		}
	}

	return regions, nil
}
