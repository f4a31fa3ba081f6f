/*
Package palette implements the fixed 128 color palette of the SAM Coupé.

Each 7-bit palette index is made up of two bits each of red, green and blue
intensity plus a shared brightness bit:

	bit 6 5 4 3 2 1 0
	    G R B x G R B

The brightness bit (x) becomes the least significant bit of each 3-bit
channel level, which then selects one of eight intensities.
*/
package palette

import (
	"image/color"
)

const (
	// Size is the number of colors the hardware can display
	Size = 128

	// White is bright white, used to fill palette slots that are not used
	White = Size - 1
)

var intensity = [8]uint8{0x00, 0x24, 0x49, 0x6d, 0x92, 0xb6, 0xdb, 0xff}

// ColorForIndex returns the RGB value of hardware color i. Only the lower
// seven bits of i are used.
func ColorForIndex(i uint8) color.RGBA {
	r := i&0x02 | i&0x20>>3 | i&0x08>>3
	g := i&0x04>>1 | i&0x40>>4 | i&0x08>>3
	b := i&0x01<<1 | i&0x10>>2 | i&0x08>>3
	return color.RGBA{intensity[r], intensity[g], intensity[b], 0xff}
}

// Palette is the precomputed hardware palette along with a reverse lookup
// table. Once built it is never modified so it's safe to share between
// goroutines.
type Palette struct {
	colors  [Size]color.RGBA
	reverse map[color.RGBA]uint8
}

// SAM is the hardware palette, built once at startup
var SAM = New()

// New builds the hardware palette
func New() *Palette {
	p := &Palette{
		reverse: make(map[color.RGBA]uint8, Size),
	}
	for i := range p.colors {
		p.colors[i] = ColorForIndex(uint8(i))
		p.reverse[p.colors[i]] = uint8(i)
	}
	return p
}

// Color returns the RGB value of hardware color i
func (p *Palette) Color(i uint8) color.RGBA {
	return p.colors[i&(Size-1)]
}

// Palette returns the hardware colors as a color.Palette, suitable for
// creating an image.Paletted where each index is a hardware color.
func (p *Palette) Palette() color.Palette {
	cp := make(color.Palette, Size)
	for i, c := range p.colors {
		cp[i] = c
	}
	return cp
}

func sqDiff(x, y uint8) int {
	d := int(x) - int(y)
	return d * d
}

// Index returns the hardware color nearest to c using the squared Euclidean
// distance in RGB space. Ties go to the lowest index.
func (p *Palette) Index(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	rgb := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xff}

	if i, ok := p.reverse[rgb]; ok {
		return i
	}

	best, bestSum := 0, 1<<31-1
	for i, hc := range p.colors {
		sum := sqDiff(rgb.R, hc.R) + sqDiff(rgb.G, hc.G) + sqDiff(rgb.B, hc.B)
		if sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return uint8(best)
}

// Indices maps each color of cp to its nearest hardware color
func (p *Palette) Indices(cp color.Palette) []uint8 {
	out := make([]uint8, len(cp))
	for i, c := range cp {
		out[i] = p.Index(c)
	}
	return out
}
