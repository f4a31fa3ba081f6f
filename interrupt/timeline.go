package interrupt

import (
	"image"
	"sort"
)

// Timeline lists, for each palette slot, the bands of color it shows from
// the top of the screen down. The first band of each slot is its initial
// color, each following band needs an interrupt.
type Timeline []Bands

// Interrupts returns the number of interrupts needed to show t
func (t Timeline) Interrupts() (n int) {
	for _, bs := range t {
		if len(bs) > 1 {
			n += len(bs) - 1
		}
	}
	return
}

// Initial returns the color each slot holds at the top of the screen
func (t Timeline) Initial() []int {
	colors := make([]int, len(t))
	for i, bs := range t {
		colors[i] = bs[0].Color
	}
	return colors
}

// Event changes the color of Slot to Color from the line after Line onwards
type Event struct {
	Line  int
	Slot  int
	Color int
}

// Events returns the interrupts needed to show t, in line order
func (t Timeline) Events() []Event {
	var events []Event
	for slot, bs := range t {
		for _, b := range bs[1:] {
			events = append(events, Event{
				Line:  b.Start - 1,
				Slot:  slot,
				Color: b.Color,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Line < events[j].Line
	})
	return events
}

// Normalize returns the pixels of m, in row order, replaced by the slot
// showing each pixel's color on that line. m must be the image t was
// computed from.
func (t Timeline) Normalize(m *image.Paletted) []uint8 {
	b := m.Bounds()

	// Slot showing each color on each line, -1 if none
	lookup := make(map[int][]int)
	for slot, bs := range t {
		for _, band := range bs {
			lines, ok := lookup[band.Color]
			if !ok {
				lines = make([]int, b.Dy())
				for i := range lines {
					lines[i] = -1
				}
				lookup[band.Color] = lines
			}
			for y := band.Start; y <= band.Stop && y < len(lines); y++ {
				if lines[y] < 0 {
					lines[y] = slot
				}
			}
		}
	}

	pix := make([]uint8, 0, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := int(m.ColorIndexAt(b.Min.X+x, b.Min.Y+y))
			var slot int
			if lines, ok := lookup[c]; ok && lines[y] >= 0 {
				slot = lines[y]
			}
			pix = append(pix, uint8(slot))
		}
	}
	return pix
}
