package screen

import (
	"image"
	"sort"

	"github.com/mfitzp/scrimage/palette"
)

// Frame returns the screen as displayed, using the flash palette and flash
// interrupt colors if flash is set. Each pixel of the returned image is a
// hardware color index.
//
// Interrupts are applied in line order: every pixel below the interrupt line
// still showing the slot's current color takes the new color, which then
// becomes the slot's current color.
func (s *Screen) Frame(flash bool) *image.Paletted {
	slots := s.Palette
	if flash {
		slots = s.Flash
	}
	for i := range slots {
		slots[i] &= palette.Size - 1
	}

	m := image.NewPaletted(image.Rect(0, 0, Width, Height), palette.SAM.Palette())
	for i, p := range s.Pix {
		if i >= len(m.Pix) {
			break
		}
		m.Pix[i] = slots[p&(Slots-1)]
	}

	interrupts := append([]Interrupt(nil), s.Interrupts...)
	sort.SliceStable(interrupts, func(i, j int) bool {
		return interrupts[i].Line < interrupts[j].Line
	})

	for _, i := range interrupts {
		target := i.Color
		if flash {
			target = i.FlashColor
		}
		target &= palette.Size - 1

		current := slots[i.Slot&(Slots-1)]
		for y := int(i.Line) + 1; y < Height; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+Width]
			for x, c := range row {
				if c == current {
					row[x] = target
				}
			}
		}
		slots[i.Slot&(Slots-1)] = target
	}

	return m
}

// Frames returns the screen as displayed. If flash is set and the screen
// flashes, a second frame using the flash palette is included.
func (s *Screen) Frames(flash bool) []*image.Paletted {
	frames := []*image.Paletted{s.Frame(false)}
	if flash && s.Flashing() {
		frames = append(frames, s.Frame(true))
	}
	return frames
}
