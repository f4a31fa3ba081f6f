package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForIndex(t *testing.T) {
	tests := []struct {
		name  string
		index uint8
		want  color.RGBA
	}{
		{"black", 0, color.RGBA{0x00, 0x00, 0x00, 0xff}},
		{"bright white", White, color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"brightness only", 0x08, color.RGBA{0x24, 0x24, 0x24, 0xff}},
		{"blue low bit", 0x01, color.RGBA{0x00, 0x00, 0x49, 0xff}},
		{"red low bit", 0x02, color.RGBA{0x49, 0x00, 0x00, 0xff}},
		{"green low bit", 0x04, color.RGBA{0x00, 0x49, 0x00, 0xff}},
		{"blue high bit", 0x10, color.RGBA{0x00, 0x00, 0x92, 0xff}},
		{"red high bit", 0x20, color.RGBA{0x92, 0x00, 0x00, 0xff}},
		{"green high bit", 0x40, color.RGBA{0x00, 0x92, 0x00, 0xff}},
		{"bright red", 0x2a, color.RGBA{0xff, 0x24, 0x24, 0xff}},
		{"upper bit ignored", 0x80 | 0x22, color.RGBA{0xdb, 0x00, 0x00, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorForIndex(tt.index))
		})
	}
}

func TestIndexIsIdempotent(t *testing.T) {
	p := New()
	for i := 0; i < Size; i++ {
		assert.Equal(t, uint8(i), p.Index(ColorForIndex(uint8(i))), "index %d", i)
	}
}

func TestColorsAreDistinct(t *testing.T) {
	seen := make(map[color.RGBA]int)
	for i := 0; i < Size; i++ {
		c := SAM.Color(uint8(i))
		if j, ok := seen[c]; ok {
			t.Fatalf("index %d has the same color as %d", i, j)
		}
		seen[c] = i
	}
}

func TestIndexNearest(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want uint8
	}{
		{"near black", color.RGBA{0x05, 0x02, 0x03, 0xff}, 0},
		{"near white", color.RGBA{0xf0, 0xfa, 0xfe, 0xff}, White},
		{"pure red", color.RGBA{0xff, 0x00, 0x00, 0xff}, 0x22},
		{"grey", color.Gray{0x80}, 0x70},
		// Exactly halfway between black and the brightness-only grey
		{"tie goes low", color.RGBA{0x12, 0x12, 0x12, 0xff}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SAM.Index(tt.c))
		})
	}
}

func TestPalette(t *testing.T) {
	cp := SAM.Palette()
	assert.Len(t, cp, Size)
	for i, c := range cp {
		assert.Equal(t, SAM.Color(uint8(i)), c)
	}
	assert.Equal(t, []uint8{0, White}, SAM.Indices(color.Palette{color.Black, color.White}))
}
