/*
Package screen implements a SAM Coupé MODE 4 SCREEN$ decoder and encoder.

The screen is 256 by 192 pixels exactly, each pixel a 4-bit index into a
palette of 16 slots, each slot holding one of the 128 hardware colors. Line
interrupts can change the color held by a slot part way down the screen.

The file is written as 24576 bytes of pixel information, two pixels per byte
with the left pixel in the upper nibble, followed by the 16 byte palette, 4
reserved bytes, a second 16 byte palette used when the screen flashes, the 4
reserved bytes again, then 4 bytes per line interrupt and finally a 0xFF
terminator. There is no compression so the file is 24617 bytes plus 4 bytes
per interrupt.
*/
package screen

import (
	"errors"

	"github.com/mfitzp/scrimage/palette"
)

const (
	// Width of the screen in pixels
	Width = 256
	// Height of the screen in pixels
	Height = 192
	// Slots is the number of palette slots
	Slots = 16

	numPixels    = Width * Height
	pixelBytes   = numPixels >> 1
	reservedSize = 4
	headerBytes  = pixelBytes + 2*(Slots+reservedSize)
	eventBytes   = 4
	terminator   = 0xff

	// MinSize is the size of a screen without any interrupts
	MinSize = headerBytes + 1
)

var defaultReserved = [reservedSize]byte{0x00, 0x11, 0x22, 0x7f}

// FormatError reports that the input is not a valid screen
type FormatError string

func (e FormatError) Error() string { return "screen: invalid format: " + string(e) }

var (
	// ErrTooManySlots is returned when encoding pixels that use more than
	// the available palette slots
	ErrTooManySlots = errors.New("screen: more than 16 palette slots")

	errNotEnough     = FormatError("not enough data")
	errNoTerminator  = FormatError("missing terminator")
	errBadInterrupts = FormatError("truncated line interrupt")
	errBadSlot       = FormatError("invalid palette slot in line interrupt")
)

// Interrupt changes the color of palette slot Slot from the line after Line
// onwards. Color applies to the normal palette and FlashColor to the flash
// palette.
type Interrupt struct {
	Line       uint8
	Slot       uint8
	Color      uint8
	FlashColor uint8
}

// Screen is a decoded SCREEN$. It implements the encoding.BinaryMarshaler
// and encoding.BinaryUnmarshaler interfaces.
type Screen struct {
	// Pix holds the palette slot of each pixel in row order
	Pix []uint8
	// Palette holds the hardware color of each slot
	Palette [Slots]uint8
	// Flash holds the hardware color of each slot when flashing
	Flash [Slots]uint8
	// Reserved holds the 4 bytes following each palette
	Reserved [2][reservedSize]byte
	// Interrupts are applied in line order
	Interrupts []Interrupt
}

// New returns a blank screen with every palette slot set to bright white
func New() *Screen {
	s := &Screen{
		Pix:      make([]uint8, numPixels),
		Reserved: [2][reservedSize]byte{defaultReserved, defaultReserved},
	}
	for i := range s.Palette {
		s.Palette[i] = palette.White
		s.Flash[i] = palette.White
	}
	return s
}

// Flashing reports whether the screen looks any different with the flash
// palette
func (s *Screen) Flashing() bool {
	if s.Palette != s.Flash {
		return true
	}
	for _, i := range s.Interrupts {
		if i.Color != i.FlashColor {
			return true
		}
	}
	return false
}
