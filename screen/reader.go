package screen

import (
	"bytes"
	"image"
	"io"
	"io/ioutil"

	"github.com/mfitzp/scrimage/palette"
)

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

type decoder struct {
	r io.Reader

	screen *Screen

	// Enough to hold everything before the interrupts
	tmp [headerBytes]byte
}

func (d *decoder) readHeader() error {
	if _, err := io.ReadFull(d.r, d.tmp[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}

	s := d.screen
	for i, b := range d.tmp[:pixelBytes] {
		s.Pix[i<<1+0] = upperNibble(b) >> 4
		s.Pix[i<<1+1] = lowerNibble(b)
	}

	p := d.tmp[pixelBytes:]
	copy(s.Palette[:], p[0:])
	copy(s.Reserved[0][:], p[Slots:])
	copy(s.Flash[:], p[Slots+reservedSize:])
	copy(s.Reserved[1][:], p[2*Slots+reservedSize:])

	return nil
}

func (d *decoder) readInterrupts() error {
	b, err := ioutil.ReadAll(d.r)
	if err != nil {
		return err
	}

	switch {
	case len(b) == 0:
		return errNotEnough
	case b[len(b)-1] != terminator:
		return errNoTerminator
	case (len(b)-1)%eventBytes != 0:
		return errBadInterrupts
	}

	b = b[:len(b)-1]
	for i := 0; i < len(b); i += eventBytes {
		if b[i+1] >= Slots {
			return errBadSlot
		}
		d.screen.Interrupts = append(d.screen.Interrupts, Interrupt{
			Line:       b[i],
			Slot:       b[i+1],
			Color:      b[i+2],
			FlashColor: b[i+3],
		})
	}

	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r
	d.screen = &Screen{
		Pix: make([]uint8, numPixels),
	}

	if err := d.readHeader(); err != nil {
		return err
	}

	return d.readInterrupts()
}

// DecodeScreen reads a SCREEN$ from r
func DecodeScreen(r io.Reader) (*Screen, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return d.screen, nil
}

// UnmarshalBinary decodes the screen from binary form
func (s *Screen) UnmarshalBinary(b []byte) error {
	d, err := DecodeScreen(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*s = *d
	return nil
}

// Decode reads a SCREEN$ from r and returns it as an image.Image, with any
// line interrupts applied. The image uses the full hardware palette.
func Decode(r io.Reader) (image.Image, error) {
	s, err := DecodeScreen(r)
	if err != nil {
		return nil, err
	}
	return s.Frame(false), nil
}

// DecodeConfig returns the color model and dimensions of a SCREEN$. The
// whole screen is still validated.
func DecodeConfig(r io.Reader) (image.Config, error) {
	if _, err := DecodeScreen(r); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: palette.SAM.Palette(),
		Width:      Width,
		Height:     Height,
	}, nil
}
