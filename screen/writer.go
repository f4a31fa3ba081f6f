package screen

import (
	"bytes"
	"io"
	"sort"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) writePixels(pix []uint8) error {
	if len(pix) != numPixels {
		return FormatError("wrong number of pixels")
	}

	var tmp [pixelBytes]byte
	for i := range tmp {
		a, b := pix[i<<1+0], pix[i<<1+1]
		if a >= Slots || b >= Slots {
			return ErrTooManySlots
		}
		tmp[i] = a<<4 | b
	}

	_, err := e.w.Write(tmp[:])
	return err
}

func (e *encoder) writeInterrupts(interrupts []Interrupt) error {
	sorted := append([]Interrupt(nil), interrupts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Line < sorted[j].Line
	})

	for _, i := range sorted {
		if i.Slot >= Slots {
			return ErrTooManySlots
		}
		if _, err := e.w.Write([]byte{i.Line, i.Slot, i.Color, i.FlashColor}); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) encode(s *Screen) error {
	if err := e.writePixels(s.Pix); err != nil {
		return err
	}

	for _, b := range [][]byte{s.Palette[:], s.Reserved[0][:], s.Flash[:], s.Reserved[1][:]} {
		if _, err := e.w.Write(b); err != nil {
			return err
		}
	}

	if err := e.writeInterrupts(s.Interrupts); err != nil {
		return err
	}

	_, err := e.w.Write([]byte{terminator})
	return err
}

// Encode writes the Screen s to w in SCREEN$ format. Interrupts are written
// in line order.
func Encode(w io.Writer, s *Screen) error {
	e := encoder{w: w}
	return e.encode(s)
}

// MarshalBinary encodes the screen into binary form and returns the result
func (s *Screen) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, s); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
