package scrimage

import (
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"
	"os"

	"github.com/mfitzp/scrimage/interrupt"
	"github.com/mfitzp/scrimage/palette"
	"github.com/mfitzp/scrimage/raster"
	"github.com/mfitzp/scrimage/screen"
)

// EncodeOptions control how images are converted to screens
type EncodeOptions struct {
	// Dither the image with the full hardware palette before reducing
	// the number of colors
	Dither bool
	// Interrupts allows more than 16 colors using line interrupts
	Interrupts bool
	// MaxInterrupts limits the number of line interrupts, defaulting to
	// interrupt.MaxInterrupts if zero
	MaxInterrupts int
	// Blur applies a Gaussian blur with this sigma before anything else
	Blur float32
}

func (o EncodeOptions) maxInterrupts() int {
	if o.MaxInterrupts > 0 {
		return o.MaxInterrupts
	}
	return interrupt.MaxInterrupts
}

// String returns the options in a form suitable as a cache key
func (o EncodeOptions) String() string {
	return fmt.Sprintf("dither=%t interrupts=%t max=%d blur=%g", o.Dither, o.Interrupts, o.maxInterrupts(), o.Blur)
}

// Encode converts m to a screen. The image is resized and cropped to fill
// the screen.
func (c *Converter) Encode(m image.Image, opts EncodeOptions) (*screen.Screen, error) {
	var fit image.Image = raster.Fit(m, screen.Width, screen.Height)
	fit = raster.Blur(fit, opts.Blur)

	// Upper bound on what's achievable
	total := raster.CountColors(fit, palette.Size-1)

	if opts.Dither {
		fit = raster.Dither(fit, palette.SAM.Palette())
	}

	if !opts.Interrupts {
		q, err := raster.MedianCut{}.Quantize(fit, screen.Slots)
		if err != nil {
			return nil, err
		}
		return fromPaletted(snapPaletted(q))
	}

	o := interrupt.Optimizer{
		Quantizer:     hardwareQuantizer{raster.MedianCut{}},
		MaxSlots:      screen.Slots,
		MaxInterrupts: opts.maxInterrupts(),
		Logger:        c.logger,
	}

	r, err := o.Optimize(fit, total)
	if err != nil {
		return nil, err
	}

	return fromTimeline(r.Image, r.Timeline)
}

// hardwareQuantizer snaps the output of another quantizer to the hardware
// palette, so colors that end up identical on screen share one index and
// never compete for slots.
type hardwareQuantizer struct {
	q interrupt.Quantizer
}

func (h hardwareQuantizer) Quantize(m image.Image, colors int) (*image.Paletted, error) {
	q, err := h.q.Quantize(m, colors)
	if err != nil {
		return nil, err
	}
	return snapPaletted(q), nil
}

// snapPaletted returns q with its palette replaced by the nearest hardware
// colors, entries that snap to the same hardware color are merged. Indices
// are assigned in order of first appearance in the original palette.
func snapPaletted(q *image.Paletted) *image.Paletted {
	remap := make([]uint8, len(q.Palette))
	seen := make(map[uint8]uint8, len(q.Palette))
	var p color.Palette
	for i, hw := range palette.SAM.Indices(q.Palette) {
		j, ok := seen[hw]
		if !ok {
			j = uint8(len(p))
			seen[hw] = j
			p = append(p, palette.SAM.Color(hw))
		}
		remap[i] = j
	}

	b := q.Bounds()
	m := image.NewPaletted(b, p)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := q.ColorIndexAt(x, y); int(c) < len(remap) {
				m.SetColorIndex(x, y, remap[c])
			}
		}
	}
	return m
}

// Plain 16 color screen, each palette index is a slot
func fromPaletted(q *image.Paletted) (*screen.Screen, error) {
	if len(q.Palette) > screen.Slots {
		return nil, screen.ErrTooManySlots
	}

	s := screen.New()
	copy(s.Palette[:], palette.SAM.Indices(q.Palette))
	s.Flash = s.Palette

	b := q.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			s.Pix[y*screen.Width+x] = q.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
		}
	}

	return s, nil
}

func fromTimeline(q *image.Paletted, t interrupt.Timeline) (*screen.Screen, error) {
	if len(t) > screen.Slots {
		return nil, screen.ErrTooManySlots
	}

	hw := palette.SAM.Indices(q.Palette)

	s := screen.New()
	for slot, c := range t.Initial() {
		s.Palette[slot] = hw[c]
	}
	s.Flash = s.Palette

	for _, e := range t.Events() {
		s.Interrupts = append(s.Interrupts, screen.Interrupt{
			Line:       uint8(e.Line),
			Slot:       uint8(e.Slot),
			Color:      hw[e.Color],
			FlashColor: hw[e.Color],
		})
	}

	s.Pix = t.Normalize(q)

	return s, nil
}

func (c *Converter) encodeReader(r io.Reader, opts EncodeOptions) ([]byte, error) {
	h := sha1.New()
	m, err := raster.Decode(io.TeeReader(r, h))
	if err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	if c.db != nil {
		b, err := c.db.Find(sha, opts.String())
		if err != nil {
			return nil, err
		}
		if b != nil {
			c.logger.Printf("Using cached screen for image with SHA1 %s\n", sha)
			return b, nil
		}
	}

	s, err := c.Encode(m, opts)
	if err != nil {
		return nil, err
	}

	b, err := s.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if c.db != nil {
		if err := c.db.Add(sha, opts.String(), len(s.Interrupts), b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// EncodeFile converts the image in file to a screen written to out. If out
// is empty the screen is written alongside the image with the extension
// replaced.
func (c *Converter) EncodeFile(file, out string, opts EncodeOptions) error {
	if out == "" {
		out = outputFilename(file, Extension)
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := c.encodeReader(f, opts)
	if err != nil {
		return err
	}

	if err := ioutil.WriteFile(out, b, 0666); err != nil {
		return err
	}

	c.logger.Printf("Converted \"%s\" to \"%s\"\n", file, out)

	return nil
}

// EncodeFiles converts each image in files to a screen. If out is not empty
// then only one file may be given.
func (c *Converter) EncodeFiles(files []string, out string, opts EncodeOptions) error {
	if len(files) > 1 && out != "" {
		return ErrMultipleOutput
	}
	return c.run(files, func(file string) error {
		return c.EncodeFile(file, out, opts)
	})
}
