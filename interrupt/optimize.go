package interrupt

import (
	"image"
	"io/ioutil"
	"log"
)

// Quantizer reduces an image to at most the given number of colors. Every
// pixel of the returned image must use an index less than colors.
type Quantizer interface {
	Quantize(m image.Image, colors int) (*image.Paletted, error)
}

// Result is the best color configuration found by an Optimizer
type Result struct {
	// Colors is the number of colors the image was quantized to
	Colors int
	// Image is the quantized image the Timeline was computed from
	Image *image.Paletted
	// Timeline is the slot assignment for each color
	Timeline Timeline
	// Interrupts is the number of interrupts needed
	Interrupts int
}

// Slots returns the number of palette slots used
func (r *Result) Slots() int {
	return len(r.Timeline)
}

// Optimizer searches for the largest number of colors that can be shown
// within the slot and interrupt budgets.
type Optimizer struct {
	Quantizer Quantizer

	// MaxSlots defaults to MaxSlots if zero
	MaxSlots int
	// MaxInterrupts defaults to MaxInterrupts if zero
	MaxInterrupts int

	Logger *log.Logger
}

func (o *Optimizer) maxSlots() int {
	if o.MaxSlots > 0 {
		return o.MaxSlots
	}
	return MaxSlots
}

func (o *Optimizer) maxInterrupts() int {
	if o.MaxInterrupts > 0 {
		return o.MaxInterrupts
	}
	return MaxInterrupts
}

func (o *Optimizer) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(ioutil.Discard, "", 0)
}

// Analyze computes the slot timeline for m, which must use no more than
// colors colors. Packing stops once no more than limit slots are used, zero
// packs as far as possible.
func Analyze(m *image.Paletted, colors, limit int) (Timeline, error) {
	regions, err := Regions(m, colors)
	if err != nil {
		return nil, err
	}
	return Simplify(Pack(regions, limit)), nil
}

// Optimize quantizes m to increasing numbers of colors, starting from the
// number of slots, and returns the last configuration that fits before one
// doesn't. The search never goes beyond total colors, which should be the
// number of distinct colors in m.
//
// Adding colors only ever adds bands so once a color count doesn't fit, no
// higher count is expected to either.
func (o *Optimizer) Optimize(m image.Image, total int) (*Result, error) {
	logger := o.logger()
	slots, budget := o.maxSlots(), o.maxInterrupts()

	last := total
	if last < slots {
		last = slots
	}

	var best *Result
	for n := slots; n <= last; n++ {
		q, err := o.Quantizer.Quantize(m, n)
		if err != nil {
			return nil, err
		}

		t, err := Analyze(q, n, slots)
		if err != nil {
			return nil, err
		}

		r := &Result{
			Colors:     n,
			Image:      q,
			Timeline:   t,
			Interrupts: t.Interrupts(),
		}

		logger.Printf("Trying %d colors uses %d slots and %d interrupts\n", n, r.Slots(), r.Interrupts)

		if r.Slots() > slots || r.Interrupts > budget {
			break
		}
		best = r
	}

	if best == nil {
		return nil, ErrNoSolution
	}

	logger.Printf("Optimized to %d colors with %d interrupts using %d slots\n", best.Colors, best.Interrupts, best.Slots())

	return best, nil
}
