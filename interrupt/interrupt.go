/*
Package interrupt works out how to show more than 16 colors on a SAM Coupé
MODE 4 screen by redefining palette slots part way down the screen with line
interrupts.

Each color of a quantized image is reduced to the bands of lines it appears
on. Colors whose bands never share a line can take turns in the same palette
slot, each change of color costing one interrupt. The Optimizer keeps adding
colors for as long as the result still fits in the available slots and the
interrupt budget.
*/
package interrupt

import "errors"

const (
	// MaxSlots is the number of palette slots available in MODE 4
	MaxSlots = 16

	// MaxInterrupts is the default budget of line interrupts
	MaxInterrupts = 50
)

var (
	// ErrQuantization is returned when a quantized image uses more colors
	// than were asked for
	ErrQuantization = errors.New("interrupt: image has more colors than requested")

	// ErrNoSolution is returned when not even the minimum number of colors
	// fits in the slot and interrupt budget
	ErrNoSolution = errors.New("interrupt: no feasible color configuration")
)
