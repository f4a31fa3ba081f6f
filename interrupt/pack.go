package interrupt

import "sort"

// Slot is a palette slot shared by one or more colors. Key is the color that
// originally owned the slot.
type Slot struct {
	Key   int
	Bands Bands
}

// Variation of bin-packing problem; each color is an item whose bands must
// not overlap anything else in the same slot. Greedy rather than optimal:
// the color covering the fewest lines is merged into the first color,
// largest first, it doesn't clash with, and so on until nothing more can be
// merged.
//
// A limit greater than zero stops packing as soon as there are no more than
// that many slots, every merge past that point only costs interrupts.
func Pack(regions []Bands, limit int) []Slot {
	var slots []Slot
	for c, bs := range regions {
		if len(bs) == 0 {
			continue
		}
		slots = append(slots, Slot{
			Key:   c,
			Bands: append(Bands(nil), bs...),
		})
	}

	for limit <= 0 || len(slots) > limit {
		a, b, ok := mergeCandidates(slots)
		if !ok {
			break
		}
		slots[a].Bands = append(slots[a].Bands, slots[b].Bands...)
		slots = append(slots[:b], slots[b+1:]...)
	}

	return slots
}

func mergeCandidates(slots []Slot) (int, int, bool) {
	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return slots[order[i]].Bands.Lines() < slots[order[j]].Bands.Lines()
	})

	for n, a := range order {
		for m := len(order) - 1; m > n; m-- {
			b := order[m]
			if !slots[a].Bands.Clashes(slots[b].Bands) {
				return a, b, true
			}
		}
	}
	return 0, 0, false
}
