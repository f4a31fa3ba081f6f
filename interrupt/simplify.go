package interrupt

import "sort"

// Simplify tidies up packed slots so they need as few interrupts as
// possible, returning them as a Timeline.
//
// Any band that was packed into another color's slot goes back to its own
// color's slot if that slot survived packing and the band fits. Consecutive
// bands of the same color within a slot are then joined together, as the
// color can just stay put between them.
func Simplify(slots []Slot) Timeline {
	out := make([]Slot, len(slots))
	home := make(map[int]int, len(slots))
	for i, s := range slots {
		out[i] = Slot{Key: s.Key, Bands: append(Bands(nil), s.Bands...)}
		home[s.Key] = i
	}

	for i := range out {
		for _, b := range append(Bands(nil), out[i].Bands...) {
			if b.Color == out[i].Key {
				continue
			}
			h, ok := home[b.Color]
			if !ok || out[h].Bands.Clashes(Bands{b}) {
				continue
			}
			out[h].Bands = append(out[h].Bands, b)
			out[i].Bands = out[i].Bands.without(b)
		}
	}

	t := make(Timeline, 0, len(out))
	for _, s := range out {
		if len(s.Bands) == 0 {
			continue
		}
		t = append(t, coalesce(s.Bands))
	}
	return t
}

func coalesce(bs Bands) Bands {
	sort.SliceStable(bs, func(i, j int) bool {
		return bs[i].Start < bs[j].Start
	})

	out := Bands{bs[0]}
	for _, b := range bs[1:] {
		last := &out[len(out)-1]
		if b.Color != last.Color {
			out = append(out, b)
			continue
		}
		if b.Stop > last.Stop {
			last.Stop = b.Stop
		}
	}
	return out
}
