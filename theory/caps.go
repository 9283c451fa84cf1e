package theory

// AllCaps is every selectable range boundary in ascending order, from the
// lowest piano key A0 to the highest C8
var AllCaps = buildCaps()

func buildCaps() []PitchCap {
	var caps []PitchCap
	last := PitchCap{Class: C, Register: 8}
	for c := (PitchCap{Class: A, Register: 0}); ; c = c.Raise() {
		caps = append(caps, c)
		if c == last {
			return caps
		}
	}
}

// CapIndex returns the position of c in AllCaps, or -1
func CapIndex(c PitchCap) int {
	for i, other := range AllCaps {
		if other == c {
			return i
		}
	}
	return -1
}

// CapIsLower reports whether a is strictly below b
func CapIsLower(a, b PitchCap) bool {
	return a.Number() < b.Number()
}

// CapIsHigher reports whether a is strictly above b
func CapIsHigher(a, b PitchCap) bool {
	return a.Number() > b.Number()
}

// CapsInRange returns the caps from lowest to highest inclusive. It returns
// nil when either bound is outside AllCaps or lowest is above highest.
func CapsInRange(lowest, highest PitchCap) []PitchCap {
	lo, hi := CapIndex(lowest), CapIndex(highest)
	if lo < 0 || hi < 0 || lo > hi {
		return nil
	}
	return append([]PitchCap(nil), AllCaps[lo:hi+1]...)
}
