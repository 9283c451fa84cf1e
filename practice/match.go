package practice

import (
	"slices"

	"sightread/midi"
)

// HeldSet tracks which notes are currently down, regardless of the order
// they were pressed in
type HeldSet struct {
	notes map[int]struct{}
}

// Apply records a press or release. It reports whether the set changed.
func (h *HeldSet) Apply(ev midi.Event) bool {
	if h.notes == nil {
		h.notes = make(map[int]struct{})
	}
	n := int(ev.Note)
	_, down := h.notes[n]
	switch ev.Kind {
	case midi.Pressed:
		if down {
			return false
		}
		h.notes[n] = struct{}{}
	case midi.Released:
		if !down {
			return false
		}
		delete(h.notes, n)
	}
	return true
}

// Sorted returns the held notes in ascending order
func (h *HeldSet) Sorted() []int {
	out := make([]int, 0, len(h.notes))
	for n := range h.notes {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func (h *HeldSet) Len() int { return len(h.notes) }

func (h *HeldSet) Clear() { clear(h.notes) }

// Matches reports whether two ascending note lists are identical. An empty
// expectation never matches.
func Matches(held, expected []int) bool {
	if len(expected) == 0 {
		return false
	}
	return slices.Equal(held, expected)
}
