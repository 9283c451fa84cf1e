// Package score holds generated practice phrases and the generator that
// builds them.
package score

import "sightread/theory"

// Chord is one or more pitches struck together in a single voice. Pitches
// are ascending by resolved number and span at most an octave.
type Chord struct {
	ID       string          `json:"id"`
	Duration theory.Duration `json:"duration"`
	Pitches  []theory.Pitch  `json:"pitches"`
}

// Slot is one grid unit of a measure. A voice is nil unless one of its
// chords starts here.
type Slot struct {
	Top    *Chord `json:"top,omitempty"`
	Bottom *Chord `json:"bottom,omitempty"`
}

// Sounding reports whether either voice starts a chord in this slot
func (s Slot) Sounding() bool {
	return s.Top != nil || s.Bottom != nil
}

// Measure has one slot per grid unit of its time signature
type Measure struct {
	Key   theory.Key           `json:"key"`
	Time  theory.TimeSignature `json:"time"`
	Slots []Slot               `json:"slots"`
}

// Line is one row of measures as laid out on screen
type Line struct {
	Measures []Measure `json:"measures"`
}

// Score is a generated phrase
type Score struct {
	Key   theory.Key           `json:"key"`
	Time  theory.TimeSignature `json:"time"`
	Lines []Line               `json:"lines"`
}

// Measures flattens the lines. The returned pointers alias the score.
func (s *Score) Measures() []*Measure {
	var out []*Measure
	for li := range s.Lines {
		for mi := range s.Lines[li].Measures {
			out = append(out, &s.Lines[li].Measures[mi])
		}
	}
	return out
}

// Chords returns every chord in playing order, top before bottom within a slot
func (s *Score) Chords() []*Chord {
	var out []*Chord
	for _, m := range s.Measures() {
		for _, slot := range m.Slots {
			if slot.Top != nil {
				out = append(out, slot.Top)
			}
			if slot.Bottom != nil {
				out = append(out, slot.Bottom)
			}
		}
	}
	return out
}

// Numbers resolves a chord's pitches under k
func (c *Chord) Numbers(k theory.Key) []int {
	out := make([]int, len(c.Pitches))
	for i, p := range c.Pitches {
		out[i] = k.Number(p)
	}
	return out
}
