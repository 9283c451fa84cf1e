package theory

import (
	"strconv"
	"strings"
)

// AccidentalMark renders a semitone alteration as sharps or flats
func AccidentalMark(n int) string {
	switch {
	case n > 0:
		return strings.Repeat("#", n)
	case n < 0:
		return strings.Repeat("b", -n)
	}
	return ""
}

// Alteration returns how far p's written letter is altered from natural,
// counting both the key signature and p's own accidental
func (k Key) Alteration(p Pitch) int {
	e := k.mustDegree(p.Degree)
	return k.KeyAccidental(e.Class) + p.Accidental
}

// Spell renders p under k as letter, accidental and written octave ("F#4",
// "Cb5", "B#3")
func (k Key) Spell(p Pitch) string {
	e := k.mustDegree(p.Degree)
	return e.Class.String() + AccidentalMark(k.Alteration(p)) + strconv.Itoa(k.WrittenRegister(p))
}

// SpellCap renders a range boundary with the accidental the key signature
// gives its letter, so C4 reads "C#4" in D major
func (k Key) SpellCap(c PitchCap) string {
	return c.Class.String() + AccidentalMark(k.KeyAccidental(c.Class)) + strconv.Itoa(c.Register)
}
