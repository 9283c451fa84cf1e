package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// PitchClass is a letter name, independent of accidentals
type PitchClass uint8

const (
	C PitchClass = iota
	D
	E
	F
	G
	A
	B
)

// PitchClasses in ascending order within an octave
var PitchClasses = []PitchClass{C, D, E, F, G, A, B}

var pitchClassNames = [...]string{"C", "D", "E", "F", "G", "A", "B"}

// natural semitone of each letter above C
var naturalSemitones = [...]int{0, 2, 4, 5, 7, 9, 11}

func (pc PitchClass) String() string {
	if int(pc) < len(pitchClassNames) {
		return pitchClassNames[pc]
	}
	return fmt.Sprintf("PitchClass(%d)", uint8(pc))
}

// Valid reports whether pc is one of the seven letters
func (pc PitchClass) Valid() bool {
	return int(pc) < len(pitchClassNames)
}

// Semitone returns the natural (unaltered) semitone of the letter above C
func (pc PitchClass) Semitone() int {
	return naturalSemitones[pc]
}

// ParsePitchClass parses a single letter name (case-insensitive)
func ParsePitchClass(s string) (PitchClass, error) {
	for i, name := range pitchClassNames {
		if strings.EqualFold(s, name) {
			return PitchClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pitch class %q", s)
}

// ScaleDegree is a 1-based position within a key's diatonic scale
type ScaleDegree int

// ScaleDegrees lists every valid degree
var ScaleDegrees = []ScaleDegree{1, 2, 3, 4, 5, 6, 7}

func (d ScaleDegree) Valid() bool {
	return d >= 1 && d <= 7
}

// Pitch is a key-relative pitch: the same value sounds differently under
// different keys. Register is the octave of the sounding pitch, so with no
// accidental Number/12-1 == Register.
type Pitch struct {
	Degree     ScaleDegree `json:"degree"`
	Register   int         `json:"register"`
	Accidental int         `json:"accidental,omitempty"` // semitones, negative is flat
}

// PitchCap is an absolute range boundary such as C4. Register follows letter
// octaves, so B#3 and C4 share a register boundary the usual way.
type PitchCap struct {
	Class    PitchClass `json:"pitchClass"`
	Register int        `json:"register"`
}

func (c PitchCap) String() string {
	return c.Class.String() + strconv.Itoa(c.Register)
}

// ParsePitchCap parses caps in the form "C4", "a0" or "B-1"
func ParsePitchCap(s string) (PitchCap, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return PitchCap{}, fmt.Errorf("invalid pitch cap %q", s)
	}
	class, err := ParsePitchClass(s[:1])
	if err != nil {
		return PitchCap{}, fmt.Errorf("invalid pitch cap %q: %w", s, err)
	}
	reg, err := strconv.Atoi(s[1:])
	if err != nil {
		return PitchCap{}, fmt.Errorf("invalid pitch cap %q: register: %w", s, err)
	}
	return PitchCap{Class: class, Register: reg}, nil
}

// Number returns the absolute pitch number of the natural letter
func (c PitchCap) Number() int {
	return c.Class.Semitone() + (c.Register+1)*12
}

// Raise returns the next letter up, rolling B over into the next register
func (c PitchCap) Raise() PitchCap {
	if c.Class == B {
		return PitchCap{Class: C, Register: c.Register + 1}
	}
	return PitchCap{Class: c.Class + 1, Register: c.Register}
}
