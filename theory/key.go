package theory

import (
	"fmt"
	"slices"
)

// Key names one of the 30 supported major/minor key signatures, spelled the
// way ABC notation spells them ("F#", "Bbm")
type Key string

// DegreeEntry resolves one scale degree of a key: the letter it is written
// with and its semitone above the C that starts the sounding octave. The
// semitone is 0..11, so B# in C# is 0 and Cb in Gb is 11.
type DegreeEntry struct {
	Semitone int
	Class    PitchClass
}

type keyInfo struct {
	major   bool
	sharps  int
	flats   int
	degrees [7]DegreeEntry
}

func d(c PitchClass, semitone int) DegreeEntry {
	return DegreeEntry{Semitone: semitone, Class: c}
}

// Keys in circle-of-fifths order, majors then minors
var Keys = []Key{
	"C", "G", "D", "A", "E", "B", "F#", "C#",
	"F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb",
	"Am", "Em", "Bm", "F#m", "C#m", "G#m", "D#m", "A#m",
	"Dm", "Gm", "Cm", "Fm", "Bbm", "Ebm", "Abm",
}

var keyTable = map[Key]keyInfo{
	"C":  {major: true, degrees: [7]DegreeEntry{d(C, 0), d(D, 2), d(E, 4), d(F, 5), d(G, 7), d(A, 9), d(B, 11)}},
	"G":  {major: true, sharps: 1, degrees: [7]DegreeEntry{d(G, 7), d(A, 9), d(B, 11), d(C, 0), d(D, 2), d(E, 4), d(F, 6)}},
	"D":  {major: true, sharps: 2, degrees: [7]DegreeEntry{d(D, 2), d(E, 4), d(F, 6), d(G, 7), d(A, 9), d(B, 11), d(C, 1)}},
	"A":  {major: true, sharps: 3, degrees: [7]DegreeEntry{d(A, 9), d(B, 11), d(C, 1), d(D, 2), d(E, 4), d(F, 6), d(G, 8)}},
	"E":  {major: true, sharps: 4, degrees: [7]DegreeEntry{d(E, 4), d(F, 6), d(G, 8), d(A, 9), d(B, 11), d(C, 1), d(D, 3)}},
	"B":  {major: true, sharps: 5, degrees: [7]DegreeEntry{d(B, 11), d(C, 1), d(D, 3), d(E, 4), d(F, 6), d(G, 8), d(A, 10)}},
	"F#": {major: true, sharps: 6, degrees: [7]DegreeEntry{d(F, 6), d(G, 8), d(A, 10), d(B, 11), d(C, 1), d(D, 3), d(E, 5)}},
	"C#": {major: true, sharps: 7, degrees: [7]DegreeEntry{d(C, 1), d(D, 3), d(E, 5), d(F, 6), d(G, 8), d(A, 10), d(B, 0)}},
	"F":  {major: true, flats: 1, degrees: [7]DegreeEntry{d(F, 5), d(G, 7), d(A, 9), d(B, 10), d(C, 0), d(D, 2), d(E, 4)}},
	"Bb": {major: true, flats: 2, degrees: [7]DegreeEntry{d(B, 10), d(C, 0), d(D, 2), d(E, 3), d(F, 5), d(G, 7), d(A, 9)}},
	"Eb": {major: true, flats: 3, degrees: [7]DegreeEntry{d(E, 3), d(F, 5), d(G, 7), d(A, 8), d(B, 10), d(C, 0), d(D, 2)}},
	"Ab": {major: true, flats: 4, degrees: [7]DegreeEntry{d(A, 8), d(B, 10), d(C, 0), d(D, 1), d(E, 3), d(F, 5), d(G, 7)}},
	"Db": {major: true, flats: 5, degrees: [7]DegreeEntry{d(D, 1), d(E, 3), d(F, 5), d(G, 6), d(A, 8), d(B, 10), d(C, 0)}},
	"Gb": {major: true, flats: 6, degrees: [7]DegreeEntry{d(G, 6), d(A, 8), d(B, 10), d(C, 11), d(D, 1), d(E, 3), d(F, 5)}},
	"Cb": {major: true, flats: 7, degrees: [7]DegreeEntry{d(C, 11), d(D, 1), d(E, 3), d(F, 4), d(G, 6), d(A, 8), d(B, 10)}},

	"Am":  {degrees: [7]DegreeEntry{d(A, 9), d(B, 11), d(C, 0), d(D, 2), d(E, 4), d(F, 5), d(G, 7)}},
	"Em":  {sharps: 1, degrees: [7]DegreeEntry{d(E, 4), d(F, 6), d(G, 7), d(A, 9), d(B, 11), d(C, 0), d(D, 2)}},
	"Bm":  {sharps: 2, degrees: [7]DegreeEntry{d(B, 11), d(C, 1), d(D, 2), d(E, 4), d(F, 6), d(G, 7), d(A, 9)}},
	"F#m": {sharps: 3, degrees: [7]DegreeEntry{d(F, 6), d(G, 8), d(A, 9), d(B, 11), d(C, 1), d(D, 2), d(E, 4)}},
	"C#m": {sharps: 4, degrees: [7]DegreeEntry{d(C, 1), d(D, 3), d(E, 4), d(F, 6), d(G, 8), d(A, 9), d(B, 11)}},
	"G#m": {sharps: 5, degrees: [7]DegreeEntry{d(G, 8), d(A, 10), d(B, 11), d(C, 1), d(D, 3), d(E, 4), d(F, 6)}},
	"D#m": {sharps: 6, degrees: [7]DegreeEntry{d(D, 3), d(E, 5), d(F, 6), d(G, 8), d(A, 10), d(B, 11), d(C, 1)}},
	"A#m": {sharps: 7, degrees: [7]DegreeEntry{d(A, 10), d(B, 0), d(C, 1), d(D, 3), d(E, 5), d(F, 6), d(G, 8)}},
	"Dm":  {flats: 1, degrees: [7]DegreeEntry{d(D, 2), d(E, 4), d(F, 5), d(G, 7), d(A, 9), d(B, 10), d(C, 0)}},
	"Gm":  {flats: 2, degrees: [7]DegreeEntry{d(G, 7), d(A, 9), d(B, 10), d(C, 0), d(D, 2), d(E, 3), d(F, 5)}},
	"Cm":  {flats: 3, degrees: [7]DegreeEntry{d(C, 0), d(D, 2), d(E, 3), d(F, 5), d(G, 7), d(A, 8), d(B, 10)}},
	"Fm":  {flats: 4, degrees: [7]DegreeEntry{d(F, 5), d(G, 7), d(A, 8), d(B, 10), d(C, 0), d(D, 1), d(E, 3)}},
	"Bbm": {flats: 5, degrees: [7]DegreeEntry{d(B, 10), d(C, 0), d(D, 1), d(E, 3), d(F, 5), d(G, 6), d(A, 8)}},
	"Ebm": {flats: 6, degrees: [7]DegreeEntry{d(E, 3), d(F, 5), d(G, 6), d(A, 8), d(B, 10), d(C, 11), d(D, 1)}},
	"Abm": {flats: 7, degrees: [7]DegreeEntry{d(A, 8), d(B, 10), d(C, 11), d(D, 1), d(E, 3), d(F, 4), d(G, 6)}},
}

// ParseKey returns the key with the given name
func ParseKey(s string) (Key, error) {
	k := Key(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown key signature %q", s)
	}
	return k, nil
}

func (k Key) String() string { return string(k) }

// Valid reports whether k is one of the supported keys
func (k Key) Valid() bool {
	_, ok := keyTable[k]
	return ok
}

// IsMajor reports whether k is a major key
func (k Key) IsMajor() bool {
	return keyTable[k].major
}

// Degree looks up the table entry for a scale degree
func (k Key) Degree(deg ScaleDegree) (DegreeEntry, bool) {
	info, ok := keyTable[k]
	if !ok || !deg.Valid() {
		return DegreeEntry{}, false
	}
	return info.degrees[deg-1], true
}

// mustDegree is the invariant guard behind every resolution. Keys are
// validated at the settings boundary, so a miss here is a programming error.
func (k Key) mustDegree(deg ScaleDegree) DegreeEntry {
	e, ok := k.Degree(deg)
	if !ok {
		panic(fmt.Sprintf("theory: key %q has no entry for degree %d", string(k), int(deg)))
	}
	return e
}

// DegreeOf returns the degree written with the given letter
func (k Key) DegreeOf(class PitchClass) (ScaleDegree, bool) {
	info, ok := keyTable[k]
	if !ok {
		return 0, false
	}
	for i, e := range info.degrees {
		if e.Class == class {
			return ScaleDegree(i + 1), true
		}
	}
	return 0, false
}

var (
	orderOfSharps = []PitchClass{F, C, G, D, A, E, B}
	orderOfFlats  = []PitchClass{B, E, A, D, G, C, F}
)

// Signature returns the key's accidental direction (+1 sharps, -1 flats)
// and the letters it alters, in the order they are written. Keys with no
// accidentals report +1 and an empty list.
func (k Key) Signature() (direction int, classes []PitchClass) {
	info := keyTable[k]
	if info.flats > 0 {
		return -1, slices.Clone(orderOfFlats[:info.flats])
	}
	return 1, slices.Clone(orderOfSharps[:info.sharps])
}

// KeyAccidental returns the alteration the key signature applies to a letter
func (k Key) KeyAccidental(class PitchClass) int {
	dir, classes := k.Signature()
	for _, c := range classes {
		if c == class {
			return dir
		}
	}
	return 0
}
