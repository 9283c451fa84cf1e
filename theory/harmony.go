package theory

// Harmony is a roman-numeral chord label
type Harmony string

// ChordTone is one member of a harmony, relative to the key
type ChordTone struct {
	Degree     ScaleDegree
	Accidental int
}

var majorTransitions = map[Harmony][]Harmony{
	"I":    {"ii", "iii", "IV", "V", "vi", "viio"},
	"ii":   {"viio", "V"},
	"iii":  {"vi"},
	"IV":   {"ii", "viio", "V"},
	"V":    {"I", "vi"},
	"vi":   {"IV", "ii"},
	"viio": {"I"},
}

var minorTransitions = map[Harmony][]Harmony{
	"i":    {"iio", "III", "iv", "V", "VI", "VII"},
	"iio":  {"viio", "V"},
	"III":  {"VI", "iv", "iio"},
	"iv":   {"iio", "viio", "V"},
	"V":    {"VI", "i"},
	"VI":   {"iv", "iio"},
	"viio": {"i"},
	"VII":  {"III"},
}

func triad(root ScaleDegree) []ChordTone {
	return []ChordTone{
		{Degree: root},
		{Degree: (root+1)%7 + 1},
		{Degree: (root+3)%7 + 1},
	}
}

var majorTones = map[Harmony][]ChordTone{
	"I": triad(1), "ii": triad(2), "iii": triad(3), "IV": triad(4),
	"V": triad(5), "vi": triad(6), "viio": triad(7),
}

var minorTones = map[Harmony][]ChordTone{
	"i": triad(1), "iio": triad(2), "III": triad(3), "iv": triad(4),
	// raised leading tone
	"V":  {{Degree: 5}, {Degree: 7, Accidental: 1}, {Degree: 2}},
	"VI": triad(6), "VII": triad(7), "viio": triad(7),
}

// Tonic is the harmony a phrase in k starts on
func (k Key) Tonic() Harmony {
	if k.IsMajor() {
		return "I"
	}
	return "i"
}

// Transitions lists the harmonies that may follow h in k
func (k Key) Transitions(h Harmony) []Harmony {
	if k.IsMajor() {
		return majorTransitions[h]
	}
	return minorTransitions[h]
}

// ChordTones lists the degrees (with alterations) that make up h in k
func (k Key) ChordTones(h Harmony) []ChordTone {
	if k.IsMajor() {
		return majorTones[h]
	}
	return minorTones[h]
}
