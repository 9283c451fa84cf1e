package theory

import "fmt"

// UnitsPerWhole is the grid subdivision: one grid unit is a 96th note
const UnitsPerWhole = 96

// Duration names a note length
type Duration string

const (
	Whole         Duration = "whole"
	Half          Duration = "half"
	Quarter       Duration = "quarter"
	Eighth        Duration = "eighth"
	Sixteenth     Duration = "sixteenth"
	QuarterDotted Duration = "quarter-dotted"
	HalfDotted    Duration = "half-dotted"
)

var durationUnits = map[Duration]int{
	Whole:         96,
	Half:          48,
	Quarter:       24,
	Eighth:        12,
	Sixteenth:     6,
	QuarterDotted: 36,
	HalfDotted:    72,
}

// Units returns the duration's length in grid units, or 0 if unknown
func (d Duration) Units() int {
	return durationUnits[d]
}

func (d Duration) Valid() bool {
	return d.Units() > 0
}

func (d Duration) String() string { return string(d) }

// ParseDuration accepts the duration names used in preferences
func ParseDuration(s string) (Duration, error) {
	d := Duration(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown duration %q", s)
	}
	return d, nil
}

// TimeSignature is one of the supported meters
type TimeSignature string

const (
	Time34 TimeSignature = "3/4"
	Time44 TimeSignature = "4/4"
	Time68 TimeSignature = "6/8"
)

// TimeSignatures in the order the UI cycles through them
var TimeSignatures = []TimeSignature{Time44, Time34, Time68}

type meterInfo struct {
	units     int
	beamUnits int
	num, den  uint8
	allowed   []Duration
	fallback  Duration
}

var meters = map[TimeSignature]meterInfo{
	Time34: {units: 72, beamUnits: 24, num: 3, den: 4,
		allowed: []Duration{Sixteenth, Eighth, Quarter, HalfDotted}, fallback: Quarter},
	Time44: {units: 96, beamUnits: 24, num: 4, den: 4,
		allowed: []Duration{Whole, Half, Quarter, Eighth, Sixteenth}, fallback: Quarter},
	Time68: {units: 72, beamUnits: 36, num: 6, den: 8,
		allowed: []Duration{Sixteenth, Eighth, Quarter, QuarterDotted}, fallback: QuarterDotted},
}

func (t TimeSignature) String() string { return string(t) }

func (t TimeSignature) Valid() bool {
	_, ok := meters[t]
	return ok
}

// ParseTimeSignature accepts "3/4", "4/4" or "6/8"
func ParseTimeSignature(s string) (TimeSignature, error) {
	t := TimeSignature(s)
	if !t.Valid() {
		return "", fmt.Errorf("unsupported time signature %q", s)
	}
	return t, nil
}

// MeasureUnits is the measure length in grid units
func (t TimeSignature) MeasureUnits() int {
	return meters[t].units
}

// BeamUnits is the length of one beam group in grid units
func (t TimeSignature) BeamUnits() int {
	return meters[t].beamUnits
}

// Fraction returns numerator and denominator
func (t TimeSignature) Fraction() (num, den uint8) {
	m := meters[t]
	return m.num, m.den
}

// AllowedDurations lists the durations a staff may use in this meter.
// Every one of them divides the measure length.
func (t TimeSignature) AllowedDurations() []Duration {
	return append([]Duration(nil), meters[t].allowed...)
}

// Allows reports whether d may be used in this meter
func (t TimeSignature) Allows(d Duration) bool {
	for _, a := range meters[t].allowed {
		if a == d {
			return true
		}
	}
	return false
}

// DefaultDuration is the duration both staves reset to when the meter changes
func (t TimeSignature) DefaultDuration() Duration {
	return meters[t].fallback
}
