package score

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"sightread/theory"
)

// MaxNotesPerChord bounds the voice count: an inclusive octave holds eight
// diatonic steps
const MaxNotesPerChord = 8

// ErrInvalidSettings is wrapped by every validation failure
var ErrInvalidSettings = errors.New("invalid practice settings")

// SettingsError names the offending field
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *SettingsError) Unwrap() error { return ErrInvalidSettings }

// Staff configures one voice
type Staff struct {
	Duration      theory.Duration `json:"duration"`
	Highest       theory.PitchCap `json:"highest"`
	Lowest        theory.PitchCap `json:"lowest"`
	NotesPerChord int             `json:"notesPerChord"`
}

// Settings are the practice parameters for one phrase
type Settings struct {
	Lines           int                  `json:"lines"`
	MeasuresPerLine int                  `json:"measuresPerLine"`
	Key             theory.Key           `json:"key"`
	Time            theory.TimeSignature `json:"time"`
	UseHarmony      bool                 `json:"useHarmony"`
	Top             Staff                `json:"top"`
	Bottom          Staff                `json:"bottom"`
}

// DefaultSettings are the preferences a fresh install starts with
func DefaultSettings() Settings {
	return Settings{
		Lines:           2,
		MeasuresPerLine: 4,
		Key:             "C",
		Time:            theory.Time44,
		Top: Staff{
			Duration:      theory.Quarter,
			Highest:       theory.PitchCap{Class: theory.A, Register: 5},
			Lowest:        theory.PitchCap{Class: theory.C, Register: 4},
			NotesPerChord: 2,
		},
		Bottom: Staff{
			Duration:      theory.Quarter,
			Highest:       theory.PitchCap{Class: theory.B, Register: 3},
			Lowest:        theory.PitchCap{Class: theory.E, Register: 2},
			NotesPerChord: 2,
		},
	}
}

// WithTime switches the meter and resets both staves to its default duration
func (s Settings) WithTime(t theory.TimeSignature) Settings {
	s.Time = t
	s.Top.Duration = t.DefaultDuration()
	s.Bottom.Duration = t.DefaultDuration()
	return s
}

func invalid(field, format string, args ...any) error {
	reason := fmt.Sprintf(format, args...)
	return fault.Wrap(&SettingsError{Field: field, Reason: reason},
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc("invalid settings", field+": "+reason))
}

// Validate rejects settings the generator cannot satisfy. Every returned
// error matches ErrInvalidSettings and carries a *SettingsError.
func (s Settings) Validate() error {
	if s.Lines < 1 {
		return invalid("lines", "must be at least 1, got %d", s.Lines)
	}
	if s.MeasuresPerLine < 1 {
		return invalid("measuresPerLine", "must be at least 1, got %d", s.MeasuresPerLine)
	}
	if !s.Key.Valid() {
		return invalid("key", "unknown key signature %q", string(s.Key))
	}
	if !s.Time.Valid() {
		return invalid("time", "unsupported time signature %q", string(s.Time))
	}
	if err := s.Top.validate("top", s.Key, s.Time); err != nil {
		return err
	}
	return s.Bottom.validate("bottom", s.Key, s.Time)
}

func (st Staff) validate(name string, k theory.Key, t theory.TimeSignature) error {
	if !st.Duration.Valid() {
		return invalid(name+".duration", "unknown duration %q", string(st.Duration))
	}
	if !t.Allows(st.Duration) {
		return invalid(name+".duration", "%s notes do not fit %s", st.Duration, t)
	}
	if theory.CapIndex(st.Lowest) < 0 {
		return invalid(name+".lowest", "%s is outside the keyboard", st.Lowest)
	}
	if theory.CapIndex(st.Highest) < 0 {
		return invalid(name+".highest", "%s is outside the keyboard", st.Highest)
	}
	if theory.CapIsHigher(st.Lowest, st.Highest) {
		return invalid(name+".lowest", "%s is above highest %s", st.Lowest, st.Highest)
	}
	steps := len(k.Scale(k.CapToPitch(st.Lowest), k.CapToPitch(st.Highest)))
	limit := min(steps, MaxNotesPerChord)
	if st.NotesPerChord < 1 || st.NotesPerChord > limit {
		return invalid(name+".notesPerChord", "must be between 1 and %d for %s-%s, got %d",
			limit, st.Lowest, st.Highest, st.NotesPerChord)
	}
	return nil
}
