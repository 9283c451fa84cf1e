package score

import (
	"errors"
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sightread/theory"
)

func mustCap(t *testing.T, s string) theory.PitchCap {
	t.Helper()
	c, err := theory.ParsePitchCap(s)
	require.NoError(t, err)
	return c
}

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, theory.Key("C"), s.Key)
	assert.Equal(t, theory.Time44, s.Time)
	assert.Equal(t, "C4", s.Top.Lowest.String())
	assert.Equal(t, "A5", s.Top.Highest.String())
	assert.Equal(t, "E2", s.Bottom.Lowest.String())
	assert.Equal(t, "B3", s.Bottom.Highest.String())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
		field  string
	}{
		{"no lines", func(s *Settings) { s.Lines = 0 }, "lines"},
		{"no measures", func(s *Settings) { s.MeasuresPerLine = 0 }, "measuresPerLine"},
		{"unknown key", func(s *Settings) { s.Key = "H" }, "key"},
		{"unknown meter", func(s *Settings) { s.Time = "5/4" }, "time"},
		{"unknown duration", func(s *Settings) { s.Top.Duration = "breve" }, "top.duration"},
		{"dotted quarter in 4/4", func(s *Settings) { s.Bottom.Duration = theory.QuarterDotted }, "bottom.duration"},
		{"whole in 3/4", func(s *Settings) { s.Time = theory.Time34; s.Top.Duration = theory.Whole }, "top.duration"},
		{"inverted range", func(s *Settings) {
			s.Top.Lowest, s.Top.Highest = s.Top.Highest, s.Top.Lowest
		}, "top.lowest"},
		{"cap off keyboard", func(s *Settings) { s.Top.Highest = theory.PitchCap{Class: theory.D, Register: 8} }, "top.highest"},
		{"zero notes", func(s *Settings) { s.Top.NotesPerChord = 0 }, "top.notesPerChord"},
		{"range too narrow", func(s *Settings) {
			s.Bottom.Lowest = theory.PitchCap{Class: theory.C, Register: 3}
			s.Bottom.Highest = theory.PitchCap{Class: theory.E, Register: 3}
			s.Bottom.NotesPerChord = 4
		}, "bottom.notesPerChord"},
		{"more than an octave of notes", func(s *Settings) {
			s.Top.Lowest = theory.PitchCap{Class: theory.C, Register: 2}
			s.Top.Highest = theory.PitchCap{Class: theory.C, Register: 6}
			s.Top.NotesPerChord = 9
		}, "top.notesPerChord"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSettings)
			assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))

			var se *SettingsError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	s := DefaultSettings()
	s.Bottom.Lowest = mustCap(t, "C3")
	s.Bottom.Highest = mustCap(t, "E3")
	s.Bottom.NotesPerChord = 3
	assert.NoError(t, s.Validate())

	s.Top.Lowest = mustCap(t, "C4")
	s.Top.Highest = mustCap(t, "C4")
	s.Top.NotesPerChord = 1
	assert.NoError(t, s.Validate())

	s.Top.Lowest = mustCap(t, "A0")
	s.Top.Highest = mustCap(t, "C8")
	s.Top.NotesPerChord = MaxNotesPerChord
	assert.NoError(t, s.Validate())
}

func TestWithTimeResetsDurations(t *testing.T) {
	s := DefaultSettings().WithTime(theory.Time68)
	assert.Equal(t, theory.QuarterDotted, s.Top.Duration)
	assert.Equal(t, theory.QuarterDotted, s.Bottom.Duration)
	require.NoError(t, s.Validate())

	s = s.WithTime(theory.Time34)
	assert.Equal(t, theory.Quarter, s.Top.Duration)
	require.NoError(t, s.Validate())
}
