package config

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"sightread/score"
	"sightread/theory"
)

// Settings parses and validates the preferences into generator settings
func (p PracticeConfig) Settings() (score.Settings, error) {
	key, err := theory.ParseKey(p.Key)
	if err != nil {
		return score.Settings{}, badField("key", err)
	}
	ts, err := theory.ParseTimeSignature(p.Time)
	if err != nil {
		return score.Settings{}, badField("time", err)
	}
	top, err := p.Top.staff("top")
	if err != nil {
		return score.Settings{}, err
	}
	bottom, err := p.Bottom.staff("bottom")
	if err != nil {
		return score.Settings{}, err
	}

	s := score.Settings{
		Lines:           p.Lines,
		MeasuresPerLine: p.MeasuresPerLine,
		Key:             key,
		Time:            ts,
		UseHarmony:      p.UseHarmony,
		Top:             top,
		Bottom:          bottom,
	}
	if err := s.Validate(); err != nil {
		return score.Settings{}, err
	}
	return s, nil
}

func (sc StaffConfig) staff(name string) (score.Staff, error) {
	d, err := theory.ParseDuration(sc.Duration)
	if err != nil {
		return score.Staff{}, badField(name+".duration", err)
	}
	lo, err := theory.ParsePitchCap(sc.Lowest)
	if err != nil {
		return score.Staff{}, badField(name+".lowest", err)
	}
	hi, err := theory.ParsePitchCap(sc.Highest)
	if err != nil {
		return score.Staff{}, badField(name+".highest", err)
	}
	return score.Staff{Duration: d, Lowest: lo, Highest: hi, NotesPerChord: sc.NotesPerChord}, nil
}

func badField(field string, err error) error {
	return fault.Wrap(&score.SettingsError{Field: field, Reason: err.Error()},
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc("invalid preferences", field+": "+err.Error()))
}

// FromSettings is the inverse of Settings
func FromSettings(s score.Settings) PracticeConfig {
	staff := func(st score.Staff) StaffConfig {
		return StaffConfig{
			Duration:      string(st.Duration),
			Lowest:        st.Lowest.String(),
			Highest:       st.Highest.String(),
			NotesPerChord: st.NotesPerChord,
		}
	}
	return PracticeConfig{
		Key:             string(s.Key),
		Time:            string(s.Time),
		UseHarmony:      s.UseHarmony,
		Lines:           s.Lines,
		MeasuresPerLine: s.MeasuresPerLine,
		Top:             staff(s.Top),
		Bottom:          staff(s.Bottom),
	}
}
