package score

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"sightread/theory"
)

// TicksPerQuarter makes one MIDI tick equal one grid unit
const TicksPerQuarter = theory.UnitsPerWhole / 4

const (
	topChannel    = 0
	bottomChannel = 1
	velocity      = 90
)

// WriteSMF writes s as a format 1 Standard MIDI File: a meter and tempo
// track followed by one track per voice
func WriteSMF(w io.Writer, s *Score, bpm float64) error {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	num, den := s.Time.Fraction()
	var meta smf.Track
	meta.Add(0, smf.MetaMeter(num, den))
	meta.Add(0, smf.MetaTempo(bpm))
	meta.Close(0)
	if err := sm.Add(meta); err != nil {
		return fmt.Errorf("add meta track: %w", err)
	}

	for _, v := range []struct {
		top     bool
		channel uint8
	}{{true, topChannel}, {false, bottomChannel}} {
		if err := sm.Add(voiceTrack(s, v.top, v.channel)); err != nil {
			return fmt.Errorf("add voice track: %w", err)
		}
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("write smf: %w", err)
	}
	return nil
}

func voiceTrack(s *Score, top bool, ch uint8) smf.Track {
	var track smf.Track
	var now, last uint32
	for _, m := range s.Measures() {
		for i, slot := range m.Slots {
			c := slot.Bottom
			if top {
				c = slot.Top
			}
			if c == nil {
				continue
			}
			start := now + uint32(i)
			notes := c.Numbers(s.Key)
			for j, n := range notes {
				var delta uint32
				if j == 0 {
					delta = start - last
				}
				track.Add(delta, midi.NoteOn(ch, uint8(n), velocity))
			}
			for j, n := range notes {
				var delta uint32
				if j == 0 {
					delta = uint32(c.Duration.Units())
				}
				track.Add(delta, midi.NoteOff(ch, uint8(n)))
			}
			last = start + uint32(c.Duration.Units())
		}
		now += uint32(len(m.Slots))
	}
	track.Close(now - last)
	return track
}
