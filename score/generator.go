package score

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"sightread/debug"
	"sightread/theory"
)

// errPoolExhausted means the candidate pool ran out before the chord was full
var errPoolExhausted = errors.New("candidate pool exhausted")

// Generator builds random phrases. It is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	newID func() string
}

// NewGenerator returns a generator drawing from src. A nil src seeds from
// the clock.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &Generator{rng: rand.New(src), newID: uuid.NewString}
}

// Generate validates s and builds a phrase of s.Lines lines
func (g *Generator) Generate(s Settings) (*Score, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	ph := phrase{g: g, s: s, harmony: s.Key.Tonic()}
	sc := &Score{Key: s.Key, Time: s.Time, Lines: make([]Line, s.Lines)}
	for li := range sc.Lines {
		line := &sc.Lines[li]
		line.Measures = make([]Measure, s.MeasuresPerLine)
		for mi := range line.Measures {
			m, err := ph.measure()
			if err != nil {
				return nil, fmt.Errorf("line %d measure %d: %w", li+1, mi+1, err)
			}
			line.Measures[mi] = m
		}
	}
	debug.Log(debug.Gen, "generated %d lines x %d measures in %s %s (harmony=%v)",
		s.Lines, s.MeasuresPerLine, s.Key, s.Time, s.UseHarmony)
	return sc, nil
}

// phrase carries state that runs across measures
type phrase struct {
	g       *Generator
	s       Settings
	harmony theory.Harmony
	started bool
}

func (ph *phrase) measure() (Measure, error) {
	s := ph.s
	topUnits, bottomUnits := s.Top.Duration.Units(), s.Bottom.Duration.Units()
	m := Measure{Key: s.Key, Time: s.Time, Slots: make([]Slot, s.Time.MeasureUnits())}

	for i := range m.Slots {
		topStarts, bottomStarts := i%topUnits == 0, i%bottomUnits == 0
		if s.UseHarmony && topStarts && bottomStarts && ph.started {
			ph.advanceHarmony()
		}
		if topStarts || bottomStarts {
			ph.started = true
		}

		var tones []theory.ChordTone
		if s.UseHarmony {
			tones = s.Key.ChordTones(ph.harmony)
		}
		if topStarts {
			c, err := ph.g.chord(s.Key, s.Top, tones)
			if err != nil {
				return Measure{}, fmt.Errorf("top staff: %w", err)
			}
			m.Slots[i].Top = c
		}
		if bottomStarts {
			c, err := ph.g.chord(s.Key, s.Bottom, tones)
			if err != nil {
				return Measure{}, fmt.Errorf("bottom staff: %w", err)
			}
			m.Slots[i].Bottom = c
		}
	}
	return m, nil
}

func (ph *phrase) advanceHarmony() {
	next := ph.s.Key.Transitions(ph.harmony)
	if len(next) == 0 {
		ph.harmony = ph.s.Key.Tonic()
		return
	}
	ph.harmony = next[ph.g.rng.IntN(len(next))]
}

// chord picks st.NotesPerChord distinct pitches within st's range. With
// harmony tones the pool is restricted to them, falling back to the full
// scale when that pool is too small.
func (g *Generator) chord(k theory.Key, st Staff, tones []theory.ChordTone) (*Chord, error) {
	lowest, highest := k.CapToPitch(st.Lowest), k.CapToPitch(st.Highest)
	pool := k.Scale(lowest, highest)

	if len(tones) > 0 {
		filtered := filterHarmony(k, pool, tones, k.Number(lowest), k.Number(highest))
		pitches, err := g.pick(k, filtered, st.NotesPerChord)
		if err == nil {
			return g.newChord(st.Duration, pitches), nil
		}
		debug.Log(debug.Gen, "harmony pool too small for %d notes in %s-%s, using full scale",
			st.NotesPerChord, st.Lowest, st.Highest)
	}

	pitches, err := g.pick(k, pool, st.NotesPerChord)
	if err != nil {
		return nil, err
	}
	return g.newChord(st.Duration, pitches), nil
}

func (g *Generator) newChord(d theory.Duration, pitches []theory.Pitch) *Chord {
	return &Chord{ID: g.newID(), Duration: d, Pitches: pitches}
}

func filterHarmony(k theory.Key, pool []theory.Pitch, tones []theory.ChordTone, lo, hi int) []theory.Pitch {
	var out []theory.Pitch
	for _, p := range pool {
		for _, tone := range tones {
			if p.Degree != tone.Degree {
				continue
			}
			p.Accidental = tone.Accidental
			if n := k.Number(p); n >= lo && n <= hi {
				out = append(out, p)
			}
		}
	}
	return out
}

// pick draws n pitches from pool. After each draw the pool is narrowed to
// pitches within an octave of both the lowest and highest chosen pitch.
func (g *Generator) pick(k theory.Key, pool []theory.Pitch, n int) ([]theory.Pitch, error) {
	pool = slices.Clone(pool)
	chosen := make([]theory.Pitch, 0, n)
	for len(chosen) < n {
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w after %d of %d notes", errPoolExhausted, len(chosen), n)
		}
		i := g.rng.IntN(len(pool))
		p := pool[i]
		pool = slices.Delete(pool, i, i+1)

		num := k.Number(p)
		at, _ := slices.BinarySearchFunc(chosen, num, func(c theory.Pitch, target int) int {
			return k.Number(c) - target
		})
		chosen = slices.Insert(chosen, at, p)

		low, high := k.Number(chosen[0]), k.Number(chosen[len(chosen)-1])
		pool = slices.DeleteFunc(pool, func(c theory.Pitch) bool {
			v := k.Number(c)
			return v < high-12 || v > low+12
		})
	}
	return chosen, nil
}
