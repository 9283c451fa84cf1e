package practice

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sightread/score"
	"sightread/theory"
)

func chord(id string, degrees ...theory.ScaleDegree) *score.Chord {
	c := &score.Chord{ID: id, Duration: theory.Quarter}
	for _, d := range degrees {
		c.Pitches = append(c.Pitches, theory.Pitch{Degree: d, Register: 4})
	}
	return c
}

// sparse builds a C major 4/4 score of n measures with chords only where given
func sparse(n int, top, bottom map[Position]*score.Chord) *score.Score {
	sc := &score.Score{Key: "C", Time: theory.Time44, Lines: []score.Line{{}}}
	for i := 0; i < n; i++ {
		sc.Lines[0].Measures = append(sc.Lines[0].Measures, score.Measure{
			Key: "C", Time: theory.Time44, Slots: make([]score.Slot, 96),
		})
	}
	for p, c := range top {
		sc.Lines[0].Measures[p.Measure].Slots[p.Slot].Top = c
	}
	for p, c := range bottom {
		sc.Lines[0].Measures[p.Measure].Slots[p.Slot].Bottom = c
	}
	return sc
}

func TestNewCursorSkipsToFirstSoundingSlot(t *testing.T) {
	sc := sparse(2, map[Position]*score.Chord{{0, 30}: chord("a", 1)}, nil)
	c := NewCursor(sc)
	assert.Equal(t, Position{0, 30}, c.Position())
	assert.True(t, c.IsAtFirstSoundingChord())
	assert.True(t, c.IsAtFinalSoundingChord())
	assert.False(t, c.IsAtStart())
}

func TestAdvanceAndRetreat(t *testing.T) {
	sc := sparse(3,
		map[Position]*score.Chord{{0, 0}: chord("a", 1), {1, 48}: chord("c", 3)},
		map[Position]*score.Chord{{0, 24}: chord("b", 2), {2, 95}: chord("d", 4)},
	)
	c := NewCursor(sc)
	require.Equal(t, Position{0, 0}, c.Position())
	assert.False(t, c.Retreat())
	assert.Equal(t, Position{0, 0}, c.Position())

	var visited []Position
	for c.Advance() {
		visited = append(visited, c.Position())
	}
	assert.Equal(t, []Position{{0, 24}, {1, 48}, {2, 95}}, visited)
	assert.True(t, c.IsAtFinalSoundingChord())
	assert.True(t, c.IsAtEnd())

	assert.False(t, c.Advance())
	assert.Equal(t, Position{2, 95}, c.Position())

	require.True(t, c.Retreat())
	assert.Equal(t, Position{1, 48}, c.Position())
	assert.Equal(t, ChordIDs{Top: "c"}, c.ChordIDs())
}

func TestAdvanceRevertsWhenNothingFollows(t *testing.T) {
	sc := sparse(2, map[Position]*score.Chord{{0, 10}: chord("a", 1), {1, 20}: chord("b", 2)}, nil)
	c := NewCursor(sc)
	require.True(t, c.Advance())
	assert.Equal(t, Position{1, 20}, c.Position())

	assert.False(t, c.Advance())
	assert.Equal(t, Position{1, 20}, c.Position())
	assert.False(t, c.IsAtEnd())
}

func TestStepSaturates(t *testing.T) {
	sc := sparse(2, map[Position]*score.Chord{{0, 0}: chord("a", 1)}, nil)
	c := NewCursor(sc)

	c.StepBackward()
	assert.Equal(t, Position{0, 0}, c.Position())

	for i := 0; i < 95; i++ {
		c.StepForward()
	}
	assert.Equal(t, Position{0, 95}, c.Position())
	c.StepForward()
	assert.Equal(t, Position{1, 0}, c.Position())
	c.StepBackward()
	assert.Equal(t, Position{0, 95}, c.Position())

	for i := 0; i < 500; i++ {
		c.StepForward()
	}
	assert.Equal(t, Position{1, 95}, c.Position())
	assert.True(t, c.IsAtEnd())
}

func TestJumpTo(t *testing.T) {
	sc := sparse(2,
		map[Position]*score.Chord{{0, 0}: chord("a", 1)},
		map[Position]*score.Chord{{1, 72}: chord("z", 5)},
	)
	c := NewCursor(sc)

	require.True(t, c.JumpTo("z"))
	assert.Equal(t, Position{1, 72}, c.Position())

	assert.False(t, c.JumpTo("missing"))
	assert.Equal(t, Position{1, 72}, c.Position())

	require.True(t, c.JumpTo("a"))
	assert.True(t, c.IsAtStart())
}

func TestExpectedPitchesMergesVoices(t *testing.T) {
	sc := sparse(1,
		map[Position]*score.Chord{{0, 0}: chord("t", 3, 5)},
		map[Position]*score.Chord{{0, 0}: chord("b", 1, 3)},
	)
	c := NewCursor(sc)
	assert.Equal(t, []int{60, 64, 67}, c.ExpectedPitches())
	assert.Equal(t, ChordIDs{Top: "t", Bottom: "b"}, c.ChordIDs())
}

func TestCursorVisitsEverySoundingSlot(t *testing.T) {
	s := score.DefaultSettings()
	s.Top.Duration = theory.Eighth
	s.Bottom.Duration = theory.Half
	for seed := uint64(0); seed < 20; seed++ {
		sc, err := score.NewGenerator(rand.NewPCG(seed, seed)).Generate(s)
		require.NoError(t, err)

		var sounding int
		for _, m := range sc.Measures() {
			for _, slot := range m.Slots {
				if slot.Sounding() {
					sounding++
				}
			}
		}

		c := NewCursor(sc)
		visits := 1
		for c.Advance() {
			visits++
			assert.True(t, c.Slot().Sounding())
			assert.NotEmpty(t, c.ExpectedPitches())
		}
		assert.Equal(t, sounding, visits)
		assert.True(t, c.IsAtFinalSoundingChord())

		back := 1
		for c.Retreat() {
			back++
		}
		assert.Equal(t, sounding, back)
		assert.True(t, c.IsAtFirstSoundingChord())
	}
}

func TestRetreatThenAdvanceReturns(t *testing.T) {
	s := score.DefaultSettings()
	s.Top.Duration = theory.Eighth
	for seed := uint64(0); seed < 20; seed++ {
		sc, err := score.NewGenerator(rand.NewPCG(seed, 3)).Generate(s)
		require.NoError(t, err)

		c := NewCursor(sc)
		for c.Advance() {
			here := c.Position()
			require.True(t, c.Retreat())
			require.True(t, c.Advance())
			assert.Equal(t, here, c.Position(), "seed %d", seed)
		}
	}
}

func TestJumpToEveryGeneratedChord(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		sc, err := score.NewGenerator(rand.NewPCG(seed, 5)).Generate(score.DefaultSettings())
		require.NoError(t, err)

		c := NewCursor(sc)
		for _, ch := range sc.Chords() {
			require.True(t, c.JumpTo(ch.ID))
			ids := c.ChordIDs()
			assert.Contains(t, []string{ids.Top, ids.Bottom}, ch.ID)
			assert.True(t, c.Slot().Sounding())
		}
	}
}
