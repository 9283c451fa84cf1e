// Package practice walks a generated phrase and matches played notes
// against it.
package practice

import (
	"slices"

	"sightread/score"
)

// Position addresses one slot of the flattened measure sequence
type Position struct {
	Measure int
	Slot    int
}

// Before orders positions in playing order
func (p Position) Before(o Position) bool {
	if p.Measure != o.Measure {
		return p.Measure < o.Measure
	}
	return p.Slot < o.Slot
}

// Cursor is a position into a score. Stepping saturates at both ends.
type Cursor struct {
	sc       *score.Score
	measures []*score.Measure
	pos      Position
}

// NewCursor places a cursor on the first sounding slot of sc
func NewCursor(sc *score.Score) *Cursor {
	c := &Cursor{sc: sc, measures: sc.Measures()}
	c.Reset()
	return c
}

// Reset returns to the first sounding slot
func (c *Cursor) Reset() {
	c.pos = Position{}
	for !c.slot().Sounding() && !c.IsAtEnd() {
		c.StepForward()
	}
}

// Score returns the phrase being walked
func (c *Cursor) Score() *score.Score { return c.sc }

// Position returns where the cursor is
func (c *Cursor) Position() Position { return c.pos }

func (c *Cursor) slot() score.Slot {
	if len(c.measures) == 0 {
		return score.Slot{}
	}
	return c.measures[c.pos.Measure].Slots[c.pos.Slot]
}

// Slot returns the slot under the cursor
func (c *Cursor) Slot() score.Slot { return c.slot() }

func (c *Cursor) end() Position {
	if len(c.measures) == 0 {
		return Position{}
	}
	last := len(c.measures) - 1
	return Position{Measure: last, Slot: len(c.measures[last].Slots) - 1}
}

// IsAtStart reports whether the cursor is on the first slot of the first measure
func (c *Cursor) IsAtStart() bool { return c.pos == Position{} }

// IsAtEnd reports whether the cursor is on the last slot of the last measure
func (c *Cursor) IsAtEnd() bool { return c.pos == c.end() }

// StepForward moves one slot, clamping at the last slot of the last measure
func (c *Cursor) StepForward() {
	if c.IsAtEnd() {
		return
	}
	c.pos.Slot++
	if c.pos.Slot >= len(c.measures[c.pos.Measure].Slots) {
		c.pos.Slot = 0
		c.pos.Measure++
	}
}

// StepBackward moves one slot back, clamping at the first slot
func (c *Cursor) StepBackward() {
	if c.IsAtStart() {
		return
	}
	c.pos.Slot--
	if c.pos.Slot < 0 {
		c.pos.Measure--
		c.pos.Slot = len(c.measures[c.pos.Measure].Slots) - 1
	}
}

// Advance moves to the next sounding slot. It reports false and leaves the
// cursor where it was when there is none.
func (c *Cursor) Advance() bool {
	prev := c.pos
	c.StepForward()
	for !c.slot().Sounding() && !c.IsAtEnd() {
		c.StepForward()
	}
	if !c.slot().Sounding() || c.pos == prev {
		c.pos = prev
		return false
	}
	return true
}

// Retreat moves to the previous sounding slot. It reports false and leaves
// the cursor where it was when there is none.
func (c *Cursor) Retreat() bool {
	prev := c.pos
	c.StepBackward()
	for !c.slot().Sounding() && !c.IsAtStart() {
		c.StepBackward()
	}
	if !c.slot().Sounding() || c.pos == prev {
		c.pos = prev
		return false
	}
	return true
}

// JumpTo moves to the slot holding the chord with the given identifier. It
// reports false and leaves the cursor unchanged if no chord has it.
func (c *Cursor) JumpTo(id string) bool {
	for mi, m := range c.measures {
		for si, slot := range m.Slots {
			if (slot.Top != nil && slot.Top.ID == id) || (slot.Bottom != nil && slot.Bottom.ID == id) {
				c.pos = Position{Measure: mi, Slot: si}
				return true
			}
		}
	}
	return false
}

// FinalSoundingPosition scans back from the end for the last sounding slot
func (c *Cursor) FinalSoundingPosition() (Position, bool) {
	for mi := len(c.measures) - 1; mi >= 0; mi-- {
		slots := c.measures[mi].Slots
		for si := len(slots) - 1; si >= 0; si-- {
			if slots[si].Sounding() {
				return Position{Measure: mi, Slot: si}, true
			}
		}
	}
	return Position{}, false
}

// IsAtFinalSoundingChord reports whether no sounding slot follows the cursor
func (c *Cursor) IsAtFinalSoundingChord() bool {
	final, ok := c.FinalSoundingPosition()
	return ok && final == c.pos
}

// IsAtFirstSoundingChord reports whether the cursor is on a sounding slot
// with none before it
func (c *Cursor) IsAtFirstSoundingChord() bool {
	if !c.slot().Sounding() {
		return false
	}
	probe := Cursor{sc: c.sc, measures: c.measures, pos: c.pos}
	return !probe.Retreat()
}

// ExpectedPitches resolves both voices at the cursor into ascending,
// deduplicated pitch numbers
func (c *Cursor) ExpectedPitches() []int {
	slot := c.slot()
	var nums []int
	for _, ch := range []*score.Chord{slot.Top, slot.Bottom} {
		if ch != nil {
			nums = append(nums, ch.Numbers(c.sc.Key)...)
		}
	}
	slices.Sort(nums)
	return slices.Compact(nums)
}

// ChordIDs are the identifiers of the chords under the cursor, empty for a
// silent voice
type ChordIDs struct {
	Top    string
	Bottom string
}

// ChordIDs returns the identifiers a renderer should highlight
func (c *Cursor) ChordIDs() ChordIDs {
	slot := c.slot()
	var ids ChordIDs
	if slot.Top != nil {
		ids.Top = slot.Top.ID
	}
	if slot.Bottom != nil {
		ids.Bottom = slot.Bottom.ID
	}
	return ids
}
