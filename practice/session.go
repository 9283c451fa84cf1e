package practice

import (
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"sightread/debug"
	"sightread/midi"
	"sightread/score"
)

// ErrUnknownChord is returned when a jump names a chord not in the phrase
var ErrUnknownChord = fault.New("unknown chord identifier", ftag.With(ftag.NotFound))

// Outcome is what an input event did to the session
type Outcome int

const (
	None Outcome = iota
	Advanced
	Regenerated
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case Regenerated:
		return "regenerated"
	}
	return "none"
}

// Session owns the current phrase, its cursor and the held notes. It is
// driven from a single event loop and is not safe for concurrent use.
type Session struct {
	settings score.Settings
	gen      *score.Generator
	cursor   *Cursor
	held     HeldSet
}

// NewSession generates the first phrase for settings
func NewSession(settings score.Settings, gen *score.Generator) (*Session, error) {
	s := &Session{settings: settings, gen: gen}
	if err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns the settings phrases are generated from
func (s *Session) Settings() score.Settings { return s.settings }

// Score returns the current phrase
func (s *Session) Score() *score.Score { return s.cursor.Score() }

// Cursor exposes the read-only queries of the current cursor
func (s *Session) Cursor() *Cursor { return s.cursor }

// Held returns the held notes in ascending order
func (s *Session) Held() []int { return s.held.Sorted() }

// Expected returns the notes required at the cursor
func (s *Session) Expected() []int { return s.cursor.ExpectedPitches() }

// HandleEvent folds a key press or release into the held set and, when the
// held notes equal the expected chord, advances or starts a new phrase
func (s *Session) HandleEvent(ev midi.Event) (Outcome, error) {
	if !s.held.Apply(ev) {
		return None, nil
	}
	held, expected := s.held.Sorted(), s.cursor.ExpectedPitches()
	debug.Log(debug.Match, "%s %d: held %v expected %v", ev.Kind, ev.Note, held, expected)
	if !Matches(held, expected) {
		return None, nil
	}

	s.held.Clear()
	if s.cursor.IsAtFinalSoundingChord() {
		if err := s.Regenerate(); err != nil {
			return None, err
		}
		return Regenerated, nil
	}
	s.cursor.Advance()
	debug.Log(debug.Cursor, "advanced to %+v", s.cursor.Position())
	return Advanced, nil
}

// Advance moves to the next sounding chord without matching
func (s *Session) Advance() bool {
	moved := s.cursor.Advance()
	debug.Log(debug.Cursor, "advance -> %+v (moved=%v)", s.cursor.Position(), moved)
	return moved
}

// Retreat moves to the previous sounding chord without matching
func (s *Session) Retreat() bool {
	moved := s.cursor.Retreat()
	debug.Log(debug.Cursor, "retreat -> %+v (moved=%v)", s.cursor.Position(), moved)
	return moved
}

// JumpTo moves to the chord with the given identifier
func (s *Session) JumpTo(id string) error {
	if !s.cursor.JumpTo(id) {
		return fault.Wrap(ErrUnknownChord, fmsg.With(fmt.Sprintf("jump to %q", id)))
	}
	debug.Log(debug.Cursor, "jumped to %s at %+v", id, s.cursor.Position())
	return nil
}

// Regenerate replaces the phrase and resets the cursor. On error the old
// phrase stays in place.
func (s *Session) Regenerate() error {
	sc, err := s.gen.Generate(s.settings)
	if err != nil {
		return fmt.Errorf("generate phrase: %w", err)
	}
	s.cursor = NewCursor(sc)
	s.held.Clear()
	return nil
}

// Configure switches to new settings and regenerates. Invalid settings are
// rejected and the current phrase is kept.
func (s *Session) Configure(settings score.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	prev := s.settings
	s.settings = settings
	if err := s.Regenerate(); err != nil {
		s.settings = prev
		return err
	}
	return nil
}
