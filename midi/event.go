package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// EventKind says whether a key went down or up
type EventKind int

const (
	Pressed EventKind = iota
	Released
)

func (k EventKind) String() string {
	if k == Pressed {
		return "pressed"
	}
	return "released"
}

// Event is a key going down or up on an input device
type Event struct {
	Kind     EventKind
	Note     uint8
	Velocity uint8
	Channel  uint8
	Port     string
}

// Press and Release build events for callers without a device
func Press(note uint8) Event   { return Event{Kind: Pressed, Note: note, Velocity: 100} }
func Release(note uint8) Event { return Event{Kind: Released, Note: note} }

// realtimeStatus is the first status byte of the system realtime range
// (clock, start, stop, active sensing, reset)
const realtimeStatus = 0xF8

// FromMessage classifies a raw message. Realtime bytes and anything that is
// not a note are dropped. A note-on with zero velocity is a release.
func FromMessage(msg gomidi.Message) (Event, bool) {
	if len(msg) == 0 || msg[0] >= realtimeStatus {
		return Event{}, false
	}
	var ch, note, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &note, &vel):
		if vel == 0 {
			return Event{Kind: Released, Note: note, Channel: ch}, true
		}
		return Event{Kind: Pressed, Note: note, Velocity: vel, Channel: ch}, true
	case msg.GetNoteOff(&ch, &note, &vel):
		return Event{Kind: Released, Note: note, Velocity: vel, Channel: ch}, true
	}
	return Event{}, false
}
