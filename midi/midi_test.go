package midi

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestFromMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  gomidi.Message
		want Event
		ok   bool
	}{
		{"note on", gomidi.NoteOn(0, 60, 100), Event{Kind: Pressed, Note: 60, Velocity: 100}, true},
		{"note on channel 3", gomidi.NoteOn(2, 64, 1), Event{Kind: Pressed, Note: 64, Velocity: 1, Channel: 2}, true},
		{"zero velocity note on", gomidi.NoteOn(0, 60, 0), Event{Kind: Released, Note: 60}, true},
		{"note off", gomidi.NoteOff(0, 67), Event{Kind: Released, Note: 67}, true},
		{"timing clock", gomidi.Message{0xF8}, Event{}, false},
		{"active sensing", gomidi.Message{0xFE}, Event{}, false},
		{"control change", gomidi.ControlChange(0, 64, 127), Event{}, false},
		{"empty", gomidi.Message{}, Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := FromMessage(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestKeyboardControllerForwardsNotes(t *testing.T) {
	kb, err := NewKeyboardController("Test Keys", nil, 0)
	require.NoError(t, err)

	kb.handle(gomidi.NoteOn(0, 60, 90))
	kb.handle(gomidi.Message{0xF8})
	kb.handle(gomidi.NoteOff(0, 60))

	ev := <-kb.NoteEvents()
	assert.Equal(t, Event{Kind: Pressed, Note: 60, Velocity: 90, Port: "Test Keys"}, ev)
	ev = <-kb.NoteEvents()
	assert.Equal(t, Released, ev.Kind)

	require.NoError(t, kb.Close())
	require.NoError(t, kb.Close())
	assert.NotPanics(t, func() { kb.handle(gomidi.NoteOn(0, 62, 90)) })
	_, open := <-kb.NoteEvents()
	assert.False(t, open)
}

func TestKeyboardControllerChannelFilter(t *testing.T) {
	kb, err := NewKeyboardController("Split", nil, 2)
	require.NoError(t, err)
	defer kb.Close()

	kb.handle(gomidi.NoteOn(0, 60, 90))
	kb.handle(gomidi.NoteOn(1, 48, 90))

	ev := <-kb.NoteEvents()
	assert.Equal(t, uint8(48), ev.Note)
	assert.Empty(t, kb.NoteEvents())
}

type fakeController struct {
	id     string
	closed bool
	notes  chan Event
}

func (f *fakeController) ID() string               { return f.id }
func (f *fakeController) Type() ControllerType     { return ControllerKeyboard }
func (f *fakeController) NoteEvents() <-chan Event { return f.notes }
func (f *fakeController) Close() error             { f.closed = true; return nil }

type denyPort string

func (d denyPort) AllowsInput(port string) bool { return port != string(d) }
func (d denyPort) InputChannel(string) int      { return 0 }

func TestDeviceManagerScan(t *testing.T) {
	ports := []string{"Digital Piano", "Midi Through Port-0", "Pads"}
	opened := map[string]*fakeController{}

	dm := NewDeviceManager(denyPort("Pads"))
	dm.listPorts = func() ([]string, bool) { return ports, true }
	dm.connect = func(name string, channel int) (Controller, error) {
		if name == "Broken" {
			return nil, errors.New("busy")
		}
		c := &fakeController{id: name, notes: make(chan Event)}
		opened[name] = c
		return c, nil
	}

	dm.scan()
	assert.Equal(t, []string{"Digital Piano"}, dm.Connected())
	ev := <-dm.Events()
	assert.Equal(t, DeviceConnected, ev.Type)
	assert.Equal(t, "Digital Piano", ev.ID)

	// rescanning an unchanged port list is quiet
	dm.scan()
	assert.Empty(t, dm.Events())

	ports = []string{"Broken"}
	dm.scan()
	assert.Empty(t, dm.Connected())
	ev = <-dm.Events()
	assert.Equal(t, DeviceDisconnected, ev.Type)
	assert.True(t, opened["Digital Piano"].closed)
}

func TestDeviceManagerSkipsWithoutDriver(t *testing.T) {
	dm := NewDeviceManager(nil)
	dm.listPorts = func() ([]string, bool) { return nil, false }
	dm.connect = func(string, int) (Controller, error) {
		t.Fatal("connect called without a driver")
		return nil, nil
	}
	dm.scan()
	assert.Empty(t, dm.Connected())
}

func TestDisconnectDoesNotBlockConnected(t *testing.T) {
	dm := NewDeviceManager(nil)
	dm.events = make(chan DeviceEvent)
	gone := &fakeController{id: "Gone", notes: make(chan Event)}
	dm.controllers["Gone"] = gone
	dm.listPorts = func() ([]string, bool) { return nil, true }

	scanned := make(chan struct{})
	go func() {
		dm.scan()
		close(scanned)
	}()

	// scan is parked on the unbuffered send; Connected must still answer
	connected := make(chan []string)
	go func() { connected <- dm.Connected() }()
	select {
	case names := <-connected:
		assert.Empty(t, names)
	case <-time.After(time.Second):
		t.Fatal("Connected blocked while a disconnect event was pending")
	}

	ev := <-dm.Events()
	assert.Equal(t, DeviceDisconnected, ev.Type)
	assert.Equal(t, "Gone", ev.ID)
	<-scanned
	assert.True(t, gone.closed)
}
