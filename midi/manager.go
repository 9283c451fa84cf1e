package midi

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"sightread/debug"
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// PortFilter decides which input ports are opened and on which channel
type PortFilter interface {
	AllowsInput(port string) bool
	InputChannel(port string) int
}

type allowAll struct{}

func (allowAll) AllowsInput(string) bool { return true }
func (allowAll) InputChannel(string) int { return 0 }

// DeviceManager handles hot-plug detection of MIDI keyboards
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
	filter      PortFilter

	listPorts func() ([]string, bool)
	connect   func(name string, channel int) (Controller, error)
}

// NewDeviceManager creates a new device manager. A nil filter opens every
// input port.
func NewDeviceManager(filter PortFilter) *DeviceManager {
	if filter == nil {
		filter = allowAll{}
	}
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		filter:      filter,
		listPorts:   listInPorts,
		connect:     connectKeyboard,
	}
}

// Supported reports whether a MIDI driver is registered
func Supported() bool {
	return drivers.Get() != nil
}

// InPortNames lists the input ports the driver can see
func InPortNames() []string {
	names, _ := listInPorts()
	return names
}

func listInPorts() ([]string, bool) {
	if !Supported() {
		return nil, false
	}
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names, true
}

func connectKeyboard(name string, channel int) (Controller, error) {
	in, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, err
	}
	return NewKeyboardController(name, in, channel)
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Connected returns the sorted IDs of connected controllers
func (dm *DeviceManager) Connected() []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	ids := make([]string, 0, len(dm.controllers))
	for id := range dm.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Port enumeration with timeout (CoreMIDI can hang)
	type portsResult struct {
		names []string
		ok    bool
	}

	ch := make(chan portsResult, 1)
	go func() {
		names, ok := dm.listPorts()
		ch <- portsResult{names: names, ok: ok}
	}()

	var names []string
	select {
	case result := <-ch:
		if !result.ok {
			return
		}
		names = result.names
	case <-time.After(3 * time.Second):
		debug.Log(debug.MIDI, "port enumeration timed out, skipping scan")
		return
	}

	seenIDs := make(map[string]bool)

	for _, name := range names {
		if isThroughPort(name) || !dm.filter.AllowsInput(name) {
			continue
		}
		seenIDs[name] = true

		dm.mu.RLock()
		_, exists := dm.controllers[name]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		kb, err := dm.connect(name, dm.filter.InputChannel(name))
		if err != nil {
			debug.Log(debug.MIDI, "connect %s: %v", name, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[name] = kb
		dm.mu.Unlock()
		debug.Log(debug.MIDI, "connected %s", name)

		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: kb,
			ID:         name,
		}
	}

	// Check for disconnects; events are sent after unlocking
	dm.mu.Lock()
	removed := make(map[string]Controller)
	for id, c := range dm.controllers {
		if !seenIDs[id] {
			removed[id] = c
			delete(dm.controllers, id)
		}
	}
	dm.mu.Unlock()

	for id, c := range removed {
		c.Close()
		debug.Log(debug.MIDI, "disconnected %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// isThroughPort matches the loopback ports ALSA and some drivers expose
func isThroughPort(name string) bool {
	return strings.Contains(strings.ToLower(name), "through")
}
