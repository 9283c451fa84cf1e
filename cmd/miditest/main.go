package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"sightread/midi"
	"sightread/practice"
	"sightread/widgets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		port := ""
		if len(os.Args) > 2 {
			port = os.Args[2]
		}
		monitor(port)
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List MIDI input ports")
	fmt.Println("  monitor [port]  - Print key events and held notes (port index or name)")
	fmt.Println("  poll            - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	select {
	case ins := <-ch:
		for i, p := range ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}
}

func findPort(arg string) (drivers.In, error) {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		return nil, fmt.Errorf("no input ports")
	}
	if arg == "" {
		return ins[0], nil
	}
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 0 || i >= len(ins) {
			return nil, fmt.Errorf("port %d out of range", i)
		}
		return ins[i], nil
	}
	return gomidi.FindInPort(arg)
}

func monitor(arg string) {
	in, err := findPort(arg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	kb, err := midi.NewKeyboardController(in.String(), in, 0)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer kb.Close()

	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", in.String())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	var held practice.HeldSet
	for {
		select {
		case ev, ok := <-kb.NoteEvents():
			if !ok {
				return
			}
			if !held.Apply(ev) {
				continue
			}
			names := make([]string, 0, held.Len())
			for _, n := range held.Sorted() {
				names = append(names, widgets.NoteName(n))
			}
			fmt.Printf("%-8s %-4s ch%-2d vel %3d  held [%s]\n",
				ev.Kind, widgets.NoteName(int(ev.Note)), ev.Channel+1, ev.Velocity, strings.Join(names, " "))
		case <-stop:
			fmt.Println()
			return
		}
	}
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect a keyboard to test. Ctrl+C to exit.")

	last := ""
	for {
		names := midi.InPortNames()
		current := strings.Join(names, ",")
		if current != last {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", names)
			last = current
		}
		time.Sleep(2 * time.Second)
	}
}
