package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sightread/config"
	"sightread/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !midi.Supported() {
			return fmt.Errorf("no MIDI driver available")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		names := midi.InPortNames()
		if len(names) == 0 {
			fmt.Fprintln(out, "(no input ports)")
			return nil
		}
		for i, name := range names {
			mark := ""
			if !cfg.AllowsInput(name) {
				mark = "  [ignored]"
			} else if ch := cfg.InputChannel(name); ch > 0 {
				mark = fmt.Sprintf("  [channel %d]", ch)
			}
			fmt.Fprintf(out, "  %d: %s%s\n", i, name, mark)
		}
		return nil
	},
}
