package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sightread/score"
)

var exportFlags struct {
	format string
	output string
	bpm    int
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a phrase and write it as ABC or MIDI",
	Long: `Generate one phrase from the saved preferences and write it out.

Examples:
  sightread export --key Eb > phrase.abc
  sightread export --format smf --bpm 96 -o phrase.mid`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, settings, gen, err := setup()
		if err != nil {
			return err
		}
		sc, err := gen.Generate(settings)
		if err != nil {
			return err
		}

		bpm := exportFlags.bpm
		if bpm <= 0 {
			bpm = cfg.UI.TempoForExport
		}

		if exportFlags.output == "" {
			return writeScore(cmd.OutOrStdout(), sc, exportFlags.format, bpm)
		}
		return exportFile(exportFlags.output, sc, exportFlags.format, bpm)
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.format, "format", "abc", "output format: abc or smf")
	f.StringVarP(&exportFlags.output, "output", "o", "", "output file (default stdout)")
	f.IntVar(&exportFlags.bpm, "bpm", 0, "tempo for smf output (default from preferences)")
}

// exportFile writes sc to path, reporting the close error of the new file
func exportFile(path string, sc *score.Score, format string, bpm int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeScore(f, sc, format, bpm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeScore(w io.Writer, sc *score.Score, format string, bpm int) error {
	bw := bufio.NewWriter(w)

	var err error
	switch format {
	case "abc":
		err = score.WriteABC(bw, sc)
	case "smf", "mid", "midi":
		err = score.WriteSMF(bw, sc, float64(bpm))
	default:
		return fmt.Errorf("unknown format %q (want abc or smf)", format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}
