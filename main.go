// Command sightread generates random two-staff phrases and follows a MIDI
// keyboard through them chord by chord.
//
// Usage:
//
//	sightread [flags]            practice in the terminal
//	sightread export [flags]     write a phrase as ABC or Standard MIDI File
//	sightread ports              list MIDI input ports
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"sightread/config"
	"sightread/debug"
	"sightread/midi"
	"sightread/practice"
	"sightread/score"
	"sightread/theme"
	"sightread/tui"
)

var flags struct {
	debug bool
	seed  uint64
	key   string
	time  string
}

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Sight-reading practice for MIDI keyboards",
	Long: `Generates random phrases for treble and bass staves and waits for the
right chord on a connected MIDI keyboard before moving on.

Keyboards are detected as they are plugged in. Preferences live in
~/.config/sightread/config.json and can be overridden with SIGHTREAD_KEY,
SIGHTREAD_TIME, SIGHTREAD_SEED and SIGHTREAD_DEBUG.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "write debug.log to the config directory")
	pf.Uint64Var(&flags.seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&flags.key, "key", "", "key, e.g. D or F#m")
	pf.StringVar(&flags.time, "time", "", "time signature: 4/4, 3/4 or 6/8")

	rootCmd.AddCommand(exportCmd, portsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads preferences, applies environment and flag overrides and
// returns the config with a generator for the requested seed
func setup() (*config.Config, score.Settings, *score.Generator, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, score.Settings{}, nil, err
	}
	if flags.debug {
		env.Debug = true
	}
	if env.Debug {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, score.Settings{}, nil, err
		}
		if err := debug.Enable(dir); err != nil {
			return nil, score.Settings{}, nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, score.Settings{}, nil, err
	}
	env.Apply(cfg)
	config.Env{Key: flags.key, Time: flags.time}.Apply(cfg)

	settings, err := cfg.Practice.Settings()
	if err != nil {
		return nil, score.Settings{}, nil, err
	}

	seed := env.Seed
	if flags.seed != 0 {
		seed = flags.seed
	}
	var src rand.Source
	if seed != 0 {
		src = rand.NewPCG(seed, seed)
	}
	debug.Log(debug.Config, "settings %+v seed %d", settings, seed)
	return cfg, settings, score.NewGenerator(src), nil
}

func runPractice() error {
	cfg, settings, gen, err := setup()
	if err != nil {
		return err
	}
	defer debug.Disable()

	session, err := practice.NewSession(settings, gen)
	if err != nil {
		return err
	}

	palette, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		return err
	}
	th := theme.New(palette)

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if midi.Supported() {
		go deviceMgr.Run(ctx)
	}

	m := tui.NewModel(session, deviceMgr, th, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
