package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"sightread/debug"
	"sightread/score"
	"sightread/theory"
)

// AppName names the config directory and the environment prefix
const AppName = "sightread"

// StaffConfig is the persisted form of one staff's settings
type StaffConfig struct {
	Duration      string `json:"duration"`
	Lowest        string `json:"lowest"`
	Highest       string `json:"highest"`
	NotesPerChord int    `json:"notesPerChord"`
}

// PracticeConfig holds the phrase preferences
type PracticeConfig struct {
	Key             string      `json:"key"`
	Time            string      `json:"time"`
	UseHarmony      bool        `json:"useHarmony,omitempty"`
	Lines           int         `json:"lines"`
	MeasuresPerLine int         `json:"measuresPerLine"`
	Top             StaffConfig `json:"top"`
	Bottom          StaffConfig `json:"bottom"`
}

// InputConfig defines a saved input port
type InputConfig struct {
	PortName    string `json:"portName"`
	AutoConnect bool   `json:"autoConnect"`
	Channel     int    `json:"channel,omitempty"` // 1-16, 0 for any
}

// UIConfig stores UI preferences
type UIConfig struct {
	ShowHelp       bool   `json:"showHelp,omitempty"`
	ShowExpected   bool   `json:"showExpected,omitempty"`
	Palette        string `json:"palette,omitempty"`
	TempoForExport int    `json:"tempoForExport,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Practice PracticeConfig `json:"practice"`
	Inputs   []InputConfig  `json:"inputs,omitempty"`
	UI       UIConfig       `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Practice: FromSettings(score.DefaultSettings()),
		UI: UIConfig{
			ShowExpected:   true,
			TempoForExport: 80,
		},
	}
}

// Env holds the SIGHTREAD_* environment overrides
type Env struct {
	ConfigDir string `envconfig:"CONFIG_DIR"`
	Debug     bool   `envconfig:"DEBUG"`
	Seed      uint64 `envconfig:"SEED"`
	Key       string `envconfig:"KEY"`
	Time      string `envconfig:"TIME"`
}

// LoadEnv reads the environment overrides
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(AppName, &env); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	return env, nil
}

// Apply overrides the practice key and meter. A new meter resets both staves
// to its default duration.
func (e Env) Apply(c *Config) {
	if e.Key != "" {
		c.Practice.Key = e.Key
	}
	if e.Time != "" && e.Time != c.Practice.Time {
		c.Practice.Time = e.Time
		if ts, err := theory.ParseTimeSignature(e.Time); err == nil {
			c.Practice.Top.Duration = string(ts.DefaultDuration())
			c.Practice.Bottom.Duration = string(ts.DefaultDuration())
		}
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	if env, err := LoadEnv(); err == nil && env.ConfigDir != "" {
		return env.ConfigDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Log(debug.Config, "no config at %s, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	debug.Log(debug.Config, "loaded %s", path)
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	debug.Log(debug.Config, "saving %s", path)
	return os.WriteFile(path, data, 0644)
}

// FindInput finds an input config by port name
func (c *Config) FindInput(portName string) *InputConfig {
	for i := range c.Inputs {
		if c.Inputs[i].PortName == portName {
			return &c.Inputs[i]
		}
	}
	return nil
}

// AddInput adds or updates an input config
func (c *Config) AddInput(in InputConfig) {
	for i := range c.Inputs {
		if c.Inputs[i].PortName == in.PortName {
			c.Inputs[i] = in
			return
		}
	}
	c.Inputs = append(c.Inputs, in)
}

// AllowsInput opens unknown ports and saved ports with autoConnect set
func (c *Config) AllowsInput(portName string) bool {
	in := c.FindInput(portName)
	return in == nil || in.AutoConnect
}

// InputChannel returns the channel filter saved for a port
func (c *Config) InputChannel(portName string) int {
	if in := c.FindInput(portName); in != nil {
		return in.Channel
	}
	return 0
}
