package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sightread/score"
	"sightread/theory"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("SIGHTREAD_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	s, err := cfg.Practice.Settings()
	require.NoError(t, err)
	assert.Equal(t, score.DefaultSettings(), s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SIGHTREAD_CONFIG_DIR", filepath.Join(dir, "nested"))

	cfg := DefaultConfig()
	cfg.Practice.Key = "F#m"
	cfg.Practice.UseHarmony = true
	cfg.AddInput(InputConfig{PortName: "Digital Piano", AutoConnect: true, Channel: 1})
	require.NoError(t, cfg.Save())

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "config.json"), path)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsBrokenJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SIGHTREAD_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestPracticeSettingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *PracticeConfig)
	}{
		{"key", func(p *PracticeConfig) { p.Key = "Z" }},
		{"time", func(p *PracticeConfig) { p.Time = "7/8" }},
		{"duration", func(p *PracticeConfig) { p.Top.Duration = "long" }},
		{"cap", func(p *PracticeConfig) { p.Bottom.Lowest = "X2" }},
		{"range", func(p *PracticeConfig) { p.Bottom.NotesPerChord = 30 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultConfig().Practice
			tt.mutate(&p)
			_, err := p.Settings()
			assert.ErrorIs(t, err, score.ErrInvalidSettings)
		})
	}
}

func TestFromSettingsRoundTrip(t *testing.T) {
	s := score.DefaultSettings().WithTime(theory.Time68)
	s.Key = "Abm"
	s.Top.NotesPerChord = 3

	back, err := FromSettings(s).Settings()
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SIGHTREAD_KEY", "Eb")
	t.Setenv("SIGHTREAD_TIME", "6/8")
	t.Setenv("SIGHTREAD_SEED", "42")
	t.Setenv("SIGHTREAD_DEBUG", "true")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), env.Seed)
	assert.True(t, env.Debug)

	cfg := DefaultConfig()
	env.Apply(cfg)
	assert.Equal(t, "Eb", cfg.Practice.Key)
	assert.Equal(t, "6/8", cfg.Practice.Time)
	assert.Equal(t, "quarter-dotted", cfg.Practice.Top.Duration)

	_, err = cfg.Practice.Settings()
	assert.NoError(t, err)
}

func TestInputs(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.AllowsInput("Anything"))

	cfg.AddInput(InputConfig{PortName: "Pads", AutoConnect: false})
	cfg.AddInput(InputConfig{PortName: "Keys", AutoConnect: true, Channel: 3})
	cfg.AddInput(InputConfig{PortName: "Keys", AutoConnect: true, Channel: 4})

	require.Len(t, cfg.Inputs, 2)
	assert.False(t, cfg.AllowsInput("Pads"))
	assert.True(t, cfg.AllowsInput("Keys"))
	assert.Equal(t, 4, cfg.InputChannel("Keys"))
	assert.Equal(t, 0, cfg.InputChannel("Unknown"))
	assert.Nil(t, cfg.FindInput("Unknown"))
}
