package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "plasma", p.Name)
	assert.Len(t, p.Colors, 11)
	assert.ElementsMatch(t, []string{"mono", "plasma"}, Builtin())
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.gpl")
	require.NoError(t, os.WriteFile(path, []byte("GIMP Palette\nName: two\n0 0 0\n255 255 255\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(0))
	assert.Equal(t, RGB{127, 127, 127}, p.Lookup(0.5))
	assert.Equal(t, RGB{255, 255, 255}, p.Lookup(2))
}

func TestParseGPLRejectsEmpty(t *testing.T) {
	_, err := ParseGPL(strings.NewReader("GIMP Palette\nName: empty\n# nothing\n"))
	assert.Error(t, err)

	_, err = Load("no-such-palette")
	assert.Error(t, err)
}

func TestThemeColors(t *testing.T) {
	p, err := Load("mono")
	require.NoError(t, err)
	th := New(p)
	assert.Equal(t, lipgloss.Color("#141414"), th.BG())
	assert.Equal(t, lipgloss.Color("#ffffff"), th.Success())
}
