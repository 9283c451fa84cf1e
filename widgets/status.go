package widgets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sightread/score"
	"sightread/theme"
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName spells a pitch number with sharps, e.g. 61 is "C#4"
func NoteName(n int) string {
	octave := n/12 - 1
	return fmt.Sprintf("%s%d", noteNames[((n%12)+12)%12], octave)
}

// RenderNotes shows the expected notes, filled once held, followed by any
// held notes that are not expected
func RenderNotes(th *theme.Theme, expected, held []int) string {
	hit := lipgloss.NewStyle().Foreground(th.Success())
	wait := lipgloss.NewStyle().Foreground(th.FG())
	wrong := lipgloss.NewStyle().Foreground(th.Warning())

	var parts []string
	for _, n := range expected {
		if slices.Contains(held, n) {
			parts = append(parts, hit.Render(th.Symbols.Held+" "+NoteName(n)))
		} else {
			parts = append(parts, wait.Render(th.Symbols.Missing+" "+NoteName(n)))
		}
	}
	for _, n := range held {
		if !slices.Contains(expected, n) {
			parts = append(parts, wrong.Render(th.Symbols.Held+" "+NoteName(n)))
		}
	}
	return strings.Join(parts, "  ")
}

// RenderSettings summarises the phrase settings on one line
func RenderSettings(s score.Settings) string {
	staff := func(st score.Staff) string {
		return fmt.Sprintf("%s %s-%s x%d", st.Duration, st.Lowest, st.Highest, st.NotesPerChord)
	}
	harmony := ""
	if s.UseHarmony {
		harmony = "  harmony"
	}
	return fmt.Sprintf("%s  %s  treble %s  bass %s%s",
		s.Key, s.Time, staff(s.Top), staff(s.Bottom), harmony)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
