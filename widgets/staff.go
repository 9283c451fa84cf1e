package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sightread/practice"
	"sightread/score"
	"sightread/theme"
)

// Region is a clickable chord cell in a rendered score
type Region struct {
	Row     int
	Col     int
	Width   int
	ChordID string
}

// ScoreView is a rendered score plus the cells a click can land on
type ScoreView struct {
	View    string
	Regions []Region
}

// HitTest returns the chord under (x, y), relative to the top-left corner
// of the view
func (v ScoreView) HitTest(x, y int) (string, bool) {
	for _, r := range v.Regions {
		if y == r.Row && x >= r.Col && x < r.Col+r.Width {
			return r.ChordID, true
		}
	}
	return "", false
}

const (
	trebleLabel = "G "
	bassLabel   = "F "
)

// ChordLabel spells a chord's pitches bottom to top, e.g. "C4.E4"
func ChordLabel(sc *score.Score, c *score.Chord) string {
	names := make([]string, len(c.Pitches))
	for i, p := range c.Pitches {
		names[i] = sc.Key.Spell(p)
	}
	return strings.Join(names, ".")
}

// RenderScore draws each line of sc as a marker row, a treble row and a bass
// row. Only slots where some voice starts get a column; a voice that is
// still sounding shows the hold symbol. Chords named in cur are highlighted.
func RenderScore(th *theme.Theme, sc *score.Score, cur practice.ChordIDs) ScoreView {
	cell := 1
	for _, c := range sc.Chords() {
		cell = max(cell, len(ChordLabel(sc, c))+1)
	}

	muted := lipgloss.NewStyle().Foreground(th.Muted())
	plain := lipgloss.NewStyle().Foreground(th.FG())
	active := lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)

	current := func(c *score.Chord, id string) bool {
		return c != nil && id != "" && c.ID == id
	}

	var out ScoreView
	var rows []string
	for _, line := range sc.Lines {
		var marker, treble, bass strings.Builder
		marker.WriteString(strings.Repeat(" ", len(trebleLabel)))
		treble.WriteString(muted.Render(trebleLabel))
		bass.WriteString(muted.Render(bassLabel))
		col := len(trebleLabel)

		for _, m := range line.Measures {
			treble.WriteString(muted.Render(th.Symbols.Bar))
			bass.WriteString(muted.Render(th.Symbols.Bar))
			marker.WriteString(" ")
			col++

			var topHeld, bottomHeld bool
			for _, slot := range m.Slots {
				if !slot.Sounding() {
					continue
				}
				here := current(slot.Top, cur.Top) || current(slot.Bottom, cur.Bottom)
				if here {
					marker.WriteString(active.Render(pad(th.Symbols.Cursor, cell)))
				} else {
					marker.WriteString(strings.Repeat(" ", cell))
				}

				for _, v := range []struct {
					c    *score.Chord
					b    *strings.Builder
					held *bool
					row  int
				}{
					{slot.Top, &treble, &topHeld, len(rows) + 1},
					{slot.Bottom, &bass, &bottomHeld, len(rows) + 2},
				} {
					switch {
					case v.c != nil:
						style := plain
						if current(v.c, cur.Top) || current(v.c, cur.Bottom) {
							style = active
						}
						v.b.WriteString(style.Render(pad(ChordLabel(sc, v.c), cell)))
						out.Regions = append(out.Regions, Region{Row: v.row, Col: col, Width: cell, ChordID: v.c.ID})
						*v.held = true
					case *v.held:
						v.b.WriteString(muted.Render(pad(th.Symbols.Hold, cell)))
					default:
						v.b.WriteString(muted.Render(pad(th.Symbols.Silent, cell)))
					}
				}
				col += cell
			}
		}
		treble.WriteString(muted.Render(th.Symbols.Bar))
		bass.WriteString(muted.Render(th.Symbols.Bar))

		rows = append(rows, marker.String(), treble.String(), bass.String(), "")
	}
	out.View = strings.Join(rows, "\n")
	return out
}

// pad left-aligns s in a cell of width w (s is plain text)
func pad(s string, w int) string {
	n := lipgloss.Width(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
