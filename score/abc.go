package score

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sightread/theory"
)

// WriteABC writes s as ABC notation with the top voice on a treble staff and
// the bottom voice on a bass staff. One grid unit is the ABC unit length.
func WriteABC(w io.Writer, s *Score) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "X:1")
	fmt.Fprintf(bw, "M:%s\n", s.Time)
	fmt.Fprintf(bw, "L:1/%d\n", theory.UnitsPerWhole)
	if len(s.Lines) > 0 {
		fmt.Fprintf(bw, "%%%%barsperstaff %d\n", len(s.Lines[0].Measures))
	}
	bw.WriteString("%%staves {1 2}\n")
	fmt.Fprintln(bw, "V:1 clef=treble")
	fmt.Fprintln(bw, "V:2 clef=bass")
	fmt.Fprintf(bw, "K:%s\n", s.Key)

	for li, line := range s.Lines {
		last := li == len(s.Lines)-1
		for v, top := range []bool{true, false} {
			fmt.Fprintf(bw, "[V:%d] ", v+1)
			for mi, m := range line.Measures {
				bw.WriteString(abcMeasure(m, top))
				if last && mi == len(line.Measures)-1 {
					bw.WriteString(" |]")
				} else {
					bw.WriteString(" | ")
				}
			}
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

// abcMeasure renders one voice of a measure. Beams break at every beat group.
func abcMeasure(m Measure, top bool) string {
	shown := map[string]int{}
	var b strings.Builder
	for i, slot := range m.Slots {
		c := slot.Bottom
		if top {
			c = slot.Top
		}
		if c == nil {
			continue
		}
		if b.Len() > 0 && i%m.Time.BeamUnits() == 0 {
			b.WriteByte(' ')
		}
		if len(c.Pitches) > 1 {
			b.WriteByte('[')
		}
		for _, p := range c.Pitches {
			b.WriteString(abcNote(m.Key, p, shown))
		}
		if len(c.Pitches) > 1 {
			b.WriteByte(']')
		}
		b.WriteString(strconv.Itoa(c.Duration.Units()))
	}
	if b.Len() == 0 {
		return "z" + strconv.Itoa(m.Time.MeasureUnits())
	}
	return b.String()
}

// abcNote renders a pitch, writing an accidental whenever the alteration
// differs from what the key signature or an earlier note in the measure
// has already set for that letter and octave
func abcNote(k theory.Key, p theory.Pitch, shown map[string]int) string {
	e, _ := k.Degree(p.Degree)
	octave := k.WrittenRegister(p)
	slot := e.Class.String() + strconv.Itoa(octave)

	current, ok := shown[slot]
	if !ok {
		current = k.KeyAccidental(e.Class)
	}
	alter := k.Alteration(p)

	var b strings.Builder
	if alter != current {
		b.WriteString(abcAccidental(alter))
	}
	shown[slot] = alter

	letter := e.Class.String()
	switch {
	case octave >= 5:
		b.WriteString(strings.ToLower(letter))
		b.WriteString(strings.Repeat("'", octave-5))
	default:
		b.WriteString(letter)
		b.WriteString(strings.Repeat(",", 4-octave))
	}
	return b.String()
}

func abcAccidental(alter int) string {
	switch {
	case alter > 0:
		return strings.Repeat("^", alter)
	case alter < 0:
		return strings.Repeat("_", -alter)
	}
	return "="
}
