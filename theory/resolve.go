package theory

// Number resolves p under k to an absolute pitch number (60 is middle C).
// It panics if k is unknown or the degree is outside 1..7.
func (k Key) Number(p Pitch) int {
	e := k.mustDegree(p.Degree)
	return e.Semitone + p.Accidental + (p.Register+1)*12
}

// NextScaleStep returns the pitch one diatonic step above p with the
// accidental dropped. The register increments when the step crosses the
// octave boundary of the key's table, which for most keys is the step
// from the B-lettered degree.
func (k Key) NextScaleStep(p Pitch) Pitch {
	cur := k.mustDegree(p.Degree)
	next := p.Degree%7 + 1
	reg := p.Register
	if k.mustDegree(next).Semitone < cur.Semitone {
		reg++
	}
	return Pitch{Degree: next, Register: reg}
}

// CapToPitch converts an absolute cap into the degree of k written with the
// same letter. The register is kept except where the key writes that letter
// across the octave boundary (Cb, B#), so the result sounds where the cap is
// written.
func (k Key) CapToPitch(c PitchCap) Pitch {
	deg, ok := k.DegreeOf(c.Class)
	if !ok {
		panic("theory: key " + string(k) + " has no degree for " + c.Class.String())
	}
	e := k.mustDegree(deg)
	return Pitch{Degree: deg, Register: c.Register + octaveShift(e)}
}

// octaveShift is the difference between the sounding octave of a degree and
// the octave its letter is written in
func octaveShift(e DegreeEntry) int {
	diff := e.Semitone - e.Class.Semitone()
	switch {
	case diff > 6:
		return -1
	case diff < -6:
		return 1
	}
	return 0
}

// WrittenRegister returns the letter octave a pitch is notated in
func (k Key) WrittenRegister(p Pitch) int {
	return p.Register - octaveShift(k.mustDegree(p.Degree))
}

// Scale enumerates every pitch from lowest up by diatonic steps while it does
// not resolve above highest
func (k Key) Scale(lowest, highest Pitch) []Pitch {
	top := k.Number(highest)
	var out []Pitch
	for p := (Pitch{Degree: lowest.Degree, Register: lowest.Register}); k.Number(p) <= top; p = k.NextScaleStep(p) {
		out = append(out, p)
	}
	return out
}
