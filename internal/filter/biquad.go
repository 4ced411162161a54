// Package filter provides IIR biquad cascades and a bin-domain moving
// average, the two filtering primitives the DSP core builds on.
package filter

// Section holds direct-form-II transposed biquad coefficients, normalized
// so a0 = 1.
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// NewSection builds a normalized Section from raw transfer-function
// coefficients B = {b0,b1,b2}, A = {a0,a1,a2}.
func NewSection(b, a [3]float64) Section {
	return Section{
		B0: b[0] / a[0],
		B1: b[1] / a[0],
		B2: b[2] / a[0],
		A1: a[1] / a[0],
		A2: a[2] / a[0],
	}
}

// state is the transposed direct-form-II delay pair for one Section.
type state struct {
	z1, z2 float64
}

func (s *state) process(sec *Section, in float64) float64 {
	out := sec.B0*in + s.z1
	s.z1 = sec.B1*in - sec.A1*out + s.z2
	s.z2 = sec.B2*in - sec.A2*out
	return out
}

// Cascade runs a sample through an ordered chain of biquad sections.
type Cascade struct {
	sections []Section
	states   []state
}

// NewCascade builds a Cascade from one or more sections, applied in order.
func NewCascade(sections ...Section) *Cascade {
	return &Cascade{
		sections: sections,
		states:   make([]state, len(sections)),
	}
}

// Process filters a single sample through every section in the cascade.
func (c *Cascade) Process(in float64) float64 {
	out := in
	for i := range c.sections {
		out = c.states[i].process(&c.sections[i], out)
	}
	return out
}

// Reset clears all section delay state.
func (c *Cascade) Reset() {
	for i := range c.states {
		c.states[i] = state{}
	}
}

// Apply filters an entire buffer in place order, returning a new slice.
func Apply(x []float64, sections ...Section) []float64 {
	c := NewCascade(sections...)
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = c.Process(v)
	}
	return y
}
