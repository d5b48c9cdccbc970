package particles

import (
	"math"
	"sort"
)

// BaseFields is the standard field set carried by every fluid group:
// positions, velocities, accelerations, XSPH position rates, smoothing
// length, mass, density and its rate, and pressure.
var BaseFields = []string{
	"x", "y", "z",
	"u", "v", "w",
	"au", "av", "aw",
	"ax", "ay", "az",
	"h", "m", "rho", "arho", "p",
}

// Group is a named columnar table of per-particle fields.
type Group struct {
	name   string
	n      int
	fields map[string][]float64
}

// New creates a group with n particles and the given zero-filled fields.
func New(name string, n int, fieldNames ...string) *Group {
	g := &Group{
		name:   name,
		n:      n,
		fields: make(map[string][]float64, len(fieldNames)),
	}
	for _, f := range fieldNames {
		g.AddField(f)
	}
	return g
}

// NewFluid creates a group carrying the standard fluid field set.
func NewFluid(name string, n int) *Group {
	return New(name, n, BaseFields...)
}

func (g *Group) Name() string { return g.name }

// Len returns the number of particles in the group.
func (g *Group) Len() int { return g.n }

// AddField ensures the named field exists and returns its slice.
// Existing fields are returned unchanged.
func (g *Group) AddField(name string) []float64 {
	if f, ok := g.fields[name]; ok {
		return f
	}
	f := make([]float64, g.n)
	g.fields[name] = f
	return f
}

// AddFields ensures every named field exists.
func (g *Group) AddFields(names ...string) {
	for _, name := range names {
		g.AddField(name)
	}
}

// Field returns the flat backing slice for a field, or nil when the
// group does not carry it. The slice is valid until the group is
// resized.
func (g *Group) Field(name string) []float64 {
	return g.fields[name]
}

// Has reports whether the group carries the named field.
func (g *Group) Has(name string) bool {
	_, ok := g.fields[name]
	return ok
}

// Names returns all field names in lexicographic order.
func (g *Group) Names() []string {
	names := make([]string, 0, len(g.fields))
	for name := range g.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Min returns the minimum value of a field. The second return is false
// when the field is absent or the group is empty.
func (g *Group) Min(name string) (float64, bool) {
	f, ok := g.fields[name]
	if !ok || g.n == 0 {
		return 0, false
	}
	min := f[0]
	for _, v := range f[1:g.n] {
		if v < min {
			min = v
		}
	}
	return min, true
}

// Set assigns one particle's value in a field. Missing fields are a
// no-op so callers can seed optional fields without checking.
func (g *Group) Set(name string, i int, v float64) {
	if f, ok := g.fields[name]; ok {
		f[i] = v
	}
}

// Fill assigns v to every particle in a field.
func (g *Group) Fill(name string, v float64) {
	f, ok := g.fields[name]
	if !ok {
		return
	}
	for i := range f {
		f[i] = v
	}
}

// Append adds one particle with the given field values (unnamed fields
// get zero) and returns its index.
func (g *Group) Append(vals map[string]float64) int {
	idx := g.n
	g.n++
	for name, f := range g.fields {
		g.fields[name] = append(f, vals[name])
	}
	return idx
}

// Remove deletes particle i by swapping the last particle into its slot.
func (g *Group) Remove(i int) {
	if i < 0 || i >= g.n {
		return
	}
	last := g.n - 1
	for name, f := range g.fields {
		f[i] = f[last]
		g.fields[name] = f[:last]
	}
	g.n = last
}

// Resize grows or shrinks the group to n particles. New slots are
// zero-filled.
func (g *Group) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for name, f := range g.fields {
		if n <= cap(f) {
			f = f[:n]
			for i := g.n; i < n; i++ {
				f[i] = 0
			}
		} else {
			grown := make([]float64, n)
			copy(grown, f)
			f = grown
		}
		g.fields[name] = f
	}
	g.n = n
}

// Valid reports whether every field value is finite.
func (g *Group) Valid() bool {
	for _, f := range g.fields {
		for _, v := range f[:g.n] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
