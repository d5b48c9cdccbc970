package scenario

import (
	"fmt"
	"sort"
	"strings"
)

// Builder constructs one scenario from layout parameters.
type Builder func(Params) (*Setup, error)

// Info describes a registered scenario for listings.
type Info struct {
	Name  string
	About string
}

type entry struct {
	about string
	build Builder
}

type Registry struct {
	scenarios map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]entry)}

	r.scenarios["dam_break"] = entry{
		about: "water column collapsing in a tank (wcsph)",
		build: DamBreak,
	}
	r.scenarios["drop"] = entry{
		about: "round blob falling under gravity (adami_verlet)",
		build: Drop,
	}
	r.scenarios["channel"] = entry{
		about: "shear layer with transport velocity (transport_velocity)",
		build: Channel,
	}

	return r
}

// Get builds the named scenario.
func (r *Registry) Get(name string, p Params) (*Setup, error) {
	e, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s (valid: %s)", name, strings.Join(r.Names(), ", "))
	}
	return e.build(p)
}

// Names lists registered scenario names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns name and description for every scenario, sorted by name.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.scenarios))
	for _, name := range r.Names() {
		out = append(out, Info{Name: name, About: r.scenarios[name].about})
	}
	return out
}
