package config

var Presets = map[string]map[string]*Config{
	"dam_break": {
		"small": {
			Scenario: "dam_break", Dt: 5e-4, Duration: 2.0, Courant: 0.5,
			Particles: ParticlesConfig{Spacing: 0.05, NX: 20, NY: 20},
		},
		"tall": {
			Scenario: "dam_break", Dt: 5e-4, Duration: 3.0, Courant: 0.5,
			Particles: ParticlesConfig{Spacing: 0.05, NX: 12, NY: 40},
		},
		"fine": {
			Scenario: "dam_break", Dt: 2.5e-4, Duration: 2.0, Courant: 0.5, Adaptive: true,
			MinDt: 1e-6, MaxDt: 5e-3,
			Particles: ParticlesConfig{Spacing: 0.025, NX: 40, NY: 40},
		},
	},
	"drop": {
		"splash": {
			Scenario: "drop", Dt: 5e-4, Duration: 2.0, Courant: 0.5,
			Particles: ParticlesConfig{Spacing: 0.05, NX: 16, NY: 16},
		},
		"heavy": {
			Scenario: "drop", Dt: 2.5e-4, Duration: 3.0, Courant: 0.5,
			Particles: ParticlesConfig{Spacing: 0.04, NX: 24, NY: 24},
		},
	},
	"channel": {
		"shear": {
			Scenario: "channel", Dt: 4e-4, Duration: 1.0, Courant: 0.5,
			Particles: ParticlesConfig{Spacing: 0.05, NX: 30, NY: 20},
		},
		"fast": {
			Scenario: "channel", Dt: 2e-4, Duration: 1.0, Courant: 0.25, Adaptive: true,
			MinDt: 1e-6, MaxDt: 2e-3,
			Particles: ParticlesConfig{Spacing: 0.05, NX: 30, NY: 20},
		},
	},
}

// GetPreset returns the named preset merged over the defaults. The
// result is a fresh copy, so callers may mutate it freely.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	p, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Scenario = p.Scenario
	cfg.Dt = p.Dt
	cfg.Duration = p.Duration
	cfg.Courant = p.Courant
	cfg.Adaptive = p.Adaptive
	if p.MinDt > 0 {
		cfg.MinDt = p.MinDt
	}
	if p.MaxDt > 0 {
		cfg.MaxDt = p.MaxDt
	}
	cfg.Particles = p.Particles
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
