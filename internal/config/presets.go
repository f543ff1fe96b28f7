package config

var Presets = map[string]*Config{
	"tiny": {
		Sampler: SamplerConfig{Batch: 1, TimeSteps: 11, Cells: 16, Points: 8, Interior: 32},
		Nu:      DefaultNu, Layers: []int{2, 8, 8, 1}, Seed: DefaultSeed,
	},
	"default": DefaultConfig(),
	"fine": {
		Sampler: SamplerConfig{Batch: 8, TimeSteps: 201, Cells: 256, Points: 128, Interior: 1024},
		Nu:      DefaultNu, Layers: []int{2, 64, 64, 64, 64, 1}, Seed: DefaultSeed,
	},
	"inviscid": {
		Sampler: SamplerConfig{Batch: 4, TimeSteps: 101, Cells: 128, Points: 64, Interior: 512},
		Nu:      0.001, Layers: []int{2, 32, 32, 32, 1}, Seed: DefaultSeed,
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	cp.Layers = append([]int(nil), cfg.Layers...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
