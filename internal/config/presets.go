package config

import "sort"

// Presets are named overlays applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	// bubble: spherical bubble at rest, full output.
	"bubble": func(c *Config) {},
	// droplet: oscillating droplet, band around the equator of a unit-radius drop.
	"droplet": func(c *Config) {
		c.Selection = SelectionConfig{Kind: SelectShell, Radius: 1.0, Width: 0.1, CenterFraction: 0.5, ZHalfWidth: 0.05}
	},
	// preview: quick look, raster only with a terminal preview.
	"preview": func(c *Config) {
		c.Output.ExportVector = false
		c.Output.DPI = 100
		c.Output.Preview = true
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
