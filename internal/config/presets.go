package config

import "sort"

func classicScene() SceneConfig {
	return SceneConfig{
		Background: "#000000",
		Spheres: []SphereConfig{
			{Center: [3]float64{0, -1, 3}, Radius: 1, Color: "#ff0000"},
			{Center: [3]float64{2, 0, 4}, Radius: 1, Color: "#0000ff"},
			{Center: [3]float64{-2, 0, 4}, Radius: 1, Color: "#00ff00"},
			{Center: [3]float64{0, -5001, 0}, Radius: 5000, Color: "#ffff00"},
		},
	}
}

// Presets are scene variations applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"single": func(c *Config) {
		c.Scene = SceneConfig{
			Background: "#000000",
			Spheres:    []SphereConfig{{Center: [3]float64{0, 0, 4}, Radius: 1, Color: "#ff8800"}},
		}
		c.Animation = AnimationConfig{Enabled: true, Sphere: 0, Axis: "x", Step: -0.01}
	},
	"row": func(c *Config) {
		c.Scene = SceneConfig{Background: "#101018"}
		for i, col := range []string{"#e63946", "#f4a261", "#e9c46a", "#2a9d8f", "#264653"} {
			c.Scene.Spheres = append(c.Scene.Spheres, SphereConfig{
				Center: [3]float64{float64(i-2) * 1.2, 0, 5 + float64(i)},
				Radius: 0.5,
				Color:  col,
			})
		}
		c.Animation = AnimationConfig{Enabled: true, Sphere: 2, Axis: "y", Step: 0.01}
	},
	"empty": func(c *Config) {
		c.Scene = SceneConfig{Background: "#000000"}
		c.Animation.Enabled = false
	},
}

// GetPreset returns the default config with the named preset applied, or nil.
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
