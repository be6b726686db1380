package eq

// presets maps preset names to band gain vectors in dB, low band first.
var presets = map[string][NumBands]float64{
	"flat":      {},
	"rock":      {5, 4, 3, 1, -1, -1, 1, 3, 4, 5},
	"pop":       {-2, -1, 0, 2, 4, 4, 2, 0, -1, -2},
	"jazz":      {0, 0, 0, 2, 4, 4, 2, 0, 0, 0},
	"classical": {0, 0, 0, 0, 0, 0, -2, -2, -2, -3},
	"dance":     {6, 5, 2, 0, 0, -2, -2, -2, 0, 0},
	"bass":      {8, 6, 4, 2, 0, 0, 0, 0, 0, 0},
	"treble":    {0, 0, 0, 0, 0, 0, 2, 4, 6, 8},
	"vocal":     {-2, -3, -3, 1, 4, 4, 3, 1, 0, -1},
}

// PresetNames returns the names accepted by LoadPreset.
func PresetNames() []string {
	return []string{
		"flat", "rock", "pop", "jazz", "classical",
		"dance", "bass", "treble", "vocal",
	}
}

// PresetGains returns the gain vector for a named preset.
func PresetGains(name string) ([NumBands]float64, bool) {
	g, ok := presets[name]
	return g, ok
}

// LoadPreset applies a named preset to the control surface and reports
// whether the name was known. Unknown names leave the state untouched.
func (s *State) LoadPreset(name string) bool {
	g, ok := presets[name]
	if !ok {
		return false
	}
	s.SetGains(g)
	return true
}
