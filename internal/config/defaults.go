package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/province/internal/province"
)

//go:embed defaults/presets.yaml
var defaultPresetsYAML []byte

// DefaultPresets returns the embedded presets.
func DefaultPresets() []province.GameConfig {
	var file PresetFile
	if err := yaml.Unmarshal(defaultPresetsYAML, &file); err != nil || len(file.Presets) == 0 {
		return []province.GameConfig{province.DefaultConfig()} // Fallback to hardcoded if embed fails
	}
	return file.Presets
}

// GetDefaultYAML returns the embedded presets file.
func GetDefaultYAML() []byte {
	return defaultPresetsYAML
}
