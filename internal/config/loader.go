package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/province/internal/province"
)

// ErrNoPresets is returned for a presets file without a single preset.
var ErrNoPresets = errors.New("presets file has no presets")

// LoadPresets loads the game presets.
// Search order: customPath -> ~/.province/presets.yaml -> ./configs/presets.yaml -> embedded default
// A custom path must exist and hold only valid presets. The other locations
// are skipped when they are missing or unusable.
func LoadPresets(customPath string) ([]province.GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		return readPresets(customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("presets.yaml"); userCfgPath != "" {
		if presets, err := readPresets(userCfgPath); err == nil {
			return presets, nil
		}
	}

	// Try local configs directory
	if presets, err := readPresets(filepath.Join("configs", "presets.yaml")); err == nil {
		return presets, nil
	}

	// Use embedded default YAML
	return DefaultPresets(), nil
}

func readPresets(path string) ([]province.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets %s: %w", path, err)
	}
	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets %s: %w", path, err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPresets)
	}
	for i, p := range file.Presets {
		if errs := province.ValidateConfig(p); len(errs) > 0 {
			return nil, fmt.Errorf("%s: preset %d (%s): %v", path, i, p.Name, errs[0])
		}
	}
	return file.Presets, nil
}

// LoadGameConfig reads a single game config from a YAML file.
// The config is decoded but not validated.
func LoadGameConfig(path string) (province.GameConfig, error) {
	var cfg province.GameConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// RandomPreset picks a preset uniformly.
func RandomPreset(presets []province.GameConfig, rng province.Rand) province.GameConfig {
	if len(presets) == 0 {
		return province.DefaultConfig()
	}
	return presets[rng.Intn(len(presets))].Clone()
}

// Dir returns ~/.province, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".province")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
