// Package config provides YAML-based game presets, difficulty presets and
// user settings for Province.
package config

import "github.com/vovakirdan/province/internal/province"

// PresetFile is the layout of a presets YAML file.
type PresetFile struct {
	Presets []province.GameConfig `yaml:"presets"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Settings are the user-level options read from the settings file and the
// PROVINCE_* environment.
type Settings struct {
	DBPath   string `mapstructure:"db"`
	Seed     int64  `mapstructure:"seed"` // 0 means seed from the clock
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Presets  string `mapstructure:"presets"` // Custom presets file
}
