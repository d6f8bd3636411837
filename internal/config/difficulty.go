package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/province/internal/province"
)

// ParseDifficulty converts a flag value into a DifficultyPreset.
// The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyDifficultyPreset modifies the config based on a difficulty preset.
// Easy widens the budget and lifts the fog, hard tightens the budget and
// turns the fog on. The result still validates when cfg did.
func ApplyDifficultyPreset(cfg *province.GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.ResourceLimit += 3
		cfg.EnemyAggression = clampF(cfg.EnemyAggression-0.2, 0, 1)
		cfg.FogOfWar = false
	case DifficultyHard:
		cfg.ResourceLimit = max(cfg.ResourceLimit-2, province.MinResourceLimit)
		cfg.EnemyAggression = clampF(cfg.EnemyAggression+0.1, 0, 1)
		cfg.FogOfWar = true
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
