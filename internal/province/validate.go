package province

import (
	"fmt"
	"math"
)

// Config limits.
const (
	MinBoardSide     = 3
	MaxBoardSide     = 20
	MinResourceLimit = 7
)

// probabilitySumTolerance absorbs float rounding in weights such as 0.9+0.05+0.05.
const probabilitySumTolerance = 1e-9

// Validation error codes.
const (
	CodeBoardSize      = "BOARD_SIZE"
	CodeResourceLimit  = "RESOURCE_LIMIT"
	CodeTimeLimit      = "TIME_LIMIT"
	CodeAggression     = "ENEMY_AGGRESSION"
	CodeFillType       = "FILL_TYPE"
	CodeProbability    = "PROBABILITY"
	CodeProbabilitySum = "PROBABILITY_SUM"
	CodeClamp          = "CLAMP"
	CodeFixedCount     = "FIXED_COUNT"
	CodeInitialTile    = "INITIAL_TILE"
)

// ValidationError contains details about a config rule violation.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// IsValidConfig reports whether cfg may be handed to GenerateBoard.
func IsValidConfig(cfg GameConfig) bool {
	return len(ValidateConfig(cfg)) == 0
}

// ValidateConfig returns every rule cfg violates, in a stable order.
// Checks:
//   - Board sides within [3, 20]
//   - Resource limit at least 7
//   - Time limit -1 (stopwatch) or non-negative
//   - Enemy aggression within [0, 1]
//   - Fill payload matches its type and fits the board
//   - Seed tiles are in bounds, unique and well-formed
func ValidateConfig(cfg GameConfig) []ValidationError {
	var errs []ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	size := cfg.BoardSize
	if size.Width < MinBoardSide || size.Height < MinBoardSide {
		add(CodeBoardSize, "board %s is smaller than %dx%d", size, MinBoardSide, MinBoardSide)
	}
	if size.Width > MaxBoardSide || size.Height > MaxBoardSide {
		add(CodeBoardSize, "board %s is larger than %dx%d", size, MaxBoardSide, MaxBoardSide)
	}
	if cfg.ResourceLimit < MinResourceLimit {
		add(CodeResourceLimit, "resource limit %d is below %d", cfg.ResourceLimit, MinResourceLimit)
	}
	if cfg.TimeLimit < -1 {
		add(CodeTimeLimit, "time limit %d is below -1", cfg.TimeLimit)
	}
	if cfg.EnemyAggression < 0 || cfg.EnemyAggression > 1 || math.IsNaN(cfg.EnemyAggression) {
		add(CodeAggression, "enemy aggression %v is outside [0, 1]", cfg.EnemyAggression)
	}

	area := size.Area()
	free := area - len(cfg.InitialTileStates)

	switch cfg.FillConfig.Type {
	case FillProbabilities:
		p := cfg.FillConfig.Probabilities
		if p == nil {
			add(CodeFillType, "probabilities fill has no probabilities")
			break
		}
		weights := []struct {
			name  string
			value float64
		}{
			{"territory", p.Territory},
			{"fortified", p.Fortified},
			{"enemy", p.Enemy},
			{"obstacle", p.Obstacle},
		}
		sum := 0.0
		for _, w := range weights {
			if w.value < 0 || w.value > 1 || math.IsNaN(w.value) {
				add(CodeProbability, "%s probability %v is outside [0, 1]", w.name, w.value)
			}
			sum += w.value
		}
		if math.Abs(sum-1) > probabilitySumTolerance {
			add(CodeProbabilitySum, "probabilities sum to %v, want 1", sum)
		}

		clamps := []struct {
			name     string
			min, max *int
		}{
			{"fortified", p.MinFortified, p.MaxFortified},
			{"enemy", p.MinEnemy, p.MaxEnemy},
			{"obstacle", p.MinObstacle, p.MaxObstacle},
		}
		for _, c := range clamps {
			if c.max != nil && *c.max < 0 {
				add(CodeClamp, "max %s %d is negative", c.name, *c.max)
			}
			if c.min != nil && *c.min > area {
				add(CodeClamp, "min %s %d exceeds board area %d", c.name, *c.min, area)
			}
			if c.min != nil && c.max != nil && *c.min > *c.max {
				add(CodeClamp, "min %s %d exceeds max %d", c.name, *c.min, *c.max)
			}
		}
		if minSum := deref(p.MinFortified) + deref(p.MinEnemy); minSum > area {
			add(CodeClamp, "min fortified + min enemy %d exceeds board area %d", minSum, area)
		}

	case FillFixed:
		n := cfg.FillConfig.Numbers
		if n == nil {
			add(CodeFillType, "fixed fill has no numbers")
			break
		}
		if n.Fortified < 0 || n.Enemy < 0 || n.Obstacle < 0 {
			add(CodeFixedCount, "fixed counts must be non-negative")
		}
		total := n.Fortified + n.Enemy + n.Obstacle
		if total > area {
			add(CodeFixedCount, "fixed counts %d exceed board area %d", total, area)
		} else if total > free {
			add(CodeFixedCount, "fixed counts %d exceed the %d cells left after seed tiles", total, free)
		}

	default:
		add(CodeFillType, "unknown fill type %q", cfg.FillConfig.Type)
	}

	seen := make(map[Coord]bool, len(cfg.InitialTileStates))
	for _, t := range cfg.InitialTileStates {
		if !size.InBounds(t.X, t.Y) {
			add(CodeInitialTile, "seed tile %s is outside the %s board", t.Coord(), size)
			continue
		}
		if seen[t.Coord()] {
			add(CodeInitialTile, "duplicate seed tile %s", t.Coord())
			continue
		}
		seen[t.Coord()] = true
		if err := t.checkInvariants(); err != nil {
			add(CodeInitialTile, "%v", err)
		}
	}

	return errs
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
