package province

// Status is the lifecycle state of a game.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusAnimating Status = "animating"
	StatusPlayerWon Status = "playerWon"
	StatusEnemyWon  Status = "enemyWon"
)

// Terminal reports whether the status is a final outcome.
func (s Status) Terminal() bool {
	return s == StatusPlayerWon || s == StatusEnemyWon
}

// IsGameOver evaluates the board after a move.
// The win check runs first, so capturing the last tile with the last
// resource is a win.
func IsGameOver(resourcesLeft int, b Board) Status {
	if allCaptured(b) {
		return StatusPlayerWon
	}
	if resourcesLeft <= 0 {
		return StatusEnemyWon
	}
	return StatusOngoing
}

// allCaptured reports whether every tile is captured or an obstacle.
func allCaptured(b Board) bool {
	for _, t := range b.Tiles {
		if !t.IsCaptured && t.Type != TypeObstacle {
			return false
		}
	}
	return true
}

// AllFortified reports whether every tile is fortified or an obstacle.
func AllFortified(b Board) bool {
	for _, t := range b.Tiles {
		if t.Type != TypeFortified && t.Type != TypeObstacle {
			return false
		}
	}
	return true
}

// EnemyCanAdvance reports whether any captured territory tile touches an
// enemy tile, i.e. whether the adversary still has a target.
func EnemyCanAdvance(b Board) bool {
	for _, t := range b.Tiles {
		if t.Type == TypeTerritory && t.IsCaptured && hasAdjacentType(b, t.X, t.Y, TypeEnemy) {
			return true
		}
	}
	return false
}
