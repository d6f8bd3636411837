package province

// DefaultExpansionChance is the probability that the adversary advances on a
// regular turn.
const DefaultExpansionChance = 0.9

// expansionCandidates returns the captured territory tiles adjacent to at
// least one enemy tile, deduplicated, in row-major order.
func expansionCandidates(b Board) []Coord {
	var out []Coord
	for _, t := range b.Tiles {
		if t.Type == TypeTerritory && t.IsCaptured && hasAdjacentType(b, t.X, t.Y, TypeEnemy) {
			out = append(out, t.Coord())
		}
	}
	return out
}

// AdvanceEnemyTiles lets the adversary seize at most one tile.
// With probability chance, one candidate (captured territory next to an
// enemy) is chosen uniformly; unless it is disallowed it becomes an
// uncaptured enemy tile. A chance of 1 or more always draws a candidate.
func AdvanceEnemyTiles(b Board, rng Rand, chance float64, disallowed ...Coord) Board {
	next := b.Clone()
	if chance < 1 && rng.Float64() >= chance {
		return next
	}
	candidates := expansionCandidates(next)
	if len(candidates) == 0 {
		return next
	}
	target := candidates[rng.Intn(len(candidates))]
	if contains(disallowed, target) {
		return next
	}
	next.ptr(target.X, target.Y).retype(TypeEnemy)
	return next
}
