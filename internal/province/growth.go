package province

// ProgressTerritoryGrowth advances every captured territory tile by one level.
// A tile whose level would exceed MaxGrowingLevel becomes fortified with
// level 0. Tiles listed in skip are left untouched.
func ProgressTerritoryGrowth(b Board, skip ...Coord) Board {
	next := b.Clone()
	for i := range next.Tiles {
		t := &next.Tiles[i]
		if t.Type != TypeTerritory || !t.IsCaptured || contains(skip, t.Coord()) {
			continue
		}
		t.GrowingLevel++
		if t.GrowingLevel > MaxGrowingLevel {
			t.retype(TypeFortified)
		}
	}
	return next
}

func contains(coords []Coord, c Coord) bool {
	for _, other := range coords {
		if other == c {
			return true
		}
	}
	return false
}
