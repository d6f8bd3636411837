package province

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacentCoords(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		size     Size
		expected []Coord
	}{
		{
			name:     "corner",
			x:        1,
			y:        1,
			size:     S(3, 3),
			expected: []Coord{C(1, 2), C(2, 1), C(2, 2)},
		},
		{
			name: "center",
			x:    2,
			y:    2,
			size: S(3, 3),
			expected: []Coord{
				C(1, 1), C(1, 2), C(1, 3),
				C(2, 1), C(2, 3),
				C(3, 1), C(3, 2), C(3, 3),
			},
		},
		{
			name:     "edge of wide board",
			x:        5,
			y:        1,
			size:     S(5, 2),
			expected: []Coord{C(4, 1), C(4, 2), C(5, 2)},
		},
		{
			name:     "single cell",
			x:        1,
			y:        1,
			size:     S(1, 1),
			expected: []Coord{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AdjacentCoords(tc.x, tc.y, tc.size))
		})
	}
}

func TestAdjacentTilesSkipsMissing(t *testing.T) {
	b := NewBoard(3, 3)
	var tiles []Tile
	for _, tile := range b.Tiles {
		if tile.Coord() != C(2, 2) {
			tiles = append(tiles, tile)
		}
	}

	got := AdjacentTiles(1, 1, S(3, 3), tiles)
	require.Len(t, got, 2)
	assert.Equal(t, C(1, 2), got[0].Coord())
	assert.Equal(t, C(2, 1), got[1].Coord())
}

func TestBoardAdjacentMatchesAdjacentTiles(t *testing.T) {
	b := parseBoard(
		". F E",
		"3 6 .",
		"O . 2",
	)
	for _, tile := range b.Tiles {
		assert.Equal(t, AdjacentTiles(tile.X, tile.Y, b.Size(), b.Tiles), b.Adjacent(tile.X, tile.Y), "tile %s", tile.Coord())
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := NewBoard(3, 3)
	c := b.Clone()
	c.Tiles[0].Type = TypeEnemy

	assert.Equal(t, TypeTerritory, b.Tiles[0].Type)
	assert.False(t, b.Equal(c))
}

func TestBoardFromTiles(t *testing.T) {
	b := parseBoard(
		". F",
		"E 3",
	)
	shuffled := []Tile{b.Tiles[3], b.Tiles[1], b.Tiles[0], b.Tiles[2]}

	got, err := BoardFromTiles(S(2, 2), shuffled)
	require.NoError(t, err)
	assert.True(t, got.Equal(b))

	_, err = BoardFromTiles(S(2, 2), shuffled[:3])
	assert.ErrorIs(t, err, ErrInvalidTileSet)

	dup := []Tile{b.Tiles[0], b.Tiles[0], b.Tiles[1], b.Tiles[2]}
	_, err = BoardFromTiles(S(2, 2), dup)
	assert.ErrorIs(t, err, ErrInvalidTileSet)
}

func TestValidateTileSet(t *testing.T) {
	good := NewBoard(3, 3).Tiles

	tests := []struct {
		name   string
		mutate func([]Tile) []Tile
		size   Size
		ok     bool
	}{
		{"valid", func(ts []Tile) []Tile { return ts }, S(3, 3), true},
		{"zero width", func(ts []Tile) []Tile { return ts }, S(0, 3), false},
		{"wrong cardinality", func(ts []Tile) []Tile { return ts[:8] }, S(3, 3), false},
		{"out of bounds", func(ts []Tile) []Tile { ts[0].X = 4; return ts }, S(3, 3), false},
		{"unknown type", func(ts []Tile) []Tile { ts[0].Type = "lava"; return ts }, S(3, 3), false},
		{"level too high", func(ts []Tile) []Tile {
			ts[0].IsCaptured = true
			ts[0].GrowingLevel = 7
			return ts
		}, S(3, 3), false},
		{"negative level", func(ts []Tile) []Tile {
			ts[0].IsCaptured = true
			ts[0].GrowingLevel = -1
			return ts
		}, S(3, 3), false},
		{"uncaptured with level", func(ts []Tile) []Tile { ts[0].GrowingLevel = 2; return ts }, S(3, 3), false},
		{"uncaptured fortified", func(ts []Tile) []Tile { ts[0].Type = TypeFortified; return ts }, S(3, 3), false},
		{"captured enemy", func(ts []Tile) []Tile {
			ts[0].Type = TypeEnemy
			ts[0].IsCaptured = true
			return ts
		}, S(3, 3), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tiles := make([]Tile, len(good))
			copy(tiles, good)
			err := ValidateTileSet(tc.mutate(tiles), tc.size)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTileSet)
			}
		})
	}
}

func TestSizeEncodesAsPair(t *testing.T) {
	data, err := json.Marshal(S(8, 5))
	require.NoError(t, err)
	assert.JSONEq(t, `[8,5]`, string(data))

	var s Size
	require.NoError(t, json.Unmarshal([]byte(`[4,6]`), &s))
	assert.Equal(t, S(4, 6), s)

	assert.Error(t, json.Unmarshal([]byte(`[4]`), &s))
}

func TestParseTileType(t *testing.T) {
	for _, s := range []string{"territory", "fortified", "enemy", "obstacle"} {
		typ, ok := ParseTileType(s)
		assert.True(t, ok, s)
		assert.Equal(t, TileType(s), typ)
	}
	_, ok := ParseTileType("water")
	assert.False(t, ok)
}
