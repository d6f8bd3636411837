package province

// FillType selects how non-seed tiles are generated.
type FillType string

const (
	FillProbabilities FillType = "probabilities"
	FillFixed         FillType = "fixed"
)

// Probabilities configures probabilistic fill. The four weights must sum to 1.
// The optional clamps bound the final count of each non-territory type.
type Probabilities struct {
	Territory float64 `json:"territory" yaml:"territory"`
	Fortified float64 `json:"fortified" yaml:"fortified"`
	Enemy     float64 `json:"enemy" yaml:"enemy"`
	Obstacle  float64 `json:"obstacle,omitempty" yaml:"obstacle,omitempty"`

	MinFortified *int `json:"minFortified,omitempty" yaml:"minFortified,omitempty"`
	MaxFortified *int `json:"maxFortified,omitempty" yaml:"maxFortified,omitempty"`
	MinEnemy     *int `json:"minEnemy,omitempty" yaml:"minEnemy,omitempty"`
	MaxEnemy     *int `json:"maxEnemy,omitempty" yaml:"maxEnemy,omitempty"`
	MinObstacle  *int `json:"minObstacle,omitempty" yaml:"minObstacle,omitempty"`
	MaxObstacle  *int `json:"maxObstacle,omitempty" yaml:"maxObstacle,omitempty"`
}

// Numbers configures fixed fill: exact counts scattered over free cells.
type Numbers struct {
	Fortified int `json:"fortified" yaml:"fortified"`
	Enemy     int `json:"enemy" yaml:"enemy"`
	Obstacle  int `json:"obstacle,omitempty" yaml:"obstacle,omitempty"`
}

// FillConfig is either probabilistic or fixed, selected by Type.
type FillConfig struct {
	Type          FillType       `json:"type" yaml:"type"`
	Probabilities *Probabilities `json:"probabilities,omitempty" yaml:"probabilities,omitempty"`
	Numbers       *Numbers       `json:"numbers,omitempty" yaml:"numbers,omitempty"`
}

// GameConfig describes a game at creation time. It is consumed once by
// GenerateBoard and kept alongside the state for restarts.
type GameConfig struct {
	Name              string     `json:"name,omitempty" yaml:"name,omitempty"`
	Description       string     `json:"description,omitempty" yaml:"description,omitempty"`
	BoardSize         Size       `json:"boardSize" yaml:"boardSize"`
	ResourceLimit     int        `json:"resourceLimit" yaml:"resourceLimit"`
	TimeLimit         int        `json:"timeLimit" yaml:"timeLimit"`
	FogOfWar          bool       `json:"fogOfWar" yaml:"fogOfWar"`
	EnemyAggression   float64    `json:"enemyAggression" yaml:"enemyAggression"`
	InitialTileStates []Tile     `json:"initialTileStates" yaml:"initialTileStates,omitempty"`
	FillConfig        FillConfig `json:"fillConfig" yaml:"fillConfig"`
}

// DefaultConfig returns the standard 8x8 game used when no preset is available.
func DefaultConfig() GameConfig {
	return GameConfig{
		Name:            "Standard",
		Description:     "8x8, sparse enemies",
		BoardSize:       Size{Width: 8, Height: 8},
		ResourceLimit:   10,
		TimeLimit:       -1,
		EnemyAggression: 0.5,
		FillConfig: FillConfig{
			Type: FillProbabilities,
			Probabilities: &Probabilities{
				Territory:    0.9,
				Fortified:    0.05,
				Enemy:        0.05,
				MinFortified: IntPtr(1),
			},
		},
	}
}

// Clone returns a deep copy of the config.
func (c GameConfig) Clone() GameConfig {
	out := c
	if c.InitialTileStates != nil {
		out.InitialTileStates = make([]Tile, len(c.InitialTileStates))
		copy(out.InitialTileStates, c.InitialTileStates)
	}
	if c.FillConfig.Probabilities != nil {
		p := *c.FillConfig.Probabilities
		p.MinFortified = cloneInt(p.MinFortified)
		p.MaxFortified = cloneInt(p.MaxFortified)
		p.MinEnemy = cloneInt(p.MinEnemy)
		p.MaxEnemy = cloneInt(p.MaxEnemy)
		p.MinObstacle = cloneInt(p.MinObstacle)
		p.MaxObstacle = cloneInt(p.MaxObstacle)
		out.FillConfig.Probabilities = &p
	}
	if c.FillConfig.Numbers != nil {
		n := *c.FillConfig.Numbers
		out.FillConfig.Numbers = &n
	}
	return out
}

// CountUp reports whether the timer is a stopwatch rather than a countdown.
func (c GameConfig) CountUp() bool {
	return c.TimeLimit == -1
}

// IntPtr returns a pointer to v, for the optional clamp fields.
func IntPtr(v int) *int {
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
