package generator

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/gamegraph/parity"
)

// ErrBadConfig is returned for out-of-range generation parameters.
var ErrBadConfig = errors.New("generator: invalid configuration")

// Defaults applied by DefaultConfig.
const (
	DefaultVertices     = 10
	DefaultMaxPriority  = 5
	DefaultMinOutDegree = 1
)

// Config describes a family of random games.
type Config struct {
	// Vertices is the number of vertices, at least 1.
	Vertices int

	// MaxPriority is the largest priority drawn, at least 0.
	MaxPriority int

	// MinOutDegree and MaxOutDegree bound each vertex's number of distinct
	// successors: 1 ≤ MinOutDegree ≤ MaxOutDegree ≤ Vertices.
	// MaxOutDegree == 0 means max(Vertices-1, MinOutDegree).
	MinOutDegree int
	MaxOutDegree int

	// Seed selects the game; 0 uses a fixed default.
	Seed int64
}

// DefaultConfig returns 10 vertices, priorities 0..5, out-degree 1..Vertices-1.
func DefaultConfig() Config {
	return Config{
		Vertices:     DefaultVertices,
		MaxPriority:  DefaultMaxPriority,
		MinOutDegree: DefaultMinOutDegree,
	}
}

// Validate checks the bounds and returns the effective maximum out-degree.
func (c Config) Validate() (maxOut int, err error) {
	maxOut = c.MaxOutDegree
	if maxOut == 0 {
		maxOut = c.Vertices - 1
		if maxOut < c.MinOutDegree {
			maxOut = c.MinOutDegree
		}
	}
	switch {
	case c.Vertices < 1:
		return 0, fmt.Errorf("%w: vertices must be at least 1 (%d)", ErrBadConfig, c.Vertices)
	case c.MaxPriority < 0:
		return 0, fmt.Errorf("%w: max priority cannot be negative (%d)", ErrBadConfig, c.MaxPriority)
	case c.MinOutDegree < 1:
		return 0, fmt.Errorf("%w: min out-degree must be at least 1 (%d)", ErrBadConfig, c.MinOutDegree)
	case maxOut < c.MinOutDegree:
		return 0, fmt.Errorf("%w: max out-degree %d below min out-degree %d", ErrBadConfig, maxOut, c.MinOutDegree)
	case maxOut > c.Vertices:
		return 0, fmt.Errorf("%w: max out-degree %d above vertex count %d", ErrBadConfig, maxOut, c.Vertices)
	}

	return maxOut, nil
}

// Generate builds one random game.
//
//  1. Vertex "v<i>" gets a uniform owner and a uniform priority in [0, MaxPriority].
//  2. Each vertex draws an out-degree in [MinOutDegree, MaxOutDegree] and
//     takes that many distinct targets from a shuffle of all vertices
//     (itself included).
//
// The result always satisfies parity.Graph.Validate.
func Generate(c Config) (*parity.Graph, error) {
	maxOut, err := c.Validate()
	if err != nil {
		return nil, err
	}
	r := rngFromSeed(c.Seed)
	g := parity.NewGraph()

	ids := make([]string, c.Vertices)
	for i := range ids {
		ids[i] = "v" + strconv.Itoa(i)
		owner := parity.Player(r.Intn(2))
		priority := r.Intn(c.MaxPriority + 1)
		if err := g.AddVertex(ids[i], owner, priority); err != nil {
			return nil, fmt.Errorf("generator: Generate: %w", err)
		}
	}
	for i := range ids {
		degree := c.MinOutDegree + r.Intn(maxOut-c.MinOutDegree+1)
		for _, j := range permRange(c.Vertices, r)[:degree] {
			if err := g.AddEdge(ids[i], ids[j]); err != nil {
				return nil, fmt.Errorf("generator: Generate: %w", err)
			}
		}
	}

	return g, nil
}

// GenerateArena builds and compiles one random game.
func GenerateArena(c Config) (*parity.Arena, error) {
	g, err := Generate(c)
	if err != nil {
		return nil, err
	}

	return g.Compile()
}
