package walkers

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/crowdsim/internal/entropy"
	"github.com/talgya/crowdsim/internal/grid"
	"github.com/talgya/crowdsim/internal/space"
)

// noiseScale maps cell coordinates into noise space; smaller values give
// broader clusters.
const noiseScale = 0.15

// SpawnConfig controls the initial population.
type SpawnConfig struct {
	// Fill is the target fraction of cells to populate, 0..1. A fill of 1
	// saturates the grid through the fill-space path instead.
	Fill float64
	// Restless is the probability a spawned walker is restless.
	Restless float64
}

// Spawner creates the initial walker population. Its noise field and RNG are
// derived substreams, so spawning never advances the model stream.
type Spawner struct {
	noise opensimplex.Noise
	rng   *rand.Rand
}

// NewSpawner creates a spawner for the given run seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		noise: opensimplex.NewNormalized(seed),
		rng:   entropy.Derive(seed, 1),
	}
}

// Seed populates the grid. Cells whose noise value clears the fill threshold
// receive one walker each; with Fill >= 1 every cell gets exactly one.
// Returns the number of walkers spawned.
func (s *Spawner) Seed(m *Model, g *grid.Grid, cfg SpawnConfig) (int, error) {
	if cfg.Fill >= 1 {
		return space.FillSpace(m, func(pos grid.Coord) *Walker {
			return s.spawnOne(m, cfg.Restless)
		})
	}

	n := 0
	for c := range g.Positions() {
		// The noise field is normalized to [0, 1]; the fill fraction is the
		// threshold below which a cell is populated.
		v := s.noise.Eval2(float64(c.X)*noiseScale, float64(c.Y)*noiseScale)
		if v >= cfg.Fill {
			continue
		}
		w := s.spawnOne(m, cfg.Restless)
		w.SetPos(c)
		if err := m.AddToSpace(w); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Spawner) spawnOne(m *Model, restless float64) *Walker {
	return NewWalker(m.NextID(), s.rng.Float64() < restless)
}
