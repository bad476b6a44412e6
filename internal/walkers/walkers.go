// Package walkers is the reference simulation built on the space core: agents
// that drift across a grid, restless ones hunting for open neighboring cells,
// calm ones teleporting to random empty cells now and then.
package walkers

import (
	"github.com/talgya/crowdsim/internal/grid"
	"github.com/talgya/crowdsim/internal/model"
	"github.com/talgya/crowdsim/internal/space"
)

// Walker is an agent on the grid.
type Walker struct {
	id  space.AgentID
	pos grid.Coord

	// Restless walkers move every tick; calm ones only occasionally.
	Restless bool
	// Steps counts completed moves.
	Steps int
}

// NewWalker creates a walker with the given id.
func NewWalker(id space.AgentID, restless bool) *Walker {
	return &Walker{id: id, Restless: restless}
}

func (w *Walker) ID() space.AgentID   { return w.id }
func (w *Walker) Pos() grid.Coord     { return w.pos }
func (w *Walker) SetPos(p grid.Coord) { w.pos = p }

// Model is the walker simulation's model type.
type Model = model.Sim[grid.Coord, *Walker]

// Step advances one walker. Restless walkers try an adjacent empty cell
// first and fall back to a random empty cell anywhere; calm walkers relocate
// rarely. A walker occasionally trades places with a neighbor instead of
// moving into open space.
func Step(m *Model, g *grid.Grid, w *Walker) error {
	rng := m.RNG()

	// Rarely, swap with a random adjacent walker.
	if rng.Float64() < 0.05 {
		if other, ok, err := adjacentWalker(m, g, w); err != nil {
			return err
		} else if ok {
			if err := space.SwapAgents(m, w, other); err != nil {
				return err
			}
			w.Steps++
			other.Steps++
			return nil
		}
	}

	if !w.Restless && rng.Float64() >= 0.1 {
		return nil
	}

	if pos, ok := space.RandomNearbyEmpty(m, g.Neighbors(w.pos, true)); ok {
		if err := space.MoveAgent(m, w, pos); err != nil {
			return err
		}
		w.Steps++
		return nil
	}

	// Boxed in: jump to a random empty cell anywhere, if one exists.
	moved, err := space.MoveAgentSingle(m, w)
	if err != nil {
		return err
	}
	if moved {
		w.Steps++
	}
	return nil
}

// adjacentWalker picks a uniformly random walker on one of the neighboring
// cells.
func adjacentWalker(m *Model, g *grid.Grid, w *Walker) (*Walker, bool, error) {
	// Draw a random occupied neighbor cell, then a random resident.
	var cells []grid.Coord
	for c := range g.Neighbors(w.pos, true) {
		n, err := g.CountAt(c)
		if err != nil {
			return nil, false, err
		}
		if n > 0 {
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		return nil, false, nil
	}
	c := cells[m.RNG().Intn(len(cells))]
	return pickAt(m, c)
}

func pickAt(m *Model, c grid.Coord) (*Walker, bool, error) {
	a, ok, err := space.RandomAgentAt(m, c)
	if err != nil || !ok {
		return nil, false, err
	}
	return a, true, nil
}

// Tick advances the whole simulation by one step: every walker activates
// once, in random order.
func Tick(m *Model, g *grid.Grid) error {
	var firstErr error
	m.ScheduleRandom(func(w *Walker) {
		if err := Step(m, g, w); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}

// RestlessCount returns how many registered walkers are restless.
func RestlessCount(m *Model) int {
	n := 0
	for w := range m.Agents() {
		if w.Restless {
			n++
		}
	}
	return n
}
