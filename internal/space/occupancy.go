package space

import (
	"fmt"
	"iter"
	"math/rand"
)

// cell holds the ids resident at one position: a dense slice for iteration
// plus an id → slot map for O(1) membership and removal. Removal swaps the
// last id into the vacated slot, so ids keep insertion order except across a
// removal. That order is the documented tie-break order for everything built
// on top.
type cell struct {
	ids  []AgentID
	slot map[AgentID]int
}

func (c *cell) add(id AgentID) bool {
	if _, ok := c.slot[id]; ok {
		return false // re-adding a resident id is idempotent
	}
	c.slot[id] = len(c.ids)
	c.ids = append(c.ids, id)
	return true
}

func (c *cell) remove(id AgentID) bool {
	i, ok := c.slot[id]
	if !ok {
		return false
	}
	last := len(c.ids) - 1
	if i != last {
		moved := c.ids[last]
		c.ids[i] = moved
		c.slot[moved] = i
	}
	c.ids = c.ids[:last]
	delete(c.slot, id)
	return true
}

// Occupancy maintains the position → resident-ids relation over a fixed
// position universe. The universe is captured at construction and never
// shrinks; Clear empties every cell but keeps every position.
//
// Occupancy implements DiscreteSpace, so concrete spaces can embed one and
// get the whole capability contract plus the Add/Remove mutators.
type Occupancy[P comparable] struct {
	cells map[P]*cell
	order []P // construction order; the stable enumeration order
	size  int // resident ids across all cells
}

// NewOccupancy builds an index over the given position universe. Duplicate
// positions in the sequence are collapsed.
func NewOccupancy[P comparable](positions iter.Seq[P]) *Occupancy[P] {
	o := &Occupancy[P]{cells: make(map[P]*cell)}
	for pos := range positions {
		if _, ok := o.cells[pos]; ok {
			continue
		}
		o.cells[pos] = &cell{slot: make(map[AgentID]int)}
		o.order = append(o.order, pos)
	}
	return o
}

// Positions enumerates the universe in construction order. The sequence is
// restartable: every range starts a fresh pass.
func (o *Occupancy[P]) Positions() iter.Seq[P] {
	return func(yield func(P) bool) {
		for _, pos := range o.order {
			if !yield(pos) {
				return
			}
		}
	}
}

// NPositions returns the fixed cardinality of the universe.
func (o *Occupancy[P]) NPositions() int {
	return len(o.order)
}

// Len returns the total number of resident ids across all positions. O(1).
func (o *Occupancy[P]) Len() int {
	return o.size
}

// PositionAt returns the i-th position of the construction-order enumeration.
func (o *Occupancy[P]) PositionAt(i int) (P, error) {
	if i < 0 || i >= len(o.order) {
		var zero P
		return zero, fmt.Errorf("%w: index %d of %d", ErrInvalidPosition, i, len(o.order))
	}
	return o.order[i], nil
}

// Contains reports whether pos belongs to the universe.
func (o *Occupancy[P]) Contains(pos P) bool {
	_, ok := o.cells[pos]
	return ok
}

// RandomPosition draws one position uniformly from the whole universe. O(1).
func (o *Occupancy[P]) RandomPosition(rng *rand.Rand) P {
	return o.order[rng.Intn(len(o.order))]
}

// IDsAt returns the ids resident at pos. The slice is a live view into the
// index: callers must not mutate it and must not hold it across Add/Remove.
func (o *Occupancy[P]) IDsAt(pos P) ([]AgentID, error) {
	c, ok := o.cells[pos]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	return c.ids, nil
}

// CountAt returns the number of ids resident at pos.
func (o *Occupancy[P]) CountAt(pos P) (int, error) {
	c, ok := o.cells[pos]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	return len(c.ids), nil
}

// IsEmptyAt reports whether no agent is resident at pos.
func (o *Occupancy[P]) IsEmptyAt(pos P) (bool, error) {
	n, err := o.CountAt(pos)
	return n == 0, err
}

// Add records id at pos. Adding an id already resident at pos is a no-op, so
// remove/re-add cycles against the same position cannot corrupt the index.
func (o *Occupancy[P]) Add(pos P, id AgentID) error {
	c, ok := o.cells[pos]
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	if c.add(id) {
		o.size++
	}
	return nil
}

// Remove drops id from pos. Removing an id that is not resident is a no-op.
func (o *Occupancy[P]) Remove(pos P, id AgentID) error {
	c, ok := o.cells[pos]
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	if c.remove(id) {
		o.size--
	}
	return nil
}

// Clear empties every cell without touching the position universe.
func (o *Occupancy[P]) Clear() {
	for _, c := range o.cells {
		c.ids = c.ids[:0]
		clear(c.slot)
	}
	o.size = 0
}
