package space

// Placement operations. Each is atomic from the caller's perspective: the
// occupancy index never shows an id at two positions, or at none, across a
// completed call.

// AddAgentSingle places a into a uniformly random unoccupied position. When
// the space is saturated nothing happens and ok=false is returned; the agent
// keeps its current state.
func AddAgentSingle[P comparable, A Agent[P]](m Model[P, A], a A) (P, bool, error) {
	var zero P
	pos, ok := RandomEmpty(m)
	if !ok {
		return zero, false, nil
	}
	a.SetPos(pos)
	if err := m.AddToSpace(a); err != nil {
		return zero, false, err
	}
	return pos, true, nil
}

// FillSpace constructs one agent per position via factory and places it
// there, returning the number added. Not idempotent: on a non-empty space it
// stacks a second agent onto every position.
func FillSpace[P comparable, A Agent[P]](m Model[P, A], factory func(P) A) (int, error) {
	n := 0
	for pos := range m.Space().Positions() {
		a := factory(pos)
		a.SetPos(pos)
		if err := m.AddToSpace(a); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// MoveAgent relocates a to pos: one logical remove/update/add step. The
// target is validated before the agent is touched, so a failed move leaves
// both the agent and the index unchanged.
func MoveAgent[P comparable, A Agent[P]](m Model[P, A], a A, pos P) error {
	if _, err := m.Space().IDsAt(pos); err != nil {
		return err
	}
	if err := m.RemoveFromSpace(a); err != nil {
		return err
	}
	a.SetPos(pos)
	return m.AddToSpace(a)
}

// MoveAgentSingle relocates a to a uniformly random unoccupied position.
// With no empty position the agent stays put and ok=false is returned; that
// is an expected outcome, not an error.
func MoveAgentSingle[P comparable, A Agent[P]](m Model[P, A], a A) (bool, error) {
	return MoveAgentSingleCutoff(m, a, DefaultEmptyCutoff)
}

// MoveAgentSingleCutoff is MoveAgentSingle with an explicit density cutoff
// for the empty-position sampler.
func MoveAgentSingleCutoff[P comparable, A Agent[P]](m Model[P, A], a A, cutoff float64) (bool, error) {
	pos, ok := RandomEmptyCutoff(m, cutoff)
	if !ok {
		return false, nil
	}
	if err := m.RemoveFromSpace(a); err != nil {
		return false, err
	}
	a.SetPos(pos)
	if err := m.AddToSpace(a); err != nil {
		return false, err
	}
	return true, nil
}

// SwapAgents exchanges the positions of a and b. The positions may be equal
// and b may be a itself; both degenerate cases leave the index as it was,
// since removing an absent id and re-adding a resident one are no-ops.
func SwapAgents[P comparable, A Agent[P]](m Model[P, A], a, b A) error {
	if err := m.RemoveFromSpace(a); err != nil {
		return err
	}
	if err := m.RemoveFromSpace(b); err != nil {
		return err
	}
	apos, bpos := a.Pos(), b.Pos()
	a.SetPos(bpos)
	b.SetPos(apos)
	if err := m.AddToSpace(a); err != nil {
		return err
	}
	return m.AddToSpace(b)
}
