package space

import "iter"

// DefaultEmptyCutoff is the density at which RandomEmpty abandons rejection
// sampling for a single reservoir pass. Below it the expected number of
// rejection draws, 1/(1-density), stays under 500; above it the guaranteed
// O(n) scan is cheaper and, unlike rejection, bounded.
const DefaultEmptyCutoff = 0.998

// EmptyPositions lazily filters the enumeration down to unoccupied positions.
// One O(NPositions) pass per range.
func EmptyPositions[P comparable, A Agent[P]](m Model[P, A]) iter.Seq[P] {
	sp := m.Space()
	return func(yield func(P) bool) {
		for pos := range sp.Positions() {
			ids, err := sp.IDsAt(pos)
			if err != nil || len(ids) != 0 {
				continue
			}
			if !yield(pos) {
				return
			}
		}
	}
}

// HasEmptyPositions reports whether at least one position is unoccupied.
func HasEmptyPositions[P comparable, A Agent[P]](m Model[P, A]) bool {
	for range EmptyPositions(m) {
		return true
	}
	return false
}

// RandomEmpty returns a uniformly random unoccupied position, or ok=false
// when the space is saturated. Equivalent to RandomEmptyCutoff with
// DefaultEmptyCutoff.
func RandomEmpty[P comparable, A Agent[P]](m Model[P, A]) (P, bool) {
	return RandomEmptyCutoff(m, DefaultEmptyCutoff)
}

// RandomEmptyCutoff returns a uniformly random unoccupied position, or
// ok=false when none exists.
//
// Two regimes, both uniform over the empty positions; the cutoff is purely a
// performance choice. Below cutoff density, rejection sampling: draw random
// positions until one is empty, at O(1) per draw and 1/(1-density) expected
// draws; an empty position is guaranteed to exist because fewer agents than
// positions can occupy at most NAgents of them. At or above it, one reservoir
// pass over the empty-position filter: O(NPositions) worst case with O(1)
// extra memory, eliminating unbounded retries near saturation.
func RandomEmptyCutoff[P comparable, A Agent[P]](m Model[P, A], cutoff float64) (P, bool) {
	sp := m.Space()
	n := sp.NPositions()
	if n == 0 {
		var zero P
		return zero, false
	}

	density := float64(m.NAgents()) / float64(n)
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}

	if density < cutoff && density < 1 {
		rng := m.RNG()
		for {
			pos := sp.RandomPosition(rng)
			if ids, err := sp.IDsAt(pos); err == nil && len(ids) == 0 {
				return pos, true
			}
		}
	}

	return reservoir(m.RNG(), EmptyPositions(m))
}
