package space

import (
	"fmt"
	"sort"
)

// SortKey selects the ordering PositionsBy applies to the position universe.
type SortKey string

const (
	// SortRandom shuffles the universe uniformly with the model RNG.
	SortRandom SortKey = "random"
	// SortPopulation orders positions by resident count, most crowded first.
	// Equal counts keep the space's enumeration order.
	SortPopulation SortKey = "population"
)

// AllPositions materializes the space's enumeration into a fresh slice.
func AllPositions[P comparable, A Agent[P]](m Model[P, A]) []P {
	sp := m.Space()
	out := make([]P, 0, sp.NPositions())
	for pos := range sp.Positions() {
		out = append(out, pos)
	}
	return out
}

// PositionsBy materializes the position universe and reorders it by the given
// key. An unrecognized key fails with ErrUnknownSortKey.
func PositionsBy[P comparable, A Agent[P]](m Model[P, A], key SortKey) ([]P, error) {
	out := AllPositions(m)
	switch key {
	case SortRandom:
		// Fisher–Yates off the model RNG, one pass.
		m.RNG().Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	case SortPopulation:
		sp := m.Space()
		counts := make([]int, len(out))
		for i, pos := range out {
			// Enumerated positions are in-universe by the space contract.
			ids, _ := sp.IDsAt(pos)
			counts[i] = len(ids)
		}
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool {
			return counts[idx[i]] > counts[idx[j]]
		})
		sorted := make([]P, len(out))
		for i, j := range idx {
			sorted[i] = out[j]
		}
		out = sorted
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, string(key))
	}
	return out, nil
}
