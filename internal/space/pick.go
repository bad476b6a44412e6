package space

import (
	"iter"
	"math/rand"
)

// PickStrategy selects how a filtered pick walks its candidates. The choice
// is an explicit space/time trade-off made by the caller per call.
type PickStrategy uint8

const (
	// PickStreaming reservoir-samples the lazily filtered candidates in one
	// pass with O(1) extra memory.
	PickStreaming PickStrategy = iota
	// PickMaterializing collects all matches first, then draws by index.
	// Worth it when the predicate is expensive enough that the streaming
	// per-candidate bookkeeping would dominate.
	PickMaterializing
)

// reservoir draws a uniformly random element from a sequence of unknown
// length: the k-th candidate replaces the current pick with probability 1/k.
// One pass, O(1) extra memory; ok=false when the sequence is empty.
func reservoir[T any](rng *rand.Rand, seq iter.Seq[T]) (T, bool) {
	var pick T
	n := 0
	for v := range seq {
		n++
		if rng.Intn(n) == 0 {
			pick = v
		}
	}
	return pick, n > 0
}

// RandomIDAt returns a uniformly random id resident at pos, ok=false when the
// position is empty.
func RandomIDAt[P comparable, A Agent[P]](m Model[P, A], pos P) (AgentID, bool, error) {
	ids, err := m.Space().IDsAt(pos)
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[m.RNG().Intn(len(ids))], true, nil
}

// RandomIDAtWhere returns a uniformly random id at pos satisfying pred,
// ok=false when no resident id matches.
func RandomIDAtWhere[P comparable, A Agent[P]](m Model[P, A], pos P, pred func(AgentID) bool, strategy PickStrategy) (AgentID, bool, error) {
	return RandomIDAtVia(m, pos, func(id AgentID) AgentID { return id }, pred, strategy)
}

// RandomIDAtVia is RandomIDAtWhere with an indirection: each candidate id is
// transformed by via and the predicate filters the transformed value, while
// the draw itself stays over ids. This supports filtering on a derived value
// (typically the resolved agent) without an intermediate collection.
func RandomIDAtVia[P comparable, A Agent[P], T any](m Model[P, A], pos P, via func(AgentID) T, pred func(T) bool, strategy PickStrategy) (AgentID, bool, error) {
	ids, err := m.Space().IDsAt(pos)
	if err != nil {
		return 0, false, err
	}

	rng := m.RNG()
	switch strategy {
	case PickMaterializing:
		matches := make([]AgentID, 0, len(ids))
		for _, id := range ids {
			if pred(via(id)) {
				matches = append(matches, id)
			}
		}
		if len(matches) == 0 {
			return 0, false, nil
		}
		return matches[rng.Intn(len(matches))], true, nil
	default:
		var pick AgentID
		n := 0
		for _, id := range ids {
			if !pred(via(id)) {
				continue
			}
			n++
			if rng.Intn(n) == 0 {
				pick = id
			}
		}
		return pick, n > 0, nil
	}
}

// RandomAgentAt resolves RandomIDAt through the model's agent lookup.
func RandomAgentAt[P comparable, A Agent[P]](m Model[P, A], pos P) (A, bool, error) {
	var zero A
	id, ok, err := RandomIDAt(m, pos)
	if err != nil || !ok {
		return zero, false, err
	}
	a, ok := m.AgentByID(id)
	return a, ok, nil
}

// RandomAgentAtWhere picks a uniformly random agent at pos satisfying pred.
// Every id in the index resolves through the model by the index invariant.
func RandomAgentAtWhere[P comparable, A Agent[P]](m Model[P, A], pos P, pred func(A) bool, strategy PickStrategy) (A, bool, error) {
	var zero A
	id, ok, err := RandomIDAtVia(m, pos, func(id AgentID) A {
		a, _ := m.AgentByID(id)
		return a
	}, pred, strategy)
	if err != nil || !ok {
		return zero, false, err
	}
	a, ok := m.AgentByID(id)
	return a, ok, nil
}

// EmptyNearbyPositions lazily filters an externally produced neighbor
// sequence down to unoccupied in-universe positions. Neighbors outside the
// universe are skipped, not reported: clipping is the topology's business.
func EmptyNearbyPositions[P comparable, A Agent[P]](m Model[P, A], nearby iter.Seq[P]) iter.Seq[P] {
	sp := m.Space()
	return func(yield func(P) bool) {
		for pos := range nearby {
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

// RandomNearbyEmpty draws a uniformly random unoccupied position from an
// externally produced neighbor sequence, ok=false when all are occupied.
func RandomNearbyEmpty[P comparable, A Agent[P]](m Model[P, A], nearby iter.Seq[P]) (P, bool) {
	return reservoir(m.RNG(), EmptyNearbyPositions(m, nearby))
}
