// Package space is the occupancy index and randomized-selection core for
// discrete simulation spaces: spaces with a finite, enumerable set of
// positions where each position holds zero or more agents.
//
// The package is written once, generically, against the DiscreteSpace
// capability contract. Concrete topologies (grids, graphs) live elsewhere and
// only have to enumerate their positions and answer occupancy queries.
// Everything stochastic (random empty positions, filtered picks, placement)
// is provided here and consumes the model-scoped RNG so that runs stay
// deterministic under a fixed seed.
//
// Expected outcomes such as "no empty position left" are reported as a
// (value, ok) pair, never as an error. Errors are reserved for caller misuse:
// an unknown sort key or a position outside the space's universe.
package space

import (
	"errors"
	"iter"
	"math/rand"
)

// AgentID uniquely identifies an agent for its whole lifetime.
type AgentID uint64

// Agent is the minimal view of an agent record this package needs: an
// identity and a mutable position. Agent records are owned by the model;
// this package never constructs or destroys them.
type Agent[P comparable] interface {
	ID() AgentID
	Pos() P
	SetPos(P)
}

// DiscreteSpace is the capability contract every discrete space satisfies.
//
// Positions must yield the full, fixed position universe in a stable order,
// restarting from the beginning on every range. IDsAt reports the ids
// currently resident at a position and fails with ErrInvalidPosition outside
// the universe. RandomPosition draws one position uniformly in O(1); the
// rejection sampler leans on that bound.
type DiscreteSpace[P comparable] interface {
	Positions() iter.Seq[P]
	IDsAt(pos P) ([]AgentID, error)
	NPositions() int
	RandomPosition(rng *rand.Rand) P
}

// Model is the simulation context threaded through every sampling and
// placement call: the space, the run-scoped deterministic RNG, the id → agent
// lookup, and the two hooks that reconcile the occupancy index when an agent
// enters or leaves the space.
//
// All operations in this package are single-threaded with respect to one
// model; neither the index nor the RNG carries internal locking.
type Model[P comparable, A Agent[P]] interface {
	Space() DiscreteSpace[P]
	RNG() *rand.Rand
	NAgents() int
	AgentByID(id AgentID) (A, bool)

	// AddToSpace records the agent at its current position.
	// RemoveFromSpace drops it from its current position.
	AddToSpace(a A) error
	RemoveFromSpace(a A) error
}

// OccupiedSpace is a DiscreteSpace that owns its occupancy index and exposes
// the mutators a model's reconciliation hooks need. Occupancy implements it;
// concrete spaces get it by embedding one.
type OccupiedSpace[P comparable] interface {
	DiscreteSpace[P]
	Add(pos P, id AgentID) error
	Remove(pos P, id AgentID) error
	Clear()
}

var (
	// ErrInvalidPosition reports a position outside the space's universe.
	// This is caller misuse, not a data-dependent outcome.
	ErrInvalidPosition = errors.New("space: position outside the space universe")

	// ErrUnknownSortKey reports an unrecognized sort key passed to PositionsBy.
	ErrUnknownSortKey = errors.New("space: unknown sort key")
)
