// Package model ties a discrete space to the agent registry and the
// run-scoped RNG, and provides the reconciliation hooks the space package's
// sampling and placement operations require.
//
// A Sim is single-threaded: all operations on one Sim must come from one
// goroutine per simulation step. There is no internal locking.
package model

import (
	"fmt"
	"iter"
	"math/rand"

	"github.com/talgya/crowdsim/internal/entropy"
	"github.com/talgya/crowdsim/internal/space"
)

// Sim is the concrete model context: a space, its agents, and the RNG.
type Sim[P comparable, A space.Agent[P]] struct {
	sp     space.OccupiedSpace[P]
	agents map[space.AgentID]A
	order  []space.AgentID // registration order, the scheduler's base order
	rng    *rand.Rand
	nextID space.AgentID
}

// New creates a model over the given space, seeded deterministically.
func New[P comparable, A space.Agent[P]](sp space.OccupiedSpace[P], seed int64) *Sim[P, A] {
	return &Sim[P, A]{
		sp:     sp,
		agents: make(map[space.AgentID]A),
		rng:    entropy.NewSource(seed),
		nextID: 1,
	}
}

// Space returns the model's space.
func (s *Sim[P, A]) Space() space.DiscreteSpace[P] { return s.sp }

// RNG returns the run-scoped random source shared by all sampling calls.
func (s *Sim[P, A]) RNG() *rand.Rand { return s.rng }

// NAgents returns the number of registered agents.
func (s *Sim[P, A]) NAgents() int { return len(s.agents) }

// AgentByID resolves an agent id.
func (s *Sim[P, A]) AgentByID(id space.AgentID) (A, bool) {
	a, ok := s.agents[id]
	return a, ok
}

// NextID issues a fresh agent id.
func (s *Sim[P, A]) NextID() space.AgentID {
	id := s.nextID
	s.nextID++
	return id
}

// AddToSpace records the agent at its current position, registering it on
// first contact.
func (s *Sim[P, A]) AddToSpace(a A) error {
	if err := s.sp.Add(a.Pos(), a.ID()); err != nil {
		return fmt.Errorf("add agent %d to space: %w", a.ID(), err)
	}
	if _, ok := s.agents[a.ID()]; !ok {
		s.agents[a.ID()] = a
		s.order = append(s.order, a.ID())
		if a.ID() >= s.nextID {
			s.nextID = a.ID() + 1
		}
	}
	return nil
}

// RemoveFromSpace drops the agent from its current position. The agent stays
// registered; placement operations re-add it within the same logical step.
func (s *Sim[P, A]) RemoveFromSpace(a A) error {
	return s.sp.Remove(a.Pos(), a.ID())
}

// RemoveAgent takes the agent out of the space and out of the registry.
func (s *Sim[P, A]) RemoveAgent(a A) error {
	if err := s.RemoveFromSpace(a); err != nil {
		return err
	}
	delete(s.agents, a.ID())
	for i, id := range s.order {
		if id == a.ID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ClearSpace empties every position of the space without unregistering
// agents. The position universe is preserved.
func (s *Sim[P, A]) ClearSpace() {
	s.sp.Clear()
}

// Agents yields all registered agents in registration order.
func (s *Sim[P, A]) Agents() iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, id := range s.order {
			if a, ok := s.agents[id]; ok {
				if !yield(a) {
					return
				}
			}
		}
	}
}

// ScheduleRandom activates every agent once, in a fresh uniformly random
// order drawn from the model RNG. Agents added during the pass are not
// activated until the next one.
func (s *Sim[P, A]) ScheduleRandom(step func(A)) {
	ids := make([]space.AgentID, len(s.order))
	copy(ids, s.order)
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	for _, id := range ids {
		if a, ok := s.agents[id]; ok {
			step(a)
		}
	}
}
