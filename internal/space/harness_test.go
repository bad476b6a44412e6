package space

import (
	"iter"
	"math/rand"
	"testing"
)

// testAgent is the minimal agent record used across the package tests.
type testAgent struct {
	id  AgentID
	pos int
	tag string
}

func (a *testAgent) ID() AgentID  { return a.id }
func (a *testAgent) Pos() int     { return a.pos }
func (a *testAgent) SetPos(p int) { a.pos = p }

// testModel wires an Occupancy over the line 0..n-1 to an id → agent map,
// the way a real model harness does.
type testModel struct {
	occ    *Occupancy[int]
	agents map[AgentID]*testAgent
	rng    *rand.Rand
}

func lineUniverse(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func newTestModel(n int, seed int64) *testModel {
	return &testModel{
		occ:    NewOccupancy(lineUniverse(n)),
		agents: make(map[AgentID]*testAgent),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (m *testModel) Space() DiscreteSpace[int] { return m.occ }
func (m *testModel) RNG() *rand.Rand           { return m.rng }
func (m *testModel) NAgents() int              { return len(m.agents) }

func (m *testModel) AgentByID(id AgentID) (*testAgent, bool) {
	a, ok := m.agents[id]
	return a, ok
}

func (m *testModel) AddToSpace(a *testAgent) error {
	if err := m.occ.Add(a.Pos(), a.ID()); err != nil {
		return err
	}
	m.agents[a.ID()] = a
	return nil
}

func (m *testModel) RemoveFromSpace(a *testAgent) error {
	return m.occ.Remove(a.Pos(), a.ID())
}

// place creates and registers an agent at pos.
func (m *testModel) place(t *testing.T, id AgentID, pos int) *testAgent {
	t.Helper()
	a := &testAgent{id: id, pos: pos}
	if err := m.AddToSpace(a); err != nil {
		t.Fatalf("place agent %d at %d: %v", id, pos, err)
	}
	return a
}

// checkConsistency verifies the index/state invariant: for every position,
// the resident ids are exactly the agents whose pos field equals it.
func checkConsistency(t *testing.T, m *testModel) {
	t.Helper()
	for pos := range m.occ.Positions() {
		ids, err := m.occ.IDsAt(pos)
		if err != nil {
			t.Fatalf("IDsAt(%d): %v", pos, err)
		}
		seen := make(map[AgentID]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("position %d holds id %d twice", pos, id)
			}
			seen[id] = true
			a, ok := m.agents[id]
			if !ok {
				t.Fatalf("position %d holds unknown id %d", pos, id)
			}
			if a.pos != pos {
				t.Fatalf("id %d indexed at %d but agent pos is %d", id, pos, a.pos)
			}
		}
		for id, a := range m.agents {
			if a.pos == pos && !seen[id] {
				t.Fatalf("agent %d has pos %d but is not indexed there", id, pos)
			}
		}
	}
}

func seqOf(vals ...int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, v := range vals {
			if !yield(v) {
				return
			}
		}
	}
}
