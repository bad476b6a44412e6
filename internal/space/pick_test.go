package space

import (
	"errors"
	"testing"
)

func TestRandomIDAt(t *testing.T) {
	m := newTestModel(4, 11)
	m.place(t, 1, 2)
	m.place(t, 2, 2)

	id, ok, err := RandomIDAt(m, 2)
	if err != nil || !ok {
		t.Fatalf("RandomIDAt(2) = %v, %v, %v, want a pick", id, ok, err)
	}
	if id != 1 && id != 2 {
		t.Fatalf("RandomIDAt(2) = %d, want 1 or 2", id)
	}

	if _, ok, err := RandomIDAt(m, 0); err != nil || ok {
		t.Fatalf("RandomIDAt(empty) = ok=%v err=%v, want absent", ok, err)
	}
	if _, _, err := RandomIDAt(m, 9); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("RandomIDAt(9) error = %v, want ErrInvalidPosition", err)
	}
}

func TestRandomIDAtWhereSingleMatch(t *testing.T) {
	m := newTestModel(3, 13)
	for id := AgentID(1); id <= 6; id++ {
		m.place(t, id, 1)
	}
	pred := func(id AgentID) bool { return id == 4 }

	for _, strat := range []PickStrategy{PickStreaming, PickMaterializing} {
		id, ok, err := RandomIDAtWhere(m, 1, pred, strat)
		if err != nil || !ok || id != 4 {
			t.Fatalf("strategy %d: got %v, %v, %v, want id 4", strat, id, ok, err)
		}
	}
}

func TestRandomIDAtWhereNoMatch(t *testing.T) {
	m := newTestModel(3, 13)
	m.place(t, 1, 1)
	pred := func(id AgentID) bool { return false }

	for _, strat := range []PickStrategy{PickStreaming, PickMaterializing} {
		if _, ok, err := RandomIDAtWhere(m, 1, pred, strat); err != nil || ok {
			t.Fatalf("strategy %d: ok=%v err=%v, want absent", strat, ok, err)
		}
	}
}

func TestRandomIDAtWhereStrategiesAgree(t *testing.T) {
	m := newTestModel(3, 17)
	for id := AgentID(1); id <= 6; id++ {
		m.place(t, id, 1)
	}
	even := func(id AgentID) bool { return id%2 == 0 }

	// Both strategies must draw from {2, 4, 6} with the same distribution.
	const draws = 3000
	for _, strat := range []PickStrategy{PickStreaming, PickMaterializing} {
		counts := make(map[AgentID]int)
		for i := 0; i < draws; i++ {
			id, ok, err := RandomIDAtWhere(m, 1, even, strat)
			if err != nil || !ok {
				t.Fatalf("strategy %d: %v, %v", strat, ok, err)
			}
			if !even(id) {
				t.Fatalf("strategy %d picked odd id %d", strat, id)
			}
			counts[id]++
		}
		if len(counts) != 3 {
			t.Fatalf("strategy %d drew %d distinct ids, want 3", strat, len(counts))
		}
		for id, c := range counts {
			// Expected 1000 per id; binomial spread is ~±80 at 3 sigma.
			if c < 850 || c > 1150 {
				t.Fatalf("strategy %d: id %d drawn %d times of %d", strat, id, c, draws)
			}
		}
	}
}

func TestRandomIDAtVia(t *testing.T) {
	m := newTestModel(2, 19)
	m.place(t, 1, 0).tag = "calm"
	m.place(t, 2, 0).tag = "restless"
	m.place(t, 3, 0).tag = "calm"

	resolve := func(id AgentID) *testAgent {
		a, _ := m.AgentByID(id)
		return a
	}
	id, ok, err := RandomIDAtVia(m, 0, resolve, func(a *testAgent) bool {
		return a.tag == "restless"
	}, PickStreaming)
	if err != nil || !ok || id != 2 {
		t.Fatalf("RandomIDAtVia = %v, %v, %v, want id 2", id, ok, err)
	}
}

func TestRandomAgentAt(t *testing.T) {
	m := newTestModel(2, 23)
	want := m.place(t, 7, 1)

	a, ok, err := RandomAgentAt(m, 1)
	if err != nil || !ok || a != want {
		t.Fatalf("RandomAgentAt(1) = %v, %v, %v, want agent 7", a, ok, err)
	}
	if _, ok, err := RandomAgentAt(m, 0); err != nil || ok {
		t.Fatalf("RandomAgentAt(empty) = ok=%v err=%v, want absent", ok, err)
	}
}

func TestRandomAgentAtWhere(t *testing.T) {
	m := newTestModel(2, 29)
	m.place(t, 1, 0).tag = "calm"
	restless := m.place(t, 2, 0)
	restless.tag = "restless"

	a, ok, err := RandomAgentAtWhere(m, 0, func(a *testAgent) bool {
		return a.tag == "restless"
	}, PickMaterializing)
	if err != nil || !ok || a != restless {
		t.Fatalf("RandomAgentAtWhere = %v, %v, %v, want the restless agent", a, ok, err)
	}
}

func TestEmptyNearbyPositions(t *testing.T) {
	m := newTestModel(5, 31)
	m.place(t, 1, 1)
	m.place(t, 2, 3)

	// Neighbor sequence mixes occupied (1, 3), empty (0, 4), and
	// out-of-universe (50) positions.
	var got []int
	for pos := range EmptyNearbyPositions(m, seqOf(1, 0, 50, 3, 4)) {
		got = append(got, pos)
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 4 {
		t.Fatalf("EmptyNearbyPositions = %v, want [0 4]", got)
	}

	if _, ok := RandomNearbyEmpty(m, seqOf(1, 3)); ok {
		t.Fatal("RandomNearbyEmpty found a pick among occupied neighbors")
	}
	pos, ok := RandomNearbyEmpty(m, seqOf(1, 0, 3))
	if !ok || pos != 0 {
		t.Fatalf("RandomNearbyEmpty = %v, %v, want 0", pos, ok)
	}
}
