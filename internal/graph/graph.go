// Package graph provides a discrete space over the nodes of an undirected
// graph. Node identity and adjacency are fixed at construction; occupancy
// and sampling come from the space package.
package graph

import (
	"fmt"
	"iter"
	"math/rand"

	"github.com/talgya/crowdsim/internal/space"
)

// Node identifies a graph node; nodes are numbered 0..n-1.
type Node = int

// Space is a node space: each node holds any number of agents.
type Space struct {
	*space.Occupancy[Node]
	adjacency [][]Node
}

// New creates a node space with n nodes and no edges.
func New(n int) *Space {
	if n < 0 {
		n = 0
	}
	universe := func(yield func(Node) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
	return &Space{
		Occupancy: space.NewOccupancy(iter.Seq[Node](universe)),
		adjacency: make([][]Node, n),
	}
}

// AddEdge connects a and b in both directions. Self-loops and duplicate
// edges are rejected silently; out-of-range nodes are an error.
func (s *Space) AddEdge(a, b Node) error {
	n := len(s.adjacency)
	if a < 0 || a >= n || b < 0 || b >= n {
		return fmt.Errorf("graph: edge (%d, %d) outside 0..%d", a, b, n-1)
	}
	if a == b {
		return nil
	}
	for _, v := range s.adjacency[a] {
		if v == b {
			return nil
		}
	}
	s.adjacency[a] = append(s.adjacency[a], b)
	s.adjacency[b] = append(s.adjacency[b], a)
	return nil
}

// RandomPosition draws a uniformly random node. O(1).
func (s *Space) RandomPosition(rng *rand.Rand) Node {
	return rng.Intn(len(s.adjacency))
}

// Neighbors yields the nodes adjacent to v, in edge-insertion order.
func (s *Space) Neighbors(v Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if v < 0 || v >= len(s.adjacency) {
			return
		}
		for _, n := range s.adjacency[v] {
			if !yield(n) {
				return
			}
		}
	}
}

// Degree returns the number of neighbors of v, or 0 for unknown nodes.
func (s *Space) Degree(v Node) int {
	if v < 0 || v >= len(s.adjacency) {
		return 0
	}
	return len(s.adjacency[v])
}
