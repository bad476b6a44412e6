// Package grid provides a rectangular discrete space: width×height cells
// enumerated row-major, each holding any number of agents. The occupancy
// index and every sampling primitive come from the space package; this
// package owns only the coordinate arithmetic.
package grid

import (
	"fmt"
	"iter"
	"math/rand"

	"github.com/talgya/crowdsim/internal/space"
)

// Coord is a cell position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a finite rectangular space. It embeds the occupancy index, so it
// satisfies the space capability contract directly.
type Grid struct {
	*space.Occupancy[Coord]
	width  int
	height int
}

// New creates an empty width×height grid.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	universe := func(yield func(Coord) bool) {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !yield(Coord{X: x, Y: y}) {
					return
				}
			}
		}
	}
	return &Grid{
		Occupancy: space.NewOccupancy(iter.Seq[Coord](universe)),
		width:     width,
		height:    height,
	}
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// RandomPosition draws a uniformly random cell without touching the
// enumeration. O(1).
func (g *Grid) RandomPosition(rng *rand.Rand) Coord {
	return Coord{X: rng.Intn(g.width), Y: rng.Intn(g.height)}
}

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

var vonNeumannOffsets = [4]Coord{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

var mooreOffsets = [8]Coord{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// Neighbors yields the in-bounds cells adjacent to c: the four von Neumann
// neighbors, or all eight when moore is set. This is the neighbor sequence
// handed to the space package's nearby filters.
func (g *Grid) Neighbors(c Coord, moore bool) iter.Seq[Coord] {
	offsets := vonNeumannOffsets[:]
	if moore {
		offsets = mooreOffsets[:]
	}
	return func(yield func(Coord) bool) {
		for _, d := range offsets {
			n := Coord{X: c.X + d.X, Y: c.Y + d.Y}
			if !g.InBounds(n) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.width, g.height)
}
