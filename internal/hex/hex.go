// Package hex provides axial hex-grid coordinates and the fixed arena layout.
package hex

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a hex position in axial coordinates (Q, R).
// The third cube coordinate is implicit: S = -Q - R.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Origin is the center of the board.
var Origin = Coord{}

// Directions are the six axial neighbour offsets, starting East and going
// counter-clockwise. Neighbour iteration everywhere follows this order.
var Directions = [6]Coord{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{Q: c.Q + other.Q, R: c.R + other.R}
}

// Neighbors returns all six adjacent coordinates, on the board or not.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// IsNeighbor reports whether other is exactly one step away.
func (c Coord) IsNeighbor(other Coord) bool {
	return Distance(c, other) == 1
}

// Key returns the canonical "q,r" string form.
func (c Coord) Key() string {
	return strconv.Itoa(c.Q) + "," + strconv.Itoa(c.R)
}

func (c Coord) String() string {
	return "(" + c.Key() + ")"
}

// ParseKey parses the output of Key.
func ParseKey(key string) (Coord, error) {
	qs, rs, ok := strings.Cut(key, ",")
	if !ok {
		return Coord{}, fmt.Errorf("parse hex key %q: missing comma", key)
	}
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return Coord{}, fmt.Errorf("parse hex key %q: %w", key, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Coord{}, fmt.Errorf("parse hex key %q: %w", key, err)
	}
	return Coord{Q: q, R: r}, nil
}

// Distance is the hex step distance between two coordinates.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
