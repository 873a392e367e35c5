// Package geo implements the grid-aligned geometry primitives the layout
// world is built on: Vec2 positions, normalized Rotation, and the four
// cardinal Directions.
package geo

import "fmt"

// Vec2 is a grid-aligned position or length: a pair of signed integers.
type Vec2 struct {
	X, Y int
}

// Add returns the componentwise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the componentwise difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Rotation is a normalized angle, quantized to 90° steps, kept in [0, 4).
// It composes by addition mod 4, matching spec.md §4.5.3's "wraps into
// [0, 2π)" in quarter-turn units.
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Rotate composes r with delta, wrapping into [0, 4).
func (r Rotation) Rotate(delta Rotation) Rotation {
	return (r + delta + 4) % 4
}

// Apply rotates v by r around the origin, staying on the integer grid
// (90°-quantized rotation never needs fractional coordinates).
func (r Rotation) Apply(v Vec2) Vec2 {
	switch r % 4 {
	case Rot0:
		return v
	case Rot90:
		return Vec2{X: -v.Y, Y: v.X}
	case Rot180:
		return Vec2{X: -v.X, Y: -v.Y}
	case Rot270:
		return Vec2{X: v.Y, Y: -v.X}
	default:
		return v
	}
}

// Direction is one of the four cardinals.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"North", "East", "South", "West"}

func (d Direction) String() string {
	if int(d) < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Rotate performs a 90°-quantized rotation of d by r.
func (d Direction) Rotate(r Rotation) Direction {
	return Direction((int(d) + int(r)) % 4)
}

// Opposite is Rotate(Rot180).
func (d Direction) Opposite() Direction {
	return d.Rotate(Rot180)
}

// DirectionBetween returns the cardinal direction from 'from' to 'to'. It
// panics if the two points aren't axis-aligned, since the layout world only
// ever routes axis-aligned segments (spec.md §4.5.2).
func DirectionBetween(from, to Vec2) Direction {
	d := to.Sub(from)
	switch {
	case d.X == 0 && d.Y < 0:
		return North
	case d.X == 0 && d.Y > 0:
		return South
	case d.Y == 0 && d.X > 0:
		return East
	case d.Y == 0 && d.X < 0:
		return West
	default:
		panic(fmt.Sprintf("geo: %v -> %v is not axis-aligned", from, to))
	}
}

// AxisAligned reports whether from and to share exactly one coordinate and
// differ in the other, i.e. whether DirectionBetween(from, to) would return
// instead of panicking. Callers that accept a caller-supplied endpoint
// (layout.World's segment-drawing operations) must check this before calling
// DirectionBetween, since "no error is a panic path" (spec.md §7).
func AxisAligned(from, to Vec2) bool {
	d := to.Sub(from)
	return (d.X == 0) != (d.Y == 0)
}

// BoundingBox is an axis-aligned rectangle, used by normalized gate
// definitions (spec.md §3).
type BoundingBox struct {
	Min, Max Vec2
}
