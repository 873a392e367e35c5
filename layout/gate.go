package layout

import (
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/ids"
)

// SocketLayout is one socket's geometric presence on a LayoutGate: its
// position relative to the gate's origin, and the set of conn points
// currently bound there.
type SocketLayout struct {
	RelativePosition geo.Vec2
	BoundConnPoints  map[ids.ComponentId]struct{}
}

func newSocketLayout(relative geo.Vec2) SocketLayout {
	return SocketLayout{RelativePosition: relative, BoundConnPoints: make(map[ids.ComponentId]struct{})}
}

// LayoutGate is the geometric shadow of a SimGate: its placement,
// rotation, and per-socket conn-point bindings. The key set of
// LayoutGates equals the key set of SimGates at all times (spec.md §3).
type LayoutGate struct {
	ID        ids.ComponentId
	Position  geo.Vec2
	Rotation  geo.Rotation
	Consumers []SocketLayout
	Producers []SocketLayout
}

// AbsoluteSocketPosition returns a producer or consumer socket's position
// in world space: the gate's origin plus its relative offset rotated by
// the gate's current orientation (spec.md §4.5.2: "gate origin + rotated
// socket offset").
func (g *LayoutGate) AbsoluteSocketPosition(relative geo.Vec2) geo.Vec2 {
	return g.Position.Add(g.Rotation.Apply(relative))
}
