package layout

import (
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/sim"
)

// BeforeKind tags what feeds a conn point: the net's producer socket, an
// upstream segment, or nothing yet (spec.md §4.5.2: "a point at most has
// one incoming relationship").
type BeforeKind int

const (
	BeforeDangling BeforeKind = iota
	BeforeProducer
	BeforeSegment
)

// Before is the tagged incoming-edge descriptor of one conn point.
type Before struct {
	Kind     BeforeKind
	Producer sim.Socket
	Segment  ids.ComponentId
}

// Point is one node of a routed wire: a position, its incoming edge, the
// segments fanning out from it, and an optional bound consumer socket.
type Point struct {
	Position      geo.Vec2
	Before        Before
	SegmentsAfter map[ids.ComponentId]struct{}
	Consumer      *sim.Socket
}

func newPoint(pos geo.Vec2, before Before) *Point {
	return &Point{Position: pos, Before: before, SegmentsAfter: make(map[ids.ComponentId]struct{})}
}

// Segment is one axis-aligned edge of a routed wire, semantically
// flowing from FromPoint toward ToPoint (spec.md §4.5.2: "undirected in
// storage but semantically flow from their from_point toward their
// to_point").
type Segment struct {
	FromPoint ids.ComponentId
	ToPoint   ids.ComponentId
}

// Direction returns the cardinal direction this segment flows in.
func (s Segment) Direction(points map[ids.ComponentId]*Point) geo.Direction {
	return geo.DirectionBetween(points[s.FromPoint].Position, points[s.ToPoint].Position)
}

// LayoutConn is one electrical net: a graph of points joined by
// axis-aligned segments, with at most one producer and any number of
// bound consumers (spec.md §3, §4.5.2).
type LayoutConn struct {
	ID         ids.ComponentId
	Producer   *sim.Socket
	Consumers  map[sim.Socket]struct{}
	DataHandle *destructor.DestructedData

	Points   map[ids.ComponentId]*Point
	Segments map[ids.ComponentId]*Segment
}

func newLayoutConn(id ids.ComponentId, dataHandle *destructor.DestructedData) *LayoutConn {
	return &LayoutConn{
		ID:         id,
		Consumers:  make(map[sim.Socket]struct{}),
		DataHandle: dataHandle,
		Points:     make(map[ids.ComponentId]*Point),
		Segments:   make(map[ids.ComponentId]*Segment),
	}
}
