package layout

import (
	"github.com/sarchlab/xdsim/catalog"
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/common/version"
	xdsim "github.com/sarchlab/xdsim/sim"
)

// CreateBlankWorld is the request record NewWorld implements (spec.md §6:
// "CreateBlankWorld{data_handles, gate_handles, conn_handles}"). The catalog
// already shapes all three per-kind handle tables behind one load, so
// Handles carries the whole record rather than three separate maps.
type CreateBlankWorld struct {
	IDs     *ids.Counter
	Handles *catalog.Catalog
}

// CreateDefaultGate is the request record World.CreateDefaultGate
// implements (spec.md §6: "CreateDefaultGate{gate, origin}").
type CreateDefaultGate struct {
	Gate   version.ComponentVersion
	Origin geo.Vec2
}

// BindProducer is the request record World.BindProducer implements
// (spec.md §4.5.2: "bind_producer").
type BindProducer struct {
	Conn           ids.ComponentId
	Point          ids.ComponentId
	ProducerSocket xdsim.Socket
}

// BindConsumer is the request record World.BindConsumer implements
// (spec.md §4.5.2: "bind_consumer").
type BindConsumer struct {
	Conn           ids.ComponentId
	Point          ids.ComponentId
	ConsumerSocket xdsim.Socket
}

// SegmentFromKind tags which of the two legal segment origins a SegmentDraw
// request uses (spec.md §6: "from ∈ {Producer, Point}").
type SegmentFromKind int

const (
	SegmentFromProducer SegmentFromKind = iota
	SegmentFromPoint
)

// SegmentFrom is the tagged union of where a new segment may start.
type SegmentFrom struct {
	Kind     SegmentFromKind
	Producer xdsim.Socket
	Point    ids.ComponentId
}

// FromProducer builds a SegmentFrom that mints a brand new net rooted at
// producer.
func FromProducer(producer xdsim.Socket) SegmentFrom {
	return SegmentFrom{Kind: SegmentFromProducer, Producer: producer}
}

// FromPoint builds a SegmentFrom that extends an existing point of the
// conn named by SegmentDraw.Conn.
func FromPoint(point ids.ComponentId) SegmentFrom {
	return SegmentFrom{Kind: SegmentFromPoint, Point: point}
}

// SegmentToKind tags which of the three legal segment destinations a
// SegmentDraw request uses (spec.md §6: "to ∈ {Position, Point,
// ConsumerSocket}").
type SegmentToKind int

const (
	SegmentToPosition SegmentToKind = iota
	SegmentToPoint
	SegmentToConsumerSocket
)

// SegmentTo is the tagged union of where a new segment may end.
type SegmentTo struct {
	Kind           SegmentToKind
	Position       geo.Vec2
	Point          ids.ComponentId
	ConsumerSocket xdsim.Socket
}

// ToPosition builds a SegmentTo that mints a fresh dangling point at pos.
func ToPosition(pos geo.Vec2) SegmentTo {
	return SegmentTo{Kind: SegmentToPosition, Position: pos}
}

// ToPoint builds a SegmentTo that joins onto an already-existing point of
// the same conn. The target point must currently be writable (Before ==
// Dangling), the same precondition bind_producer uses — reached in
// practice once rm_segment has reverted a point to Dangling.
func ToPoint(point ids.ComponentId) SegmentTo {
	return SegmentTo{Kind: SegmentToPoint, Point: point}
}

// ToConsumerSocket builds a SegmentTo that mints a fresh point at consumer's
// absolute position and binds it to consumer in the same call, folding
// draw + bind_consumer into one request.
func ToConsumerSocket(consumer xdsim.Socket) SegmentTo {
	return SegmentTo{Kind: SegmentToConsumerSocket, ConsumerSocket: consumer}
}

// SegmentDraw draws a single new segment, minting whatever point(s) its
// ends need, per spec.md §4.5.2 / §6 ("SegmentDraw{from, to}"). Conn names
// the net being extended; it is ignored when From is SegmentFromProducer
// and To is not SegmentToPoint, since that combination always mints a
// brand new net.
type SegmentDraw struct {
	Conn ids.ComponentId
	From SegmentFrom
	To   SegmentTo
}

// SegmentDrawResult reports every id a SegmentDraw touched: Conn is always
// the net drawn into (new or existing), FromPoint/ToPoint/Segment are the
// point and segment ids on either side of the new edge.
type SegmentDrawResult struct {
	Conn      ids.ComponentId
	FromPoint ids.ComponentId
	ToPoint   ids.ComponentId
	Segment   ids.ComponentId
}
