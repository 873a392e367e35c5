package layout

import (
	"fmt"

	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/sim"
)

// GateNotFoundError reports a layout operation referencing a gate id the
// layout world has no LayoutGate for.
type GateNotFoundError struct {
	Gate ids.ComponentId
}

func (e *GateNotFoundError) Error() string {
	return fmt.Sprintf("layout: gate %d not found", e.Gate)
}

// ConnNotFoundError reports an operation referencing an unknown LayoutConn.
type ConnNotFoundError struct {
	Conn ids.ComponentId
}

func (e *ConnNotFoundError) Error() string {
	return fmt.Sprintf("layout: conn %d not found", e.Conn)
}

// PointNotFoundError reports an operation referencing an unknown point
// within a (possibly otherwise valid) conn.
type PointNotFoundError struct {
	Point ids.ComponentId
}

func (e *PointNotFoundError) Error() string {
	return fmt.Sprintf("layout: point %d not found", e.Point)
}

// SegmentNotFoundError reports an operation referencing an unknown
// segment within a conn.
type SegmentNotFoundError struct {
	Segment ids.ComponentId
}

func (e *SegmentNotFoundError) Error() string {
	return fmt.Sprintf("layout: segment %d not found", e.Segment)
}

// ProducerAlreadyBoundError reports bind_producer called on a conn that
// already has a producer (spec.md §4.5.2).
type ProducerAlreadyBoundError struct {
	Conn ids.ComponentId
}

func (e *ProducerAlreadyBoundError) Error() string {
	return fmt.Sprintf("layout: conn %d already has a producer", e.Conn)
}

// PointNotWritableError reports bind_producer called on a point whose
// `before` already resolves to something other than Dangling.
type PointNotWritableError struct {
	Point ids.ComponentId
}

func (e *PointNotWritableError) Error() string {
	return fmt.Sprintf("layout: point %d is not writable (already has an incoming edge)", e.Point)
}

// ConsumerAlreadyBoundError reports bind_consumer called on a point that
// already binds a consumer socket.
type ConsumerAlreadyBoundError struct {
	Point ids.ComponentId
}

func (e *ConsumerAlreadyBoundError) Error() string {
	return fmt.Sprintf("layout: point %d already binds a consumer", e.Point)
}

// PointNotRemovableError reports rm_point called on a point that still
// has a bound consumer, an incoming edge, or outgoing segments (spec.md
// §4.5.2: "only legal when the point has no consumer, no upstream, and
// an empty segments_after").
type PointNotRemovableError struct {
	Point ids.ComponentId
}

func (e *PointNotRemovableError) Error() string {
	return fmt.Sprintf("layout: point %d has dependents and cannot be removed", e.Point)
}

// SegmentNotRemovableError reports rm_segment called on a segment a
// point still depends on.
type SegmentNotRemovableError struct {
	Segment ids.ComponentId
}

func (e *SegmentNotRemovableError) Error() string {
	return fmt.Sprintf("layout: segment %d has dependents and cannot be removed", e.Segment)
}

// SocketNotFoundError reports a caller-supplied producer or consumer socket
// whose gate has no such index, raised before any position math is
// attempted on it.
type SocketNotFoundError struct {
	Socket sim.Socket
	Kind   string // "producer" or "consumer"
}

func (e *SocketNotFoundError) Error() string {
	return fmt.Sprintf("layout: %s socket %+v not found", e.Kind, e.Socket)
}

// SegmentNotAxisAlignedError reports a SegmentDraw whose two endpoints
// don't share exactly one coordinate, caught before geo.DirectionBetween
// would otherwise panic on it (spec.md §7: "no error is a panic path").
type SegmentNotAxisAlignedError struct {
	From, To geo.Vec2
}

func (e *SegmentNotAxisAlignedError) Error() string {
	return fmt.Sprintf("layout: segment %v -> %v is not axis-aligned", e.From, e.To)
}

// SegmentDrawUnsupportedError reports a SegmentDraw request whose from/to
// tag doesn't match any of the combinations spec.md §6 documents.
type SegmentDrawUnsupportedError struct {
	Request SegmentDraw
}

func (e *SegmentDrawUnsupportedError) Error() string {
	return fmt.Sprintf("layout: segment_draw request %+v is unsupported", e.Request)
}

// SimError wraps an error surfaced by the underlying simulation world
// (spec.md §7: "Layout::Sim(Box<SimError>)").
type SimError struct {
	Reason error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("layout: simulation world: %s", e.Reason)
}

func (e *SimError) Unwrap() error {
	return e.Reason
}
