// Package layout implements the geometric shadow world of spec.md §4.5:
// placed gates, routed point/segment wires, and the draw/bind/removal
// operations a frontend drives to build a circuit on a grid. Every
// mutation that touches simulation wiring goes through the wrapped
// sim.World first, so the two worlds can never fall out of sync
// (spec.md §4.5.4).
package layout

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/xdsim/catalog"
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/common/version"
	"github.com/sarchlab/xdsim/destructor"
	xdsim "github.com/sarchlab/xdsim/sim"
)

// HookPosGateCreated marks a successful create_default_gate on the layout
// world, in addition to the hook the wrapped simulation world already
// fires.
var HookPosGateCreated = &sim.HookPos{Name: "Layout Gate Created"}

// HookPosConnDrawn marks a successful SegmentDraw that minted a brand new
// LayoutConn.
var HookPosConnDrawn = &sim.HookPos{Name: "Layout Conn Drawn"}

// HookPosConsumerBound marks a successful bind_consumer, including one
// folded into a SegmentDraw's to=ConsumerSocket combination.
var HookPosConsumerBound = &sim.HookPos{Name: "Layout Consumer Bound"}

// HookPosSegmentDrawn marks every segment addSegment commits, carrying the
// routed direction the new edge flows in (spec.md §4.5.2: "Segments ...
// semantically flow from their from_point toward their to_point"). It
// fires before the rest of the draw runs, so a draw whose later step fails
// and rolls the segment back has still fired it.
var HookPosSegmentDrawn = &sim.HookPos{Name: "Layout Segment Drawn"}

// segmentDrawnInfo is the HookPosSegmentDrawn payload.
type segmentDrawnInfo struct {
	Conn      ids.ComponentId
	Segment   ids.ComponentId
	Direction geo.Direction
}

// World is the layout world: a set of placed LayoutGates and routed
// LayoutConns sitting over a simulation World it keeps consistent.
type World struct {
	sim.HookableBase

	ids     *ids.Counter
	sim     *xdsim.World
	handles *catalog.Catalog
	gate    map[ids.ComponentId]*LayoutGate
	conn    map[ids.ComponentId]*LayoutConn
}

// NewWorld creates an empty layout world implementing the CreateBlankWorld
// request record (spec.md §6), driving sim through its own simulation
// World built over the same id counter (so gate and conn ids share one
// space, spec.md §3).
func NewWorld(req CreateBlankWorld) *World {
	return &World{
		ids:     req.IDs,
		sim:     xdsim.NewWorld(xdsim.CreateBlankWorld{IDs: req.IDs, Handles: req.Handles}),
		handles: req.Handles,
		gate:    make(map[ids.ComponentId]*LayoutGate),
		conn:    make(map[ids.ComponentId]*LayoutConn),
	}
}

// Sim exposes the wrapped simulation world for callers that need to
// advance or inspect it directly (tick_all, direct socket reads).
func (w *World) Sim() *xdsim.World {
	return w.sim
}

// GetGate looks up a placed gate by id.
func (w *World) GetGate(id ids.ComponentId) (*LayoutGate, error) {
	g, ok := w.gate[id]
	if !ok {
		return nil, &GateNotFoundError{Gate: id}
	}
	return g, nil
}

// GetConn looks up a routed net by id.
func (w *World) GetConn(id ids.ComponentId) (*LayoutConn, error) {
	c, ok := w.conn[id]
	if !ok {
		return nil, &ConnNotFoundError{Conn: id}
	}
	return c, nil
}

func (w *World) getPoint(conn ids.ComponentId, point ids.ComponentId) (*LayoutConn, *Point, error) {
	c, err := w.GetConn(conn)
	if err != nil {
		return nil, nil, err
	}
	p, ok := c.Points[point]
	if !ok {
		return nil, nil, &PointNotFoundError{Point: point}
	}
	return c, p, nil
}

// CreateDefaultGate instantiates a gate through the wrapped simulation
// world, then places its geometric shadow at req.Origin with zero
// rotation (spec.md §4.5.1 / §6: "CreateDefaultGate{gate, origin}").
func (w *World) CreateDefaultGate(req CreateDefaultGate) (ids.ComponentId, error) {
	id, err := w.sim.CreateDefaultGate(xdsim.CreateDefaultGate{Gate: req.Gate})
	if err != nil {
		return 0, &SimError{Reason: err}
	}

	sg, err := w.sim.GetGate(id)
	if err != nil {
		return 0, &SimError{Reason: err}
	}

	lg := &LayoutGate{
		ID:        id,
		Position:  req.Origin,
		Rotation:  geo.Rot0,
		Consumers: make([]SocketLayout, len(sg.Consumers)),
		Producers: make([]SocketLayout, len(sg.Producers)),
	}
	for i, c := range sg.Consumers {
		lg.Consumers[i] = newSocketLayout(c.Position)
	}
	for i, p := range sg.Producers {
		lg.Producers[i] = newSocketLayout(p.Position)
	}
	w.gate[id] = lg

	w.InvokeHook(sim.HookCtx{Domain: w, Pos: HookPosGateCreated, Item: id})
	return id, nil
}

// consumerSocketPosition resolves a consumer socket's absolute position
// (gate origin + rotated socket offset), mirroring the producer-side
// lookup draw_new always needed.
func (w *World) consumerSocketPosition(s xdsim.Socket) (geo.Vec2, error) {
	lg, err := w.GetGate(s.Gate)
	if err != nil {
		return geo.Vec2{}, err
	}
	if s.Index < 0 || s.Index >= len(lg.Consumers) {
		return geo.Vec2{}, &SocketNotFoundError{Socket: s, Kind: "consumer"}
	}
	return lg.AbsoluteSocketPosition(lg.Consumers[s.Index].RelativePosition), nil
}

// DrawSegment draws a single new segment, dispatching over the six
// from/to combinations spec.md §6 documents ("SegmentDraw{from, to}").
func (w *World) DrawSegment(req SegmentDraw) (SegmentDrawResult, error) {
	switch req.From.Kind {
	case SegmentFromProducer:
		return w.drawFromProducer(req)
	case SegmentFromPoint:
		return w.drawFromPoint(req)
	default:
		return SegmentDrawResult{}, &SegmentDrawUnsupportedError{Request: req}
	}
}

// drawFromProducer handles the two combinations that mint a brand new
// LayoutConn (to=Position, to=ConsumerSocket) and the one that attaches a
// producer directly onto an already-existing, still producer-less point
// of req.Conn (to=Point).
func (w *World) drawFromProducer(req SegmentDraw) (SegmentDrawResult, error) {
	switch req.To.Kind {
	case SegmentToPosition, SegmentToConsumerSocket:
		return w.drawNewConn(req.From.Producer, req.To)
	case SegmentToPoint:
		return w.bindProducerBySegment(req.Conn, req.To.Point, req.From.Producer)
	default:
		return SegmentDrawResult{}, &SegmentDrawUnsupportedError{Request: req}
	}
}

// drawFromPoint handles the three combinations that extend an existing
// point of req.Conn: a fresh dangling point (to=Position), a fresh point
// immediately bound to a consumer (to=ConsumerSocket), or an already
// existing, still-writable point of the same conn (to=Point).
func (w *World) drawFromPoint(req SegmentDraw) (SegmentDrawResult, error) {
	c, _, err := w.getPoint(req.Conn, req.From.Point)
	if err != nil {
		return SegmentDrawResult{}, err
	}

	switch req.To.Kind {
	case SegmentToPosition, SegmentToConsumerSocket:
		toPos, consumerSocket, hasConsumer, err := w.resolveFreshTo(req.To)
		if err != nil {
			return SegmentDrawResult{}, err
		}

		toID := w.ids.AllocConnPoint(req.Conn)
		c.Points[toID] = newPoint(toPos, Before{})

		segID, err := w.addSegment(req.Conn, c, req.From.Point, toID)
		if err != nil {
			w.ids.Unregister(toID)
			delete(c.Points, toID)
			return SegmentDrawResult{}, err
		}

		if hasConsumer {
			if err := w.bindConsumerPoint(req.Conn, c, toID, consumerSocket); err != nil {
				w.undoSegment(req.Conn, c, toID, segID)
				return SegmentDrawResult{}, err
			}
		}

		return SegmentDrawResult{Conn: req.Conn, FromPoint: req.From.Point, ToPoint: toID, Segment: segID}, nil

	case SegmentToPoint:
		toPoint, ok := c.Points[req.To.Point]
		if !ok {
			return SegmentDrawResult{}, &PointNotFoundError{Point: req.To.Point}
		}
		if toPoint.Before.Kind != BeforeDangling {
			return SegmentDrawResult{}, &PointNotWritableError{Point: req.To.Point}
		}

		segID, err := w.addSegment(req.Conn, c, req.From.Point, req.To.Point)
		if err != nil {
			return SegmentDrawResult{}, err
		}
		return SegmentDrawResult{Conn: req.Conn, FromPoint: req.From.Point, ToPoint: req.To.Point, Segment: segID}, nil

	default:
		return SegmentDrawResult{}, &SegmentDrawUnsupportedError{Request: req}
	}
}

// resolveFreshTo resolves the position (and, for to=ConsumerSocket, the
// socket to bind) of a SegmentTo that mints a brand new point.
func (w *World) resolveFreshTo(to SegmentTo) (pos geo.Vec2, consumerSocket xdsim.Socket, hasConsumer bool, err error) {
	switch to.Kind {
	case SegmentToPosition:
		return to.Position, xdsim.Socket{}, false, nil
	case SegmentToConsumerSocket:
		pos, err := w.consumerSocketPosition(to.ConsumerSocket)
		return pos, to.ConsumerSocket, true, err
	default:
		return geo.Vec2{}, xdsim.Socket{}, false, &SegmentDrawUnsupportedError{}
	}
}

// drawNewConn mints a fresh LayoutConn whose first point sits at
// producerSocket's current absolute position, already bound to it, joined
// by one segment to a second point resolved from to (spec.md §4.5.2:
// "draw_new", generalized to also cover to=ConsumerSocket).
func (w *World) drawNewConn(producerSocket xdsim.Socket, to SegmentTo) (SegmentDrawResult, error) {
	producerType, err := w.sim.GetProducerType(producerSocket)
	if err != nil {
		return SegmentDrawResult{}, &SimError{Reason: err}
	}
	dataHandle, ok := w.dataHandle(producerType)
	if !ok {
		return SegmentDrawResult{}, &SimError{Reason: &xdsim.DataTypeNotFoundError{Producer: producerType.Component}}
	}

	lg, err := w.GetGate(producerSocket.Gate)
	if err != nil {
		return SegmentDrawResult{}, err
	}

	toPos, consumerSocket, hasConsumer, err := w.resolveFreshTo(to)
	if err != nil {
		return SegmentDrawResult{}, err
	}

	fromPos := lg.AbsoluteSocketPosition(lg.Producers[producerSocket.Index].RelativePosition)

	connID := w.ids.AllocConn()
	c := newLayoutConn(connID, dataHandle)

	fromID := w.ids.AllocConnPoint(connID)
	c.Points[fromID] = newPoint(fromPos, Before{Kind: BeforeProducer, Producer: producerSocket})
	c.Producer = &producerSocket
	lg.Producers[producerSocket.Index].BoundConnPoints[fromID] = struct{}{}

	toID := w.ids.AllocConnPoint(connID)
	c.Points[toID] = newPoint(toPos, Before{})

	segID, err := w.addSegment(connID, c, fromID, toID)
	if err != nil {
		delete(lg.Producers[producerSocket.Index].BoundConnPoints, fromID)
		w.ids.Unregister(toID)
		w.ids.Unregister(fromID)
		w.ids.Unregister(connID)
		return SegmentDrawResult{}, err
	}

	w.conn[connID] = c

	if hasConsumer {
		if err := w.bindConsumerPoint(connID, c, toID, consumerSocket); err != nil {
			delete(lg.Producers[producerSocket.Index].BoundConnPoints, fromID)
			w.discardConn(connID, c)
			return SegmentDrawResult{}, err
		}
	}

	w.InvokeHook(sim.HookCtx{Domain: w, Pos: HookPosConnDrawn, Item: connID})
	return SegmentDrawResult{Conn: connID, FromPoint: fromID, ToPoint: toID, Segment: segID}, nil
}

// bindProducerBySegment attaches producerSocket to an existing, still
// producer-less point of connID via a brand new segment (spec.md §6:
// SegmentDraw{from: Producer, to: Point}). The conn must have no producer
// bound yet and the target point must be writable (Before == Dangling) —
// the same preconditions bind_producer itself enforces. As in
// BindProducer, any consumer sockets already bound to the conn are wired to
// producerSocket at the simulation level first; a failure disconnects the
// ones already wired and leaves the conn untouched.
func (w *World) bindProducerBySegment(connID, point ids.ComponentId, producerSocket xdsim.Socket) (SegmentDrawResult, error) {
	c, to, err := w.getPoint(connID, point)
	if err != nil {
		return SegmentDrawResult{}, err
	}
	if c.Producer != nil {
		return SegmentDrawResult{}, &ProducerAlreadyBoundError{Conn: connID}
	}
	if to.Before.Kind != BeforeDangling {
		return SegmentDrawResult{}, &PointNotWritableError{Point: point}
	}
	if _, err := w.sim.GetProducerType(producerSocket); err != nil {
		return SegmentDrawResult{}, &SimError{Reason: err}
	}

	lg, err := w.GetGate(producerSocket.Gate)
	if err != nil {
		return SegmentDrawResult{}, err
	}
	fromPos := lg.AbsoluteSocketPosition(lg.Producers[producerSocket.Index].RelativePosition)

	connected := make([]xdsim.Socket, 0, len(c.Consumers))
	for consumerSocket := range c.Consumers {
		if err := w.sim.Connect(xdsim.ConnectIOSockets{Producer: producerSocket, Consumer: consumerSocket}); err != nil {
			for _, done := range connected {
				w.sim.Disconnect(done)
			}
			return SegmentDrawResult{}, &SimError{Reason: err}
		}
		connected = append(connected, consumerSocket)
	}

	fromID := w.ids.AllocConnPoint(connID)
	c.Points[fromID] = newPoint(fromPos, Before{Kind: BeforeProducer, Producer: producerSocket})
	c.Producer = &producerSocket
	lg.Producers[producerSocket.Index].BoundConnPoints[fromID] = struct{}{}

	segID, err := w.addSegment(connID, c, fromID, point)
	if err != nil {
		for _, done := range connected {
			w.sim.Disconnect(done)
		}
		delete(lg.Producers[producerSocket.Index].BoundConnPoints, fromID)
		c.Producer = nil
		delete(c.Points, fromID)
		w.ids.Unregister(fromID)
		return SegmentDrawResult{}, err
	}

	return SegmentDrawResult{Conn: connID, FromPoint: fromID, ToPoint: point, Segment: segID}, nil
}

// addSegment creates a new segment between two points already present in
// c, rejecting a non-axis-aligned pair before it ever reaches
// Segment.Direction so that path never panics (spec.md §7: "no error is a
// panic path"), then fires HookPosSegmentDrawn with the routed direction.
func (w *World) addSegment(connID ids.ComponentId, c *LayoutConn, fromID, toID ids.ComponentId) (ids.ComponentId, error) {
	from, to := c.Points[fromID], c.Points[toID]
	if !geo.AxisAligned(from.Position, to.Position) {
		return 0, &SegmentNotAxisAlignedError{From: from.Position, To: to.Position}
	}

	segID := w.ids.AllocConnSegment(connID)
	seg := &Segment{FromPoint: fromID, ToPoint: toID}
	c.Segments[segID] = seg
	from.SegmentsAfter[segID] = struct{}{}
	to.Before = Before{Kind: BeforeSegment, Segment: segID}

	w.InvokeHook(sim.HookCtx{
		Domain: w,
		Pos:    HookPosSegmentDrawn,
		Item:   segmentDrawnInfo{Conn: connID, Segment: segID, Direction: seg.Direction(c.Points)},
	})
	return segID, nil
}

// undoSegment reverts a segment addSegment just committed and the point it
// terminated at, used to unwind a draw that failed immediately afterward
// (spec.md §7: "rollback discipline").
func (w *World) undoSegment(connID ids.ComponentId, c *LayoutConn, toID, segID ids.ComponentId) {
	if seg, ok := c.Segments[segID]; ok {
		if from, ok := c.Points[seg.FromPoint]; ok {
			delete(from.SegmentsAfter, segID)
		}
	}
	delete(c.Segments, segID)
	delete(c.Points, toID)
	w.ids.Unregister(segID)
	w.ids.Unregister(toID)
}

// discardConn unregisters every id belonging to a conn under construction
// and removes it from the world, used to unwind a draw_new-style mint that
// failed partway through (spec.md §7: "rollback discipline").
func (w *World) discardConn(connID ids.ComponentId, c *LayoutConn) {
	for segID := range c.Segments {
		w.ids.Unregister(segID)
	}
	for pointID := range c.Points {
		w.ids.Unregister(pointID)
	}
	w.ids.Unregister(connID)
	delete(w.conn, connID)
}

// BindProducer attaches producerSocket as the source of conn's net at
// point, which must currently have no incoming edge (spec.md §4.5.2:
// "bind_producer"). The conn must have no producer already bound. If the
// net already has consumer-bound points, each of their consumer sockets is
// wired to producerSocket at the simulation level before any layout state
// changes; a failure on any one of them aborts the whole bind and leaves
// the conn untouched (spec.md §4.5.4).
func (w *World) BindProducer(req BindProducer) error {
	connID, point, producerSocket := req.Conn, req.Point, req.ProducerSocket

	c, p, err := w.getPoint(connID, point)
	if err != nil {
		return err
	}
	if c.Producer != nil {
		return &ProducerAlreadyBoundError{Conn: connID}
	}
	if p.Before.Kind != BeforeDangling {
		return &PointNotWritableError{Point: point}
	}

	connected := make([]xdsim.Socket, 0, len(c.Consumers))
	for consumerSocket := range c.Consumers {
		if err := w.sim.Connect(xdsim.ConnectIOSockets{Producer: producerSocket, Consumer: consumerSocket}); err != nil {
			for _, done := range connected {
				w.sim.Disconnect(done)
			}
			return &SimError{Reason: err}
		}
		connected = append(connected, consumerSocket)
	}

	p.Before = Before{Kind: BeforeProducer, Producer: producerSocket}
	c.Producer = &producerSocket

	lg, err := w.GetGate(producerSocket.Gate)
	if err != nil {
		return err
	}
	lg.Producers[producerSocket.Index].BoundConnPoints[point] = struct{}{}
	return nil
}

// bindConsumerPoint attaches consumerSocket to point within c, wiring the
// simulation connection first when the conn already has a producer so a
// sim-level failure never mutates layout state (spec.md §4.5.4: "bind
// order"). Shared by the standalone BindConsumer request and SegmentDraw's
// to=ConsumerSocket combinations.
func (w *World) bindConsumerPoint(connID ids.ComponentId, c *LayoutConn, point ids.ComponentId, consumerSocket xdsim.Socket) error {
	p := c.Points[point]
	if p.Consumer != nil {
		return &ConsumerAlreadyBoundError{Point: point}
	}

	if c.Producer != nil {
		if err := w.sim.Connect(xdsim.ConnectIOSockets{Producer: *c.Producer, Consumer: consumerSocket}); err != nil {
			return &SimError{Reason: err}
		}
	}

	p.Consumer = &consumerSocket
	c.Consumers[consumerSocket] = struct{}{}

	lg, err := w.GetGate(consumerSocket.Gate)
	if err != nil {
		return err
	}
	lg.Consumers[consumerSocket.Index].BoundConnPoints[point] = struct{}{}

	w.InvokeHook(sim.HookCtx{Domain: w, Pos: HookPosConsumerBound, Item: [2]ids.ComponentId{connID, point}})
	return nil
}

// BindConsumer attaches consumerSocket to conn's net at point (spec.md
// §6: "bind_consumer" / request record).
func (w *World) BindConsumer(req BindConsumer) error {
	c, _, err := w.getPoint(req.Conn, req.Point)
	if err != nil {
		return err
	}
	return w.bindConsumerPoint(req.Conn, c, req.Point, req.ConsumerSocket)
}

// RmPoint removes an unused point: legal only when it has no bound
// consumer, no incoming edge, and no outgoing segments (spec.md §4.5.2:
// "rm_point").
func (w *World) RmPoint(connID, point ids.ComponentId) error {
	c, p, err := w.getPoint(connID, point)
	if err != nil {
		return err
	}
	if p.Consumer != nil || p.Before.Kind != BeforeDangling || len(p.SegmentsAfter) != 0 {
		return &PointNotRemovableError{Point: point}
	}

	delete(c.Points, point)
	w.ids.Unregister(point)

	if len(c.Points) == 0 {
		delete(w.conn, connID)
		w.ids.Unregister(connID)
	}
	return nil
}

// RmSegment removes a segment whose to_point has nothing relying on it:
// no bound consumer and no outgoing segments of its own (spec.md §4.5.2:
// "removing a segment similarly requires no dependents"). The to_point
// itself survives, reverting to Dangling so it can be drawn from again or
// rm_point'd separately.
func (w *World) RmSegment(connID, segment ids.ComponentId) error {
	c, err := w.GetConn(connID)
	if err != nil {
		return err
	}
	seg, ok := c.Segments[segment]
	if !ok {
		return &SegmentNotFoundError{Segment: segment}
	}

	to, ok := c.Points[seg.ToPoint]
	if ok && (to.Consumer != nil || len(to.SegmentsAfter) != 0) {
		return &SegmentNotRemovableError{Segment: segment}
	}

	if ok {
		to.Before = Before{}
	}
	if from, ok := c.Points[seg.FromPoint]; ok {
		delete(from.SegmentsAfter, segment)
	}
	delete(c.Segments, segment)
	w.ids.Unregister(segment)
	return nil
}

// TickAll delegates to the wrapped simulation world; layout never holds
// its own copy of gate state to advance.
func (w *World) TickAll() error {
	return w.sim.TickAll()
}

func (w *World) dataHandle(dt version.ComponentVersion) (*destructor.DestructedData, bool) {
	return w.handles.GetData(dt.Package, dt.Version.String(), dt.Component)
}
