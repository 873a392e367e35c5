package layout_test

import (
	"unsafe"

	"github.com/Masterminds/semver/v3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/catalog"
	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/common/version"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/layout"
	"github.com/sarchlab/xdsim/loader"
	"github.com/sarchlab/xdsim/sim"
)

func mustVersion(s string) *semver.Version {
	v, err := semver.NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func bitPtr(v byte) ffi.DataPtr {
	b := new(byte)
	*b = v
	return ffi.DataPtr(unsafe.Pointer(b))
}

func bitValue(p ffi.DataPtr) byte {
	return *(*byte)(unsafe.Pointer(p))
}

func newBitData() *destructor.DestructedData {
	return destructor.NewDestructedData(
		loader.LibraryHandle{},
		func(p ffi.DataPtr) ([]byte, error) { return []byte{bitValue(p)}, nil },
		func(b []byte) (ffi.DataPtr, error) { return bitPtr(b[0]), nil },
		func() (ffi.DataPtr, error) { return bitPtr(0), nil },
		func(ffi.DataPtr) {},
	)
}

// newInverterGate builds a fake single-input, single-output gate whose
// consumer socket sits one unit east of origin and whose producer socket
// sits one unit west, so AbsoluteSocketPosition has something to compute.
func newInverterGate() *destructor.DestructedGate {
	req, _ := version.ParseVersionReq("wires", ">=1.0.0", "bit")
	producerVersion, _ := version.ParseVersion("wires", "1.0.0", "bit")

	return destructor.NewDestructedGate(
		loader.LibraryHandle{},
		func(g ffi.GatePtr, consumers []ffi.DataPtr) ([]ffi.DataPtr, error) {
			return []ffi.DataPtr{bitPtr(1 - bitValue(consumers[0]))}, nil
		},
		func(g ffi.GatePtr) (destructor.GateDefinition, error) {
			return destructor.GateDefinition{
				Consumers: []destructor.GateConsumerEntry{{Name: "in", Request: req, Position: geo.Vec2{X: 1, Y: 0}}},
				Producers: []destructor.GateProducerEntry{{Name: "out", DataType: producerVersion, Position: geo.Vec2{X: -1, Y: 0}}},
			}, nil
		},
		func(g ffi.GatePtr) (ffi.DataPtr, error) { return nil, nil },
		func(g ffi.GatePtr) ([]byte, error) { return nil, nil },
		func(data []byte) (ffi.GatePtr, error) { return nil, nil },
		func() (ffi.GatePtr, error) { return ffi.GatePtr(unsafe.Pointer(new(int))), nil },
		func(g ffi.GatePtr) {},
	)
}

func newCatalogWithInverter() *catalog.Catalog {
	return &catalog.Catalog{
		Gates: map[string]map[string]map[string]*destructor.DestructedGate{
			"gates": {"1.0.0": {"inverter": newInverterGate()}},
		},
		Data: map[string]map[string]map[string]*destructor.DestructedData{
			"wires": {"1.0.0": {"bit": newBitData()}},
		},
		Conns: map[string]map[string]map[string]*destructor.DestructedConn{},
	}
}

var _ = Describe("World", func() {
	var w *layout.World
	var inverterType version.ComponentVersion

	BeforeEach(func() {
		inverterType = version.ComponentVersion{Package: "gates", Version: mustVersion("1.0.0"), Component: "inverter"}
		w = layout.NewWorld(layout.CreateBlankWorld{IDs: ids.NewCounter(), Handles: newCatalogWithInverter()})
	})

	It("places a gate's sockets at the given origin with zero rotation", func() {
		id, err := w.CreateDefaultGate(layout.CreateDefaultGate{Gate: inverterType, Origin: geo.Vec2{X: 10, Y: 10}})
		Expect(err).NotTo(HaveOccurred())

		lg, err := w.GetGate(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(lg.Position).To(Equal(geo.Vec2{X: 10, Y: 10}))
		Expect(lg.Rotation).To(Equal(geo.Rot0))
		Expect(lg.AbsoluteSocketPosition(lg.Producers[0].RelativePosition)).To(Equal(geo.Vec2{X: 9, Y: 10}))
	})

	It("fails with SimError wrapping the underlying GateTypeNotFoundError", func() {
		unknown := version.ComponentVersion{Package: "gates", Version: mustVersion("9.9.9"), Component: "missing"}
		_, err := w.CreateDefaultGate(layout.CreateDefaultGate{Gate: unknown})

		var simErr *layout.SimError
		Expect(err).To(BeAssignableToTypeOf(simErr))
	})

	Describe("drawing and binding a net", func() {
		var a, b ids.ComponentId

		BeforeEach(func() {
			var err error
			a, err = w.CreateDefaultGate(layout.CreateDefaultGate{Gate: inverterType, Origin: geo.Vec2{X: 0, Y: 0}})
			Expect(err).NotTo(HaveOccurred())
			b, err = w.CreateDefaultGate(layout.CreateDefaultGate{Gate: inverterType, Origin: geo.Vec2{X: 5, Y: 0}})
			Expect(err).NotTo(HaveOccurred())
		})

		It("draws a new net from a producer socket and wires it through to a consumer", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 0}),
			})
			Expect(err).NotTo(HaveOccurred())
			connID, toID := res.Conn, res.ToPoint

			c, err := w.GetConn(connID)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Points).To(HaveLen(2))
			Expect(c.Segments).To(HaveLen(1))
			Expect(c.Producer).NotTo(BeNil())
			Expect(*c.Producer).To(Equal(producerSocket))

			consumerSocket := sim.Socket{Gate: b, Index: 0}
			Expect(w.BindConsumer(layout.BindConsumer{Conn: connID, Point: toID, ConsumerSocket: consumerSocket})).To(Succeed())

			lgB, err := w.GetGate(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(lgB.Consumers[0].BoundConnPoints).To(HaveKey(toID))

			Expect(w.TickAll()).NotTo(HaveOccurred())
		})

		It("draws a producer-rooted net straight onto a consumer socket in one call", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			consumerSocket := sim.Socket{Gate: b, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToConsumerSocket(consumerSocket),
			})
			Expect(err).NotTo(HaveOccurred())

			c, err := w.GetConn(res.Conn)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Points[res.ToPoint].Consumer).NotTo(BeNil())
			Expect(*c.Points[res.ToPoint].Consumer).To(Equal(consumerSocket))

			lgB, err := w.GetGate(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(lgB.Consumers[0].BoundConnPoints).To(HaveKey(res.ToPoint))

			Expect(w.TickAll()).NotTo(HaveOccurred())
		})

		It("extends a drawn net with a dangling point, then unwinds it via rm_segment then rm_point", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 0}),
			})
			Expect(err).NotTo(HaveOccurred())
			connID, toID := res.Conn, res.ToPoint

			branch, err := w.DrawSegment(layout.SegmentDraw{
				Conn: connID,
				From: layout.FromPoint(toID),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 3}),
			})
			Expect(err).NotTo(HaveOccurred())
			branchID, branchSeg := branch.ToPoint, branch.Segment

			c, _ := w.GetConn(connID)
			Expect(c.Points).To(HaveLen(3))
			Expect(c.Segments).To(HaveKey(branchSeg))

			err = w.RmPoint(connID, branchID)
			var notRemovable *layout.PointNotRemovableError
			Expect(err).To(BeAssignableToTypeOf(notRemovable))

			Expect(w.RmSegment(connID, branchSeg)).To(Succeed())
			Expect(c.Segments).NotTo(HaveKey(branchSeg))

			Expect(w.RmPoint(connID, branchID)).To(Succeed())
			Expect(c.Points).NotTo(HaveKey(branchID))
		})

		It("joins two existing points of the same net with a new segment after rm_segment frees one", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 0}),
			})
			Expect(err).NotTo(HaveOccurred())
			connID, rootID, toID, rootSeg := res.Conn, res.FromPoint, res.ToPoint, res.Segment

			Expect(w.RmSegment(connID, rootSeg)).To(Succeed())

			joined, err := w.DrawSegment(layout.SegmentDraw{
				Conn: connID,
				From: layout.FromPoint(rootID),
				To:   layout.ToPoint(toID),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(joined.FromPoint).To(Equal(rootID))
			Expect(joined.ToPoint).To(Equal(toID))

			c, _ := w.GetConn(connID)
			Expect(c.Points[toID].Before.Kind).To(Equal(layout.BeforeSegment))
		})

		It("rejects joining onto a point that already has an incoming edge", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 0}),
			})
			Expect(err).NotTo(HaveOccurred())

			branch, err := w.DrawSegment(layout.SegmentDraw{
				Conn: res.Conn,
				From: layout.FromPoint(res.FromPoint),
				To:   layout.ToPosition(geo.Vec2{X: -1, Y: 3}),
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = w.DrawSegment(layout.SegmentDraw{
				Conn: res.Conn,
				From: layout.FromPoint(res.FromPoint),
				To:   layout.ToPoint(branch.ToPoint),
			})
			var notWritable *layout.PointNotWritableError
			Expect(err).To(BeAssignableToTypeOf(notWritable))
		})

		It("rejects a non-axis-aligned segment instead of panicking", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			_, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 3}),
			})
			var notAligned *layout.SegmentNotAxisAlignedError
			Expect(err).To(BeAssignableToTypeOf(notAligned))
		})

		It("rejects attaching a second producer onto an already-bound net via segment_draw", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 0}),
			})
			Expect(err).NotTo(HaveOccurred())

			otherProducer := sim.Socket{Gate: b, Index: 0}
			_, err = w.DrawSegment(layout.SegmentDraw{
				Conn: res.Conn,
				From: layout.FromProducer(otherProducer),
				To:   layout.ToPoint(res.ToPoint),
			})
			var already *layout.ProducerAlreadyBoundError
			Expect(err).To(BeAssignableToTypeOf(already))
		})

		It("rejects binding a second producer onto an already-bound net", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 0}),
			})
			Expect(err).NotTo(HaveOccurred())

			otherProducer := sim.Socket{Gate: b, Index: 0}
			err = w.BindProducer(layout.BindProducer{Conn: res.Conn, Point: res.ToPoint, ProducerSocket: otherProducer})
			var already *layout.ProducerAlreadyBoundError
			Expect(err).To(BeAssignableToTypeOf(already))
		})

		It("rejects removing a point that still has an incoming segment", func() {
			producerSocket := sim.Socket{Gate: a, Index: 0}
			res, err := w.DrawSegment(layout.SegmentDraw{
				From: layout.FromProducer(producerSocket),
				To:   layout.ToPosition(geo.Vec2{X: 4, Y: 0}),
			})
			Expect(err).NotTo(HaveOccurred())

			err = w.RmPoint(res.Conn, res.ToPoint)
			var notRemovable *layout.PointNotRemovableError
			Expect(err).To(BeAssignableToTypeOf(notRemovable))
		})
	})
})
