package destructor_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/version"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

var _ = Describe("DestructedGate", func() {
	var gate *destructor.DestructedGate
	var tickCalls int

	BeforeEach(func() {
		tickCalls = 0
		gate = destructor.NewDestructedGate(
			loader.LibraryHandle{},
			func(g ffi.GatePtr, consumers []ffi.DataPtr) ([]ffi.DataPtr, error) {
				tickCalls++
				return append([]ffi.DataPtr{}, consumers...), nil
			},
			func(g ffi.GatePtr) (destructor.GateDefinition, error) {
				req, _ := version.ParseVersionReq("wires", ">=1.0.0", "and2")
				return destructor.GateDefinition{
					Consumers: []destructor.GateConsumerEntry{{Name: "a", Request: req, Position: geo.Vec2{X: 0, Y: 0}}},
				}, nil
			},
			func(g ffi.GatePtr) (ffi.DataPtr, error) { return nil, nil },
			func(g ffi.GatePtr) ([]byte, error) { return []byte("state"), nil },
			func(data []byte) (ffi.GatePtr, error) { return nil, nil },
			func() (ffi.GatePtr, error) { return nil, nil },
			func(g ffi.GatePtr) {},
		)
	})

	It("forwards Tick to the bound closure", func() {
		out, err := gate.Tick(nil, []ffi.DataPtr{nil})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(1))
		Expect(tickCalls).To(Equal(1))
	})

	It("returns the normalized definition untouched", func() {
		def, err := gate.Definition(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(def.Consumers).To(HaveLen(1))
		Expect(def.Consumers[0].Name).To(Equal("a"))
	})

	It("forwards Serialize", func() {
		data, err := gate.Serialize(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("state"))
	})
})

var _ = Describe("UnsupportedSchemaVersionError", func() {
	It("reports path and version", func() {
		err := &destructor.UnsupportedSchemaVersionError{Path: "/lib/and2.so", Version: 7}
		Expect(err.Error()).To(ContainSubstring("and2.so"))
		Expect(err.Error()).To(ContainSubstring("7"))
	})
})

var _ = Describe("InvalidGateDefinitionError", func() {
	It("unwraps to the underlying version error", func() {
		reason := errors.New("bad version string")
		err := &destructor.InvalidGateDefinitionError{Path: "/lib/x.so", Reason: reason}
		Expect(errors.Unwrap(err)).To(Equal(reason))
	})
})
