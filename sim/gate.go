package sim

import (
	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/common/version"
	"github.com/sarchlab/xdsim/destructor"
)

// ConsumerStatus is the binding state of one consumer entry: either
// Unbound, or Bound to a specific producer socket (spec.md §4.4.1).
type ConsumerStatus struct {
	Bound  bool
	Source Socket
}

// ConsumerEntry is one input socket of a SimGate.
type ConsumerEntry struct {
	Name     string
	Request  version.ComponentVersionReq
	Position geo.Vec2
	Status   ConsumerStatus

	// DefaultHandle is the data handle used to synthesize a temporary
	// value for this socket while it is Unbound (spec.md §4.4.2 Phase A
	// step 1).
	DefaultHandle *destructor.DestructedData
}

// ProducerEntry is one output socket of a SimGate, holding the
// double-buffered values tick_all reads from and writes to.
type ProducerEntry struct {
	Name     string
	DataType version.ComponentVersion
	Position geo.Vec2
	Handle   *destructor.DestructedData

	// Dependents is the set of consumer sockets currently wired to this
	// producer (spec.md §4.4.1: "a producer may fan out to many
	// consumers").
	Dependents map[Socket]struct{}

	ReadOnly  *SimData
	WriteOnly *SimData
}

// SimGate is one instantiated component: a gate library handle, its
// opaque state pointer, and its normalized consumer/producer entries.
type SimGate struct {
	ID        ids.ComponentId
	Handle    *destructor.DestructedGate
	Ptr       ffi.GatePtr
	Consumers []ConsumerEntry
	Producers []ProducerEntry
}
