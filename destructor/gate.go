package destructor

import (
	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/loader"
)

// DestructedGate is the version-normalized operation table for a gate
// component library (spec.md §3). Every method call is a foreign function
// invocation — part of the unsafe surface spec.md §5 calls out.
type DestructedGate struct {
	lib loader.LibraryHandle

	tick        func(gate ffi.GatePtr, consumers []ffi.DataPtr) ([]ffi.DataPtr, error)
	definition  func(gate ffi.GatePtr) (GateDefinition, error)
	properties  func(gate ffi.GatePtr) (ffi.DataPtr, error)
	serialize   func(gate ffi.GatePtr) ([]byte, error)
	deserialize func(data []byte) (ffi.GatePtr, error)
	defaultVal  func() (ffi.GatePtr, error)
	dropMem     func(gate ffi.GatePtr)
}

// NewDestructedGate assembles a DestructedGate from version-bound
// operations plus the library handle that must stay alive for them.
func NewDestructedGate(
	lib loader.LibraryHandle,
	tick func(ffi.GatePtr, []ffi.DataPtr) ([]ffi.DataPtr, error),
	definition func(ffi.GatePtr) (GateDefinition, error),
	properties func(ffi.GatePtr) (ffi.DataPtr, error),
	serialize func(ffi.GatePtr) ([]byte, error),
	deserialize func([]byte) (ffi.GatePtr, error),
	defaultVal func() (ffi.GatePtr, error),
	dropMem func(ffi.GatePtr),
) *DestructedGate {
	return &DestructedGate{
		lib: lib, tick: tick, definition: definition, properties: properties,
		serialize: serialize, deserialize: deserialize, defaultVal: defaultVal, dropMem: dropMem,
	}
}

// Tick invokes the library's gate_tick, converting consumer pointers to
// producer pointers (spec.md §4.4.2 Phase A).
func (g *DestructedGate) Tick(gate ffi.GatePtr, consumers []ffi.DataPtr) ([]ffi.DataPtr, error) {
	return g.tick(gate, consumers)
}

// Definition invokes the library's gate_def and returns the
// already-normalized definition.
func (g *DestructedGate) Definition(gate ffi.GatePtr) (GateDefinition, error) {
	return g.definition(gate)
}

// Properties invokes the library's gate_props.
func (g *DestructedGate) Properties(gate ffi.GatePtr) (ffi.DataPtr, error) {
	return g.properties(gate)
}

// Serialize invokes the library's gate_serialize.
func (g *DestructedGate) Serialize(gate ffi.GatePtr) ([]byte, error) {
	return g.serialize(gate)
}

// Deserialize invokes the library's gate_deserialize.
func (g *DestructedGate) Deserialize(data []byte) (ffi.GatePtr, error) {
	return g.deserialize(data)
}

// DefaultValue invokes the library's gate_default.
func (g *DestructedGate) DefaultValue() (ffi.GatePtr, error) {
	return g.defaultVal()
}

// DropMem invokes the library's gate_drop. Must be called exactly once per
// gate pointer obtained from DefaultValue/Deserialize. Tick's producer
// outputs are data pointers and are dropped through their data handle.
func (g *DestructedGate) DropMem(gate ffi.GatePtr) {
	g.dropMem(gate)
}

// Library returns the keep-alive handle backing this table's function
// pointers.
func (g *DestructedGate) Library() loader.LibraryHandle {
	return g.lib
}
