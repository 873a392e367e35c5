// Package v0 binds schema_version 0 of the component ABI (spec.md §4.3,
// §6): raw C-layout structs, and the purego-based symbol calls that
// convert them into the host's normalized destructor.Gate/Data/Conn
// tables. Every type in this file must stay bit-for-bit compatible with
// the component ABI's struct layout; nothing outside this package should
// ever see a *Raw type.
package v0

import (
	"github.com/sarchlab/xdsim/common/ffi"
)

// SchemaVersion is the schema_version this package binds.
const SchemaVersion uint32 = 0

// vec2Raw mirrors `struct Vec2 { int32_t x; int32_t y; }`.
type vec2Raw struct {
	X int32
	Y int32
}

// boundingBoxRaw mirrors `struct BoundingBox { Vec2 min; Vec2 max; }`.
type boundingBoxRaw struct {
	Min vec2Raw
	Max vec2Raw
}

// identLen is the fixed size of every fixed-width C string field in this
// schema version: package names, component names, and version/constraint
// strings. Fixed buffers avoid a second Slice (and a second drop
// callback) per string field.
const identLen = 48

// gateConsumerEntryRaw mirrors one element of the Slice passed back as
// GateDefinitionRaw.Consumers.
type gateConsumerEntryRaw struct {
	Name       [identLen]byte
	Package    [identLen]byte
	Component  [identLen]byte
	VersionReq [identLen]byte
	Position   vec2Raw
}

// gateProducerEntryRaw mirrors one element of the Slice passed back as
// GateDefinitionRaw.Producers.
type gateProducerEntryRaw struct {
	Name      [identLen]byte
	Package   [identLen]byte
	Component [identLen]byte
	Version   [identLen]byte
	Position  vec2Raw
}

// gateDefinitionRaw mirrors `struct GateDefinition` as returned (by
// out-parameter) from gate_def.
type gateDefinitionRaw struct {
	Consumers ffi.Slice // of gateConsumerEntryRaw
	Producers ffi.Slice // of gateProducerEntryRaw
	BBox      boundingBoxRaw
}
