// Package destructor implements the versioned vtable adapter of
// spec.md §4.3: it reads a loaded library's schema_version, binds the
// symbols that schema version declares, and hands back a version-
// normalized operation table per component kind (Gate/Data/Connection).
// The rest of the core never sees a schema version again.
package destructor

import (
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/version"
)

// GateConsumerEntry is one normalized input socket of a gate definition.
type GateConsumerEntry struct {
	Name     string
	Request  version.ComponentVersionReq
	Position geo.Vec2
}

// GateProducerEntry is one normalized output socket of a gate definition.
type GateProducerEntry struct {
	Name     string
	DataType version.ComponentVersion
	Position geo.Vec2
}

// GateDefinition is the destructor's normalized rendering of a library's
// gate_def: ordered consumer/producer entries plus a bounding box, with
// the host's own geo.Vec2/BoundingBox types throughout (spec.md §3).
type GateDefinition struct {
	Consumers   []GateConsumerEntry
	Producers   []GateProducerEntry
	BoundingBox geo.BoundingBox
}
