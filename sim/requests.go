package sim

import (
	"github.com/sarchlab/xdsim/catalog"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/common/version"
)

// CreateBlankWorld is the request record NewWorld implements (spec.md §6:
// "CreateBlankWorld{data_handles, gate_handles, conn_handles}"). The
// catalog already shapes all three per-kind handle tables together behind
// one load, so Handles carries the whole record rather than three
// separate maps.
type CreateBlankWorld struct {
	IDs     *ids.Counter
	Handles *catalog.Catalog
}

// CreateDefaultGate is the request record World.CreateDefaultGate
// implements (spec.md §6: "CreateDefaultGate{gate, origin}"). The
// simulation world has no geometry of its own, so only Gate applies here;
// layout.CreateDefaultGate adds Origin on top.
type CreateDefaultGate struct {
	Gate version.ComponentVersion
}

// ConnectIOSockets is the request record World.Connect implements
// (spec.md §6: "ConnectIOSockets{producer, consumer}").
type ConnectIOSockets struct {
	Producer Socket
	Consumer Socket
}
