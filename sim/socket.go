package sim

import "github.com/sarchlab/xdsim/common/ids"

// Socket identifies one producer or consumer entry of a gate by its
// owning gate id and its position in that gate's entry list (spec.md
// §4.4.1: "the only edge endpoints").
type Socket struct {
	Gate  ids.ComponentId
	Index int
}
