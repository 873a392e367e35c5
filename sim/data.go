package sim

import (
	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/destructor"
)

// SimData is a uniquely-owned opaque data value produced by a gate's
// tick, a default_value() call, or a deserialize() call. It must never be
// copied (spec.md §5: "SimData is uniquely owned"); moving it means
// moving the struct itself. Drop must be called exactly once.
type SimData struct {
	handle *destructor.DestructedData
	ptr    ffi.DataPtr
}

// NewSimData wraps a freshly obtained pointer under the handle that owns
// its drop function.
func NewSimData(handle *destructor.DestructedData, ptr ffi.DataPtr) *SimData {
	return &SimData{handle: handle, ptr: ptr}
}

// Ptr returns the opaque pointer a component library's tick function
// reads from.
func (d *SimData) Ptr() ffi.DataPtr {
	if d == nil {
		return nil
	}
	return d.ptr
}

// Drop releases the underlying pointer via the owning handle's drop_mem.
// Safe to call on a nil *SimData.
func (d *SimData) Drop() {
	if d == nil || d.handle == nil {
		return
	}
	d.handle.DropMem(d.ptr)
}
