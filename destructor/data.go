package destructor

import (
	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/loader"
)

// DestructedData is the version-normalized operation table for a data
// component library (spec.md §3).
type DestructedData struct {
	lib loader.LibraryHandle

	serialize   func(data ffi.DataPtr) ([]byte, error)
	deserialize func(data []byte) (ffi.DataPtr, error)
	defaultVal  func() (ffi.DataPtr, error)
	dropMem     func(data ffi.DataPtr)
}

// NewDestructedData assembles a DestructedData from version-bound
// operations plus the library handle that must stay alive for them.
func NewDestructedData(
	lib loader.LibraryHandle,
	serialize func(ffi.DataPtr) ([]byte, error),
	deserialize func([]byte) (ffi.DataPtr, error),
	defaultVal func() (ffi.DataPtr, error),
	dropMem func(ffi.DataPtr),
) *DestructedData {
	return &DestructedData{
		lib: lib, serialize: serialize, deserialize: deserialize,
		defaultVal: defaultVal, dropMem: dropMem,
	}
}

// Serialize invokes the library's data_serialize.
func (d *DestructedData) Serialize(data ffi.DataPtr) ([]byte, error) {
	return d.serialize(data)
}

// Deserialize invokes the library's data_deserialize.
func (d *DestructedData) Deserialize(data []byte) (ffi.DataPtr, error) {
	return d.deserialize(data)
}

// DefaultValue invokes the library's data_default.
func (d *DestructedData) DefaultValue() (ffi.DataPtr, error) {
	return d.defaultVal()
}

// DropMem invokes the library's data_drop.
func (d *DestructedData) DropMem(data ffi.DataPtr) {
	d.dropMem(data)
}

// Library returns the keep-alive handle backing this table's function
// pointers.
func (d *DestructedData) Library() loader.LibraryHandle {
	return d.lib
}
