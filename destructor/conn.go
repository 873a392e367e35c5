package destructor

import (
	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/loader"
)

// DestructedConn is the version-normalized operation table for a
// connection component library (spec.md §3, §6: "analogous with conn_
// prefix"). Connections don't tick — they carry a data type and custom
// drawing/serialization, not compute behavior.
type DestructedConn struct {
	lib loader.LibraryHandle

	serialize   func(conn ffi.DataPtr) ([]byte, error)
	deserialize func(data []byte) (ffi.DataPtr, error)
	defaultVal  func() (ffi.DataPtr, error)
	dropMem     func(conn ffi.DataPtr)
}

// NewDestructedConn assembles a DestructedConn from version-bound
// operations plus the library handle that must stay alive for them.
func NewDestructedConn(
	lib loader.LibraryHandle,
	serialize func(ffi.DataPtr) ([]byte, error),
	deserialize func([]byte) (ffi.DataPtr, error),
	defaultVal func() (ffi.DataPtr, error),
	dropMem func(ffi.DataPtr),
) *DestructedConn {
	return &DestructedConn{
		lib: lib, serialize: serialize, deserialize: deserialize,
		defaultVal: defaultVal, dropMem: dropMem,
	}
}

// Serialize invokes the library's conn_serialize.
func (c *DestructedConn) Serialize(conn ffi.DataPtr) ([]byte, error) {
	return c.serialize(conn)
}

// Deserialize invokes the library's conn_deserialize.
func (c *DestructedConn) Deserialize(data []byte) (ffi.DataPtr, error) {
	return c.deserialize(data)
}

// DefaultValue invokes the library's conn_default.
func (c *DestructedConn) DefaultValue() (ffi.DataPtr, error) {
	return c.defaultVal()
}

// DropMem invokes the library's conn_drop.
func (c *DestructedConn) DropMem(conn ffi.DataPtr) {
	c.dropMem(conn)
}

// Library returns the keep-alive handle backing this table's function
// pointers.
func (c *DestructedConn) Library() loader.LibraryHandle {
	return c.lib
}
