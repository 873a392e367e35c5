package v0

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

// BindConn resolves a schema-0 library's conn_* symbols and returns a
// destructor.DestructedConn closing over them. Shape mirrors BindData:
// connections carry a data type, not tick behavior.
func BindConn(lib loader.LibraryHandle) (*destructor.DestructedConn, error) {
	serializeFn, err := symbol(lib, "conn", "conn_serialize")
	if err != nil {
		return nil, err
	}
	deserializeFn, err := symbol(lib, "conn", "conn_deserialize")
	if err != nil {
		return nil, err
	}
	defaultFn, err := symbol(lib, "conn", "conn_default")
	if err != nil {
		return nil, err
	}
	dropFn, err := symbol(lib, "conn", "conn_drop")
	if err != nil {
		return nil, err
	}

	held := lib.Clone()

	serialize := func(conn ffi.DataPtr) ([]byte, error) {
		var out ffi.Slice
		r1, _, _ := purego.SyscallN(serializeFn,
			uintptr(unsafe.Pointer(conn)),
			ptrOf(unsafe.Pointer(&out)),
		)
		if err := statusError(held, "conn_serialize", r1); err != nil {
			return nil, err
		}
		bytes := ffi.CopyOut(out)
		out.Free()
		return bytes, nil
	}

	deserialize := func(data []byte) (ffi.DataPtr, error) {
		in := ffi.HostOwnedSlice(data)
		var out uintptr
		r1, _, _ := purego.SyscallN(deserializeFn,
			uintptr(in.First),
			uintptr(in.Length),
			ptrOf(unsafe.Pointer(&out)),
		)
		if err := statusError(held, "conn_deserialize", r1); err != nil {
			return nil, err
		}
		return ffi.DataPtr(unsafe.Pointer(out)), nil
	}

	defaultVal := func() (ffi.DataPtr, error) {
		r1, _, _ := purego.SyscallN(defaultFn)
		return ffi.DataPtr(unsafe.Pointer(r1)), nil
	}

	dropMem := func(conn ffi.DataPtr) {
		purego.SyscallN(dropFn, uintptr(unsafe.Pointer(conn)))
	}

	return destructor.NewDestructedConn(held, serialize, deserialize, defaultVal, dropMem), nil
}
