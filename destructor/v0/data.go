package v0

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

// BindData resolves a schema-0 library's data_* symbols and returns a
// destructor.DestructedData closing over them.
func BindData(lib loader.LibraryHandle) (*destructor.DestructedData, error) {
	serializeFn, err := symbol(lib, "data", "data_serialize")
	if err != nil {
		return nil, err
	}
	deserializeFn, err := symbol(lib, "data", "data_deserialize")
	if err != nil {
		return nil, err
	}
	defaultFn, err := symbol(lib, "data", "data_default")
	if err != nil {
		return nil, err
	}
	dropFn, err := symbol(lib, "data", "data_drop")
	if err != nil {
		return nil, err
	}

	held := lib.Clone()

	serialize := func(data ffi.DataPtr) ([]byte, error) {
		var out ffi.Slice
		r1, _, _ := purego.SyscallN(serializeFn,
			uintptr(unsafe.Pointer(data)),
			ptrOf(unsafe.Pointer(&out)),
		)
		if err := statusError(held, "data_serialize", r1); err != nil {
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
		if err := statusError(held, "data_deserialize", r1); err != nil {
			return nil, err
		}
		return ffi.DataPtr(unsafe.Pointer(out)), nil
	}

	defaultVal := func() (ffi.DataPtr, error) {
		r1, _, _ := purego.SyscallN(defaultFn)
		return ffi.DataPtr(unsafe.Pointer(r1)), nil
	}

	dropMem := func(data ffi.DataPtr) {
		purego.SyscallN(dropFn, uintptr(unsafe.Pointer(data)))
	}

	return destructor.NewDestructedData(held, serialize, deserialize, defaultVal, dropMem), nil
}
