package v0

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

// BindGate resolves a schema-0 library's gate_* symbols and returns a
// destructor.DestructedGate closing over them. The library handle is
// cloned into the returned table so it outlives this call.
func BindGate(lib loader.LibraryHandle) (*destructor.DestructedGate, error) {
	tickFn, err := symbol(lib, "gate", "gate_tick")
	if err != nil {
		return nil, err
	}
	defFn, err := symbol(lib, "gate", "gate_def")
	if err != nil {
		return nil, err
	}
	propsFn, err := symbol(lib, "gate", "gate_props")
	if err != nil {
		return nil, err
	}
	serializeFn, err := symbol(lib, "gate", "gate_serialize")
	if err != nil {
		return nil, err
	}
	deserializeFn, err := symbol(lib, "gate", "gate_deserialize")
	if err != nil {
		return nil, err
	}
	defaultFn, err := symbol(lib, "gate", "gate_default")
	if err != nil {
		return nil, err
	}
	dropFn, err := symbol(lib, "gate", "gate_drop")
	if err != nil {
		return nil, err
	}

	held := lib.Clone()

	tick := func(gate ffi.GatePtr, consumers []ffi.DataPtr) ([]ffi.DataPtr, error) {
		var out ffi.Slice
		var firstArg uintptr
		if len(consumers) > 0 {
			firstArg = uintptr(unsafe.Pointer(&consumers[0]))
		}
		r1, _, _ := purego.SyscallN(tickFn,
			uintptr(unsafe.Pointer(gate)),
			firstArg,
			uintptr(len(consumers)),
			ptrOf(unsafe.Pointer(&out)),
		)
		if err := statusError(held, "gate_tick", r1); err != nil {
			return nil, err
		}
		producers := ffi.SliceAs[ffi.DataPtr](out)
		result := make([]ffi.DataPtr, len(producers))
		copy(result, producers)
		out.Free()
		return result, nil
	}

	definition := func(gate ffi.GatePtr) (destructor.GateDefinition, error) {
		var raw gateDefinitionRaw
		r1, _, _ := purego.SyscallN(defFn,
			uintptr(unsafe.Pointer(gate)),
			ptrOf(unsafe.Pointer(&raw)),
		)
		if err := statusError(held, "gate_def", r1); err != nil {
			return destructor.GateDefinition{}, err
		}
		def, err := rawGateDefinition(held.Path(), raw)
		raw.Consumers.Free()
		raw.Producers.Free()
		return def, err
	}

	properties := func(gate ffi.GatePtr) (ffi.DataPtr, error) {
		r1, _, _ := purego.SyscallN(propsFn, uintptr(unsafe.Pointer(gate)))
		return ffi.DataPtr(unsafe.Pointer(r1)), nil
	}

	serialize := func(gate ffi.GatePtr) ([]byte, error) {
		var out ffi.Slice
		r1, _, _ := purego.SyscallN(serializeFn,
			uintptr(unsafe.Pointer(gate)),
			ptrOf(unsafe.Pointer(&out)),
		)
		if err := statusError(held, "gate_serialize", r1); err != nil {
			return nil, err
		}
		bytes := ffi.CopyOut(out)
		out.Free()
		return bytes, nil
	}

	deserialize := func(data []byte) (ffi.GatePtr, error) {
		in := ffi.HostOwnedSlice(data)
		var out uintptr
		r1, _, _ := purego.SyscallN(deserializeFn,
			uintptr(in.First),
			uintptr(in.Length),
			ptrOf(unsafe.Pointer(&out)),
		)
		if err := statusError(held, "gate_deserialize", r1); err != nil {
			return nil, err
		}
		return ffi.GatePtr(unsafe.Pointer(out)), nil
	}

	defaultVal := func() (ffi.GatePtr, error) {
		r1, _, _ := purego.SyscallN(defaultFn)
		return ffi.GatePtr(unsafe.Pointer(r1)), nil
	}

	dropMem := func(gate ffi.GatePtr) {
		purego.SyscallN(dropFn, uintptr(unsafe.Pointer(gate)))
	}

	return destructor.NewDestructedGate(held, tick, definition, properties, serialize, deserialize, defaultVal, dropMem), nil
}
