// Package ffi implements the C ABI Slice type (spec.md §6) and the
// conversions between it and Go-owned memory. This is the host's
// "chelper" (see SPEC_FULL.md §C.2): every byte that crosses the boundary
// into or out of a component library passes through here.
//
// This is one of the three places spec.md §5 calls out as the unsafe
// surface: turning a library-returned raw pointer into something Go can
// read safely.
package ffi

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Slice mirrors the component ABI's
//
//	struct Slice { uint64_t length; void *first; void (*drop)(void*, uint64_t); }
//
// Ownership of a Slice returned by a component function transfers to the
// receiver along with its Drop function; a Slice handed *to* a component
// function is read-only and must not be dropped by the callee.
type Slice struct {
	Length uint64
	First  unsafe.Pointer
	Drop   uintptr // C function pointer: void(*)(void *first, uint64_t length)
}

// Bytes returns a read-only view over the slice's memory. The returned
// slice is only valid until Free is called (or until the Slice goes out of
// scope on the library side, for slices the host never owns).
func (s Slice) Bytes() []byte {
	if s.Length == 0 || s.First == nil {
		return nil
	}
	return unsafe.Slice((*byte)(s.First), int(s.Length))
}

// Free invokes the slice's own drop function, releasing whatever memory
// First points to. Calling Free on a zero Slice (no Drop pointer) is a
// no-op, since a Slice the host never owns carries no drop function.
func (s Slice) Free() {
	if s.Drop == 0 {
		return
	}
	purego.SyscallN(s.Drop, uintptr(s.First), uintptr(s.Length))
}

// HostOwnedSlice wraps a Go-allocated byte buffer as a Slice that a
// component library can read but must not drop (Drop is left nil): the
// host keeps pinning responsibility for as long as the call is in flight.
func HostOwnedSlice(b []byte) Slice {
	if len(b) == 0 {
		return Slice{}
	}
	return Slice{
		Length: uint64(len(b)),
		First:  unsafe.Pointer(&b[0]),
	}
}

// CopyOut copies a library-owned Slice into a fresh Go byte slice, leaving
// the original Slice (and its Drop obligation) untouched so the caller can
// still Free it afterwards.
func CopyOut(s Slice) []byte {
	if s.Length == 0 {
		return nil
	}
	out := make([]byte, s.Length)
	copy(out, s.Bytes())
	return out
}
