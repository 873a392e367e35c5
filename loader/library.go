// Package loader is a thin wrapper around the OS dynamic-library loading
// primitives (spec.md §4.3), built on github.com/ebitengine/purego so the
// host can dlopen/dlsym component libraries without cgo.
package loader

import (
	"sync"

	"github.com/ebitengine/purego"
)

// sharedState is the refcounted payload behind every clone of a
// LibraryHandle. The library is dlclose'd exactly when refs drops to zero.
type sharedState struct {
	mu     sync.Mutex
	path   string
	handle uintptr
	refs   int
	closed bool
}

func (s *sharedState) retain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs++
}

func (s *sharedState) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	s.closed = true
	purego.Dlclose(s.handle)
}

// LibraryHandle is shared ownership of one loaded shared library plus the
// path it was loaded from. Cloning yields an additional owner; the
// library is unmapped exactly when the last owner calls Close. Any
// function pointer obtained via GetSymbol remains valid only while at
// least one handle is open (spec.md §3).
type LibraryHandle struct {
	state *sharedState
}

// Load opens the shared library at path.
func Load(path string) (LibraryHandle, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return LibraryHandle{}, &LoadLibError{Path: path, Reason: err.Error()}
	}
	return LibraryHandle{state: &sharedState{path: path, handle: h, refs: 1}}, nil
}

// Path returns the filesystem path this handle was loaded from, or "" for
// the zero LibraryHandle.
func (h LibraryHandle) Path() string {
	if h.state == nil {
		return ""
	}
	return h.state.path
}

// Clone returns an additional owner of the same underlying library. The
// clone must be Closed independently of the original.
func (h LibraryHandle) Clone() LibraryHandle {
	h.state.retain()
	return LibraryHandle{state: h.state}
}

// Close releases this owner's reference. The library is unmapped once the
// last owner closes.
func (h LibraryHandle) Close() {
	h.state.release()
}

// GetSymbol resolves name to a raw C function pointer (suitable for
// purego.SyscallN or purego.RegisterFunc).
func (h LibraryHandle) GetSymbol(name string) (uintptr, error) {
	sym, err := purego.Dlsym(h.state.handle, name)
	if err != nil {
		return 0, &GetSymbolError{Path: h.state.path, Symbol: name, Reason: err.Error()}
	}
	return sym, nil
}
