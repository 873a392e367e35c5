package destructor

import (
	"github.com/sarchlab/xdsim/loader"
)

// schemaVersionReader reads the uint32 a library exports at its
// schema_version symbol. Implemented per-version in destructor/v0 and
// registered here so Bind* never has to know the binding mechanics.
type schemaVersionReader func(lib loader.LibraryHandle) (uint32, error)

// gateBinder produces a DestructedGate for libraries declaring a given
// schema_version.
type gateBinder func(lib loader.LibraryHandle) (*DestructedGate, error)

// dataBinder produces a DestructedData for libraries declaring a given
// schema_version.
type dataBinder func(lib loader.LibraryHandle) (*DestructedData, error)

// connBinder produces a DestructedConn for libraries declaring a given
// schema_version.
type connBinder func(lib loader.LibraryHandle) (*DestructedConn, error)

// readSchemaVersion, gateBinders, dataBinders and connBinders are wired
// from destructor/v0 via Register* at package init, keeping this package
// free of any direct purego dependency (spec.md §4.3: the destructor
// dispatches on schema_version, it doesn't own any one version's ABI).
var (
	readSchemaVersion schemaVersionReader
	gateBinders       = map[uint32]gateBinder{}
	dataBinders       = map[uint32]dataBinder{}
	connBinders       = map[uint32]connBinder{}
)

// RegisterSchemaVersionReader installs the function used to read a
// library's schema_version symbol. Called once from destructor/v0's
// init.
func RegisterSchemaVersionReader(f schemaVersionReader) {
	readSchemaVersion = f
}

// RegisterGateBinder associates a schema_version with a gate binder.
func RegisterGateBinder(version uint32, b gateBinder) {
	gateBinders[version] = b
}

// RegisterDataBinder associates a schema_version with a data binder.
func RegisterDataBinder(version uint32, b dataBinder) {
	dataBinders[version] = b
}

// RegisterConnBinder associates a schema_version with a connection
// binder.
func RegisterConnBinder(version uint32, b connBinder) {
	connBinders[version] = b
}

// BindGate reads lib's schema_version and dispatches to the matching
// gate binder.
func BindGate(lib loader.LibraryHandle) (*DestructedGate, error) {
	v, err := readSchemaVersion(lib)
	if err != nil {
		return nil, err
	}
	b, ok := gateBinders[v]
	if !ok {
		return nil, &UnsupportedSchemaVersionError{Path: lib.Path(), Version: v}
	}
	return b(lib)
}

// BindData reads lib's schema_version and dispatches to the matching
// data binder.
func BindData(lib loader.LibraryHandle) (*DestructedData, error) {
	v, err := readSchemaVersion(lib)
	if err != nil {
		return nil, err
	}
	b, ok := dataBinders[v]
	if !ok {
		return nil, &UnsupportedSchemaVersionError{Path: lib.Path(), Version: v}
	}
	return b(lib)
}

// BindConn reads lib's schema_version and dispatches to the matching
// connection binder.
func BindConn(lib loader.LibraryHandle) (*DestructedConn, error) {
	v, err := readSchemaVersion(lib)
	if err != nil {
		return nil, err
	}
	b, ok := connBinders[v]
	if !ok {
		return nil, &UnsupportedSchemaVersionError{Path: lib.Path(), Version: v}
	}
	return b(lib)
}
