package v0

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/common/geo"
	"github.com/sarchlab/xdsim/common/version"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

func init() {
	destructor.RegisterSchemaVersionReader(readSchemaVersion)
	destructor.RegisterGateBinder(SchemaVersion, BindGate)
	destructor.RegisterDataBinder(SchemaVersion, BindData)
	destructor.RegisterConnBinder(SchemaVersion, BindConn)
}

// symbol resolves name against lib and wraps the failure in a
// destructor.GetSymbolError tagged with kind, so a caller always knows
// which operation table was being assembled.
func symbol(lib loader.LibraryHandle, kind, name string) (uintptr, error) {
	fn, err := lib.GetSymbol(name)
	if err != nil {
		return 0, &destructor.GetSymbolError{Path: lib.Path(), Kind: kind, Reason: err}
	}
	return fn, nil
}

// readSchemaVersion calls a library's schema_version() -> uint32.
func readSchemaVersion(lib loader.LibraryHandle) (uint32, error) {
	fn, err := symbol(lib, "schema_version", "schema_version")
	if err != nil {
		return 0, err
	}
	r1, _, _ := purego.SyscallN(fn)
	return uint32(r1), nil
}

// statusError turns a nonzero C status code into a Go error. Schema
// version 0 libraries return 0 for success and any nonzero value to
// signal the call failed; v0 carries no further diagnostic payload.
func statusError(lib loader.LibraryHandle, op string, status uintptr) error {
	if status == 0 {
		return nil
	}
	return &destructor.GetSymbolError{
		Path:   lib.Path(),
		Kind:   op,
		Reason: errStatus(status),
	}
}

type errStatus uintptr

func (e errStatus) Error() string {
	return fmt.Sprintf("component library returned status %d", uintptr(e))
}

// rawGateDefinition converts a gateDefinitionRaw read out of library
// memory into the host's normalized destructor.GateDefinition,
// resolving every fixed-width identity field and version string along
// the way.
func rawGateDefinition(path string, raw gateDefinitionRaw) (destructor.GateDefinition, error) {
	consumersRaw := ffi.SliceAs[gateConsumerEntryRaw](raw.Consumers)
	producersRaw := ffi.SliceAs[gateProducerEntryRaw](raw.Producers)

	consumers := make([]destructor.GateConsumerEntry, 0, len(consumersRaw))
	for _, c := range consumersRaw {
		pkg := ffi.FixedString(c.Package[:])
		component := ffi.FixedString(c.Component[:])
		reqStr := ffi.FixedString(c.VersionReq[:])
		req, err := version.ParseVersionReq(pkg, reqStr, component)
		if err != nil {
			return destructor.GateDefinition{}, &destructor.InvalidGateDefinitionError{Path: path, Reason: err}
		}
		consumers = append(consumers, destructor.GateConsumerEntry{
			Name:     ffi.FixedString(c.Name[:]),
			Request:  req,
			Position: geo.Vec2{X: int(c.Position.X), Y: int(c.Position.Y)},
		})
	}

	producers := make([]destructor.GateProducerEntry, 0, len(producersRaw))
	for _, p := range producersRaw {
		pkg := ffi.FixedString(p.Package[:])
		component := ffi.FixedString(p.Component[:])
		verStr := ffi.FixedString(p.Version[:])
		v, err := version.ParseVersion(pkg, verStr, component)
		if err != nil {
			return destructor.GateDefinition{}, &destructor.InvalidGateDefinitionError{Path: path, Reason: err}
		}
		producers = append(producers, destructor.GateProducerEntry{
			Name:     ffi.FixedString(p.Name[:]),
			DataType: v,
			Position: geo.Vec2{X: int(p.Position.X), Y: int(p.Position.Y)},
		})
	}

	return destructor.GateDefinition{
		Consumers: consumers,
		Producers: producers,
		BoundingBox: geo.BoundingBox{
			Min: geo.Vec2{X: int(raw.BBox.Min.X), Y: int(raw.BBox.Min.Y)},
			Max: geo.Vec2{X: int(raw.BBox.Max.X), Y: int(raw.BBox.Max.Y)},
		},
	}, nil
}

// ptrOf is a small readability helper for building SyscallN argument
// lists out of Go-side out-parameters.
func ptrOf(p unsafe.Pointer) uintptr {
	return uintptr(p)
}
