package indexer

import "github.com/Masterminds/semver/v3"

// ComponentKind is the kind of component a package.toml [provides] entry
// declares: gate, data, or connection (spec.md §3, §4.3).
type ComponentKind int

const (
	KindGate ComponentKind = iota
	KindData
	KindConnection
)

func (k ComponentKind) String() string {
	switch k {
	case KindGate:
		return "gate"
	case KindData:
		return "data"
	case KindConnection:
		return "connection"
	default:
		return "unknown"
	}
}

func parseComponentKind(s string) (ComponentKind, bool) {
	switch s {
	case "gate":
		return KindGate, true
	case "data":
		return KindData, true
	case "connection":
		return KindConnection, true
	default:
		return 0, false
	}
}

// Manifest is the parsed, validated form of one version directory's
// package.toml.
type Manifest struct {
	PackageName  string
	Version      *semver.Version
	Dependencies map[string]*semver.Constraints
	Provides     map[string]ComponentKind

	// Dir is the version directory package.toml was read from. Component
	// library files for this manifest sit alongside it, one per entry in
	// Provides (spec.md §6: "<component-name>.{so|dll|dylib}").
	Dir string
}

// rawManifest is the BurntSushi/toml decode target; package.toml's layout
// (spec.md §6) doesn't map directly onto the flat Manifest shape above, so
// decoding happens in two steps.
type rawManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]string `toml:"dependencies"`
	Provides     map[string]string `toml:"provides"`
}
