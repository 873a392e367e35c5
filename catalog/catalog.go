// Package catalog implements the host's per-kind component handle table
// (spec.md §4.1's IndexComponentLoader): given a resolver's resolved
// {package -> [versions]} set and the PackageIndex it was resolved
// against, it loads every component library those versions provide and
// destructs each into a normalized operation table, keyed
// package -> version -> component -> handle.
package catalog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/sarchlab/xdsim/common/version"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/indexer"
	"github.com/sarchlab/xdsim/loader"
)

// LibraryID keys a loaded component library by (package, version) rather
// than by its filesystem path, distinct from any one component's own
// identity (SPEC_FULL.md §C.1). A package@version pair may provide several
// components of mixed kinds, all loaded from the same shared-library path;
// LibraryID groups them for introspection ("which components does package
// X@1.2.0 own") without re-deriving the path libraryExt() built.
type LibraryID struct {
	Package string
	Version string
}

func (id LibraryID) String() string {
	return fmt.Sprintf("%s@%s", id.Package, id.Version)
}

// ComponentRef names one component a LibraryID provides.
type ComponentRef struct {
	Kind      indexer.ComponentKind
	Component string
}

// libraryExt is the shared-library file extension for the host OS
// (spec.md §6: "follows the host OS convention").
func libraryExt() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// Catalog is the loaded-and-destructed view of every resolved component
// package, shaped package -> version -> component -> handle per kind.
type Catalog struct {
	Gates map[string]map[string]map[string]*destructor.DestructedGate
	Data  map[string]map[string]map[string]*destructor.DestructedData
	Conns map[string]map[string]map[string]*destructor.DestructedConn

	byLibrary map[LibraryID][]ComponentRef
}

func newCatalog() *Catalog {
	return &Catalog{
		Gates:     make(map[string]map[string]map[string]*destructor.DestructedGate),
		Data:      make(map[string]map[string]map[string]*destructor.DestructedData),
		Conns:     make(map[string]map[string]map[string]*destructor.DestructedConn),
		byLibrary: make(map[LibraryID][]ComponentRef),
	}
}

// loadedComponent is one component library opened during the first pass,
// still waiting to be destructed in the second.
type loadedComponent struct {
	pkg, ver, component string
	kind                indexer.ComponentKind
	lib                 loader.LibraryHandle
}

// LoadRequest is the request-record form of LoadAllComponentPackages
// (SPEC_FULL.md §C.6: the original's destructor-layer `requests.rs`
// carries a small record rather than a long positional call).
type LoadRequest struct {
	Index    *indexer.PackageIndex
	Resolved map[string][]string
}

// LoadAllComponentPackages loads and destructs every component the
// resolved set provides. It is a two-pass fold: every selected library is
// opened once, then destructed once per its declared kind. Every failure
// (missing package/version, load failure, symbol binding failure) is
// collected rather than aborting the whole load, matching the resolver's
// own tolerant-collection style.
func LoadAllComponentPackages(req LoadRequest) (*Catalog, error) {
	idx, resolved := req.Index, req.Resolved
	cat := newCatalog()
	var errs []error
	var loaded []loadedComponent

	for pkg, versions := range resolved {
		for _, ver := range versions {
			m, err := idx.GetVersion(pkg, ver)
			if err != nil {
				if _, pkgErr := idx.GetPackage(pkg); pkgErr != nil {
					errs = append(errs, &MissingPackageError{Package: pkg})
				} else {
					errs = append(errs, &MissingPackageVersionError{Package: pkg, Version: ver})
				}
				continue
			}

			for component, kind := range m.Provides {
				path := filepath.Join(m.Dir, component+libraryExt())
				lib, err := loader.Load(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				loaded = append(loaded, loadedComponent{pkg: pkg, ver: ver, component: component, kind: kind, lib: lib})
			}
		}
	}

	for _, lc := range loaded {
		switch lc.kind {
		case indexer.KindGate:
			g, err := destructor.BindGate(lc.lib)
			if err != nil {
				errs = append(errs, err)
				lc.lib.Close()
				continue
			}
			insertGate(cat, lc.pkg, lc.ver, lc.component, g)
		case indexer.KindData:
			d, err := destructor.BindData(lc.lib)
			if err != nil {
				errs = append(errs, err)
				lc.lib.Close()
				continue
			}
			insertData(cat, lc.pkg, lc.ver, lc.component, d)
		case indexer.KindConnection:
			c, err := destructor.BindConn(lc.lib)
			if err != nil {
				errs = append(errs, err)
				lc.lib.Close()
				continue
			}
			insertConn(cat, lc.pkg, lc.ver, lc.component, c)
		}
		id := LibraryID{Package: lc.pkg, Version: lc.ver}
		cat.byLibrary[id] = append(cat.byLibrary[id], ComponentRef{Kind: lc.kind, Component: lc.component})
		lc.lib.Close()
	}

	if len(errs) > 0 {
		return cat, &LoadAllComponentPackagesError{Errors: errs}
	}
	return cat, nil
}

func insertGate(cat *Catalog, pkg, ver, component string, g *destructor.DestructedGate) {
	versions, ok := cat.Gates[pkg]
	if !ok {
		versions = make(map[string]map[string]*destructor.DestructedGate)
		cat.Gates[pkg] = versions
	}
	components, ok := versions[ver]
	if !ok {
		components = make(map[string]*destructor.DestructedGate)
		versions[ver] = components
	}
	components[component] = g
}

func insertData(cat *Catalog, pkg, ver, component string, d *destructor.DestructedData) {
	versions, ok := cat.Data[pkg]
	if !ok {
		versions = make(map[string]map[string]*destructor.DestructedData)
		cat.Data[pkg] = versions
	}
	components, ok := versions[ver]
	if !ok {
		components = make(map[string]*destructor.DestructedData)
		versions[ver] = components
	}
	components[component] = d
}

func insertConn(cat *Catalog, pkg, ver, component string, c *destructor.DestructedConn) {
	versions, ok := cat.Conns[pkg]
	if !ok {
		versions = make(map[string]map[string]*destructor.DestructedConn)
		cat.Conns[pkg] = versions
	}
	components, ok := versions[ver]
	if !ok {
		components = make(map[string]*destructor.DestructedConn)
		versions[ver] = components
	}
	components[component] = c
}

// GetGate looks up one destructed gate handle by its concrete identity.
func (c *Catalog) GetGate(pkg, ver, component string) (*destructor.DestructedGate, bool) {
	versions, ok := c.Gates[pkg]
	if !ok {
		return nil, false
	}
	components, ok := versions[ver]
	if !ok {
		return nil, false
	}
	g, ok := components[component]
	return g, ok
}

// GetData looks up one destructed data handle by its concrete identity.
func (c *Catalog) GetData(pkg, ver, component string) (*destructor.DestructedData, bool) {
	versions, ok := c.Data[pkg]
	if !ok {
		return nil, false
	}
	components, ok := versions[ver]
	if !ok {
		return nil, false
	}
	d, ok := components[component]
	return d, ok
}

// FindDataMatching scans every registered data handle for one whose
// (package, version, component) identity satisfies req, returning the
// first match (spec.md §4.4.3: resolving a consumer's ComponentVersionReq
// against the data handle catalog). Map iteration order is not ordered by
// version, so candidate versions within a package are sorted descending
// before matching, per spec.md §9 point 2 ("first matching" must be
// deterministic regardless of map order).
func (c *Catalog) FindDataMatching(req version.ComponentVersionReq) (*destructor.DestructedData, version.ComponentVersion, bool) {
	pkgs, ok := c.Data[req.Package]
	if !ok {
		return nil, version.ComponentVersion{}, false
	}

	vers := make([]*semver.Version, 0, len(pkgs))
	for ver := range pkgs {
		sv, err := semver.NewVersion(ver)
		if err != nil {
			continue
		}
		vers = append(vers, sv)
	}
	version.SortDescending(vers)

	for _, sv := range vers {
		components := pkgs[sv.Original()]
		component, ok := components[req.Component]
		if !ok {
			continue
		}
		candidate := version.ComponentVersion{Package: req.Package, Version: sv, Component: req.Component}
		if req.Matches(candidate) {
			return component, candidate, true
		}
	}
	return nil, version.ComponentVersion{}, false
}

// GetConn looks up one destructed connection handle by its concrete
// identity.
func (c *Catalog) GetConn(pkg, ver, component string) (*destructor.DestructedConn, bool) {
	versions, ok := c.Conns[pkg]
	if !ok {
		return nil, false
	}
	components, ok := versions[ver]
	if !ok {
		return nil, false
	}
	conn, ok := components[component]
	return conn, ok
}

// LibraryIDs lists every (package, version) pair the catalog loaded at
// least one component from, sorted by String() for deterministic reporting
// (SPEC_FULL.md §C.1).
func (c *Catalog) LibraryIDs() []LibraryID {
	ids := make([]LibraryID, 0, len(c.byLibrary))
	for id := range c.byLibrary {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// ComponentsProvidedBy lists every component one library loaded, in load
// order.
func (c *Catalog) ComponentsProvidedBy(id LibraryID) []ComponentRef {
	return c.byLibrary[id]
}

// Close releases every loaded component library's keep-alive handle.
// Call once, at process shutdown, after every gate has been dropped and
// every Destructed* is no longer reachable (spec.md §5: the library stays
// mapped "exactly as long as any symbol may be invoked").
func (c *Catalog) Close() {
	for _, versions := range c.Gates {
		for _, components := range versions {
			for _, g := range components {
				g.Library().Close()
			}
		}
	}
	for _, versions := range c.Data {
		for _, components := range versions {
			for _, d := range components {
				d.Library().Close()
			}
		}
	}
	for _, versions := range c.Conns {
		for _, components := range versions {
			for _, conn := range components {
				conn.Library().Close()
			}
		}
	}
}
