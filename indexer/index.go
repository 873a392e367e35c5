package indexer

import "github.com/Masterminds/semver/v3"

// PackageIndex is the built (name, version) → Manifest graph (spec.md §4.1).
// It is always safe to use, even when returned alongside a non-nil
// IndexBuildError: it holds whatever packages loaded cleanly.
type PackageIndex struct {
	// packages maps package name -> version string -> manifest.
	packages map[string]map[string]*Manifest
}

func newPackageIndex() *PackageIndex {
	return &PackageIndex{packages: make(map[string]map[string]*Manifest)}
}

func (idx *PackageIndex) addVersion(m *Manifest) {
	versions, ok := idx.packages[m.PackageName]
	if !ok {
		versions = make(map[string]*Manifest)
		idx.packages[m.PackageName] = versions
	}
	versions[m.Version.String()] = m
}

func (idx *PackageIndex) hasPackage(name string) bool {
	_, ok := idx.packages[name]
	return ok
}

// GetPackage returns every known version of name.
func (idx *PackageIndex) GetPackage(name string) (map[string]*Manifest, error) {
	versions, ok := idx.packages[name]
	if !ok {
		return nil, &PackageNotFoundError{Package: name}
	}
	return versions, nil
}

// ListVersions returns the version strings known for pkg.
func (idx *PackageIndex) ListVersions(pkg string) []string {
	versions, ok := idx.packages[pkg]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	return out
}

// GetVersion returns the manifest for one exact (package, version) pair.
func (idx *PackageIndex) GetVersion(pkg, ver string) (*Manifest, error) {
	versions, ok := idx.packages[pkg]
	if !ok {
		return nil, &PackageNotFoundError{Package: pkg}
	}
	m, ok := versions[ver]
	if !ok {
		return nil, &VersionNotFoundError{Package: pkg, Version: ver}
	}
	return m, nil
}

// DependencyRef is one (name, version-requirement) entry of a manifest's
// [dependencies] table, as resolver.Resolvable exposes it.
type DependencyRef struct {
	Name string
	Req  *semver.Constraints
}

// GetDependencies implements resolver.Resolvable: returns the declared
// dependencies of (name, version).
func (idx *PackageIndex) GetDependencies(name, version string) ([]DependencyRef, error) {
	m, err := idx.GetVersion(name, version)
	if err != nil {
		return nil, err
	}
	out := make([]DependencyRef, 0, len(m.Dependencies))
	for depName, req := range m.Dependencies {
		out = append(out, DependencyRef{Name: depName, Req: req})
	}
	return out, nil
}

// GetVersions implements resolver.Resolvable: returns every published
// version string of name, in the index's own (unordered) iteration order.
// Per spec.md §9 point 2, callers needing determinism should sort
// descending themselves (see common/version.SortDescending).
func (idx *PackageIndex) GetVersions(name string) []string {
	return idx.ListVersions(name)
}
