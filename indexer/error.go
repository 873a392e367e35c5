package indexer

import "fmt"

// RootUnreadableError reports a root directory that couldn't be listed.
type RootUnreadableError struct {
	Root   string
	Reason string
}

func (e *RootUnreadableError) Error() string {
	return fmt.Sprintf("indexer: root %q unreadable: %s", e.Root, e.Reason)
}

// ManifestParseError reports a package.toml that failed to decode.
type ManifestParseError struct {
	Path   string
	Reason string
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("indexer: %s: parse error: %s", e.Path, e.Reason)
}

// NameMismatchError reports a package.toml whose [package].name disagrees
// with its containing directory name (spec.md §4.1, scenario S5).
type NameMismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e *NameMismatchError) Error() string {
	return fmt.Sprintf("indexer: %s: name mismatch: expected %q, got %q", e.Path, e.Expected, e.Got)
}

// VersionMismatchError reports a package.toml whose [package].version
// disagrees with its containing version directory name.
type VersionMismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("indexer: %s: version mismatch: expected %q, got %q", e.Path, e.Expected, e.Got)
}

// InvalidDependencyReqError reports a dependency entry whose version
// requirement string doesn't parse as a semver constraint.
type InvalidDependencyReqError struct {
	Path       string
	Dependency string
	Req        string
	Reason     string
}

func (e *InvalidDependencyReqError) Error() string {
	return fmt.Sprintf("indexer: %s: dependency %q has invalid requirement %q: %s",
		e.Path, e.Dependency, e.Req, e.Reason)
}

// InvalidProvidesKindError reports a [provides] entry whose kind isn't one
// of gate/data/connection.
type InvalidProvidesKindError struct {
	Path      string
	Component string
	Kind      string
}

func (e *InvalidProvidesKindError) Error() string {
	return fmt.Sprintf("indexer: %s: component %q has unknown kind %q", e.Path, e.Component, e.Kind)
}

// NoVersionsError reports a package directory that accumulated zero valid
// versions.
type NoVersionsError struct {
	Package string
}

func (e *NoVersionsError) Error() string {
	return fmt.Sprintf("indexer: package %q has no valid versions", e.Package)
}

// MultipleDefinitionsError reports a package name that appears under more
// than one root.
type MultipleDefinitionsError struct {
	Package string
	Paths   []string
}

func (e *MultipleDefinitionsError) Error() string {
	return fmt.Sprintf("indexer: package %q defined under multiple roots: %v", e.Package, e.Paths)
}

// PackageNotFoundError reports a lookup for a package the index doesn't
// have.
type PackageNotFoundError struct {
	Package string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("indexer: package %q not found", e.Package)
}

// VersionNotFoundError reports a lookup for a (package, version) pair the
// index doesn't have.
type VersionNotFoundError struct {
	Package string
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("indexer: %s-%s not found", e.Package, e.Version)
}

// IndexBuildError aggregates every tolerated error encountered while
// building an index (spec.md §4.1: "build() returns a pair... the
// partially-built index is always usable").
type IndexBuildError struct {
	Errors []error
}

func (e *IndexBuildError) Error() string {
	return fmt.Sprintf("indexer: %d error(s) while building index", len(e.Errors))
}

// Unwrap exposes the collected errors to errors.Is/As-based inspection.
func (e *IndexBuildError) Unwrap() []error {
	return e.Errors
}
