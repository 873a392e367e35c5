package indexer

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// IndexBuilder collects packages from a list of root directories, the way
// config.DeviceBuilder/core.Builder chain functional options (teacher's
// builder idiom). Every step is tolerant: a single bad root, package, or
// manifest is recorded as an error and building continues (spec.md §4.1).
type IndexBuilder struct {
	roots []string
}

// NewIndexBuilder returns an empty builder.
func NewIndexBuilder() IndexBuilder {
	return IndexBuilder{}
}

// WithRoot adds a root directory to scan.
func (b IndexBuilder) WithRoot(root string) IndexBuilder {
	roots := make([]string, len(b.roots), len(b.roots)+1)
	copy(roots, b.roots)
	b.roots = append(roots, root)
	return b
}

// Build walks every root, parsing manifests tolerantly, and returns the
// resulting index alongside an aggregate *IndexBuildError if anything was
// skipped. The returned index is always usable for whatever loaded
// cleanly, even when the error is non-nil.
func (b IndexBuilder) Build() (*PackageIndex, error) {
	idx := newPackageIndex()
	var errs []error
	definedInRoot := make(map[string][]string) // package name -> package directories it was found at

	for _, root := range b.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			errs = append(errs, &RootUnreadableError{Root: root, Reason: err.Error()})
			continue
		}

		for _, pkgEntry := range entries {
			if !pkgEntry.IsDir() {
				continue
			}
			pkgName := pkgEntry.Name()
			pkgPath := filepath.Join(root, pkgName)

			definedInRoot[pkgName] = append(definedInRoot[pkgName], pkgPath)
			if len(definedInRoot[pkgName]) > 1 {
				errs = append(errs, &MultipleDefinitionsError{
					Package: pkgName,
					Paths:   definedInRoot[pkgName],
				})
				continue
			}

			manifests, buildErrs := loadPackageVersions(pkgPath, pkgName)
			errs = append(errs, buildErrs...)

			if len(manifests) == 0 {
				errs = append(errs, &NoVersionsError{Package: pkgName})
				continue
			}

			for _, m := range manifests {
				idx.addVersion(m)
			}
		}
	}

	if len(errs) > 0 {
		return idx, &IndexBuildError{Errors: errs}
	}
	return idx, nil
}

// loadPackageVersions parses every version directory under pkgPath,
// tolerating per-version failures.
func loadPackageVersions(pkgPath, pkgName string) ([]*Manifest, []error) {
	var manifests []*Manifest
	var errs []error

	versionEntries, err := os.ReadDir(pkgPath)
	if err != nil {
		return nil, []error{&RootUnreadableError{Root: pkgPath, Reason: err.Error()}}
	}

	for _, verEntry := range versionEntries {
		if !verEntry.IsDir() {
			continue
		}
		verDir := verEntry.Name()
		manifestPath := filepath.Join(pkgPath, verDir, "package.toml")

		m, err := parseManifest(manifestPath, pkgName, verDir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		manifests = append(manifests, m)
	}

	return manifests, errs
}

// parseManifest decodes and validates one package.toml.
func parseManifest(path, expectedPkg, expectedVer string) (*Manifest, error) {
	var raw rawManifest
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, &ManifestParseError{Path: path, Reason: err.Error()}
	}

	if raw.Package.Name != expectedPkg {
		return nil, &NameMismatchError{Path: path, Expected: expectedPkg, Got: raw.Package.Name}
	}
	if raw.Package.Version != expectedVer {
		return nil, &VersionMismatchError{Path: path, Expected: expectedVer, Got: raw.Package.Version}
	}

	version, err := semver.NewVersion(raw.Package.Version)
	if err != nil {
		return nil, &ManifestParseError{Path: path, Reason: "invalid version: " + err.Error()}
	}

	deps := make(map[string]*semver.Constraints, len(raw.Dependencies))
	for name, reqStr := range raw.Dependencies {
		req, err := semver.NewConstraint(reqStr)
		if err != nil {
			return nil, &InvalidDependencyReqError{
				Path: path, Dependency: name, Req: reqStr, Reason: err.Error(),
			}
		}
		deps[name] = req
	}

	provides := make(map[string]ComponentKind, len(raw.Provides))
	for component, kindStr := range raw.Provides {
		kind, ok := parseComponentKind(kindStr)
		if !ok {
			return nil, &InvalidProvidesKindError{Path: path, Component: component, Kind: kindStr}
		}
		provides[component] = kind
	}

	return &Manifest{
		PackageName:  raw.Package.Name,
		Version:      version,
		Dependencies: deps,
		Provides:     provides,
		Dir:          filepath.Dir(path),
	}, nil
}
