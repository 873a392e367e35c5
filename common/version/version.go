// Package version wraps Masterminds/semver into the two shapes spec.md §3
// needs: a concrete ComponentVersion and a ComponentVersionReq requirement,
// both scoped to a (package, component) pair.
package version

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ComponentVersion identifies one concrete (package, version, component)
// triple, e.g. the producer side of a gate definition.
type ComponentVersion struct {
	Package   string
	Version   *semver.Version
	Component string
}

// ComponentVersionReq identifies a (package, version-requirement,
// component) triple, e.g. the consumer side of a gate definition.
type ComponentVersionReq struct {
	Package   string
	Req       *semver.Constraints
	Component string

	// raw is kept so the text form round-trips exactly what was parsed,
	// since semver.Constraints doesn't guarantee a stable String().
	raw string
}

// ParseVersion parses sem into a concrete ComponentVersion for the given
// package/component. Mirrors spec.md §4.3: "Version::parse for producers."
func ParseVersion(pkg, sem, component string) (ComponentVersion, error) {
	v, err := semver.NewVersion(sem)
	if err != nil {
		return ComponentVersion{}, &InvalidVersionError{
			Component: component,
			Version:   sem,
			Reason:    err.Error(),
		}
	}
	return ComponentVersion{Package: pkg, Version: v, Component: component}, nil
}

// ParseVersionReq parses req into a ComponentVersionReq for the given
// package/component. Mirrors spec.md §4.3: "VersionReq::parse for
// consumers."
func ParseVersionReq(pkg, req, component string) (ComponentVersionReq, error) {
	c, err := semver.NewConstraint(req)
	if err != nil {
		return ComponentVersionReq{}, &InvalidVersionReqError{
			Component: component,
			Version:   req,
			Reason:    err.Error(),
		}
	}
	return ComponentVersionReq{Package: pkg, Req: c, Component: component, raw: req}, nil
}

// Matches reports whether v satisfies req, requiring that package and
// component also agree (spec.md §4.4.1 type check).
func (req ComponentVersionReq) Matches(v ComponentVersion) bool {
	if req.Package != v.Package || req.Component != v.Component {
		return false
	}
	return req.Req.Check(v.Version)
}

// Text returns the "package-version::component" form spec.md §3 defines
// for ComponentVersion.
func (v ComponentVersion) Text() string {
	return fmt.Sprintf("%s-%s::%s", v.Package, v.Version.String(), v.Component)
}

// Text returns the "package-versionreq::component" form for
// ComponentVersionReq.
func (req ComponentVersionReq) Text() string {
	return fmt.Sprintf("%s-%s::%s", req.Package, req.raw, req.Component)
}

// Equal compares package, version, and component fields as spec.md §3
// requires ("Equality and hashing are on all three fields").
func (v ComponentVersion) Equal(other ComponentVersion) bool {
	return v.Package == other.Package &&
		v.Component == other.Component &&
		v.Version.Equal(other.Version)
}

// InvalidVersionError reports a malformed concrete version string.
type InvalidVersionError struct {
	Component string
	Version   string
	Reason    string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q for component %q: %s", e.Version, e.Component, e.Reason)
}

// InvalidVersionReqError reports a malformed version requirement string.
// This is the spec's destructor-layer InvalidVersionReq{component, version,
// reason}.
type InvalidVersionReqError struct {
	Component string
	Version   string
	Reason    string
}

func (e *InvalidVersionReqError) Error() string {
	return fmt.Sprintf("invalid version requirement %q for component %q: %s", e.Version, e.Component, e.Reason)
}

// SortDescending sorts versions from newest to oldest in place. Used by
// callers resolving "first matching" candidates deterministically, per
// spec.md §9 point 2.
func SortDescending(versions []*semver.Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].GreaterThan(versions[j])
	})
}
