// Package resolver implements the dependency resolution algorithm of
// spec.md §4.2: given root (package, version-requirement) requests and a
// Resolvable version-graph view, produce the set of (package, version)
// pairs that must be loaded, or report every unsatisfiable chain.
package resolver

import (
	"github.com/Masterminds/semver/v3"

	"github.com/sarchlab/xdsim/indexer"
)

// Resolvable is the "resolvable view" spec.md §4.1 describes the index
// exposing: dependency lookups and version listings for one package.
// *indexer.PackageIndex satisfies this directly.
type Resolvable interface {
	GetDependencies(name, version string) ([]indexer.DependencyRef, error)
	GetVersions(name string) []string
}

// Request is a (package, version-requirement) pair, either a root request
// or one hop of a dependency chain.
type Request struct {
	Name string
	Req  *semver.Constraints
}

// Chain is an unsatisfiable dependency path, ordered from the missing leaf
// dependency to the root request that pulled it in (spec.md §4.2, scenario
// S4: chains: [[("B", "^0.1"), ("A", "^0.1")]]).
type Chain []Request

// MissingDependenciesError is the resolver's only failure mode.
type MissingDependenciesError struct {
	Chains []Chain
}

func (e *MissingDependenciesError) Error() string {
	return "resolver: missing dependencies"
}

// Resolve runs the algorithm of spec.md §4.2 over roots. On success it
// returns map{name -> [versions]} of every package version that must be
// loaded. On failure it returns a *MissingDependenciesError collecting one
// chain per unsatisfiable root.
func Resolve(view Resolvable, roots []Request) (map[string][]string, error) {
	resolved := make(map[string][]*semver.Version)
	var chains []Chain

	for _, root := range roots {
		if chain := resolveOne(view, root.Name, root.Req, resolved); chain != nil {
			chains = append(chains, chain)
		}
	}

	if len(chains) > 0 {
		return nil, &MissingDependenciesError{Chains: chains}
	}

	out := make(map[string][]string, len(resolved))
	for name, versions := range resolved {
		strs := make([]string, len(versions))
		for i, v := range versions {
			strs[i] = v.String()
		}
		out[name] = strs
	}
	return out, nil
}

// resolveOne resolves a single (name, req) request against the
// accumulating resolved map, returning nil on success or the failure chain
// rooted at this request.
func resolveOne(view Resolvable, name string, req *semver.Constraints, resolved map[string][]*semver.Version) Chain {
	for _, v := range resolved[name] {
		if req.Check(v) {
			return nil
		}
	}

	available := view.GetVersions(name)
	if len(available) == 0 {
		return Chain{{Name: name, Req: req}}
	}

	var chosen *semver.Version
	var chosenStr string
	for _, vs := range available {
		v, err := semver.NewVersion(vs)
		if err != nil {
			continue
		}
		if req.Check(v) {
			chosen, chosenStr = v, vs
			break
		}
	}
	if chosen == nil {
		return Chain{{Name: name, Req: req}}
	}

	resolved[name] = append(resolved[name], chosen)

	deps, err := view.GetDependencies(name, chosenStr)
	if err != nil {
		// The index validated this (name, version) pair when it chose
		// chosenStr from GetVersions, so a lookup error here means the
		// view is inconsistent with itself, not a missing dependency.
		// Treat it the same as "no dependencies" rather than invent a
		// failure mode spec.md §4.2 doesn't define.
		return nil
	}

	for _, dep := range deps {
		if sub := resolveOne(view, dep.Name, dep.Req, resolved); sub != nil {
			return append(sub, Request{Name: name, Req: req})
		}
	}

	return nil
}
