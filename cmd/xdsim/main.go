// Command xdsim is the thin wiring entry point of the core: it builds a
// package index from one or more root directories, resolves a requested
// set of gate packages against it, loads and destructs the matching
// component libraries, and hands the result to a blank layout world ready
// for a front end to drive with CreateDefaultGate/Connect/TickAll.
//
// The GUI front end this spec treats as out of scope is not part of this
// binary; xdsim only proves the load/resolve/wire path end to end, the
// way the teacher's samples/fir wires a device and runs it once.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/xdsim/catalog"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/indexer"
	"github.com/sarchlab/xdsim/layout"
	"github.com/sarchlab/xdsim/report"
	"github.com/sarchlab/xdsim/resolver"
	"github.com/sarchlab/xdsim/sim"
)

// rootList collects repeated -root flags into a slice.
type rootList []string

func (r *rootList) String() string     { return strings.Join(*r, ",") }
func (r *rootList) Set(v string) error { *r = append(*r, v); return nil }

// gateRequest collects repeated -gate flags, each one
// "<package>@<version-req>" root request.
type gateRequest []string

func (g *gateRequest) String() string     { return strings.Join(*g, ",") }
func (g *gateRequest) Set(v string) error { *g = append(*g, v); return nil }

func main() {
	var roots rootList
	var gates gateRequest
	flag.Var(&roots, "root", "package root directory to index (repeatable)")
	flag.Var(&gates, "gate", "requested gate package as name@version-req (repeatable)")
	flag.Parse()

	if len(roots) == 0 {
		fmt.Fprintln(os.Stderr, "xdsim: at least one -root is required")
		os.Exit(1)
	}

	idx, err := buildIndex(roots)
	if err != nil {
		os.Exit(1)
	}

	resolved, err := resolveRequests(idx, gates)
	if err != nil {
		os.Exit(1)
	}

	cat, err := loadCatalog(idx, resolved)
	if err != nil {
		os.Exit(1)
	}
	atexit.Register(cat.Close)
	report.WriteCatalogContents(os.Stdout, cat)

	world := layout.NewWorld(layout.CreateBlankWorld{IDs: ids.NewCounter(), Handles: cat})
	fmt.Printf("xdsim: world ready (%d gate package(s) loaded)\n", len(cat.Gates))

	if err := world.TickAll(); err != nil {
		var tickErrs *sim.TickallErrorsError
		if errors.As(err, &tickErrs) {
			report.WriteTickErrors(os.Stderr, tickErrs)
		}
		os.Exit(1)
	}

	atexit.Exit(0)
}

func buildIndex(roots []string) (*indexer.PackageIndex, error) {
	b := indexer.NewIndexBuilder()
	for _, r := range roots {
		b = b.WithRoot(r)
	}

	idx, err := b.Build()
	if err != nil {
		var buildErr *indexer.IndexBuildError
		if errors.As(err, &buildErr) {
			report.WriteIndexBuildErrors(os.Stderr, buildErr)
		}
		if idx == nil {
			return nil, err
		}
	}
	return idx, nil
}

func resolveRequests(idx *indexer.PackageIndex, requests []string) (map[string][]string, error) {
	roots := make([]resolver.Request, 0, len(requests))
	for _, r := range requests {
		name, reqStr, ok := strings.Cut(r, "@")
		if !ok {
			return nil, fmt.Errorf("xdsim: malformed -gate %q, want name@version-req", r)
		}
		req, err := semver.NewConstraint(reqStr)
		if err != nil {
			return nil, fmt.Errorf("xdsim: invalid version requirement in %q: %w", r, err)
		}
		roots = append(roots, resolver.Request{Name: name, Req: req})
	}

	resolved, err := resolver.Resolve(idx, roots)
	if err != nil {
		var missing *resolver.MissingDependenciesError
		if errors.As(err, &missing) {
			report.WriteMissingDependencies(os.Stderr, missing)
		}
		return nil, err
	}
	return resolved, nil
}

func loadCatalog(idx *indexer.PackageIndex, resolved map[string][]string) (*catalog.Catalog, error) {
	cat, err := catalog.LoadAllComponentPackages(catalog.LoadRequest{Index: idx, Resolved: resolved})
	if err != nil {
		var loadErr *catalog.LoadAllComponentPackagesError
		if errors.As(err, &loadErr) {
			report.WriteLoadErrors(os.Stderr, loadErr)
		}
		return nil, err
	}
	return cat, nil
}
