// Package report renders the aggregate error types produced by indexer,
// resolver, catalog, and sim/layout as operator-facing tables, the way
// the teacher renders verification results (verify/report.go) and PE
// register state (core/util.go) with go-pretty/table.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/xdsim/catalog"
	"github.com/sarchlab/xdsim/indexer"
	"github.com/sarchlab/xdsim/resolver"
	"github.com/sarchlab/xdsim/sim"
)

// WriteIndexBuildErrors renders an *indexer.IndexBuildError as a table of
// one row per tolerated error, keeping the partially-built index message
// out of band (the caller already has the index; this just explains what
// was skipped).
func WriteIndexBuildErrors(w io.Writer, err *indexer.IndexBuildError) {
	if err == nil || len(err.Errors) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Index Build Errors")
	t.AppendHeader(table.Row{"#", "Error"})
	for i, e := range err.Errors {
		t.AppendRow(table.Row{i + 1, e.Error()})
	}
	t.Render()
}

// WriteMissingDependencies renders a *resolver.MissingDependenciesError as
// one row per unsatisfiable chain, the chain printed leaf-to-root the way
// spec.md §4.2's scenario S4 describes it.
func WriteMissingDependencies(w io.Writer, err *resolver.MissingDependenciesError) {
	if err == nil || len(err.Chains) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Missing Dependencies")
	t.AppendHeader(table.Row{"#", "Chain (leaf -> root)"})
	for i, chain := range err.Chains {
		t.AppendRow(table.Row{i + 1, formatChain(chain)})
	}
	t.Render()
}

func formatChain(chain resolver.Chain) string {
	s := ""
	for i, req := range chain {
		if i > 0 {
			s += " <- "
		}
		s += fmt.Sprintf("%s %s", req.Name, req.Req.String())
	}
	return s
}

// WriteLoadErrors renders a *catalog.LoadAllComponentPackagesError as one
// row per package/version/component load or destruct failure tolerated
// during catalog construction.
func WriteLoadErrors(w io.Writer, err *catalog.LoadAllComponentPackagesError) {
	if err == nil || len(err.Errors) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Component Load Errors")
	t.AppendHeader(table.Row{"#", "Error"})
	for i, e := range err.Errors {
		t.AppendRow(table.Row{i + 1, e.Error()})
	}
	t.Render()
}

// WriteTickErrors renders a *sim.TickallErrorsError as one row per gate
// that reported at least one error during the tick, with the per-gate
// error count and a joined message.
func WriteTickErrors(w io.Writer, err *sim.TickallErrorsError) {
	if err == nil || len(err.Errors) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Tick Errors")
	t.AppendHeader(table.Row{"Gate", "Count", "Errors"})
	for _, gateErr := range err.Errors {
		t.AppendRow(table.Row{gateErr.Gate, len(gateErr.Errors), joinErrors(gateErr.Errors)})
	}
	t.Render()
}

// WriteCatalogContents renders every loaded library and the components it
// provides, one row per component, grouped by library in LibraryIDs order.
func WriteCatalogContents(w io.Writer, cat *catalog.Catalog) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Catalog Contents")
	t.AppendHeader(table.Row{"Library", "Kind", "Component"})
	for _, id := range cat.LibraryIDs() {
		for _, ref := range cat.ComponentsProvidedBy(id) {
			t.AppendRow(table.Row{id.String(), ref.Kind.String(), ref.Component})
		}
	}
	t.Render()
}

func joinErrors(errs []error) string {
	s := ""
	for i, e := range errs {
		if i > 0 {
			s += "; "
		}
		s += e.Error()
	}
	return s
}
