package indexer_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/indexer"
)

// writeManifest creates <root>/<pkg>/<ver>/package.toml with the given
// body, creating directories as needed.
func writeManifest(root, pkg, ver, body string) {
	dir := filepath.Join(root, pkg, ver)
	Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(dir, "package.toml"), []byte(body), 0o644)).To(Succeed())
}

var _ = Describe("IndexBuilder", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "xdsim-index-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(root) })
	})

	It("builds a clean index from a well-formed package", func() {
		writeManifest(root, "testlib", "0.1.0", `
[package]
name = "testlib"
version = "0.1.0"

[provides]
data = "data"
not = "gate"
`)

		idx, err := indexer.NewIndexBuilder().WithRoot(root).Build()
		Expect(err).NotTo(HaveOccurred())

		m, err := idx.GetVersion("testlib", "0.1.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Provides["not"]).To(Equal(indexer.KindGate))
		Expect(m.Provides["data"]).To(Equal(indexer.KindData))
	})

	It("reports NameMismatchError and excludes the package (spec S5)", func() {
		writeManifest(root, "foo", "0.2.0", `
[package]
name = "bar"
version = "0.2.0"
`)

		idx, err := indexer.NewIndexBuilder().WithRoot(root).Build()
		Expect(err).To(HaveOccurred())

		var buildErr *indexer.IndexBuildError
		Expect(err).To(BeAssignableToTypeOf(buildErr))
		be := err.(*indexer.IndexBuildError)

		found := false
		for _, e := range be.Errors {
			if nm, ok := e.(*indexer.NameMismatchError); ok {
				Expect(nm.Expected).To(Equal("foo"))
				Expect(nm.Got).To(Equal("bar"))
				found = true
			}
		}
		Expect(found).To(BeTrue())

		_, err = idx.GetPackage("foo")
		Expect(err).To(HaveOccurred())
	})

	It("reports VersionMismatchError on a directory/manifest version disagreement", func() {
		writeManifest(root, "foo", "0.2.0", `
[package]
name = "foo"
version = "0.2.1"
`)

		_, err := indexer.NewIndexBuilder().WithRoot(root).Build()
		Expect(err).To(HaveOccurred())
		be := err.(*indexer.IndexBuildError)

		found := false
		for _, e := range be.Errors {
			if _, ok := e.(*indexer.VersionMismatchError); ok {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("tolerates one bad version and keeps the rest of the package", func() {
		writeManifest(root, "foo", "0.1.0", `
[package]
name = "foo"
version = "0.1.0"
`)
		writeManifest(root, "foo", "0.2.0", `
[package]
name = "wrong"
version = "0.2.0"
`)

		idx, err := indexer.NewIndexBuilder().WithRoot(root).Build()
		Expect(err).To(HaveOccurred())

		m, err := idx.GetVersion("foo", "0.1.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.PackageName).To(Equal("foo"))

		_, err = idx.GetVersion("foo", "0.2.0")
		Expect(err).To(HaveOccurred())
	})

	It("reports NoVersionsError for a package directory with zero valid versions", func() {
		dir := filepath.Join(root, "empty")
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())

		_, err := indexer.NewIndexBuilder().WithRoot(root).Build()
		Expect(err).To(HaveOccurred())
		be := err.(*indexer.IndexBuildError)

		found := false
		for _, e := range be.Errors {
			if nv, ok := e.(*indexer.NoVersionsError); ok && nv.Package == "empty" {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("reports MultipleDefinitionsError for a package repeated across roots", func() {
		root2, err := os.MkdirTemp("", "xdsim-index-2-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(root2) })

		writeManifest(root, "dup", "0.1.0", `
[package]
name = "dup"
version = "0.1.0"
`)
		writeManifest(root2, "dup", "0.1.0", `
[package]
name = "dup"
version = "0.1.0"
`)

		_, err = indexer.NewIndexBuilder().WithRoot(root).WithRoot(root2).Build()
		Expect(err).To(HaveOccurred())
		be := err.(*indexer.IndexBuildError)

		found := false
		for _, e := range be.Errors {
			if _, ok := e.(*indexer.MultipleDefinitionsError); ok {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})

	It("parses dependencies as semver constraints (spec S3 fixture)", func() {
		writeManifest(root, "A", "0.1.0", `
[package]
name = "A"
version = "0.1.0"

[dependencies]
B = "^0.1"
`)
		writeManifest(root, "B", "0.1.2", `
[package]
name = "B"
version = "0.1.2"
`)

		idx, err := indexer.NewIndexBuilder().WithRoot(root).Build()
		Expect(err).NotTo(HaveOccurred())

		deps, err := idx.GetDependencies("A", "0.1.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(deps).To(HaveLen(1))
		Expect(deps[0].Name).To(Equal("B"))
		Expect(deps[0].Req.Check(mustVersion("0.1.2"))).To(BeTrue())
	})
})
