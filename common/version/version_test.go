package version_test

import (
	"github.com/Masterminds/semver/v3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/common/version"
)

var _ = Describe("ComponentVersion / ComponentVersionReq", func() {
	It("parses a concrete semver", func() {
		v, err := version.ParseVersion("testlib", "0.1.0", "data")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Version.String()).To(Equal("0.1.0"))
	})

	It("rejects a malformed concrete version", func() {
		_, err := version.ParseVersion("testlib", "not-a-version", "data")
		Expect(err).To(HaveOccurred())
		var invalid *version.InvalidVersionError
		Expect(err).To(BeAssignableToTypeOf(invalid))
	})

	It("rejects a malformed requirement", func() {
		_, err := version.ParseVersionReq("testlib", "(((", "data")
		Expect(err).To(HaveOccurred())
		var invalid *version.InvalidVersionReqError
		Expect(err).To(BeAssignableToTypeOf(invalid))
	})

	It("matches a requirement against a satisfying concrete version", func() {
		req, err := version.ParseVersionReq("testlib", "^0.1", "data")
		Expect(err).NotTo(HaveOccurred())
		v, err := version.ParseVersion("testlib", "0.1.5", "data")
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Matches(v)).To(BeTrue())
	})

	It("rejects a match across different components", func() {
		req, _ := version.ParseVersionReq("testlib", "^0.1", "data")
		v, _ := version.ParseVersion("testlib", "0.1.5", "not")
		Expect(req.Matches(v)).To(BeFalse())
	})

	It("renders the package-version::component text form", func() {
		v, _ := version.ParseVersion("testlib", "0.1.0", "not")
		Expect(v.Text()).To(Equal("testlib-0.1.0::not"))
	})

	It("sorts candidate versions descending", func() {
		vs := []*semver.Version{
			semver.MustParse("0.1.0"),
			semver.MustParse("0.1.2"),
			semver.MustParse("0.1.1"),
		}
		version.SortDescending(vs)
		Expect(vs[0].String()).To(Equal("0.1.2"))
		Expect(vs[2].String()).To(Equal("0.1.0"))
	})
})
