package destructor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

var _ = Describe("schema version dispatch", func() {
	BeforeEach(func() {
		destructor.RegisterSchemaVersionReader(func(loader.LibraryHandle) (uint32, error) {
			return 99, nil
		})
	})

	It("reports UnsupportedSchemaVersionError for an unregistered gate schema", func() {
		_, err := destructor.BindGate(loader.LibraryHandle{})
		var unsupported *destructor.UnsupportedSchemaVersionError
		Expect(err).To(BeAssignableToTypeOf(unsupported))
	})

	It("dispatches to the registered binder for a known schema", func() {
		destructor.RegisterDataBinder(99, func(lib loader.LibraryHandle) (*destructor.DestructedData, error) {
			return destructor.NewDestructedData(lib, nil, nil, nil, nil), nil
		})

		d, err := destructor.BindData(loader.LibraryHandle{})
		Expect(err).NotTo(HaveOccurred())
		Expect(d).NotTo(BeNil())
	})
})
