package destructor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

var _ = Describe("DestructedConn", func() {
	It("round-trips through its bound closures", func() {
		c := destructor.NewDestructedConn(
			loader.LibraryHandle{},
			func(ffi.DataPtr) ([]byte, error) { return []byte("bit"), nil },
			func(b []byte) (ffi.DataPtr, error) { return nil, nil },
			func() (ffi.DataPtr, error) { return nil, nil },
			func(ffi.DataPtr) {},
		)

		bytes, err := c.Serialize(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(bytes)).To(Equal("bit"))
	})
})
