package destructor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/destructor"
	"github.com/sarchlab/xdsim/loader"
)

var _ = Describe("DestructedData", func() {
	It("round-trips through its bound closures", func() {
		var dropped []ffi.DataPtr
		d := destructor.NewDestructedData(
			loader.LibraryHandle{},
			func(ffi.DataPtr) ([]byte, error) { return []byte{1, 0, 1}, nil },
			func(b []byte) (ffi.DataPtr, error) { return nil, nil },
			func() (ffi.DataPtr, error) { return nil, nil },
			func(p ffi.DataPtr) { dropped = append(dropped, p) },
		)

		bytes, err := d.Serialize(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(bytes).To(Equal([]byte{1, 0, 1}))

		_, err = d.DefaultValue()
		Expect(err).NotTo(HaveOccurred())

		d.DropMem(nil)
		Expect(dropped).To(HaveLen(1))
	})
})
