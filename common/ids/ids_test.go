package ids_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/common/ids"
)

var _ = Describe("Counter", func() {
	var c *ids.Counter

	BeforeEach(func() {
		c = ids.NewCounter()
	})

	It("allocates distinct, monotonically increasing ids", func() {
		g1 := c.AllocGate()
		g2 := c.AllocGate()
		Expect(g2).To(BeNumerically(">", g1))
	})

	It("registers the kind an id was allocated with", func() {
		g := c.AllocGate()
		Expect(c.AssertGate(g)).To(Succeed())
		Expect(c.AssertConn(g)).To(HaveOccurred())
	})

	It("returns the parent conn id for points and segments", func() {
		conn := c.AllocConn()
		pt := c.AllocConnPoint(conn)

		parent, err := c.AssertConnPoint(pt)
		Expect(err).NotTo(HaveOccurred())
		Expect(parent).To(Equal(conn))
	})

	It("fails WrongKindError on a kind mismatch", func() {
		conn := c.AllocConn()
		_, err := c.AssertConnSegment(conn)
		Expect(err).To(HaveOccurred())
		var wrongKind *ids.WrongKindError
		Expect(err).To(BeAssignableToTypeOf(wrongKind))
	})

	It("removes both the map entry and the kind on Unregister", func() {
		g := c.AllocGate()
		c.Unregister(g)
		Expect(c.Live(g)).To(BeFalse())
		Expect(c.AssertGate(g)).To(HaveOccurred())
	})

	It("is a no-op to unregister an id twice", func() {
		g := c.AllocGate()
		c.Unregister(g)
		Expect(func() { c.Unregister(g) }).NotTo(Panic())
	})

	It("lists live ids by kind", func() {
		g1 := c.AllocGate()
		g2 := c.AllocGate()
		c.AllocConn()

		gates := c.LiveIDs(ids.KindGate)
		Expect(gates).To(ConsistOf(g1, g2))
	})
})
