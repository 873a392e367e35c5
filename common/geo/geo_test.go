package geo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/xdsim/common/geo"
)

var _ = Describe("Vec2", func() {
	It("adds componentwise", func() {
		Expect(geo.Vec2{X: 1, Y: 2}.Add(geo.Vec2{X: 3, Y: 4})).To(Equal(geo.Vec2{X: 4, Y: 6}))
	})
})

var _ = Describe("Rotation", func() {
	It("wraps into [0, 4) on composition", func() {
		Expect(geo.Rot270.Rotate(geo.Rot180)).To(Equal(geo.Rot90))
	})

	It("rotates a vector 90 degrees", func() {
		Expect(geo.Rot90.Apply(geo.Vec2{X: 1, Y: 0})).To(Equal(geo.Vec2{X: 0, Y: 1}))
	})

	It("leaves a vector unchanged at Rot0", func() {
		v := geo.Vec2{X: 3, Y: -2}
		Expect(geo.Rot0.Apply(v)).To(Equal(v))
	})
})

var _ = Describe("Direction", func() {
	It("rotates 90-degree quantized", func() {
		Expect(geo.North.Rotate(geo.Rot90)).To(Equal(geo.East))
	})

	It("computes opposite as a 180 rotation", func() {
		Expect(geo.North.Opposite()).To(Equal(geo.South))
		Expect(geo.East.Opposite()).To(Equal(geo.West))
	})

	It("derives direction between two axis-aligned points", func() {
		Expect(geo.DirectionBetween(geo.Vec2{X: 0, Y: 0}, geo.Vec2{X: 5, Y: 0})).To(Equal(geo.East))
		Expect(geo.DirectionBetween(geo.Vec2{X: 0, Y: 0}, geo.Vec2{X: 0, Y: -5})).To(Equal(geo.North))
	})

	It("panics on a non-axis-aligned pair", func() {
		Expect(func() { geo.DirectionBetween(geo.Vec2{X: 0, Y: 0}, geo.Vec2{X: 1, Y: 1}) }).To(Panic())
	})
})
