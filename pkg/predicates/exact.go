package predicates

import (
	"math"
	"math/big"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/r3"
)

// Compile-time interface check.
var _ Backend = exactBackend{}

// exactBackend evaluates every determinant with r3.PreciseVector, whose
// components are big.Float values at big.MaxPrec. Sums and products of
// float64 inputs are therefore never rounded and the sign of each result is
// exact. The magnitude is rounded once, when converting back to float64.
type exactBackend struct{}

func (exactBackend) Mode() Mode { return Exact }

func (exactBackend) Orient2D(a, b, c v2.Vec) float64 {
	ac := precise2(a).Sub(precise2(c))
	bc := precise2(b).Sub(precise2(c))
	return toFloat(ac.Cross(bc).Z)
}

func (exactBackend) Orient3D(a, b, c, d v3.Vec) float64 {
	pd := precise3(d)
	ad := precise3(a).Sub(pd)
	bd := precise3(b).Sub(pd)
	cd := precise3(c).Sub(pd)
	return toFloat(ad.Dot(bd.Cross(cd)))
}

func (exactBackend) InCircle(a, b, c, d v2.Vec) float64 {
	pd := precise2(d)
	la := lifted2(precise2(a).Sub(pd))
	lb := lifted2(precise2(b).Sub(pd))
	lc := lifted2(precise2(c).Sub(pd))
	return toFloat(la.Dot(lb.Cross(lc)))
}

func (exactBackend) InSphere(a, b, c, d, e v3.Vec) float64 {
	pe := precise3(e)
	ae := precise3(a).Sub(pe)
	be := precise3(b).Sub(pe)
	ce := precise3(c).Sub(pe)
	de := precise3(d).Sub(pe)

	abc := ae.Dot(be.Cross(ce))
	bcd := be.Dot(ce.Cross(de))
	cda := ce.Dot(de.Cross(ae))
	dab := de.Dot(ae.Cross(be))

	// Cofactor expansion of the 4x4 lifted determinant along the lift column.
	sum := newBigFloat().Mul(lift(de), abc)
	sum.Sub(sum, newBigFloat().Mul(lift(ce), dab))
	sum.Add(sum, newBigFloat().Mul(lift(be), cda))
	sum.Sub(sum, newBigFloat().Mul(lift(ae), bcd))
	return toFloat(sum)
}

// newBigFloat constructs a new big.Float with maximum precision.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func precise2(p v2.Vec) r3.PreciseVector {
	return r3.NewPreciseVector(p.X, p.Y, 0)
}

func precise3(p v3.Vec) r3.PreciseVector {
	return r3.NewPreciseVector(p.X, p.Y, p.Z)
}

// lift returns x^2 + y^2 + z^2 of v.
func lift(v r3.PreciseVector) *big.Float {
	return v.Dot(v)
}

// lifted2 maps a planar vector (x, y, 0) to (x, y, x^2 + y^2).
func lifted2(v r3.PreciseVector) r3.PreciseVector {
	return r3.PreciseVector{X: v.X, Y: v.Y, Z: lift(v)}
}

// toFloat rounds x to float64 while keeping its sign: a non-zero value that
// underflows is returned as the smallest representable magnitude.
func toFloat(x *big.Float) float64 {
	f, _ := x.Float64()
	if f == 0 && x.Sign() != 0 {
		return math.Copysign(math.SmallestNonzeroFloat64, float64(x.Sign()))
	}
	return f
}
