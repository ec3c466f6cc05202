package core

import (
	"math"
	"math/rand"
)

// ONB is an orthonormal basis built around a unit W axis
type ONB struct {
	U, V, W Vec3
}

// NewONB builds an orthonormal basis whose W axis is the given unit normal
func NewONB(n Vec3) ONB {
	w := n.Normalize()
	var a Vec3
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}
	v := w.Cross(a).Normalize()
	u := w.Cross(v)
	return ONB{U: u, V: v, W: w}
}

// Local transforms coordinates expressed in the basis to world space
func (o ONB) Local(a Vec3) Vec3 {
	return o.U.Multiply(a.X).Add(o.V.Multiply(a.Y)).Add(o.W.Multiply(a.Z))
}

// SampleCosineHemisphere generates a cosine-weighted direction around +Z
func SampleCosineHemisphere(sample Vec2) Vec3 {
	phi := 2.0 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)
	z := math.Sqrt(math.Max(0, 1.0-sample.Y))
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	offset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if offset.X == 0 && offset.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(offset.X) > math.Abs(offset.Y) {
		r = offset.X
		theta = math.Pi / 4 * (offset.Y / offset.X)
	} else {
		r = offset.Y
		theta = math.Pi/2 - math.Pi/4*(offset.X/offset.Y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SamplePointInUnitSphere generates a random point inside a unit sphere using spherical coordinates
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	// r = ∛(u₁) to account for volume scaling
	r := math.Cbrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	cosTheta := 2*sample.Z - 1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	return NewVec3(r*sinTheta*math.Cos(phi), r*sinTheta*math.Sin(phi), r*cosTheta)
}

// RandomVec2 draws two independent U[0,1) values
func RandomVec2(rng *rand.Rand) Vec2 {
	return NewVec2(rng.Float64(), rng.Float64())
}

// RandomVec3 draws three independent U[0,1) values
func RandomVec3(rng *rand.Rand) Vec3 {
	return NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
}

// RandomInUnitSphere returns a uniform point inside the unit sphere
func RandomInUnitSphere(rng *rand.Rand) Vec3 {
	return SamplePointInUnitSphere(RandomVec3(rng))
}

// RandomUnitVector returns a uniform direction on the unit sphere
func RandomUnitVector(rng *rand.Rand) Vec3 {
	return SampleOnUnitSphere(RandomVec2(rng))
}
