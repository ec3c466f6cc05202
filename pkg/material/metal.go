package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with fuzzy specular reflection
type Metal struct {
	NoEmission
	NoPDF
	Albedo Texture
	Fuzz   float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return NewTexturedMetal(NewConstant(albedo), fuzz)
}

// NewTexturedMetal creates a metal whose albedo comes from a texture
func NewTexturedMetal(albedo Texture, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: max(0, min(1, fuzz))}
}

// Scatter reflects the ray and perturbs it by Fuzz; directions below the surface are absorbed
func (m *Metal) Scatter(rayIn core.Ray, in *Interaction, random *rand.Rand) (ScatterRecord, bool) {
	if !in.FrontFace {
		return ScatterRecord{}, false
	}

	reflected := Reflect(rayIn.Direction, in.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Normalize().Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))
	}

	if reflected.Dot(in.Normal) <= 0 {
		return ScatterRecord{}, false
	}

	return ScatterRecord{
		Attenuation: m.Albedo.Evaluate(in.UV, in.Point),
		Scattered:   in.SpawnRay(reflected),
	}, true
}

// Class returns Specular
func (m *Metal) Class() BxDFClass {
	return Specular
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
