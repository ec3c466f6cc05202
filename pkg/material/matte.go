package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MatteSampling selects how Matte samples its diffuse lobe
type MatteSampling int

const (
	// MatteCosine samples a cosine-weighted hemisphere through an orthonormal basis
	MatteCosine MatteSampling = iota
	// MatteSphereOffset samples normal + a uniform unit-sphere direction
	MatteSphereOffset
)

// Matte represents a perfectly diffuse (Lambertian) material
type Matte struct {
	NoEmission
	Albedo   Texture
	Sampling MatteSampling
}

// NewMatte creates a matte material with solid color
func NewMatte(albedo core.Vec3) *Matte {
	return &Matte{Albedo: NewConstant(albedo)}
}

// NewTexturedMatte creates a matte material with texture
func NewTexturedMatte(albedo Texture) *Matte {
	return &Matte{Albedo: albedo}
}

// Scatter samples a diffuse bounce; back faces absorb
func (m *Matte) Scatter(rayIn core.Ray, in *Interaction, random *rand.Rand) (ScatterRecord, bool) {
	if !in.FrontFace {
		return ScatterRecord{}, false
	}

	var direction core.Vec3
	switch m.Sampling {
	case MatteSphereOffset:
		direction = in.Normal.Add(core.RandomUnitVector(random))
		if direction.NearZero() {
			direction = in.Normal
		}
	default:
		direction = core.NewONB(in.Normal).Local(core.SampleCosineHemisphere(core.RandomVec2(random)))
	}

	scattered := in.SpawnRay(direction)
	return ScatterRecord{
		Attenuation: m.Albedo.Evaluate(in.UV, in.Point),
		Scattered:   scattered,
		PDF:         m.ScatteringPDF(rayIn, in, scattered),
	}, true
}

// ScatteringPDF returns cos(θ)/π, clamped to zero below the surface
func (m *Matte) ScatteringPDF(rayIn core.Ray, in *Interaction, scattered core.Ray) float64 {
	cosTheta := in.Normal.Dot(scattered.Direction)
	return math.Max(0, cosTheta) / math.Pi
}

// Class returns Diffuse
func (m *Matte) Class() BxDFClass {
	return Diffuse
}
